package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/job-portal-api/internal/domain"
)

// ApplicationRepo provides typed Postgres operations for the job_applications
// table. Applications are immutable: there is no update path, and deletion
// happens only by cascade when the job or jobseeker row goes away.
type ApplicationRepo struct {
	db DB
}

func NewApplicationRepo(db DB) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

// Create inserts an application. The (job_id, jobseeker_id) unique constraint
// turns a second application for the same job into ErrConflict.
func (r *ApplicationRepo) Create(ctx context.Context, a *domain.JobApplication) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO job_applications (id, job_id, jobseeker_id, resume_name, resume_key)
		VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.JobID, a.JobseekerID, a.ResumeName, a.ResumeKey)
	if isUniqueViolation(err) {
		return fmt.Errorf("already applied for this job: %w", domain.ErrConflict)
	}
	return err
}

func (r *ApplicationRepo) Get(ctx context.Context, id string) (*domain.JobApplication, error) {
	a := &domain.JobApplication{}
	err := r.db.QueryRow(ctx, `
		SELECT id, job_id, jobseeker_id, resume_name, resume_key, created_at
		FROM job_applications WHERE id = $1`, id).
		Scan(&a.ID, &a.JobID, &a.JobseekerID, &a.ResumeName, &a.ResumeKey, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("application %s: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return a, nil
}

// ListResumeKeysByJob returns the resume object keys of a job's applications.
// Callers read the keys before deleting the job so the blobs can be removed
// after the rows cascade away.
func (r *ApplicationRepo) ListResumeKeysByJob(ctx context.Context, jobID string) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT resume_key FROM job_applications WHERE job_id = $1`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectKeys(rows)
}

// ListResumeKeysByIdentity returns the keys of the applications that cascade
// away when the identity is deleted: a jobseeker's own applications, or every
// application to one of an employer's jobs.
func (r *ApplicationRepo) ListResumeKeysByIdentity(ctx context.Context, role domain.Role, id string) ([]string, error) {
	var query string
	switch role {
	case domain.RoleJobseeker:
		query = `SELECT resume_key FROM job_applications WHERE jobseeker_id = $1`
	case domain.RoleEmployer:
		query = `SELECT resume_key FROM job_applications
			WHERE job_id IN (SELECT id FROM jobs WHERE employer_id = $1)`
	default:
		return nil, fmt.Errorf("role %q has no identity table: %w", role, domain.ErrBadRequest)
	}
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectKeys(rows)
}

func collectKeys(rows pgx.Rows) ([]string, error) {
	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// ListApplicants returns the jobseeker profiles that applied to a job.
func (r *ApplicationRepo) ListApplicants(ctx context.Context, jobID string) ([]domain.Applicant, error) {
	rows, err := r.db.Query(ctx, `
		SELECT a.id, s.phone_number, s.name, s.email, s.dob, s.highest_degree, s.specialization, s.work_experience
		FROM job_applications a
		JOIN jobseekers s ON s.id = a.jobseeker_id
		WHERE a.job_id = $1
		ORDER BY a.id`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applicants []domain.Applicant
	for rows.Next() {
		var ap domain.Applicant
		if err := rows.Scan(&ap.ApplicationID, &ap.Phone, &ap.Name, &ap.Email,
			&ap.DOB, &ap.HighestDegree, &ap.Specialization, &ap.ExperienceYears); err != nil {
			return nil, err
		}
		applicants = append(applicants, ap)
	}
	return applicants, rows.Err()
}
