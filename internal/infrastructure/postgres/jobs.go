package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/job-portal-api/internal/domain"
)

// JobRepo provides typed Postgres operations for the jobs table.
type JobRepo struct {
	db DB
}

func NewJobRepo(db DB) *JobRepo {
	return &JobRepo{db: db}
}

func (r *JobRepo) Create(ctx context.Context, j *domain.Job) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO jobs (id, job_title, specialization, min_experience, location, salary, employer_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		j.ID, j.Title, j.Specialization, j.MinExperience, j.Location, j.Salary, j.EmployerID)
	if isUniqueViolation(err) {
		return fmt.Errorf("duplicate job: %w", domain.ErrConflict)
	}
	return err
}

func (r *JobRepo) Get(ctx context.Context, id string) (*domain.Job, error) {
	j := &domain.Job{}
	err := r.db.QueryRow(ctx, `
		SELECT id, job_title, specialization, min_experience, location, salary, employer_id, created_at
		FROM jobs WHERE id = $1`, id).
		Scan(&j.ID, &j.Title, &j.Specialization, &j.MinExperience, &j.Location, &j.Salary, &j.EmployerID, &j.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("job %s: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return j, nil
}

func (r *JobRepo) ListByEmployer(ctx context.Context, employerID string) ([]domain.Job, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, job_title, specialization, min_experience, location, salary, employer_id, created_at
		FROM jobs WHERE employer_id = $1 ORDER BY id`, employerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows, false)
}

// ListOpenFor returns the jobs a jobseeker is eligible for and has not yet
// applied to: case-insensitive specialization match, minimum experience
// satisfied, already-applied jobs excluded. Company name is joined in for
// display.
func (r *JobRepo) ListOpenFor(ctx context.Context, seeker *domain.Identity) ([]domain.Job, error) {
	rows, err := r.db.Query(ctx, `
		SELECT j.id, j.job_title, j.specialization, j.min_experience, j.location, j.salary, j.employer_id, j.created_at,
		       e.company_name
		FROM jobs j
		JOIN employers e ON e.id = j.employer_id
		WHERE UPPER(j.specialization) = UPPER($1)
		  AND j.min_experience <= $2
		  AND j.id NOT IN (SELECT job_id FROM job_applications WHERE jobseeker_id = $3)
		ORDER BY j.id`,
		seeker.Specialization, seeker.ExperienceYears, seeker.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows, true)
}

// Delete removes a job; its applications cascade at the store level.
func (r *JobRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("job %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func collectJobs(rows pgx.Rows, withCompany bool) ([]domain.Job, error) {
	var jobs []domain.Job
	for rows.Next() {
		var j domain.Job
		dest := []any{&j.ID, &j.Title, &j.Specialization, &j.MinExperience, &j.Location, &j.Salary, &j.EmployerID, &j.CreatedAt}
		if withCompany {
			dest = append(dest, &j.CompanyName)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}
