// Package job implements the protected job-board operations: posting,
// listing, deletion, application submission, applicant review and resume
// retrieval. Every operation re-validates the caller's role and, where a
// resource is owned, its ownership; the role claim in the token alone is
// never sufficient.
package job

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/job-portal-api/internal/domain"
	"github.com/job-portal-api/internal/pkg/id"
)

// IdentityStore resolves the caller's own identity row.
type IdentityStore interface {
	Get(ctx context.Context, role domain.Role, id string) (*domain.Identity, error)
}

// JobStore is the minimal job repository surface the service needs.
type JobStore interface {
	Create(ctx context.Context, j *domain.Job) error
	Get(ctx context.Context, id string) (*domain.Job, error)
	ListByEmployer(ctx context.Context, employerID string) ([]domain.Job, error)
	ListOpenFor(ctx context.Context, seeker *domain.Identity) ([]domain.Job, error)
	Delete(ctx context.Context, id string) error
}

// ApplicationStore is the minimal application repository surface the service needs.
type ApplicationStore interface {
	Create(ctx context.Context, a *domain.JobApplication) error
	Get(ctx context.Context, id string) (*domain.JobApplication, error)
	ListApplicants(ctx context.Context, jobID string) ([]domain.Applicant, error)
	ListResumeKeysByJob(ctx context.Context, jobID string) ([]string, error)
}

// ResumeStore holds the resume blobs.
type ResumeStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

type Service interface {
	PostJob(ctx context.Context, subject string, role domain.Role, req domain.CreateJobRequest) (*domain.Job, error)
	ListPostedJobs(ctx context.Context, subject string, role domain.Role) ([]domain.Job, error)
	DeleteJob(ctx context.Context, subject string, role domain.Role, jobID string) error
	ListApplicants(ctx context.Context, subject string, role domain.Role, jobID string) ([]domain.Applicant, error)
	GetResume(ctx context.Context, subject string, role domain.Role, applicationID string) (string, io.ReadCloser, error)
	ListActiveJobs(ctx context.Context, subject string, role domain.Role) ([]domain.Job, error)
	Apply(ctx context.Context, subject string, role domain.Role, jobID, filename string, resume io.Reader) error
}

type service struct {
	identities   IdentityStore
	jobs         JobStore
	applications ApplicationStore
	resumes      ResumeStore
}

func NewService(identities IdentityStore, jobs JobStore, applications ApplicationStore, resumes ResumeStore) Service {
	return &service{identities: identities, jobs: jobs, applications: applications, resumes: resumes}
}

func requireRole(role, want domain.Role) error {
	if role != want {
		return fmt.Errorf("requires %s role: %w", want, domain.ErrAccessDenied)
	}
	return nil
}

func (s *service) PostJob(ctx context.Context, subject string, role domain.Role, req domain.CreateJobRequest) (*domain.Job, error) {
	if err := requireRole(role, domain.RoleEmployer); err != nil {
		return nil, err
	}
	employer, err := s.identities.Get(ctx, domain.RoleEmployer, subject)
	if err != nil {
		return nil, err
	}

	j := &domain.Job{
		ID:             id.New(),
		Title:          req.Title,
		Specialization: req.Specialization,
		MinExperience:  *req.MinExperience,
		Location:       req.Location,
		Salary:         *req.Salary,
		EmployerID:     employer.ID,
	}
	if err := s.jobs.Create(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *service) ListPostedJobs(ctx context.Context, subject string, role domain.Role) ([]domain.Job, error) {
	if err := requireRole(role, domain.RoleEmployer); err != nil {
		return nil, err
	}
	employer, err := s.identities.Get(ctx, domain.RoleEmployer, subject)
	if err != nil {
		return nil, err
	}
	return s.jobs.ListByEmployer(ctx, employer.ID)
}

// DeleteJob removes a job. Only the owning employer or an admin may do so;
// a missing job is NotFound, an existing job owned by someone else is
// AccessDenied. Application rows cascade at the store level; their resume
// blobs are removed here once the row deletion has committed.
func (s *service) DeleteJob(ctx context.Context, subject string, role domain.Role, jobID string) error {
	switch role {
	case domain.RoleAdmin:
		if _, err := s.jobs.Get(ctx, jobID); err != nil {
			return err
		}
	case domain.RoleEmployer:
		if _, err := s.ownedJob(ctx, subject, jobID); err != nil {
			return err
		}
	default:
		return fmt.Errorf("requires employer role: %w", domain.ErrAccessDenied)
	}

	// Keys must be read before the rows cascade away.
	keys, err := s.applications.ListResumeKeysByJob(ctx, jobID)
	if err != nil {
		return err
	}
	if err := s.jobs.Delete(ctx, jobID); err != nil {
		return err
	}
	s.removeResumeBlobs(ctx, keys)
	return nil
}

// removeResumeBlobs is best effort: the rows are already gone, so a failed
// blob delete is logged rather than surfaced.
func (s *service) removeResumeBlobs(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.resumes.Delete(ctx, key); err != nil {
			slog.Warn("failed to remove resume blob after row deletion", "key", key, "err", err)
		}
	}
}

func (s *service) ListApplicants(ctx context.Context, subject string, role domain.Role, jobID string) ([]domain.Applicant, error) {
	if err := requireRole(role, domain.RoleEmployer); err != nil {
		return nil, err
	}
	if _, err := s.ownedJob(ctx, subject, jobID); err != nil {
		return nil, err
	}
	return s.applications.ListApplicants(ctx, jobID)
}

// GetResume streams the resume of an application whose job belongs to the
// calling employer. Returns the original filename and the blob stream.
func (s *service) GetResume(ctx context.Context, subject string, role domain.Role, applicationID string) (string, io.ReadCloser, error) {
	if err := requireRole(role, domain.RoleEmployer); err != nil {
		return "", nil, err
	}
	app, err := s.applications.Get(ctx, applicationID)
	if err != nil {
		return "", nil, err
	}
	if _, err := s.ownedJob(ctx, subject, app.JobID); err != nil {
		return "", nil, err
	}
	rc, err := s.resumes.Download(ctx, app.ResumeKey)
	if err != nil {
		return "", nil, err
	}
	return app.ResumeName, rc, nil
}

func (s *service) ListActiveJobs(ctx context.Context, subject string, role domain.Role) ([]domain.Job, error) {
	if err := requireRole(role, domain.RoleJobseeker); err != nil {
		return nil, err
	}
	seeker, err := s.identities.Get(ctx, domain.RoleJobseeker, subject)
	if err != nil {
		return nil, err
	}
	return s.jobs.ListOpenFor(ctx, seeker)
}

// Apply submits an application. The eligibility predicate is re-run
// server-side regardless of what the client listed; a mismatch is
// NotEligible, not silently ignored. The blob is stored first and removed
// again if the application row cannot be committed (e.g. duplicate).
func (s *service) Apply(ctx context.Context, subject string, role domain.Role, jobID, filename string, resume io.Reader) error {
	if err := requireRole(role, domain.RoleJobseeker); err != nil {
		return err
	}
	seeker, err := s.identities.Get(ctx, domain.RoleJobseeker, subject)
	if err != nil {
		return err
	}
	j, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return err
	}
	if !j.Eligible(seeker) {
		return fmt.Errorf("cannot apply for this job position: %w", domain.ErrNotEligible)
	}

	app := &domain.JobApplication{
		ID:          id.New(),
		JobID:       j.ID,
		JobseekerID: seeker.ID,
		ResumeName:  filename,
		ResumeKey:   "resumes/" + id.New() + ".pdf",
	}
	if err := s.resumes.Upload(ctx, app.ResumeKey, resume, "application/pdf"); err != nil {
		return err
	}
	if err := s.applications.Create(ctx, app); err != nil {
		if delErr := s.resumes.Delete(ctx, app.ResumeKey); delErr != nil {
			slog.Warn("failed to remove resume blob after application insert failure", "key", app.ResumeKey, "err", delErr)
		}
		return err
	}
	return nil
}

// ownedJob fetches a job and enforces that it belongs to the calling
// employer. NotFound wins only when the job genuinely does not exist.
func (s *service) ownedJob(ctx context.Context, subject, jobID string) (*domain.Job, error) {
	employer, err := s.identities.Get(ctx, domain.RoleEmployer, subject)
	if err != nil {
		return nil, err
	}
	j, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.EmployerID != employer.ID {
		return nil, fmt.Errorf("job %s belongs to another employer: %w", jobID, domain.ErrAccessDenied)
	}
	return j, nil
}
