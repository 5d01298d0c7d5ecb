package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/job-portal-api/internal/domain"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The open-jobs query must match specialization case-insensitively, respect
// the experience floor, and exclude jobs the seeker already applied to — all
// in SQL, with the seeker's own values as parameters.
func TestListOpenFor_QueryShape(t *testing.T) {
	mock := newMockDB(t)
	seeker := &domain.Identity{
		ID: "js1", Role: domain.RoleJobseeker,
		Specialization: "Backend", ExperienceYears: 3,
	}

	now := time.Now()
	mock.ExpectQuery(`(?s)UPPER\(j\.specialization\) = UPPER\(\$1\)` +
		`.*j\.min_experience <= \$2` +
		`.*j\.id NOT IN \(SELECT job_id FROM job_applications WHERE jobseeker_id = \$3\)`).
		WithArgs(seeker.Specialization, seeker.ExperienceYears, seeker.ID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "job_title", "specialization", "min_experience", "location",
			"salary", "employer_id", "created_at", "company_name",
		}).AddRow("job1", "Go Developer", "backend", 2, "Remote", 120000, "emp1", now, "Acme"))

	jobs, err := NewJobRepo(mock).ListOpenFor(context.Background(), seeker)

	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "job1", jobs[0].ID)
	assert.Equal(t, "Acme", jobs[0].CompanyName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListOpenFor_NoMatches(t *testing.T) {
	mock := newMockDB(t)
	seeker := &domain.Identity{ID: "js1", Specialization: "Frontend", ExperienceYears: 0}

	mock.ExpectQuery("FROM jobs j").
		WithArgs(seeker.Specialization, seeker.ExperienceYears, seeker.ID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "job_title", "specialization", "min_experience", "location",
			"salary", "employer_id", "created_at", "company_name",
		}))

	jobs, err := NewJobRepo(mock).ListOpenFor(context.Background(), seeker)

	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestJobCreate_UniqueViolationConflicts(t *testing.T) {
	mock := newMockDB(t)
	j := &domain.Job{ID: "job1", Title: "Go Developer", Specialization: "Backend",
		MinExperience: 2, Location: "Remote", Salary: 120000, EmployerID: "emp1"}

	mock.ExpectExec("INSERT INTO jobs").
		WithArgs(j.ID, j.Title, j.Specialization, j.MinExperience, j.Location, j.Salary, j.EmployerID).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "jobs_pkey"})

	err := NewJobRepo(mock).Create(context.Background(), j)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
}
