package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/job-portal-api/internal/domain"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func unverifiedJobseeker() *domain.Identity {
	exp := time.Now().Add(10 * time.Minute)
	return &domain.Identity{
		ID: "js1", Role: domain.RoleJobseeker,
		Phone: "9876543210", Name: "Asha", Email: "asha@example.com",
		DOB: "1995-04-12", HighestDegree: "B.Tech", Specialization: "Backend",
		ExperienceYears: 3,
		PhoneOTP:        &domain.OTP{Code: "111111", ExpiresAt: exp},
		EmailOTP:        &domain.OTP{Code: "222222", ExpiresAt: exp},
	}
}

// A colliding unverified row is deleted inside the same transaction before the
// fresh record goes in, so the prior OTPs can never validate again.
func TestCreateUnverified_ReplacesUnverifiedCollision(t *testing.T) {
	mock := newMockDB(t)
	ident := unverifiedJobseeker()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM jobseekers").
		WithArgs(ident.Phone, ident.Email).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectQuery("SELECT is_verified FROM jobseekers").
		WithArgs(ident.Phone, ident.Email).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectExec("INSERT INTO jobseekers").
		WithArgs(ident.ID, ident.Phone, ident.Name, ident.Email,
			ident.DOB, ident.HighestDegree, ident.Specialization, ident.ExperienceYears,
			ident.PhoneOTP.Code, ident.PhoneOTP.ExpiresAt, ident.EmailOTP.Code, ident.EmailOTP.ExpiresAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err := NewIdentityRepo(mock).CreateUnverified(context.Background(), ident)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A verified row with the same phone+email survives; registration conflicts
// and nothing is inserted.
func TestCreateUnverified_VerifiedPairConflicts(t *testing.T) {
	mock := newMockDB(t)
	ident := unverifiedJobseeker()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM jobseekers").
		WithArgs(ident.Phone, ident.Email).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectQuery("SELECT is_verified FROM jobseekers").
		WithArgs(ident.Phone, ident.Email).
		WillReturnRows(pgxmock.NewRows([]string{"is_verified"}).AddRow(true))
	mock.ExpectRollback()

	err := NewIdentityRepo(mock).CreateUnverified(context.Background(), ident)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The phone alone may collide with a verified row under a different email; the
// pair lookup misses, the insert hits the unique constraint, and the violation
// surfaces as Conflict.
func TestCreateUnverified_VerifiedPhoneUniqueViolation(t *testing.T) {
	mock := newMockDB(t)
	ident := unverifiedJobseeker()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM jobseekers").
		WithArgs(ident.Phone, ident.Email).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectQuery("SELECT is_verified FROM jobseekers").
		WithArgs(ident.Phone, ident.Email).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectExec("INSERT INTO jobseekers").
		WithArgs(ident.ID, ident.Phone, ident.Name, ident.Email,
			ident.DOB, ident.HighestDegree, ident.Specialization, ident.ExperienceYears,
			ident.PhoneOTP.Code, ident.PhoneOTP.ExpiresAt, ident.EmailOTP.Code, ident.EmailOTP.ExpiresAt).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "jobseekers_phone_number_key"})
	mock.ExpectRollback()

	err := NewIdentityRepo(mock).CreateUnverified(context.Background(), ident)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUnverified_AdminHasNoTable(t *testing.T) {
	mock := newMockDB(t)
	ident := unverifiedJobseeker()
	ident.Role = domain.RoleAdmin

	err := NewIdentityRepo(mock).CreateUnverified(context.Background(), ident)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

// MarkVerified clears both slots and flips the flag in one statement.
func TestMarkVerified_SingleStatement(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectExec(`(?s)phone_otp = NULL.*email_otp = NULL.*is_verified = TRUE`).
		WithArgs("js1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := NewIdentityRepo(mock).MarkVerified(context.Background(), domain.RoleJobseeker, "js1")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkVerified_MissingRowNotFound(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectExec("UPDATE jobseekers").
		WithArgs("ghost").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := NewIdentityRepo(mock).MarkVerified(context.Background(), domain.RoleJobseeker, "ghost")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
