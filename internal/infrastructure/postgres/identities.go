package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/job-portal-api/internal/domain"
)

// IdentityRepo provides typed Postgres operations over the jobseekers and
// employers tables. The role discriminant picks the table; dispatch is an
// exhaustive switch over the two identity-backed roles.
type IdentityRepo struct {
	db DB
}

func NewIdentityRepo(db DB) *IdentityRepo {
	return &IdentityRepo{db: db}
}

func identityTable(role domain.Role) (string, error) {
	switch role {
	case domain.RoleJobseeker:
		return "jobseekers", nil
	case domain.RoleEmployer:
		return "employers", nil
	default:
		return "", fmt.Errorf("role %q has no identity table: %w", role, domain.ErrBadRequest)
	}
}

func identityColumns(role domain.Role) string {
	if role == domain.RoleJobseeker {
		return `id, phone_number, name, email, dob, highest_degree, specialization, work_experience,
			is_verified, phone_otp, phone_otp_expires, email_otp, email_otp_expires, created_at, updated_at`
	}
	return `id, phone_number, name, email, company_name,
		is_verified, phone_otp, phone_otp_expires, email_otp, email_otp_expires, created_at, updated_at`
}

// CreateUnverified inserts a fresh unverified identity in one transaction:
// colliding unverified rows are removed first (abandoned registrations), a
// verified row with the same phone+email fails with ErrConflict, and any
// remaining unique violation (e.g. the phone belongs to a different verified
// identity) also surfaces as ErrConflict.
func (r *IdentityRepo) CreateUnverified(ctx context.Context, ident *domain.Identity) error {
	table, err := identityTable(ident.Role)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, fmt.Sprintf(
		`DELETE FROM %s WHERE is_verified = FALSE AND (phone_number = $1 OR email = $2)`, table),
		ident.Phone, ident.Email)
	if err != nil {
		return err
	}

	var verified bool
	err = tx.QueryRow(ctx, fmt.Sprintf(
		`SELECT is_verified FROM %s WHERE phone_number = $1 AND email = $2`, table),
		ident.Phone, ident.Email).Scan(&verified)
	switch {
	case err == nil && verified:
		return fmt.Errorf("%s already registered: %w", ident.Role, domain.ErrConflict)
	case err != nil && !errors.Is(err, pgx.ErrNoRows):
		return err
	}

	switch ident.Role {
	case domain.RoleJobseeker:
		_, err = tx.Exec(ctx, `
			INSERT INTO jobseekers
			(id, phone_number, name, email, dob, highest_degree, specialization, work_experience,
			 is_verified, phone_otp, phone_otp_expires, email_otp, email_otp_expires)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, $9, $10, $11, $12)`,
			ident.ID, ident.Phone, ident.Name, ident.Email,
			ident.DOB, ident.HighestDegree, ident.Specialization, ident.ExperienceYears,
			ident.PhoneOTP.Code, ident.PhoneOTP.ExpiresAt, ident.EmailOTP.Code, ident.EmailOTP.ExpiresAt)
	case domain.RoleEmployer:
		_, err = tx.Exec(ctx, `
			INSERT INTO employers
			(id, phone_number, name, email, company_name,
			 is_verified, phone_otp, phone_otp_expires, email_otp, email_otp_expires)
			VALUES ($1, $2, $3, $4, $5, FALSE, $6, $7, $8, $9)`,
			ident.ID, ident.Phone, ident.Name, ident.Email, ident.CompanyName,
			ident.PhoneOTP.Code, ident.PhoneOTP.ExpiresAt, ident.EmailOTP.Code, ident.EmailOTP.ExpiresAt)
	}
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("phone number or email already exists: %w", domain.ErrConflict)
		}
		return err
	}

	return tx.Commit(ctx)
}

func (r *IdentityRepo) Get(ctx context.Context, role domain.Role, id string) (*domain.Identity, error) {
	table, err := identityTable(role)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRow(ctx, fmt.Sprintf(
		`SELECT %s FROM %s WHERE id = $1`, identityColumns(role), table), id)
	return scanIdentity(row, role)
}

func (r *IdentityRepo) GetByPhone(ctx context.Context, role domain.Role, phone string) (*domain.Identity, error) {
	table, err := identityTable(role)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRow(ctx, fmt.Sprintf(
		`SELECT %s FROM %s WHERE phone_number = $1`, identityColumns(role), table), phone)
	return scanIdentity(row, role)
}

func (r *IdentityRepo) GetByPhoneEmail(ctx context.Context, role domain.Role, phone, email string) (*domain.Identity, error) {
	table, err := identityTable(role)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRow(ctx, fmt.Sprintf(
		`SELECT %s FROM %s WHERE phone_number = $1 AND email = $2`, identityColumns(role), table), phone, email)
	return scanIdentity(row, role)
}

// MarkVerified clears both OTP slots and flips the verified flag in a single
// statement, so a code can never be replayed after a successful confirmation.
func (r *IdentityRepo) MarkVerified(ctx context.Context, role domain.Role, id string) error {
	table, err := identityTable(role)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, fmt.Sprintf(`
		UPDATE %s
		SET phone_otp = NULL, phone_otp_expires = NULL,
		    email_otp = NULL, email_otp_expires = NULL,
		    is_verified = TRUE, updated_at = now()
		WHERE id = $1`, table), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("identity %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// SetPhoneOTP overwrites the phone OTP slot (login issuance).
func (r *IdentityRepo) SetPhoneOTP(ctx context.Context, role domain.Role, id string, code *domain.OTP) error {
	table, err := identityTable(role)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, fmt.Sprintf(`
		UPDATE %s SET phone_otp = $2, phone_otp_expires = $3, updated_at = now()
		WHERE id = $1`, table), id, code.Code, code.ExpiresAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("identity %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ClearPhoneOTP empties the phone OTP slot (login consumption).
func (r *IdentityRepo) ClearPhoneOTP(ctx context.Context, role domain.Role, id string) error {
	table, err := identityTable(role)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, fmt.Sprintf(`
		UPDATE %s SET phone_otp = NULL, phone_otp_expires = NULL, updated_at = now()
		WHERE id = $1`, table), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("identity %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *IdentityRepo) Delete(ctx context.Context, role domain.Role, id string) error {
	table, err := identityTable(role)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("identity %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *IdentityRepo) List(ctx context.Context, role domain.Role) ([]domain.Identity, error) {
	table, err := identityTable(role)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM %s ORDER BY id`, identityColumns(role), table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var idents []domain.Identity
	for rows.Next() {
		ident, err := scanIdentity(rows, role)
		if err != nil {
			return nil, err
		}
		idents = append(idents, *ident)
	}
	return idents, rows.Err()
}

func scanIdentity(row pgx.Row, role domain.Role) (*domain.Identity, error) {
	ident := &domain.Identity{Role: role}
	var (
		phoneCode, emailCode *string
		phoneExp, emailExp   *time.Time
	)

	var err error
	switch role {
	case domain.RoleJobseeker:
		err = row.Scan(&ident.ID, &ident.Phone, &ident.Name, &ident.Email,
			&ident.DOB, &ident.HighestDegree, &ident.Specialization, &ident.ExperienceYears,
			&ident.Verified, &phoneCode, &phoneExp, &emailCode, &emailExp,
			&ident.CreatedAt, &ident.UpdatedAt)
	case domain.RoleEmployer:
		err = row.Scan(&ident.ID, &ident.Phone, &ident.Name, &ident.Email,
			&ident.CompanyName,
			&ident.Verified, &phoneCode, &phoneExp, &emailCode, &emailExp,
			&ident.CreatedAt, &ident.UpdatedAt)
	default:
		return nil, fmt.Errorf("role %q has no identity table: %w", role, domain.ErrBadRequest)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("identity: %w", domain.ErrNotFound)
		}
		return nil, err
	}

	if phoneCode != nil && phoneExp != nil {
		ident.PhoneOTP = &domain.OTP{Code: *phoneCode, ExpiresAt: *phoneExp}
	}
	if emailCode != nil && emailExp != nil {
		ident.EmailOTP = &domain.OTP{Code: *emailCode, ExpiresAt: *emailExp}
	}
	return ident, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
