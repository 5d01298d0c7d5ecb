// Package auth implements the identity verification state machine: dual-channel
// OTP registration, phone-OTP login, and admin credential login.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/job-portal-api/internal/domain"
	"github.com/job-portal-api/internal/pkg/id"
	"github.com/job-portal-api/internal/pkg/otp"
	"golang.org/x/crypto/bcrypt"
)

// IdentityStore is the minimal identity repository surface the service needs.
type IdentityStore interface {
	CreateUnverified(ctx context.Context, ident *domain.Identity) error
	Get(ctx context.Context, role domain.Role, id string) (*domain.Identity, error)
	GetByPhone(ctx context.Context, role domain.Role, phone string) (*domain.Identity, error)
	GetByPhoneEmail(ctx context.Context, role domain.Role, phone, email string) (*domain.Identity, error)
	MarkVerified(ctx context.Context, role domain.Role, id string) error
	SetPhoneOTP(ctx context.Context, role domain.Role, id string, code *domain.OTP) error
	ClearPhoneOTP(ctx context.Context, role domain.Role, id string) error
	Delete(ctx context.Context, role domain.Role, id string) error
}

// Mailer is the email channel of the notification gateway.
type Mailer interface {
	SendEmail(to, subject, body string) error
}

// SMSSender is the phone channel of the notification gateway.
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

// TokenSigner mints session tokens after a successful login.
type TokenSigner interface {
	Sign(subject string, role domain.Role, now time.Time) (string, error)
}

type Service interface {
	RegisterJobseeker(ctx context.Context, req domain.RegisterJobseekerRequest) error
	RegisterEmployer(ctx context.Context, req domain.RegisterEmployerRequest) error
	ConfirmRegistration(ctx context.Context, role domain.Role, req domain.ConfirmRegistrationRequest) error
	RequestLoginOTP(ctx context.Context, role domain.Role, phone string) error
	ConfirmLogin(ctx context.Context, role domain.Role, phone, submittedOTP string) (string, error)
	AdminLogin(ctx context.Context, adminID, password string) (string, error)

	// OTPValidity is the advertised lifetime of issued codes.
	OTPValidity() time.Duration
}

// ServiceDeps wires the service's collaborators.
type ServiceDeps struct {
	Identities        IdentityStore
	Mailer            Mailer
	SMSSender         SMSSender
	Tokens            TokenSigner
	OTP               otp.Issuer
	AdminID           string
	AdminPasswordHash string // bcrypt
}

type service struct {
	identities IdentityStore
	mailer     Mailer
	sms        SMSSender
	tokens     TokenSigner
	otp        otp.Issuer
	adminID    string
	adminHash  string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		identities: deps.Identities,
		mailer:     deps.Mailer,
		sms:        deps.SMSSender,
		tokens:     deps.Tokens,
		otp:        deps.OTP,
		adminID:    deps.AdminID,
		adminHash:  deps.AdminPasswordHash,
	}
}

func (s *service) OTPValidity() time.Duration { return s.otp.TTL() }

func (s *service) RegisterJobseeker(ctx context.Context, req domain.RegisterJobseekerRequest) error {
	return s.register(ctx, &domain.Identity{
		Role:            domain.RoleJobseeker,
		Phone:           req.Phone,
		Name:            req.Name,
		Email:           req.Email,
		DOB:             req.DOB,
		HighestDegree:   req.HighestDegree,
		Specialization:  req.Specialization,
		ExperienceYears: *req.ExperienceYears,
	})
}

func (s *service) RegisterEmployer(ctx context.Context, req domain.RegisterEmployerRequest) error {
	return s.register(ctx, &domain.Identity{
		Role:        domain.RoleEmployer,
		Phone:       req.Phone,
		Name:        req.Name,
		Email:       req.Email,
		CompanyName: req.CompanyName,
	})
}

// register creates an unverified identity with fresh OTPs on both channels and
// dispatches both codes. Registration is all-or-nothing: if either dispatch
// fails, the freshly created record is removed again so the system never holds
// an identity whose codes were never delivered.
func (s *service) register(ctx context.Context, ident *domain.Identity) error {
	now := time.Now()
	phoneOTP, err := s.otp.Issue(now)
	if err != nil {
		return err
	}
	emailOTP, err := s.otp.Issue(now)
	if err != nil {
		return err
	}
	ident.ID = id.New()
	ident.PhoneOTP = phoneOTP
	ident.EmailOTP = emailOTP

	if err := s.identities.CreateUnverified(ctx, ident); err != nil {
		return err
	}

	if err := s.sms.SendSMS(ctx, ident.Phone,
		"The OTP to verify your phone number for your registration in JOB PORTAL SYSTEM is "+phoneOTP.Code+"."); err != nil {
		s.abandonRegistration(ctx, ident)
		slog.Error("registration SMS dispatch failed", "role", ident.Role, "err", err)
		return fmt.Errorf("SMS service error: %w", domain.ErrDelivery)
	}
	if err := s.mailer.SendEmail(ident.Email,
		"VERIFY YOUR REGISTRATION IN JOB PORTAL SYSTEM",
		"The OTP to verify your email id for your registration in JOB PORTAL SYSTEM is "+emailOTP.Code+"."); err != nil {
		s.abandonRegistration(ctx, ident)
		slog.Error("registration email dispatch failed", "role", ident.Role, "err", err)
		return fmt.Errorf("email service error: %w", domain.ErrDelivery)
	}
	return nil
}

func (s *service) abandonRegistration(ctx context.Context, ident *domain.Identity) {
	if err := s.identities.Delete(ctx, ident.Role, ident.ID); err != nil {
		slog.Warn("failed to remove identity after dispatch failure", "role", ident.Role, "id", ident.ID, "err", err)
	}
}

// ConfirmRegistration validates both channel codes; each must independently
// succeed, there is no partial credit. On success both slots are cleared and
// the verified flag set in the same store transition, then a best-effort
// confirmation goes out on both channels.
func (s *service) ConfirmRegistration(ctx context.Context, role domain.Role, req domain.ConfirmRegistrationRequest) error {
	ident, err := s.identities.GetByPhoneEmail(ctx, role, req.Phone, req.Email)
	if err != nil {
		return err
	}
	if ident.Verified {
		return fmt.Errorf("%s is already verified: %w", role, domain.ErrAlreadyVerified)
	}

	now := time.Now()
	if !otp.Validate(req.PhoneOTP, ident.PhoneOTP, now) || !otp.Validate(req.EmailOTP, ident.EmailOTP, now) {
		return fmt.Errorf("one or both OTPs: %w", domain.ErrInvalidOTP)
	}

	if err := s.identities.MarkVerified(ctx, role, ident.ID); err != nil {
		return err
	}

	// Verification is committed; notification failures are logged, not surfaced.
	if err := s.sms.SendSMS(ctx, ident.Phone, "You have successfully registered in JOB PORTAL SYSTEM."); err != nil {
		slog.Warn("registration confirmation SMS failed", "role", role, "id", ident.ID, "err", err)
	}
	if err := s.mailer.SendEmail(ident.Email, "REGISTRATION SUCCESSFUL",
		"You have successfully registered in JOB PORTAL SYSTEM."); err != nil {
		slog.Warn("registration confirmation email failed", "role", role, "id", ident.ID, "err", err)
	}
	return nil
}

// RequestLoginOTP overwrites the phone OTP slot with a fresh code and sends it.
// If the SMS cannot be delivered the slot is cleared again so no undelivered
// code stays live.
func (s *service) RequestLoginOTP(ctx context.Context, role domain.Role, phone string) error {
	ident, err := s.identities.GetByPhone(ctx, role, phone)
	if err != nil {
		return err
	}
	if !ident.Verified {
		return fmt.Errorf("%s not verified yet: %w", role, domain.ErrNotVerified)
	}

	code, err := s.otp.Issue(time.Now())
	if err != nil {
		return err
	}
	if err := s.identities.SetPhoneOTP(ctx, role, ident.ID, code); err != nil {
		return err
	}
	if err := s.sms.SendSMS(ctx, ident.Phone, "The OTP to log into JOB PORTAL SYSTEM is "+code.Code+"."); err != nil {
		if clearErr := s.identities.ClearPhoneOTP(ctx, role, ident.ID); clearErr != nil {
			slog.Warn("failed to clear login OTP after dispatch failure", "role", role, "id", ident.ID, "err", clearErr)
		}
		slog.Error("login SMS dispatch failed", "role", role, "id", ident.ID, "err", err)
		return fmt.Errorf("SMS service error: %w", domain.ErrDelivery)
	}
	return nil
}

// ConfirmLogin consumes the phone OTP and mints a session token with the
// identity's id as subject.
func (s *service) ConfirmLogin(ctx context.Context, role domain.Role, phone, submittedOTP string) (string, error) {
	ident, err := s.identities.GetByPhone(ctx, role, phone)
	if err != nil {
		return "", err
	}
	if !ident.Verified {
		return "", fmt.Errorf("%s not verified yet: %w", role, domain.ErrNotVerified)
	}
	if !otp.Validate(submittedOTP, ident.PhoneOTP, time.Now()) {
		return "", fmt.Errorf("login OTP: %w", domain.ErrInvalidOTP)
	}

	// Single-use: the slot is cleared before the credential is handed out.
	if err := s.identities.ClearPhoneOTP(ctx, role, ident.ID); err != nil {
		return "", err
	}
	return s.tokens.Sign(ident.ID, role, time.Now())
}

// AdminLogin checks the configured admin credential and mints an admin token.
func (s *service) AdminLogin(_ context.Context, adminID, password string) (string, error) {
	if s.adminID == "" || s.adminHash == "" || adminID != s.adminID ||
		bcrypt.CompareHashAndPassword([]byte(s.adminHash), []byte(password)) != nil {
		return "", fmt.Errorf("invalid id or/and password: %w", domain.ErrAccessDenied)
	}
	return s.tokens.Sign(adminID, domain.RoleAdmin, time.Now())
}
