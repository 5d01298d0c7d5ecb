package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking
// infrastructure details.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrBadRequest      = errors.New("bad request")
	ErrAccessDenied    = errors.New("access denied")
	ErrNotVerified     = errors.New("not verified")
	ErrAlreadyVerified = errors.New("already verified")
	ErrInvalidOTP      = errors.New("invalid or expired OTP")
	ErrNotEligible     = errors.New("not eligible")
	ErrDelivery        = errors.New("delivery failed")
	ErrTokenMalformed  = errors.New("malformed token")
	ErrTokenExpired    = errors.New("expired token")
)
