// Package otp generates and validates the one-time codes used to prove
// control of a phone number or email address.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/job-portal-api/internal/domain"
)

// Issuer mints 6-digit codes with a fixed TTL.
type Issuer struct {
	ttl time.Duration
}

func NewIssuer(ttl time.Duration) Issuer {
	return Issuer{ttl: ttl}
}

// TTL returns the configured code lifetime.
func (i Issuer) TTL() time.Duration { return i.ttl }

// Issue draws a code uniformly from [100000, 999999] and stamps it with
// now + TTL.
func (i Issuer) Issue(now time.Time) (*domain.OTP, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return nil, fmt.Errorf("generate OTP: %w", err)
	}
	return &domain.OTP{
		Code:      fmt.Sprintf("%06d", n.Int64()+100000),
		ExpiresAt: now.Add(i.ttl),
	}, nil
}

// Validate reports whether submitted matches the stored slot and the slot has
// not expired. A nil slot, a code mismatch, or now past the expiry all fail;
// comparison is exact. Callers must clear the slot on success in the same
// state transition so a code is never accepted twice.
func Validate(submitted string, stored *domain.OTP, now time.Time) bool {
	if stored == nil || stored.Code == "" {
		return false
	}
	return submitted == stored.Code && !now.After(stored.ExpiresAt)
}
