package otp

import (
	"strconv"
	"testing"
	"time"

	"github.com/job-portal-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssue_SixDigitRange(t *testing.T) {
	iss := NewIssuer(10 * time.Minute)
	for i := 0; i < 100; i++ {
		code, err := iss.Issue(time.Now())
		require.NoError(t, err)
		require.Len(t, code.Code, 6)
		n, err := strconv.Atoi(code.Code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestIssue_ExpirySetFromTTL(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	code, err := NewIssuer(10 * time.Minute).Issue(now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(10*time.Minute), code.ExpiresAt)
}

func TestValidate_Match(t *testing.T) {
	now := time.Now()
	stored := &domain.OTP{Code: "123456", ExpiresAt: now.Add(time.Minute)}
	assert.True(t, Validate("123456", stored, now))
}

func TestValidate_Mismatch(t *testing.T) {
	now := time.Now()
	stored := &domain.OTP{Code: "123456", ExpiresAt: now.Add(time.Minute)}
	assert.False(t, Validate("654321", stored, now))
}

func TestValidate_ExpiredEvenWhenCodeMatches(t *testing.T) {
	now := time.Now()
	stored := &domain.OTP{Code: "123456", ExpiresAt: now.Add(-time.Second)}
	assert.False(t, Validate("123456", stored, now))
}

func TestValidate_ExactlyAtExpiryStillValid(t *testing.T) {
	now := time.Now()
	stored := &domain.OTP{Code: "123456", ExpiresAt: now}
	assert.True(t, Validate("123456", stored, now))
}

func TestValidate_EmptySlot(t *testing.T) {
	now := time.Now()
	assert.False(t, Validate("123456", nil, now))
	assert.False(t, Validate("123456", &domain.OTP{}, now))
}
