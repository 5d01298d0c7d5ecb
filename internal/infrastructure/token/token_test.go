package token

import (
	"errors"
	"testing"
	"time"

	"github.com/job-portal-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, ttl time.Duration) *Provider {
	t.Helper()
	p, err := NewProvider("test-secret", ttl)
	require.NoError(t, err)
	return p
}

func TestNewProvider_EmptySecret(t *testing.T) {
	_, err := NewProvider("", time.Hour)
	assert.Error(t, err)
}

func TestSignVerify_RoundTrip(t *testing.T) {
	p := newTestProvider(t, 2*time.Hour)

	signed, err := p.Sign("id-1", domain.RoleEmployer, time.Now())
	require.NoError(t, err)

	claims, err := p.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "id-1", claims.Subject)
	assert.Equal(t, domain.RoleEmployer, claims.Role)
}

func TestVerify_Expired(t *testing.T) {
	p := newTestProvider(t, 2*time.Hour)

	// Issued long enough ago that the expiry instant has passed.
	signed, err := p.Sign("id-1", domain.RoleJobseeker, time.Now().Add(-3*time.Hour))
	require.NoError(t, err)

	_, err = p.Verify(signed)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTokenExpired))
}

func TestVerify_NotYetExpired(t *testing.T) {
	p := newTestProvider(t, 2*time.Hour)

	// One second short of the expiry instant.
	signed, err := p.Sign("id-1", domain.RoleJobseeker, time.Now().Add(-2*time.Hour+time.Second))
	require.NoError(t, err)

	_, err = p.Verify(signed)
	assert.NoError(t, err)
}

func TestVerify_Garbage(t *testing.T) {
	p := newTestProvider(t, 2*time.Hour)
	_, err := p.Verify("not-a-token")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTokenMalformed))
}

func TestVerify_WrongSecret(t *testing.T) {
	p := newTestProvider(t, 2*time.Hour)
	signed, err := p.Sign("id-1", domain.RoleAdmin, time.Now())
	require.NoError(t, err)

	other, err := NewProvider("different-secret", 2*time.Hour)
	require.NoError(t, err)

	_, err = other.Verify(signed)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTokenMalformed))
}
