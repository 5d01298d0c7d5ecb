// Package token issues and verifies the signed session credential that gates
// every protected endpoint. Tokens are self-contained: validity is purely a
// function of the signature and the expiry claim, with no store lookup and no
// revocation list, so a deleted identity keeps a formally valid token until
// natural expiry.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/job-portal-api/internal/domain"
)

// Claims holds the session token payload: subject identity and role.
type Claims struct {
	Subject string      `json:"sub"`
	Role    domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Provider signs and verifies HS256 session tokens with a symmetric key.
type Provider struct {
	secret []byte
	ttl    time.Duration
}

func NewProvider(secret string, ttl time.Duration) (*Provider, error) {
	if secret == "" {
		return nil, errors.New("token: empty signing secret")
	}
	return &Provider{secret: []byte(secret), ttl: ttl}, nil
}

// Sign mints a token for the given subject and role, expiring at now + TTL.
func (p *Provider) Sign(subject string, role domain.Role, now time.Time) (string, error) {
	claims := Claims{
		Subject: subject,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

// Verify parses and checks the token. It distinguishes an expired token from
// every other failure mode: expiry maps to domain.ErrTokenExpired, anything
// else (bad signature, wrong algorithm, garbage input) to domain.ErrTokenMalformed.
func (p *Provider) Verify(tokenStr string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("verify token: %w", domain.ErrTokenExpired)
		}
		return nil, fmt.Errorf("verify token: %w", domain.ErrTokenMalformed)
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, fmt.Errorf("verify token: %w", domain.ErrTokenMalformed)
	}
	return claims, nil
}
