// Package admin implements the administrative user-management operations.
package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/job-portal-api/internal/domain"
)

// IdentityStore is the identity repository surface the service needs.
type IdentityStore interface {
	Get(ctx context.Context, role domain.Role, id string) (*domain.Identity, error)
	List(ctx context.Context, role domain.Role) ([]domain.Identity, error)
	Delete(ctx context.Context, role domain.Role, id string) error
}

// ApplicationStore resolves the resume blobs that cascade away with a user.
type ApplicationStore interface {
	ListResumeKeysByIdentity(ctx context.Context, role domain.Role, id string) ([]string, error)
}

// ResumeStore removes resume blobs from object storage.
type ResumeStore interface {
	Delete(ctx context.Context, key string) error
}

type Service interface {
	ListUsers(ctx context.Context, callerRole, userType domain.Role) ([]domain.Identity, error)
	DeleteUser(ctx context.Context, callerRole, userType domain.Role, id string) error
}

type service struct {
	identities   IdentityStore
	applications ApplicationStore
	resumes      ResumeStore
}

func NewService(identities IdentityStore, applications ApplicationStore, resumes ResumeStore) Service {
	return &service{identities: identities, applications: applications, resumes: resumes}
}

func requireAdmin(role domain.Role) error {
	if role != domain.RoleAdmin {
		return fmt.Errorf("requires admin role: %w", domain.ErrAccessDenied)
	}
	return nil
}

func (s *service) ListUsers(ctx context.Context, callerRole, userType domain.Role) ([]domain.Identity, error) {
	if err := requireAdmin(callerRole); err != nil {
		return nil, err
	}
	return s.identities.List(ctx, userType)
}

// DeleteUser removes an identity. Owned jobs and applications cascade at the
// store level; the resume blobs of those applications are removed here once
// the identity deletion has committed.
func (s *service) DeleteUser(ctx context.Context, callerRole, userType domain.Role, id string) error {
	if err := requireAdmin(callerRole); err != nil {
		return err
	}
	if _, err := s.identities.Get(ctx, userType, id); err != nil {
		return err
	}

	// Keys must be read before the rows cascade away.
	keys, err := s.applications.ListResumeKeysByIdentity(ctx, userType, id)
	if err != nil {
		return err
	}
	if err := s.identities.Delete(ctx, userType, id); err != nil {
		return err
	}
	for _, key := range keys {
		if err := s.resumes.Delete(ctx, key); err != nil {
			slog.Warn("failed to remove resume blob after user deletion", "key", key, "err", err)
		}
	}
	return nil
}
