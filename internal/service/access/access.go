// Package access centralizes the per-executive visibility rules shared by
// the agenda, tasks, contacts and expenses services: a master sees every
// executive, an admin those of its organization, a secretary its assigned
// executives, and an executive only itself.
package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/secretaria-app/secretaria-backend/internal/domain"
	"github.com/secretaria-app/secretaria-backend/pkg/ctxutil"
)

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type secretaryRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Secretary, error)
}

type executiveRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Executive, error)
}

// Checker answers "may the authenticated user touch this executive's data".
type Checker struct {
	users       userRepo
	secretaries secretaryRepo
	executives  executiveRepo
}

func NewChecker(users userRepo, secretaries secretaryRepo, executives executiveRepo) *Checker {
	return &Checker{users: users, secretaries: secretaries, executives: executives}
}

// CheckExecutive returns nil when the user in ctx may read and modify data
// belonging to executiveID. It returns domain.ErrUnauthorized when ctx
// carries no authenticated user and domain.ErrForbidden when the user's role
// does not reach the executive.
func (c *Checker) CheckExecutive(ctx context.Context, executiveID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	user, err := c.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrUnauthorized
		}
		return fmt.Errorf("access.CheckExecutive get user: %w", err)
	}

	switch user.Role {
	case domain.RoleMaster:
		return nil

	case domain.RoleAdmin:
		if user.OrganizationID == nil {
			return domain.ErrForbidden
		}
		exec, err := c.executives.GetByID(ctx, executiveID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("access.CheckExecutive get executive: %w", err)
		}
		if exec.OrganizationID == nil || *exec.OrganizationID != *user.OrganizationID {
			return domain.ErrForbidden
		}
		return nil

	case domain.RoleSecretary:
		if user.SecretaryID == nil {
			return domain.ErrForbidden
		}
		secretary, err := c.secretaries.GetByID(ctx, *user.SecretaryID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrForbidden
			}
			return fmt.Errorf("access.CheckExecutive get secretary: %w", err)
		}
		if !secretary.IsAssignedTo(executiveID) {
			return domain.ErrForbidden
		}
		return nil

	case domain.RoleExecutive:
		if user.ExecutiveID == nil || *user.ExecutiveID != executiveID {
			return domain.ErrForbidden
		}
		return nil

	default:
		return domain.ErrForbidden
	}
}

// RequireRole returns nil when the user in ctx carries one of the given
// roles. The role is read from the request context, not reloaded from the
// database; token lifetime bounds the staleness.
func RequireRole(ctx context.Context, roles ...domain.Role) error {
	role, ok := ctxutil.RoleFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	for _, r := range roles {
		if domain.Role(role) == r {
			return nil
		}
	}
	return domain.ErrForbidden
}
