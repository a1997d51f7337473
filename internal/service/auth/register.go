package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/secretaria-app/secretaria-backend/internal/domain"
	"github.com/secretaria-app/secretaria-backend/internal/service/access"
)

// Register creates a new user account. Only admins and masters may create
// accounts, and creating an admin or master account requires the master
// role. Returns ErrAlreadyExists if the email is already taken.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.FullName = strings.TrimSpace(input.FullName)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if err := access.RequireRole(ctx, domain.RoleAdmin, domain.RoleMaster); err != nil {
		return nil, err
	}
	if input.Role == domain.RoleAdmin || input.Role == domain.RoleMaster {
		if err := access.RequireRole(ctx, domain.RoleMaster); err != nil {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("auth.Register hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:             uuid.New(),
		Email:          input.Email,
		FullName:       input.FullName,
		PasswordHash:   string(hash),
		Role:           input.Role,
		OrganizationID: input.OrganizationID,
		ExecutiveID:    input.ExecutiveID,
		SecretaryID:    input.SecretaryID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// Email uniqueness is enforced by the DB constraint.
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("auth.Register: %w", domain.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	s.log.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID.String()),
		slog.String("role", user.Role.String()))

	return user, nil
}
