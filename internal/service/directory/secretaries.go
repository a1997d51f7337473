package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/secretaria-app/secretaria-backend/internal/domain"
	"github.com/secretaria-app/secretaria-backend/internal/service/access"
)

// GetSecretary returns one secretary with its executive assignments.
func (s *Service) GetSecretary(ctx context.Context, id uuid.UUID) (*domain.Secretary, error) {
	sec, err := s.secretaries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("directory.GetSecretary: %w", err)
	}
	return sec, nil
}

// ListSecretaries returns all secretaries ordered by name.
func (s *Service) ListSecretaries(ctx context.Context) ([]domain.Secretary, error) {
	out, err := s.secretaries.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("directory.ListSecretaries: %w", err)
	}
	return out, nil
}

// CreateSecretary creates a secretary.
func (s *Service) CreateSecretary(ctx context.Context, sec *domain.Secretary) (*domain.Secretary, error) {
	if err := access.RequireRole(ctx, domain.RoleAdmin, domain.RoleMaster); err != nil {
		return nil, err
	}
	if sec.FullName == "" {
		return nil, domain.NewValidationError("full_name", "required")
	}

	now := time.Now().UTC()
	sec.ID = uuid.New()
	sec.CreatedAt = now
	sec.UpdatedAt = now
	if err := s.secretaries.Create(ctx, sec); err != nil {
		return nil, fmt.Errorf("directory.CreateSecretary: %w", err)
	}

	s.log.InfoContext(ctx, "secretary created", slog.String("secretary_id", sec.ID.String()))
	return sec, nil
}

// UpdateSecretary updates a secretary's profile fields. Assignments are
// managed through AssignExecutive / UnassignExecutive.
func (s *Service) UpdateSecretary(ctx context.Context, sec *domain.Secretary) (*domain.Secretary, error) {
	if err := access.RequireRole(ctx, domain.RoleAdmin, domain.RoleMaster); err != nil {
		return nil, err
	}
	if sec.ID == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}
	if sec.FullName == "" {
		return nil, domain.NewValidationError("full_name", "required")
	}

	sec.UpdatedAt = time.Now().UTC()
	if err := s.secretaries.Update(ctx, sec); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("directory.UpdateSecretary: %w", err)
	}
	return sec, nil
}

// DeleteSecretary removes a secretary and its assignments.
func (s *Service) DeleteSecretary(ctx context.Context, id uuid.UUID) error {
	if err := access.RequireRole(ctx, domain.RoleAdmin, domain.RoleMaster); err != nil {
		return err
	}
	if err := s.secretaries.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("directory.DeleteSecretary: %w", err)
	}

	s.log.InfoContext(ctx, "secretary deleted", slog.String("secretary_id", id.String()))
	return nil
}

// AssignExecutive links a secretary to an executive. Assigning twice is a
// no-op.
func (s *Service) AssignExecutive(ctx context.Context, secretaryID, executiveID uuid.UUID) error {
	if err := access.RequireRole(ctx, domain.RoleAdmin, domain.RoleMaster); err != nil {
		return err
	}

	if _, err := s.secretaries.GetByID(ctx, secretaryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("directory.AssignExecutive get secretary: %w", err)
	}
	if _, err := s.executives.GetByID(ctx, executiveID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("directory.AssignExecutive get executive: %w", err)
	}

	if err := s.secretaries.Assign(ctx, secretaryID, executiveID); err != nil {
		return fmt.Errorf("directory.AssignExecutive: %w", err)
	}

	s.log.InfoContext(ctx, "secretary assigned",
		slog.String("secretary_id", secretaryID.String()),
		slog.String("executive_id", executiveID.String()))
	return nil
}

// UnassignExecutive removes a secretary's link to an executive.
func (s *Service) UnassignExecutive(ctx context.Context, secretaryID, executiveID uuid.UUID) error {
	if err := access.RequireRole(ctx, domain.RoleAdmin, domain.RoleMaster); err != nil {
		return err
	}
	if err := s.secretaries.Unassign(ctx, secretaryID, executiveID); err != nil {
		return fmt.Errorf("directory.UnassignExecutive: %w", err)
	}

	s.log.InfoContext(ctx, "secretary unassigned",
		slog.String("secretary_id", secretaryID.String()),
		slog.String("executive_id", executiveID.String()))
	return nil
}
