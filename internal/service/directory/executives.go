package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/executive"
	"github.com/secretaria-app/secretaria-backend/internal/domain"
	"github.com/secretaria-app/secretaria-backend/internal/service/access"
)

// ListExecutivesInput narrows ListExecutives. A zero filter lists everyone.
type ListExecutivesInput struct {
	OrganizationID *uuid.UUID
	DepartmentID   *uuid.UUID
	Search         string
}

// GetExecutive returns one executive profile.
func (s *Service) GetExecutive(ctx context.Context, id uuid.UUID) (*domain.Executive, error) {
	e, err := s.executives.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("directory.GetExecutive: %w", err)
	}
	return e, nil
}

// ListExecutives returns executives matching the filter, ordered by name.
func (s *Service) ListExecutives(ctx context.Context, input ListExecutivesInput) ([]domain.Executive, error) {
	out, err := s.executives.List(ctx, executive.ListFilter{
		OrganizationID: input.OrganizationID,
		DepartmentID:   input.DepartmentID,
		Search:         input.Search,
	})
	if err != nil {
		return nil, fmt.Errorf("directory.ListExecutives: %w", err)
	}
	return out, nil
}

// CreateExecutive creates an executive profile. Only FullName is mandatory;
// the rest of the profile is free-form.
func (s *Service) CreateExecutive(ctx context.Context, e *domain.Executive) (*domain.Executive, error) {
	if err := access.RequireRole(ctx, domain.RoleAdmin, domain.RoleMaster); err != nil {
		return nil, err
	}
	if e.FullName == "" {
		return nil, domain.NewValidationError("full_name", "required")
	}

	now := time.Now().UTC()
	e.ID = uuid.New()
	e.CreatedAt = now
	e.UpdatedAt = now
	if err := s.executives.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("directory.CreateExecutive: %w", err)
	}

	s.log.InfoContext(ctx, "executive created", slog.String("executive_id", e.ID.String()))
	return e, nil
}

// UpdateExecutive replaces an executive profile.
func (s *Service) UpdateExecutive(ctx context.Context, e *domain.Executive) (*domain.Executive, error) {
	if err := access.RequireRole(ctx, domain.RoleAdmin, domain.RoleMaster); err != nil {
		return nil, err
	}
	if e.ID == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}
	if e.FullName == "" {
		return nil, domain.NewValidationError("full_name", "required")
	}

	e.UpdatedAt = time.Now().UTC()
	if err := s.executives.Update(ctx, e); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("directory.UpdateExecutive: %w", err)
	}
	return e, nil
}

// DeleteExecutive removes an executive and, through the schema's cascades,
// all of its agenda, tasks, contacts and expenses.
func (s *Service) DeleteExecutive(ctx context.Context, id uuid.UUID) error {
	if err := access.RequireRole(ctx, domain.RoleAdmin, domain.RoleMaster); err != nil {
		return err
	}
	if err := s.executives.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("directory.DeleteExecutive: %w", err)
	}

	s.log.InfoContext(ctx, "executive deleted", slog.String("executive_id", id.String()))
	return nil
}
