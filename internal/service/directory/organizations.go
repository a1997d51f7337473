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

// GetOrganization returns one organization.
func (s *Service) GetOrganization(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	o, err := s.organizations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("directory.GetOrganization: %w", err)
	}
	return o, nil
}

// ListOrganizations returns all organizations ordered by name.
func (s *Service) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	out, err := s.organizations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("directory.ListOrganizations: %w", err)
	}
	return out, nil
}

// CreateOrganization creates an organization. Only masters manage the tenant
// list itself.
func (s *Service) CreateOrganization(ctx context.Context, name string) (*domain.Organization, error) {
	if err := access.RequireRole(ctx, domain.RoleMaster); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, domain.NewValidationError("name", "required")
	}

	now := time.Now().UTC()
	o := &domain.Organization{ID: uuid.New(), Name: name, CreatedAt: now, UpdatedAt: now}
	if err := s.organizations.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("directory.CreateOrganization: %w", err)
	}

	s.log.InfoContext(ctx, "organization created", slog.String("organization_id", o.ID.String()))
	return o, nil
}

// UpdateOrganization renames an organization.
func (s *Service) UpdateOrganization(ctx context.Context, id uuid.UUID, name string) (*domain.Organization, error) {
	if err := access.RequireRole(ctx, domain.RoleMaster); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, domain.NewValidationError("name", "required")
	}

	o := &domain.Organization{ID: id, Name: name, UpdatedAt: time.Now().UTC()}
	if err := s.organizations.Update(ctx, o); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("directory.UpdateOrganization: %w", err)
	}
	return o, nil
}

// DeleteOrganization removes an organization and its departments.
func (s *Service) DeleteOrganization(ctx context.Context, id uuid.UUID) error {
	if err := access.RequireRole(ctx, domain.RoleMaster); err != nil {
		return err
	}
	if err := s.organizations.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("directory.DeleteOrganization: %w", err)
	}

	s.log.InfoContext(ctx, "organization deleted", slog.String("organization_id", id.String()))
	return nil
}

// ListDepartments returns an organization's departments ordered by name.
func (s *Service) ListDepartments(ctx context.Context, organizationID uuid.UUID) ([]domain.Department, error) {
	out, err := s.organizations.ListDepartments(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("directory.ListDepartments: %w", err)
	}
	return out, nil
}

// CreateDepartment creates a department within an organization.
func (s *Service) CreateDepartment(ctx context.Context, organizationID uuid.UUID, name string) (*domain.Department, error) {
	if err := access.RequireRole(ctx, domain.RoleAdmin, domain.RoleMaster); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, domain.NewValidationError("name", "required")
	}
	if _, err := s.organizations.GetByID(ctx, organizationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("directory.CreateDepartment get organization: %w", err)
	}

	now := time.Now().UTC()
	d := &domain.Department{
		ID:             uuid.New(),
		Name:           name,
		OrganizationID: organizationID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.organizations.CreateDepartment(ctx, d); err != nil {
		return nil, fmt.Errorf("directory.CreateDepartment: %w", err)
	}
	return d, nil
}

// UpdateDepartment renames a department.
func (s *Service) UpdateDepartment(ctx context.Context, id uuid.UUID, name string) (*domain.Department, error) {
	if err := access.RequireRole(ctx, domain.RoleAdmin, domain.RoleMaster); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, domain.NewValidationError("name", "required")
	}

	d, err := s.organizations.GetDepartment(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("directory.UpdateDepartment get: %w", err)
	}

	d.Name = name
	d.UpdatedAt = time.Now().UTC()
	if err := s.organizations.UpdateDepartment(ctx, d); err != nil {
		return nil, fmt.Errorf("directory.UpdateDepartment: %w", err)
	}
	return d, nil
}

// DeleteDepartment removes a department.
func (s *Service) DeleteDepartment(ctx context.Context, id uuid.UUID) error {
	if err := access.RequireRole(ctx, domain.RoleAdmin, domain.RoleMaster); err != nil {
		return err
	}
	if err := s.organizations.DeleteDepartment(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("directory.DeleteDepartment: %w", err)
	}
	return nil
}
