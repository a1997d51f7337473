// Package directory manages the back-office people registry: organizations
// and their departments, executives, secretaries, and the secretary to
// executive assignments that drive agenda visibility.
package directory

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/executive"
	"github.com/secretaria-app/secretaria-backend/internal/domain"
)

type executiveRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Executive, error)
	List(ctx context.Context, filter executive.ListFilter) ([]domain.Executive, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Executive, error)
	Create(ctx context.Context, e *domain.Executive) error
	Update(ctx context.Context, e *domain.Executive) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type secretaryRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Secretary, error)
	List(ctx context.Context) ([]domain.Secretary, error)
	Create(ctx context.Context, s *domain.Secretary) error
	Update(ctx context.Context, s *domain.Secretary) error
	Delete(ctx context.Context, id uuid.UUID) error
	Assign(ctx context.Context, secretaryID, executiveID uuid.UUID) error
	Unassign(ctx context.Context, secretaryID, executiveID uuid.UUID) error
}

type organizationRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error)
	List(ctx context.Context) ([]domain.Organization, error)
	Create(ctx context.Context, o *domain.Organization) error
	Update(ctx context.Context, o *domain.Organization) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetDepartment(ctx context.Context, id uuid.UUID) (*domain.Department, error)
	ListDepartments(ctx context.Context, organizationID uuid.UUID) ([]domain.Department, error)
	CreateDepartment(ctx context.Context, d *domain.Department) error
	UpdateDepartment(ctx context.Context, d *domain.Department) error
	DeleteDepartment(ctx context.Context, id uuid.UUID) error
}

// Service implements directory operations. Reads are open to any
// authenticated user; writes require the admin or master role.
type Service struct {
	log           *slog.Logger
	executives    executiveRepo
	secretaries   secretaryRepo
	organizations organizationRepo
}

// NewService creates a new directory service.
func NewService(
	logger *slog.Logger,
	executives executiveRepo,
	secretaries secretaryRepo,
	organizations organizationRepo,
) *Service {
	return &Service{
		log:           logger.With("service", "directory"),
		executives:    executives,
		secretaries:   secretaries,
		organizations: organizations,
	}
}
