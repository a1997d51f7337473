// Package contacts manages an executive's address book.
package contacts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/contact"
	"github.com/secretaria-app/secretaria-backend/internal/domain"
)

type contactRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error)
	List(ctx context.Context, executiveID uuid.UUID, filter contact.ListFilter) ([]domain.Contact, error)
	Create(ctx context.Context, c *domain.Contact) error
	Update(ctx context.Context, c *domain.Contact) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListTypes(ctx context.Context) ([]domain.ContactType, error)
	CreateType(ctx context.Context, t *domain.ContactType) error
}

type accessChecker interface {
	CheckExecutive(ctx context.Context, executiveID uuid.UUID) error
}

// Service implements contact operations.
type Service struct {
	log      *slog.Logger
	contacts contactRepo
	access   accessChecker
}

// NewService creates a new contacts service.
func NewService(logger *slog.Logger, contacts contactRepo, access accessChecker) *Service {
	return &Service{
		log:      logger.With("service", "contacts"),
		contacts: contacts,
		access:   access,
	}
}

// ListInput narrows List results.
type ListInput struct {
	ExecutiveID   uuid.UUID
	ContactTypeID *uuid.UUID
	// Search matches name and company, case-insensitively.
	Search string
}

// Get returns one contact, subject to the caller's visibility.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	c, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("contacts.Get: %w", err)
	}
	if err := s.access.CheckExecutive(ctx, c.ExecutiveID); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns the executive's contacts ordered by name.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.Contact, error) {
	if input.ExecutiveID == uuid.Nil {
		return nil, domain.NewValidationError("executive_id", "required")
	}
	if err := s.access.CheckExecutive(ctx, input.ExecutiveID); err != nil {
		return nil, err
	}

	out, err := s.contacts.List(ctx, input.ExecutiveID, contact.ListFilter{
		ContactTypeID: input.ContactTypeID,
		Search:        input.Search,
	})
	if err != nil {
		return nil, fmt.Errorf("contacts.List: %w", err)
	}
	return out, nil
}

// Create adds a contact to the executive's address book.
func (s *Service) Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error) {
	if c.ExecutiveID == uuid.Nil {
		return nil, domain.NewValidationError("executive_id", "required")
	}
	if c.FullName == "" {
		return nil, domain.NewValidationError("full_name", "required")
	}
	if err := s.access.CheckExecutive(ctx, c.ExecutiveID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c.ID = uuid.New()
	c.CreatedAt = now
	c.UpdatedAt = now
	if err := s.contacts.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("contacts.Create: %w", err)
	}

	s.log.InfoContext(ctx, "contact created",
		slog.String("contact_id", c.ID.String()),
		slog.String("executive_id", c.ExecutiveID.String()))
	return c, nil
}

// Update replaces a contact's fields. The contact cannot move between
// executives.
func (s *Service) Update(ctx context.Context, c *domain.Contact) (*domain.Contact, error) {
	if c.ID == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}
	if c.FullName == "" {
		return nil, domain.NewValidationError("full_name", "required")
	}

	existing, err := s.contacts.GetByID(ctx, c.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("contacts.Update get: %w", err)
	}
	if err := s.access.CheckExecutive(ctx, existing.ExecutiveID); err != nil {
		return nil, err
	}

	c.ExecutiveID = existing.ExecutiveID
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	if err := s.contacts.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("contacts.Update: %w", err)
	}
	return c, nil
}

// Delete removes a contact.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("contacts.Delete get: %w", err)
	}
	if err := s.access.CheckExecutive(ctx, existing.ExecutiveID); err != nil {
		return err
	}

	if err := s.contacts.Delete(ctx, id); err != nil {
		return fmt.Errorf("contacts.Delete: %w", err)
	}
	return nil
}

// ListTypes returns all contact categories.
func (s *Service) ListTypes(ctx context.Context) ([]domain.ContactType, error) {
	types, err := s.contacts.ListTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("contacts.ListTypes: %w", err)
	}
	return types, nil
}

// CreateType creates a contact category.
func (s *Service) CreateType(ctx context.Context, name string) (*domain.ContactType, error) {
	if name == "" {
		return nil, domain.NewValidationError("name", "required")
	}

	t := &domain.ContactType{ID: uuid.New(), Name: name}
	if err := s.contacts.CreateType(ctx, t); err != nil {
		return nil, fmt.Errorf("contacts.CreateType: %w", err)
	}
	return t, nil
}
