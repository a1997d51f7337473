// Package expenses tracks payables and receivables per executive. Amounts
// are stored as integer cents.
package expenses

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/expense"
	"github.com/secretaria-app/secretaria-backend/internal/domain"
)

type expenseRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Expense, error)
	List(ctx context.Context, executiveID uuid.UUID, filter expense.ListFilter) ([]domain.Expense, error)
	Summarize(ctx context.Context, executiveID uuid.UUID, from, to time.Time) (expense.Summary, error)
	Create(ctx context.Context, e *domain.Expense) error
	Update(ctx context.Context, e *domain.Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListCategories(ctx context.Context) ([]domain.ExpenseCategory, error)
	CreateCategory(ctx context.Context, c *domain.ExpenseCategory) error
}

type accessChecker interface {
	CheckExecutive(ctx context.Context, executiveID uuid.UUID) error
}

// Service implements expense operations.
type Service struct {
	log      *slog.Logger
	expenses expenseRepo
	access   accessChecker
}

// NewService creates a new expenses service.
func NewService(logger *slog.Logger, expenses expenseRepo, access accessChecker) *Service {
	return &Service{
		log:      logger.With("service", "expenses"),
		expenses: expenses,
		access:   access,
	}
}

// ListInput narrows List results.
type ListInput struct {
	ExecutiveID uuid.UUID
	From        time.Time
	To          time.Time
	Type        domain.ExpenseType
	Status      domain.ExpenseStatus
	CategoryID  *uuid.UUID
}

// Validate validates the list input.
func (i ListInput) Validate() error {
	var errs []domain.FieldError

	if i.ExecutiveID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "executive_id", Message: "required"})
	}
	if !i.From.IsZero() && !i.To.IsZero() && i.To.Before(i.From) {
		errs = append(errs, domain.FieldError{Field: "to", Message: "before from"})
	}
	if i.Type != "" && !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "must be PAYABLE or RECEIVABLE"})
	}
	if i.Status != "" && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateExpense(e *domain.Expense) error {
	var errs []domain.FieldError

	if e.ExecutiveID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "executive_id", Message: "required"})
	}
	if e.Description == "" {
		errs = append(errs, domain.FieldError{Field: "description", Message: "required"})
	}
	if e.AmountCents < 0 {
		errs = append(errs, domain.FieldError{Field: "amount_cents", Message: "negative"})
	}
	if e.ExpenseDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "expense_date", Message: "required"})
	}
	if !e.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "must be PAYABLE or RECEIVABLE"})
	}
	if !e.EntityType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "entity_type", Message: "must be PERSON or COMPANY"})
	}
	if e.Status != "" && !e.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Get returns one expense, subject to the caller's visibility.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Expense, error) {
	e, err := s.expenses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("expenses.Get: %w", err)
	}
	if err := s.access.CheckExecutive(ctx, e.ExecutiveID); err != nil {
		return nil, err
	}
	return e, nil
}

// List returns the executive's expenses in the given range, newest first.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.Expense, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := s.access.CheckExecutive(ctx, input.ExecutiveID); err != nil {
		return nil, err
	}

	out, err := s.expenses.List(ctx, input.ExecutiveID, expense.ListFilter{
		From:       input.From,
		To:         input.To,
		Type:       input.Type,
		Status:     input.Status,
		CategoryID: input.CategoryID,
	})
	if err != nil {
		return nil, fmt.Errorf("expenses.List: %w", err)
	}
	return out, nil
}

// Summarize totals the executive's payables and receivables in the range.
func (s *Service) Summarize(ctx context.Context, executiveID uuid.UUID, from, to time.Time) (expense.Summary, error) {
	if executiveID == uuid.Nil {
		return expense.Summary{}, domain.NewValidationError("executive_id", "required")
	}
	if err := s.access.CheckExecutive(ctx, executiveID); err != nil {
		return expense.Summary{}, err
	}

	sum, err := s.expenses.Summarize(ctx, executiveID, from, to)
	if err != nil {
		return expense.Summary{}, fmt.Errorf("expenses.Summarize: %w", err)
	}
	return sum, nil
}

// Create records an expense. An empty status defaults to PENDING.
func (s *Service) Create(ctx context.Context, e *domain.Expense) (*domain.Expense, error) {
	if e.Status == "" {
		e.Status = domain.ExpenseStatusPending
	}
	if err := validateExpense(e); err != nil {
		return nil, err
	}
	if err := s.access.CheckExecutive(ctx, e.ExecutiveID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	e.ID = uuid.New()
	e.CreatedAt = now
	e.UpdatedAt = now
	if err := s.expenses.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("expenses.Create: %w", err)
	}

	s.log.InfoContext(ctx, "expense created",
		slog.String("expense_id", e.ID.String()),
		slog.String("executive_id", e.ExecutiveID.String()),
		slog.Int64("amount_cents", e.AmountCents))
	return e, nil
}

// Update replaces an expense's fields. The expense cannot move between
// executives.
func (s *Service) Update(ctx context.Context, e *domain.Expense) (*domain.Expense, error) {
	if e.ID == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	existing, err := s.expenses.GetByID(ctx, e.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("expenses.Update get: %w", err)
	}
	if err := s.access.CheckExecutive(ctx, existing.ExecutiveID); err != nil {
		return nil, err
	}

	e.ExecutiveID = existing.ExecutiveID
	if err := validateExpense(e); err != nil {
		return nil, err
	}

	e.CreatedAt = existing.CreatedAt
	e.UpdatedAt = time.Now().UTC()
	if err := s.expenses.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("expenses.Update: %w", err)
	}
	return e, nil
}

// Delete removes an expense.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.expenses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("expenses.Delete get: %w", err)
	}
	if err := s.access.CheckExecutive(ctx, existing.ExecutiveID); err != nil {
		return err
	}

	if err := s.expenses.Delete(ctx, id); err != nil {
		return fmt.Errorf("expenses.Delete: %w", err)
	}
	return nil
}

// ListCategories returns all expense categories.
func (s *Service) ListCategories(ctx context.Context) ([]domain.ExpenseCategory, error) {
	out, err := s.expenses.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("expenses.ListCategories: %w", err)
	}
	return out, nil
}

// CreateCategory creates an expense category.
func (s *Service) CreateCategory(ctx context.Context, name string) (*domain.ExpenseCategory, error) {
	if name == "" {
		return nil, domain.NewValidationError("name", "required")
	}

	c := &domain.ExpenseCategory{ID: uuid.New(), Name: name}
	if err := s.expenses.CreateCategory(ctx, c); err != nil {
		return nil, fmt.Errorf("expenses.CreateCategory: %w", err)
	}
	return c, nil
}
