// Package expense implements the Expense repository using PostgreSQL.
package expense

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/secretaria-app/secretaria-backend/internal/adapter/postgres"
	"github.com/secretaria-app/secretaria-backend/internal/domain"
)

// ListFilter narrows List results. Zero values mean "no constraint".
type ListFilter struct {
	From       time.Time
	To         time.Time
	Type       domain.ExpenseType
	Status     domain.ExpenseStatus
	CategoryID *uuid.UUID
}

// Summary aggregates one executive's expenses by type.
type Summary struct {
	PayableCents    int64
	ReceivableCents int64
	PendingCount    int
}

// Repo provides expense persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new expense repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const expenseColumns = `id, description, amount_cents, expense_date, type,
       entity_type, category_id, status, executive_id, created_at, updated_at`

const getByIDSQL = `
SELECT ` + expenseColumns + `
FROM expenses
WHERE id = $1`

const insertSQL = `
INSERT INTO expenses (id, description, amount_cents, expense_date, type,
                      entity_type, category_id, status, executive_id,
                      created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

const updateSQL = `
UPDATE expenses
SET description = $2, amount_cents = $3, expense_date = $4, type = $5,
    entity_type = $6, category_id = $7, status = $8, updated_at = $9
WHERE id = $1`

const deleteSQL = `DELETE FROM expenses WHERE id = $1`

const summarySQL = `
SELECT
  COALESCE(SUM(amount_cents) FILTER (WHERE type = 'PAYABLE'), 0),
  COALESCE(SUM(amount_cents) FILTER (WHERE type = 'RECEIVABLE'), 0),
  COUNT(*) FILTER (WHERE status = 'PENDING')
FROM expenses
WHERE executive_id = $1 AND expense_date >= $2 AND expense_date < $3`

// GetByID returns an expense by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Expense, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	e, err := scanExpense(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "expense", id.String())
	}

	return &e, nil
}

// List returns one executive's expenses ordered by date descending,
// optionally filtered by date range, type, status and category.
func (r *Repo) List(ctx context.Context, executiveID uuid.UUID, filter ListFilter) ([]domain.Expense, error) {
	b := psql.Select("id", "description", "amount_cents", "expense_date", "type",
		"entity_type", "category_id", "status", "executive_id", "created_at", "updated_at").
		From("expenses").
		Where(sq.Eq{"executive_id": executiveID}).
		OrderBy("expense_date DESC", "created_at DESC")

	if !filter.From.IsZero() {
		b = b.Where(sq.GtOrEq{"expense_date": filter.From})
	}
	if !filter.To.IsZero() {
		b = b.Where(sq.Lt{"expense_date": filter.To})
	}
	if filter.Type != "" {
		b = b.Where(sq.Eq{"type": string(filter.Type)})
	}
	if filter.Status != "" {
		b = b.Where(sq.Eq{"status": string(filter.Status)})
	}
	if filter.CategoryID != nil {
		b = b.Where(sq.Eq{"category_id": *filter.CategoryID})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list expenses query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("list expenses: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	if expenses == nil {
		expenses = []domain.Expense{}
	}

	return expenses, nil
}

// Summarize aggregates expenses for one executive over a half-open date range.
func (r *Repo) Summarize(ctx context.Context, executiveID uuid.UUID, from, to time.Time) (Summary, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var s Summary
	err := querier.QueryRow(ctx, summarySQL, executiveID, from, to).Scan(
		&s.PayableCents, &s.ReceivableCents, &s.PendingCount,
	)
	if err != nil {
		return Summary{}, fmt.Errorf("summarize expenses: %w", err)
	}

	return s, nil
}

// Create inserts a new expense.
func (r *Repo) Create(ctx context.Context, e *domain.Expense) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, insertSQL,
		e.ID, e.Description, e.AmountCents, e.ExpenseDate, string(e.Type),
		string(e.EntityType), e.CategoryID, string(e.Status), e.ExecutiveID,
		e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "expense", e.ID.String())
	}

	return nil
}

// Update modifies an expense's fields.
// Returns domain.ErrNotFound if the expense does not exist.
func (r *Repo) Update(ctx context.Context, e *domain.Expense) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateSQL,
		e.ID, e.Description, e.AmountCents, e.ExpenseDate, string(e.Type),
		string(e.EntityType), e.CategoryID, string(e.Status), e.UpdatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "expense", e.ID.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("expense %s: %w", e.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes an expense by id.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "expense", id.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("expense %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// ExpenseCategory operations
// ---------------------------------------------------------------------------

// ListCategories returns all expense categories ordered by name.
func (r *Repo) ListCategories(ctx context.Context) ([]domain.ExpenseCategory, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, `SELECT id, name FROM expense_categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list expense categories: %w", err)
	}
	defer rows.Close()

	categories, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.ExpenseCategory])
	if err != nil {
		return nil, fmt.Errorf("list expense categories: %w", err)
	}

	if categories == nil {
		categories = []domain.ExpenseCategory{}
	}

	return categories, nil
}

// CreateCategory inserts a new expense category.
func (r *Repo) CreateCategory(ctx context.Context, c *domain.ExpenseCategory) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, `INSERT INTO expense_categories (id, name) VALUES ($1, $2)`, c.ID, c.Name)
	if err != nil {
		return postgres.MapError(err, "expense_category", c.ID.String())
	}

	return nil
}

func scanExpense(row pgx.Row) (domain.Expense, error) {
	var (
		e          domain.Expense
		typ        string
		entityType string
		status     string
	)

	err := row.Scan(&e.ID, &e.Description, &e.AmountCents, &e.ExpenseDate, &typ,
		&entityType, &e.CategoryID, &status, &e.ExecutiveID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return domain.Expense{}, err
	}

	e.Type = domain.ExpenseType(typ)
	e.EntityType = domain.ExpenseEntityType(entityType)
	e.Status = domain.ExpenseStatus(status)

	return e, nil
}
