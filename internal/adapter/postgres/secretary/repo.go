// Package secretary implements the Secretary repository using PostgreSQL,
// including the secretary↔executive assignment table.
package secretary

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/secretaria-app/secretaria-backend/internal/adapter/postgres"
	"github.com/secretaria-app/secretaria-backend/internal/domain"
)

// Repo provides secretary persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new secretary repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getByIDSQL = `
SELECT id, full_name, email, created_at, updated_at
FROM secretaries
WHERE id = $1`

const listSQL = `
SELECT id, full_name, email, created_at, updated_at
FROM secretaries
ORDER BY full_name`

const insertSQL = `
INSERT INTO secretaries (id, full_name, email, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)`

const updateSQL = `
UPDATE secretaries SET full_name = $2, email = $3, updated_at = $4
WHERE id = $1`

const deleteSQL = `DELETE FROM secretaries WHERE id = $1`

const assignmentsSQL = `
SELECT executive_id FROM secretary_executives
WHERE secretary_id = $1
ORDER BY assigned_at`

const assignSQL = `
INSERT INTO secretary_executives (secretary_id, executive_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING`

const unassignSQL = `
DELETE FROM secretary_executives
WHERE secretary_id = $1 AND executive_id = $2`

// GetByID returns a secretary with the executive assignments populated.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Secretary, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var s domain.Secretary
	err := querier.QueryRow(ctx, getByIDSQL, id).Scan(
		&s.ID, &s.FullName, &s.Email, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "secretary", id.String())
	}

	s.ExecutiveIDs, err = r.assignments(ctx, id)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// List returns every secretary with assignments populated.
func (r *Repo) List(ctx context.Context) ([]domain.Secretary, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listSQL)
	if err != nil {
		return nil, fmt.Errorf("list secretaries: %w", err)
	}
	defer rows.Close()

	var secretaries []domain.Secretary
	for rows.Next() {
		var s domain.Secretary
		if err := rows.Scan(&s.ID, &s.FullName, &s.Email, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("list secretaries: %w", err)
		}
		secretaries = append(secretaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list secretaries: %w", err)
	}

	for i := range secretaries {
		secretaries[i].ExecutiveIDs, err = r.assignments(ctx, secretaries[i].ID)
		if err != nil {
			return nil, err
		}
	}

	if secretaries == nil {
		secretaries = []domain.Secretary{}
	}

	return secretaries, nil
}

// Create inserts a new secretary.
func (r *Repo) Create(ctx context.Context, s *domain.Secretary) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, insertSQL, s.ID, s.FullName, s.Email, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return postgres.MapError(err, "secretary", s.ID.String())
	}

	return nil
}

// Update modifies a secretary's profile fields.
// Returns domain.ErrNotFound if the secretary does not exist.
func (r *Repo) Update(ctx context.Context, s *domain.Secretary) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateSQL, s.ID, s.FullName, s.Email, s.UpdatedAt)
	if err != nil {
		return postgres.MapError(err, "secretary", s.ID.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("secretary %s: %w", s.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a secretary. Assignments cascade.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "secretary", id.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("secretary %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Assign links a secretary to an executive. Idempotent.
// A missing secretary or executive results in domain.ErrNotFound.
func (r *Repo) Assign(ctx context.Context, secretaryID, executiveID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, assignSQL, secretaryID, executiveID); err != nil {
		return postgres.MapError(err, "secretary_assignment", secretaryID.String())
	}

	return nil
}

// Unassign removes the link between a secretary and an executive.
// Removing an absent link is not an error.
func (r *Repo) Unassign(ctx context.Context, secretaryID, executiveID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, unassignSQL, secretaryID, executiveID); err != nil {
		return postgres.MapError(err, "secretary_assignment", secretaryID.String())
	}

	return nil
}

// assignments returns the executive ids assigned to a secretary.
func (r *Repo) assignments(ctx context.Context, secretaryID uuid.UUID) ([]uuid.UUID, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, assignmentsSQL, secretaryID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}

	if ids == nil {
		ids = []uuid.UUID{}
	}

	return ids, nil
}
