// Package organization implements the Organization and Department
// repositories using PostgreSQL.
package organization

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/secretaria-app/secretaria-backend/internal/adapter/postgres"
	"github.com/secretaria-app/secretaria-backend/internal/domain"
)

// Repo provides organization and department persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new organization repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Organization operations
// ---------------------------------------------------------------------------

const getOrgSQL = `
SELECT id, name, created_at, updated_at FROM organizations WHERE id = $1`

const listOrgsSQL = `
SELECT id, name, created_at, updated_at FROM organizations ORDER BY name`

const insertOrgSQL = `
INSERT INTO organizations (id, name, created_at, updated_at)
VALUES ($1, $2, $3, $4)`

const updateOrgSQL = `
UPDATE organizations SET name = $2, updated_at = $3 WHERE id = $1`

const deleteOrgSQL = `DELETE FROM organizations WHERE id = $1`

// GetByID returns an organization by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var o domain.Organization
	err := querier.QueryRow(ctx, getOrgSQL, id).Scan(&o.ID, &o.Name, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "organization", id.String())
	}

	return &o, nil
}

// List returns every organization ordered by name.
func (r *Repo) List(ctx context.Context) ([]domain.Organization, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listOrgsSQL)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	defer rows.Close()

	var orgs []domain.Organization
	for rows.Next() {
		var o domain.Organization
		if err := rows.Scan(&o.ID, &o.Name, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("list organizations: %w", err)
		}
		orgs = append(orgs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}

	if orgs == nil {
		orgs = []domain.Organization{}
	}

	return orgs, nil
}

// Create inserts a new organization.
func (r *Repo) Create(ctx context.Context, o *domain.Organization) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, insertOrgSQL, o.ID, o.Name, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return postgres.MapError(err, "organization", o.ID.String())
	}

	return nil
}

// Update renames an organization.
// Returns domain.ErrNotFound if the organization does not exist.
func (r *Repo) Update(ctx context.Context, o *domain.Organization) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateOrgSQL, o.ID, o.Name, o.UpdatedAt)
	if err != nil {
		return postgres.MapError(err, "organization", o.ID.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("organization %s: %w", o.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes an organization. Departments cascade.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteOrgSQL, id)
	if err != nil {
		return postgres.MapError(err, "organization", id.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("organization %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Department operations
// ---------------------------------------------------------------------------

const getDeptSQL = `
SELECT id, name, organization_id, created_at, updated_at
FROM departments WHERE id = $1`

const listDeptsSQL = `
SELECT id, name, organization_id, created_at, updated_at
FROM departments
WHERE organization_id = $1
ORDER BY name`

const insertDeptSQL = `
INSERT INTO departments (id, name, organization_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)`

const updateDeptSQL = `
UPDATE departments SET name = $2, updated_at = $3 WHERE id = $1`

const deleteDeptSQL = `DELETE FROM departments WHERE id = $1`

// GetDepartment returns a department by primary key.
func (r *Repo) GetDepartment(ctx context.Context, id uuid.UUID) (*domain.Department, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var d domain.Department
	err := querier.QueryRow(ctx, getDeptSQL, id).Scan(
		&d.ID, &d.Name, &d.OrganizationID, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "department", id.String())
	}

	return &d, nil
}

// ListDepartments returns an organization's departments ordered by name.
func (r *Repo) ListDepartments(ctx context.Context, organizationID uuid.UUID) ([]domain.Department, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listDeptsSQL, organizationID)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()

	var depts []domain.Department
	for rows.Next() {
		var d domain.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.OrganizationID, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("list departments: %w", err)
		}
		depts = append(depts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}

	if depts == nil {
		depts = []domain.Department{}
	}

	return depts, nil
}

// CreateDepartment inserts a new department.
// A missing organization results in domain.ErrNotFound.
func (r *Repo) CreateDepartment(ctx context.Context, d *domain.Department) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, insertDeptSQL, d.ID, d.Name, d.OrganizationID, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return postgres.MapError(err, "department", d.ID.String())
	}

	return nil
}

// UpdateDepartment renames a department.
// Returns domain.ErrNotFound if the department does not exist.
func (r *Repo) UpdateDepartment(ctx context.Context, d *domain.Department) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateDeptSQL, d.ID, d.Name, d.UpdatedAt)
	if err != nil {
		return postgres.MapError(err, "department", d.ID.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("department %s: %w", d.ID, domain.ErrNotFound)
	}

	return nil
}

// DeleteDepartment removes a department.
func (r *Repo) DeleteDepartment(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteDeptSQL, id)
	if err != nil {
		return postgres.MapError(err, "department", id.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("department %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
