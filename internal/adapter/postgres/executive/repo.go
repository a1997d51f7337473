// Package executive implements the Executive repository using PostgreSQL.
package executive

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/secretaria-app/secretaria-backend/internal/adapter/postgres"
	"github.com/secretaria-app/secretaria-backend/internal/domain"
)

// ListFilter narrows List results. Zero values mean "no constraint".
type ListFilter struct {
	OrganizationID *uuid.UUID
	DepartmentID   *uuid.UUID
	Search         string
}

// Repo provides executive persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new executive repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var executiveColumns = []string{
	"id", "full_name",
	"cpf", "rg", "birth_date", "nationality", "place_of_birth", "civil_status",
	"work_email", "work_phone", "extension", "personal_email", "personal_phone", "address",
	"job_title", "organization_id", "department_id", "cost_center", "employee_id",
	"reports_to_executive_id", "hire_date", "work_location",
	"photo_url", "bio", "education", "languages",
	"emergency_contact_name", "emergency_contact_phone", "emergency_contact_relation",
	"created_at", "updated_at",
}

// GetByID returns an executive by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Executive, error) {
	query, args, err := psql.Select(executiveColumns...).
		From("executives").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get executive query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	e, err := scanExecutive(querier.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "executive", id.String())
	}

	return &e, nil
}

// List returns executives ordered by name, optionally filtered by
// organization, department and a case-insensitive name search.
func (r *Repo) List(ctx context.Context, filter ListFilter) ([]domain.Executive, error) {
	b := psql.Select(executiveColumns...).
		From("executives").
		OrderBy("full_name")

	if filter.OrganizationID != nil {
		b = b.Where(sq.Eq{"organization_id": *filter.OrganizationID})
	}
	if filter.DepartmentID != nil {
		b = b.Where(sq.Eq{"department_id": *filter.DepartmentID})
	}
	if filter.Search != "" {
		b = b.Where(sq.ILike{"full_name": "%" + filter.Search + "%"})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list executives query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list executives: %w", err)
	}
	defer rows.Close()

	var executives []domain.Executive
	for rows.Next() {
		e, err := scanExecutive(rows)
		if err != nil {
			return nil, fmt.Errorf("list executives: %w", err)
		}
		executives = append(executives, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list executives: %w", err)
	}

	if executives == nil {
		executives = []domain.Executive{}
	}

	return executives, nil
}

// ListByIDs returns the executives whose ids are in the given set.
func (r *Repo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Executive, error) {
	if len(ids) == 0 {
		return []domain.Executive{}, nil
	}

	query, args, err := psql.Select(executiveColumns...).
		From("executives").
		Where(sq.Eq{"id": ids}).
		OrderBy("full_name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list executives by ids query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list executives by ids: %w", err)
	}
	defer rows.Close()

	var executives []domain.Executive
	for rows.Next() {
		e, err := scanExecutive(rows)
		if err != nil {
			return nil, fmt.Errorf("list executives by ids: %w", err)
		}
		executives = append(executives, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list executives by ids: %w", err)
	}

	if executives == nil {
		executives = []domain.Executive{}
	}

	return executives, nil
}

// Create inserts a new executive.
func (r *Repo) Create(ctx context.Context, e *domain.Executive) error {
	query, args, err := psql.Insert("executives").
		Columns(executiveColumns...).
		Values(executiveValues(e)...).
		ToSql()
	if err != nil {
		return fmt.Errorf("build create executive query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := querier.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "executive", e.ID.String())
	}

	return nil
}

// Update replaces all mutable fields of an executive.
// Returns domain.ErrNotFound if the executive does not exist.
func (r *Repo) Update(ctx context.Context, e *domain.Executive) error {
	b := psql.Update("executives").Where(sq.Eq{"id": e.ID})
	values := executiveValues(e)
	// Skip id (column 0) and created_at (second to last).
	for i, col := range executiveColumns {
		if col == "id" || col == "created_at" {
			continue
		}
		b = b.Set(col, values[i])
	}

	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build update executive query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := querier.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "executive", e.ID.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("executive %s: %w", e.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes an executive. Dependent rows cascade (agenda, tasks,
// contacts, expenses, assignments).
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, `DELETE FROM executives WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "executive", id.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("executive %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func executiveValues(e *domain.Executive) []any {
	return []any{
		e.ID, e.FullName,
		e.CPF, e.RG, e.BirthDate, e.Nationality, e.PlaceOfBirth, e.CivilStatus,
		e.WorkEmail, e.WorkPhone, e.Extension, e.PersonalEmail, e.PersonalPhone, e.Address,
		e.JobTitle, e.OrganizationID, e.DepartmentID, e.CostCenter, e.EmployeeID,
		e.ReportsToExecutiveID, e.HireDate, e.WorkLocation,
		e.PhotoURL, e.Bio, e.Education, e.Languages,
		e.EmergencyContactName, e.EmergencyContactPhone, e.EmergencyContactRelation,
		e.CreatedAt, e.UpdatedAt,
	}
}

func scanExecutive(row pgx.Row) (domain.Executive, error) {
	var e domain.Executive

	err := row.Scan(
		&e.ID, &e.FullName,
		&e.CPF, &e.RG, &e.BirthDate, &e.Nationality, &e.PlaceOfBirth, &e.CivilStatus,
		&e.WorkEmail, &e.WorkPhone, &e.Extension, &e.PersonalEmail, &e.PersonalPhone, &e.Address,
		&e.JobTitle, &e.OrganizationID, &e.DepartmentID, &e.CostCenter, &e.EmployeeID,
		&e.ReportsToExecutiveID, &e.HireDate, &e.WorkLocation,
		&e.PhotoURL, &e.Bio, &e.Education, &e.Languages,
		&e.EmergencyContactName, &e.EmergencyContactPhone, &e.EmergencyContactRelation,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return domain.Executive{}, err
	}

	return e, nil
}
