// Package contact implements the Contact repository using PostgreSQL.
package contact

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
	ContactTypeID *uuid.UUID
	Search        string
}

// Repo provides contact persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new contact repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const contactColumns = `id, full_name, email, phone, company, role, notes,
       contact_type_id, executive_id, created_at, updated_at`

const getByIDSQL = `
SELECT ` + contactColumns + `
FROM contacts
WHERE id = $1`

const insertSQL = `
INSERT INTO contacts (id, full_name, email, phone, company, role, notes,
                      contact_type_id, executive_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

const updateSQL = `
UPDATE contacts
SET full_name = $2, email = $3, phone = $4, company = $5, role = $6,
    notes = $7, contact_type_id = $8, updated_at = $9
WHERE id = $1`

const deleteSQL = `DELETE FROM contacts WHERE id = $1`

// GetByID returns a contact by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	c, err := scanContact(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "contact", id.String())
	}

	return &c, nil
}

// List returns one executive's contacts ordered by name, optionally filtered
// by type and a case-insensitive search over name and company.
func (r *Repo) List(ctx context.Context, executiveID uuid.UUID, filter ListFilter) ([]domain.Contact, error) {
	b := psql.Select("id", "full_name", "email", "phone", "company", "role", "notes",
		"contact_type_id", "executive_id", "created_at", "updated_at").
		From("contacts").
		Where(sq.Eq{"executive_id": executiveID}).
		OrderBy("full_name")

	if filter.ContactTypeID != nil {
		b = b.Where(sq.Eq{"contact_type_id": *filter.ContactTypeID})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		b = b.Where(sq.Or{
			sq.ILike{"full_name": pattern},
			sq.ILike{"company": pattern},
		})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list contacts query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []domain.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("list contacts: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}

	if contacts == nil {
		contacts = []domain.Contact{}
	}

	return contacts, nil
}

// Create inserts a new contact.
func (r *Repo) Create(ctx context.Context, c *domain.Contact) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, insertSQL,
		c.ID, c.FullName, c.Email, c.Phone, c.Company, c.Role, c.Notes,
		c.ContactTypeID, c.ExecutiveID, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "contact", c.ID.String())
	}

	return nil
}

// Update modifies a contact's fields.
// Returns domain.ErrNotFound if the contact does not exist.
func (r *Repo) Update(ctx context.Context, c *domain.Contact) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateSQL,
		c.ID, c.FullName, c.Email, c.Phone, c.Company, c.Role, c.Notes,
		c.ContactTypeID, c.UpdatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "contact", c.ID.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("contact %s: %w", c.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a contact by id.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "contact", id.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("contact %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// ContactType operations
// ---------------------------------------------------------------------------

// ListTypes returns all contact types ordered by name.
func (r *Repo) ListTypes(ctx context.Context) ([]domain.ContactType, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, `SELECT id, name FROM contact_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list contact types: %w", err)
	}
	defer rows.Close()

	types, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.ContactType])
	if err != nil {
		return nil, fmt.Errorf("list contact types: %w", err)
	}

	if types == nil {
		types = []domain.ContactType{}
	}

	return types, nil
}

// CreateType inserts a new contact type.
func (r *Repo) CreateType(ctx context.Context, t *domain.ContactType) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, `INSERT INTO contact_types (id, name) VALUES ($1, $2)`, t.ID, t.Name)
	if err != nil {
		return postgres.MapError(err, "contact_type", t.ID.String())
	}

	return nil
}

func scanContact(row pgx.Row) (domain.Contact, error) {
	var c domain.Contact

	err := row.Scan(&c.ID, &c.FullName, &c.Email, &c.Phone, &c.Company, &c.Role,
		&c.Notes, &c.ContactTypeID, &c.ExecutiveID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Contact{}, err
	}

	return c, nil
}
