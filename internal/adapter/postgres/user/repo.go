// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/secretaria-app/secretaria-backend/internal/adapter/postgres"
	"github.com/secretaria-app/secretaria-backend/internal/domain"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const userColumns = `id, email, full_name, password_hash, role,
       organization_id, executive_id, secretary_id, created_at, updated_at`

const getByIDSQL = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1`

const getByEmailSQL = `
SELECT ` + userColumns + `
FROM users
WHERE email = $1`

const insertSQL = `
INSERT INTO users (id, email, full_name, password_hash, role,
                   organization_id, executive_id, secretary_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

const updateSQL = `
UPDATE users
SET full_name = $2, role = $3, organization_id = $4, executive_id = $5,
    secretary_id = $6, updated_at = $7
WHERE id = $1`

const updatePasswordSQL = `
UPDATE users SET password_hash = $2, updated_at = $3 WHERE id = $1`

const listByOrganizationSQL = `
SELECT ` + userColumns + `
FROM users
WHERE organization_id = $1
ORDER BY full_name`

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "user", id.String())
	}

	return &u, nil
}

// GetByEmail returns a user by email address.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(querier.QueryRow(ctx, getByEmailSQL, email))
	if err != nil {
		return nil, postgres.MapError(err, "user", email)
	}

	return &u, nil
}

// Create inserts a new user.
// Duplicate email results in domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, u *domain.User) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, insertSQL,
		u.ID, u.Email, u.FullName, u.PasswordHash, string(u.Role),
		u.OrganizationID, u.ExecutiveID, u.SecretaryID, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "user", u.ID.String())
	}

	return nil
}

// Update modifies profile and role assignment fields on a user.
// Returns domain.ErrNotFound if the user does not exist.
func (r *Repo) Update(ctx context.Context, u *domain.User) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateSQL,
		u.ID, u.FullName, string(u.Role), u.OrganizationID, u.ExecutiveID,
		u.SecretaryID, u.UpdatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "user", u.ID.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", u.ID, domain.ErrNotFound)
	}

	return nil
}

// UpdatePassword replaces the stored password hash.
// Returns domain.ErrNotFound if the user does not exist.
func (r *Repo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string, updatedAt time.Time) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updatePasswordSQL, id, passwordHash, updatedAt)
	if err != nil {
		return postgres.MapError(err, "user", id.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListByOrganization returns every user in an organization.
func (r *Repo) ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByOrganizationSQL, organizationID)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	if users == nil {
		users = []domain.User{}
	}

	return users, nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var (
		u    domain.User
		role string
	)

	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &role,
		&u.OrganizationID, &u.ExecutiveID, &u.SecretaryID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, err
	}

	u.Role = domain.Role(role)
	return u, nil
}
