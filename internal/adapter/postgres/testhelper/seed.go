package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/secretaria-app/secretaria-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedOrganization creates an organization row.
func SeedOrganization(t *testing.T, pool *pgxpool.Pool) domain.Organization {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	org := domain.Organization{
		ID:        uuid.New(),
		Name:      "Org " + uniqueSuffix(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO organizations (id, name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4)`,
		org.ID, org.Name, org.CreatedAt, org.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedOrganization: %v", err)
	}

	return org
}

// SeedExecutive creates an executive attached to an organization.
func SeedExecutive(t *testing.T, pool *pgxpool.Pool, organizationID uuid.UUID) domain.Executive {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	exec := domain.Executive{
		ID:             uuid.New(),
		FullName:       "Executive " + uniqueSuffix(),
		OrganizationID: &organizationID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO executives (id, full_name, organization_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		exec.ID, exec.FullName, exec.OrganizationID, exec.CreatedAt, exec.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedExecutive: %v", err)
	}

	return exec
}

// SeedSecretary creates a secretary assigned to the given executives.
func SeedSecretary(t *testing.T, pool *pgxpool.Pool, executiveIDs ...uuid.UUID) domain.Secretary {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	email := "secretary-" + suffix + "@example.com"
	sec := domain.Secretary{
		ID:           uuid.New(),
		FullName:     "Secretary " + suffix,
		Email:        &email,
		ExecutiveIDs: executiveIDs,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO secretaries (id, full_name, email, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		sec.ID, sec.FullName, sec.Email, sec.CreatedAt, sec.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSecretary: %v", err)
	}

	for _, execID := range executiveIDs {
		_, err := pool.Exec(ctx,
			`INSERT INTO secretary_executives (secretary_id, executive_id)
			 VALUES ($1, $2)`,
			sec.ID, execID,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedSecretary assign %s: %v", execID, err)
		}
	}

	return sec
}

// SeedUser creates a user with the given role. The password hash is a fixed
// bcrypt hash of "password123" so auth tests can log in without hashing.
func SeedUser(t *testing.T, pool *pgxpool.Pool, role domain.Role) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:       uuid.New(),
		Email:    "user-" + suffix + "@example.com",
		FullName: "User " + suffix,
		// bcrypt("password123"), cost 10
		PasswordHash: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, full_name, password_hash, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Email, user.FullName, user.PasswordHash, string(user.Role),
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}

	return user
}

// SeedEvent creates a standalone event for an executive.
func SeedEvent(t *testing.T, pool *pgxpool.Pool, executiveID uuid.UUID, start time.Time) domain.Event {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	e := domain.Event{
		ID:          "single_" + uuid.NewString(),
		Title:       "Event " + uniqueSuffix(),
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		ExecutiveID: executiveID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO events (id, title, description, start_time, end_time, location,
		                     executive_id, reminder_minutes, recurrence_id, created_at, updated_at)
		 VALUES ($1, $2, '', $3, $4, '', $5, 0, '', $6, $7)`,
		e.ID, e.Title, e.StartTime, e.EndTime, e.ExecutiveID, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedEvent: %v", err)
	}

	return e
}
