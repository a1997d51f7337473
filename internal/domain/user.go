package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role determines what slice of the back-office a user can see.
type Role string

const (
	// RoleMaster sees every organization.
	RoleMaster Role = "master"
	// RoleAdmin sees everything within its organization.
	RoleAdmin Role = "admin"
	// RoleSecretary sees the executives assigned to it.
	RoleSecretary Role = "secretary"
	// RoleExecutive sees only its own data.
	RoleExecutive Role = "executive"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleMaster, RoleAdmin, RoleSecretary, RoleExecutive:
		return true
	}
	return false
}

// User represents an authenticated application user. Depending on the role,
// exactly one of ExecutiveID / SecretaryID is set (admin carries only an
// organization, master carries neither).
type User struct {
	ID             uuid.UUID
	Email          string
	FullName       string
	PasswordHash   string
	Role           Role
	OrganizationID *uuid.UUID
	ExecutiveID    *uuid.UUID
	SecretaryID    *uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RefreshToken represents a hashed refresh token stored in the database.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// IsRevoked returns true if the token has been revoked.
func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsExpired returns true if the token has expired relative to now.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
