package domain

import (
	"time"

	"github.com/google/uuid"
)

// Contact is an address-book entry belonging to one executive.
type Contact struct {
	ID            uuid.UUID
	FullName      string
	Email         *string
	Phone         *string
	Company       *string
	Role          *string
	Notes         *string
	ContactTypeID *uuid.UUID
	ExecutiveID   uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ContactType is a user-defined contact category.
type ContactType struct {
	ID   uuid.UUID
	Name string
}
