package domain

import (
	"time"

	"github.com/google/uuid"
)

// Organization is the top-level tenant grouping.
type Organization struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Department belongs to exactly one organization.
type Department struct {
	ID             uuid.UUID
	Name           string
	OrganizationID uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
