package domain

import (
	"time"

	"github.com/google/uuid"
)

// Executive is the person whose agenda, tasks, contacts and expenses the
// back-office manages. Only the identification fields used by the services
// are mandatory; the profile blocks are free-form optional data.
type Executive struct {
	ID       uuid.UUID
	FullName string

	// Identification
	CPF          *string
	RG           *string
	BirthDate    *time.Time
	Nationality  *string
	PlaceOfBirth *string
	CivilStatus  *string

	// Contact
	WorkEmail     *string
	WorkPhone     *string
	Extension     *string
	PersonalEmail *string
	PersonalPhone *string
	Address       *string

	// Corporate
	JobTitle             *string
	OrganizationID       *uuid.UUID
	DepartmentID         *uuid.UUID
	CostCenter           *string
	EmployeeID           *string
	ReportsToExecutiveID *uuid.UUID
	HireDate             *time.Time
	WorkLocation         *string

	// Public profile
	PhotoURL  *string
	Bio       *string
	Education *string
	Languages *string

	// Emergency
	EmergencyContactName     *string
	EmergencyContactPhone    *string
	EmergencyContactRelation *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Secretary manages the agendas of one or more executives.
type Secretary struct {
	ID       uuid.UUID
	FullName string
	Email    *string
	// ExecutiveIDs lists the executives this secretary is assigned to.
	ExecutiveIDs []uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAssignedTo reports whether the secretary manages the given executive.
func (s *Secretary) IsAssignedTo(executiveID uuid.UUID) bool {
	for _, id := range s.ExecutiveIDs {
		if id == executiveID {
			return true
		}
	}
	return false
}
