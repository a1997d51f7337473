package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExpenseType distinguishes payables from receivables.
type ExpenseType string

const (
	ExpenseTypePayable    ExpenseType = "PAYABLE"
	ExpenseTypeReceivable ExpenseType = "RECEIVABLE"
)

func (t ExpenseType) String() string { return string(t) }

func (t ExpenseType) IsValid() bool {
	return t == ExpenseTypePayable || t == ExpenseTypeReceivable
}

// ExpenseStatus tracks settlement of an expense.
type ExpenseStatus string

const (
	ExpenseStatusPending  ExpenseStatus = "PENDING"
	ExpenseStatusPaid     ExpenseStatus = "PAID"
	ExpenseStatusReceived ExpenseStatus = "RECEIVED"
)

func (s ExpenseStatus) String() string { return string(s) }

func (s ExpenseStatus) IsValid() bool {
	switch s {
	case ExpenseStatusPending, ExpenseStatusPaid, ExpenseStatusReceived:
		return true
	}
	return false
}

// ExpenseEntityType distinguishes expenses against a person from those
// against a company.
type ExpenseEntityType string

const (
	ExpenseEntityPerson  ExpenseEntityType = "PERSON"
	ExpenseEntityCompany ExpenseEntityType = "COMPANY"
)

func (e ExpenseEntityType) String() string { return string(e) }

func (e ExpenseEntityType) IsValid() bool {
	return e == ExpenseEntityPerson || e == ExpenseEntityCompany
}

// Expense is a payable or receivable amount tracked for one executive.
// AmountCents stores the value in cents to avoid float drift.
type Expense struct {
	ID          uuid.UUID
	Description string
	AmountCents int64
	ExpenseDate time.Time
	Type        ExpenseType
	EntityType  ExpenseEntityType
	CategoryID  *uuid.UUID
	Status      ExpenseStatus
	ExecutiveID uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ExpenseCategory is a user-defined expense grouping.
type ExpenseCategory struct {
	ID   uuid.UUID
	Name string
}
