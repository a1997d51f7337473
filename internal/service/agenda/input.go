package agenda

import (
	"time"

	"github.com/google/uuid"

	"github.com/secretaria-app/secretaria-backend/internal/domain"
)

// SaveEventInput holds parameters for SaveEvent. An empty ID creates a new
// event; a non-empty ID edits an existing one. Rule is the recurrence
// pattern to apply, nil for a standalone event. On edit, nil also converts
// a series member back to a standalone occurrence.
type SaveEventInput struct {
	ID              string
	ExecutiveID     uuid.UUID
	Title           string
	Description     string
	StartTime       time.Time
	EndTime         time.Time
	Location        string
	EventTypeID     *uuid.UUID
	ReminderMinutes int
	Rule            *domain.RecurrenceRule
}

// Validate validates the save input.
func (i SaveEventInput) Validate() error {
	var errs []domain.FieldError

	if i.ExecutiveID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "executive_id", Message: "required"})
	}
	if i.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	} else if len(i.Title) > 500 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "too long"})
	}
	if i.StartTime.IsZero() {
		errs = append(errs, domain.FieldError{Field: "start_time", Message: "required"})
	}
	if i.EndTime.IsZero() {
		errs = append(errs, domain.FieldError{Field: "end_time", Message: "required"})
	} else if !i.StartTime.IsZero() && i.EndTime.Before(i.StartTime) {
		errs = append(errs, domain.FieldError{Field: "end_time", Message: "before start_time"})
	}
	if i.ReminderMinutes < 0 {
		errs = append(errs, domain.FieldError{Field: "reminder_minutes", Message: "negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListEventsInput holds parameters for ListEvents.
type ListEventsInput struct {
	ExecutiveID uuid.UUID
	From        time.Time
	To          time.Time
	EventTypeID *uuid.UUID
}

// Validate validates the list input.
func (i ListEventsInput) Validate() error {
	var errs []domain.FieldError

	if i.ExecutiveID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "executive_id", Message: "required"})
	}
	if !i.From.IsZero() && !i.To.IsZero() && i.To.Before(i.From) {
		errs = append(errs, domain.FieldError{Field: "to", Message: "before from"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SaveResult is returned by SaveEvent. Saved lists every persisted
// occurrence of the affected series (one element for a standalone event),
// ordered by start time. Warnings carries non-blocking rule diagnostics:
// a malformed rule still saves, it just expands to nothing.
type SaveResult struct {
	Saved    []domain.Event
	Warnings []string
}
