package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is one concrete dated agenda entry for an executive, either
// standalone or a member of a recurring series.
//
// IDs are strings, not UUIDs: series expansion assigns deterministic ids of
// the form "evt_{seriesID}_{ordinal}" so repeated runs are traceable. Nothing
// may depend on the id format; series membership is decided by RecurrenceID
// equality alone.
type Event struct {
	ID              string
	Title           string
	Description     string
	StartTime       time.Time
	EndTime         time.Time
	Location        string
	EventTypeID     *uuid.UUID
	ExecutiveID     uuid.UUID
	ReminderMinutes int
	// RecurrenceID is shared by every occurrence of the same series and
	// empty for standalone events.
	RecurrenceID string
	// Recurrence is the rule that produced the series, denormalized onto
	// every occurrence so one row can answer "what pattern produced me".
	Recurrence *RecurrenceRule
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsRecurring reports whether the event belongs to a series.
func (e *Event) IsRecurring() bool { return e.RecurrenceID != "" }

// Duration returns the event length. Series expansion preserves it on every
// generated occurrence.
func (e *Event) Duration() time.Duration { return e.EndTime.Sub(e.StartTime) }

// EventType is a user-defined category with a display color.
type EventType struct {
	ID       uuid.UUID
	Name     string
	ColorHex string
}
