// Package schedule implements the recurrence engine shared by agenda events
// and tasks: expanding a recurrence rule into a dated series, and the
// save/delete protocol that keeps series membership consistent when a user
// edits "this occurrence", "this and future occurrences" or "the entire
// series".
//
// Everything in this package is a pure transformation. Input collections and
// rules are never mutated; callers may hold other references to them.
package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/secretaria-app/secretaria-backend/internal/domain"
)

// DefaultMaxOccurrences bounds end-date expansion. A far-future end date with
// no count would otherwise generate an unbounded series.
const DefaultMaxOccurrences = 100

// Adapter bridges the engine to a concrete occurrence type. The engine never
// inspects an occurrence directly: it reads identity, series linkage and the
// anchor date through the adapter, and produces new occurrences through
// Place and Detach. Implementations must return copies, never mutate.
type Adapter[T any] interface {
	// ID returns the occurrence id, or "" for a not-yet-saved item.
	ID(item T) string
	// SeriesID returns the shared series identifier, or "" for standalone items.
	SeriesID(item T) string
	// Anchor returns the occurrence's date/time used for expansion and
	// ordering. A zero time means the item has no usable anchor.
	Anchor(item T) time.Time
	// Prefix is the id prefix for generated occurrences ("evt", "task").
	Prefix() string
	// Place returns a copy of item moved to start, carrying the given id and
	// series linkage. Duration-like fields are preserved relative to start.
	Place(item T, id, seriesID string, rule domain.RecurrenceRule, start time.Time) T
	// Detach returns a copy of item with series linkage stripped and the
	// given id assigned.
	Detach(item T, id string) T
}

// Engine expands rules and resolves series mutations for one occurrence
// type. Instantiate once per type (events, tasks) with the matching adapter.
type Engine[T any] struct {
	adapter Adapter[T]
	max     int
	newID   func() string
}

// NewEngine creates an engine. maxOccurrences caps end-date expansion;
// values <= 0 fall back to DefaultMaxOccurrences.
func NewEngine[T any](adapter Adapter[T], maxOccurrences int) *Engine[T] {
	if maxOccurrences <= 0 {
		maxOccurrences = DefaultMaxOccurrences
	}
	return &Engine[T]{
		adapter: adapter,
		max:     maxOccurrences,
		newID:   uuid.NewString,
	}
}

// EventAdapter adapts domain.Event to the engine. Events anchor on StartTime
// and preserve their duration on every generated occurrence.
type EventAdapter struct{}

func (EventAdapter) ID(e domain.Event) string       { return e.ID }
func (EventAdapter) SeriesID(e domain.Event) string { return e.RecurrenceID }
func (EventAdapter) Anchor(e domain.Event) time.Time {
	return e.StartTime
}
func (EventAdapter) Prefix() string { return "evt" }

func (EventAdapter) Place(e domain.Event, id, seriesID string, rule domain.RecurrenceRule, start time.Time) domain.Event {
	duration := e.EndTime.Sub(e.StartTime)
	r := rule.Clone()
	e.ID = id
	e.StartTime = start
	e.EndTime = start.Add(duration)
	e.RecurrenceID = seriesID
	e.Recurrence = &r
	return e
}

func (EventAdapter) Detach(e domain.Event, id string) domain.Event {
	e.ID = id
	e.RecurrenceID = ""
	e.Recurrence = nil
	return e
}

// TaskAdapter adapts domain.Task to the engine. Tasks anchor on DueDate and
// have no end time; generated occurrences carry the computed day only.
type TaskAdapter struct{}

func (TaskAdapter) ID(t domain.Task) string       { return t.ID }
func (TaskAdapter) SeriesID(t domain.Task) string { return t.RecurrenceID }
func (TaskAdapter) Anchor(t domain.Task) time.Time {
	return t.DueDate
}
func (TaskAdapter) Prefix() string { return "task" }

func (TaskAdapter) Place(t domain.Task, id, seriesID string, rule domain.RecurrenceRule, start time.Time) domain.Task {
	r := rule.Clone()
	t.ID = id
	t.DueDate = utcDay(start)
	t.RecurrenceID = seriesID
	t.Recurrence = &r
	return t
}

func (TaskAdapter) Detach(t domain.Task, id string) domain.Task {
	t.ID = id
	t.RecurrenceID = ""
	t.Recurrence = nil
	return t
}

// utcDay truncates t to UTC midnight of its calendar day.
func utcDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
