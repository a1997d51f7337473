// Package event implements the Event repository using PostgreSQL.
// Fixed-shape queries use raw SQL; range listings with optional filters are
// built with squirrel.
package event

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/secretaria-app/secretaria-backend/internal/adapter/postgres"
	"github.com/secretaria-app/secretaria-backend/internal/domain"
)

// ListFilter narrows List results. Zero values mean "no constraint".
type ListFilter struct {
	From        time.Time
	To          time.Time
	EventTypeID *uuid.UUID
}

// Repo provides event persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new event repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const eventColumns = `id, title, description, start_time, end_time, location,
       event_type_id, executive_id, reminder_minutes, recurrence_id, recurrence,
       created_at, updated_at`

const getByIDSQL = `
SELECT ` + eventColumns + `
FROM events
WHERE id = $1`

const insertSQL = `
INSERT INTO events (id, title, description, start_time, end_time, location,
                    event_type_id, executive_id, reminder_minutes, recurrence_id,
                    recurrence, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

const deleteByIDSQL = `DELETE FROM events WHERE id = $1`

const deleteBySeriesSQL = `
DELETE FROM events WHERE executive_id = $1 AND recurrence_id = $2`

const deleteBySeriesFromSQL = `
DELETE FROM events
WHERE executive_id = $1 AND recurrence_id = $2 AND start_time >= $3`

const listSeriesSQL = `
SELECT ` + eventColumns + `
FROM events
WHERE executive_id = $1 AND recurrence_id = $2
ORDER BY start_time`

// GetByID returns an event by primary key.
func (r *Repo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, id)
	e, err := scanEvent(row)
	if err != nil {
		return nil, postgres.MapError(err, "event", id)
	}

	return &e, nil
}

// List returns events for one executive ordered by start time, optionally
// restricted to a time range and an event type.
func (r *Repo) List(ctx context.Context, executiveID uuid.UUID, filter ListFilter) ([]domain.Event, error) {
	b := psql.Select("id", "title", "description", "start_time", "end_time", "location",
		"event_type_id", "executive_id", "reminder_minutes", "recurrence_id", "recurrence",
		"created_at", "updated_at").
		From("events").
		Where(sq.Eq{"executive_id": executiveID}).
		OrderBy("start_time")

	if !filter.From.IsZero() {
		b = b.Where(sq.GtOrEq{"start_time": filter.From})
	}
	if !filter.To.IsZero() {
		b = b.Where(sq.Lt{"start_time": filter.To})
	}
	if filter.EventTypeID != nil {
		b = b.Where(sq.Eq{"event_type_id": *filter.EventTypeID})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list events query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events, err := scanEvents(rows)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	return events, nil
}

// ListSeries returns all members of one series for an executive, ordered by
// start time.
func (r *Repo) ListSeries(ctx context.Context, executiveID uuid.UUID, seriesID string) ([]domain.Event, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listSeriesSQL, executiveID, seriesID)
	if err != nil {
		return nil, fmt.Errorf("list event series: %w", err)
	}
	defer rows.Close()

	events, err := scanEvents(rows)
	if err != nil {
		return nil, fmt.Errorf("list event series: %w", err)
	}

	return events, nil
}

// Create inserts a single event.
func (r *Repo) Create(ctx context.Context, e *domain.Event) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rule, err := postgres.MarshalRule(e.Recurrence)
	if err != nil {
		return fmt.Errorf("event %s: %w", e.ID, err)
	}

	_, err = querier.Exec(ctx, insertSQL,
		e.ID, e.Title, e.Description, e.StartTime, e.EndTime, e.Location,
		e.EventTypeID, e.ExecutiveID, e.ReminderMinutes, e.RecurrenceID, rule,
		e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "event", e.ID)
	}

	return nil
}

// CreateBatch inserts many events in one round trip using pgx batching.
func (r *Repo) CreateBatch(ctx context.Context, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for i := range events {
		e := &events[i]
		rule, err := postgres.MarshalRule(e.Recurrence)
		if err != nil {
			return fmt.Errorf("event %s: %w", e.ID, err)
		}
		batch.Queue(insertSQL,
			e.ID, e.Title, e.Description, e.StartTime, e.EndTime, e.Location,
			e.EventTypeID, e.ExecutiveID, e.ReminderMinutes, e.RecurrenceID, rule,
			e.CreatedAt, e.UpdatedAt,
		)
	}

	results := querier.SendBatch(ctx, batch)
	defer results.Close()

	for i := range events {
		if _, err := results.Exec(); err != nil {
			return postgres.MapError(err, "event", events[i].ID)
		}
	}

	return nil
}

// ReplaceSeries atomically swaps a saved collection fragment: it removes the
// stale series (when removeSeriesID is non-empty), removes the edited row
// (when removeID is non-empty) and inserts the regenerated rows. Callers run
// it inside TxManager.RunInTx so the replacement commits as one unit.
func (r *Repo) ReplaceSeries(ctx context.Context, executiveID uuid.UUID, removeSeriesID, removeID string, rows []domain.Event) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if removeSeriesID != "" {
		if _, err := querier.Exec(ctx, deleteBySeriesSQL, executiveID, removeSeriesID); err != nil {
			return postgres.MapError(err, "event_series", removeSeriesID)
		}
	}
	if removeID != "" {
		if _, err := querier.Exec(ctx, deleteByIDSQL, removeID); err != nil {
			return postgres.MapError(err, "event", removeID)
		}
	}

	return r.CreateBatch(ctx, rows)
}

// Delete removes a single event by id.
// Returns domain.ErrNotFound if no row was deleted.
func (r *Repo) Delete(ctx context.Context, id string) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteByIDSQL, id)
	if err != nil {
		return postgres.MapError(err, "event", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteBySeries removes every member of a series for one executive.
// Returns the number of rows removed.
func (r *Repo) DeleteBySeries(ctx context.Context, executiveID uuid.UUID, seriesID string) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteBySeriesSQL, executiveID, seriesID)
	if err != nil {
		return 0, postgres.MapError(err, "event_series", seriesID)
	}

	return int(tag.RowsAffected()), nil
}

// DeleteBySeriesFrom removes the series members starting at or after the
// given instant. Returns the number of rows removed.
func (r *Repo) DeleteBySeriesFrom(ctx context.Context, executiveID uuid.UUID, seriesID string, from time.Time) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteBySeriesFromSQL, executiveID, seriesID, from)
	if err != nil {
		return 0, postgres.MapError(err, "event_series", seriesID)
	}

	return int(tag.RowsAffected()), nil
}

// ---------------------------------------------------------------------------
// Row scanning
// ---------------------------------------------------------------------------

func scanEvents(rows pgx.Rows) ([]domain.Event, error) {
	var events []domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if events == nil {
		events = []domain.Event{}
	}

	return events, nil
}

func scanEvent(row pgx.Row) (domain.Event, error) {
	var (
		e        domain.Event
		ruleJSON []byte
	)

	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.StartTime, &e.EndTime,
		&e.Location, &e.EventTypeID, &e.ExecutiveID, &e.ReminderMinutes,
		&e.RecurrenceID, &ruleJSON, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return domain.Event{}, err
	}

	rule, err := postgres.UnmarshalRule(ruleJSON)
	if err != nil {
		return domain.Event{}, err
	}
	e.Recurrence = rule

	return e, nil
}

// ---------------------------------------------------------------------------
// EventType operations
// ---------------------------------------------------------------------------

// ListTypes returns all event types ordered by name.
func (r *Repo) ListTypes(ctx context.Context) ([]domain.EventType, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, `SELECT id, name, color_hex FROM event_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list event types: %w", err)
	}
	defer rows.Close()

	types, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.EventType])
	if err != nil {
		return nil, fmt.Errorf("list event types: %w", err)
	}

	if types == nil {
		types = []domain.EventType{}
	}

	return types, nil
}

// CreateType inserts a new event type.
func (r *Repo) CreateType(ctx context.Context, t *domain.EventType) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx,
		`INSERT INTO event_types (id, name, color_hex) VALUES ($1, $2, $3)`,
		t.ID, t.Name, t.ColorHex,
	)
	if err != nil {
		return postgres.MapError(err, "event_type", t.ID.String())
	}

	return nil
}
