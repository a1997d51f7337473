// Package task implements the Task repository using PostgreSQL.
package task

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
	From     time.Time
	To       time.Time
	Status   domain.TaskStatus
	Priority domain.TaskPriority
}

// Repo provides task persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new task repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const taskColumns = `id, title, description, due_date, priority, status,
       executive_id, recurrence_id, recurrence, created_at, updated_at`

const getByIDSQL = `
SELECT ` + taskColumns + `
FROM tasks
WHERE id = $1`

const insertSQL = `
INSERT INTO tasks (id, title, description, due_date, priority, status,
                   executive_id, recurrence_id, recurrence, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

const updateStatusSQL = `
UPDATE tasks SET status = $2, updated_at = $3 WHERE id = $1`

const deleteByIDSQL = `DELETE FROM tasks WHERE id = $1`

const deleteBySeriesSQL = `
DELETE FROM tasks WHERE executive_id = $1 AND recurrence_id = $2`

const deleteBySeriesFromSQL = `
DELETE FROM tasks
WHERE executive_id = $1 AND recurrence_id = $2 AND due_date >= $3`

const listSeriesSQL = `
SELECT ` + taskColumns + `
FROM tasks
WHERE executive_id = $1 AND recurrence_id = $2
ORDER BY due_date`

// GetByID returns a task by primary key.
func (r *Repo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, id)
	t, err := scanTask(row)
	if err != nil {
		return nil, postgres.MapError(err, "task", id)
	}

	return &t, nil
}

// List returns tasks for one executive ordered by due date, optionally
// restricted to a date range, a status and a priority.
func (r *Repo) List(ctx context.Context, executiveID uuid.UUID, filter ListFilter) ([]domain.Task, error) {
	b := psql.Select("id", "title", "description", "due_date", "priority", "status",
		"executive_id", "recurrence_id", "recurrence", "created_at", "updated_at").
		From("tasks").
		Where(sq.Eq{"executive_id": executiveID}).
		OrderBy("due_date", "priority")

	if !filter.From.IsZero() {
		b = b.Where(sq.GtOrEq{"due_date": filter.From})
	}
	if !filter.To.IsZero() {
		b = b.Where(sq.Lt{"due_date": filter.To})
	}
	if filter.Status != "" {
		b = b.Where(sq.Eq{"status": string(filter.Status)})
	}
	if filter.Priority != "" {
		b = b.Where(sq.Eq{"priority": string(filter.Priority)})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list tasks query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks, err := scanTasks(rows)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return tasks, nil
}

// ListSeries returns all members of one series for an executive, ordered by
// due date.
func (r *Repo) ListSeries(ctx context.Context, executiveID uuid.UUID, seriesID string) ([]domain.Task, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listSeriesSQL, executiveID, seriesID)
	if err != nil {
		return nil, fmt.Errorf("list task series: %w", err)
	}
	defer rows.Close()

	tasks, err := scanTasks(rows)
	if err != nil {
		return nil, fmt.Errorf("list task series: %w", err)
	}

	return tasks, nil
}

// Create inserts a single task.
func (r *Repo) Create(ctx context.Context, t *domain.Task) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rule, err := postgres.MarshalRule(t.Recurrence)
	if err != nil {
		return fmt.Errorf("task %s: %w", t.ID, err)
	}

	_, err = querier.Exec(ctx, insertSQL,
		t.ID, t.Title, t.Description, t.DueDate, string(t.Priority), string(t.Status),
		t.ExecutiveID, t.RecurrenceID, rule, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "task", t.ID)
	}

	return nil
}

// CreateBatch inserts many tasks in one round trip using pgx batching.
func (r *Repo) CreateBatch(ctx context.Context, tasks []domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for i := range tasks {
		t := &tasks[i]
		rule, err := postgres.MarshalRule(t.Recurrence)
		if err != nil {
			return fmt.Errorf("task %s: %w", t.ID, err)
		}
		batch.Queue(insertSQL,
			t.ID, t.Title, t.Description, t.DueDate, string(t.Priority), string(t.Status),
			t.ExecutiveID, t.RecurrenceID, rule, t.CreatedAt, t.UpdatedAt,
		)
	}

	results := querier.SendBatch(ctx, batch)
	defer results.Close()

	for i := range tasks {
		if _, err := results.Exec(); err != nil {
			return postgres.MapError(err, "task", tasks[i].ID)
		}
	}

	return nil
}

// ReplaceSeries atomically swaps a saved collection fragment: it removes the
// stale series (when removeSeriesID is non-empty), removes the edited row
// (when removeID is non-empty) and inserts the regenerated rows. Callers run
// it inside TxManager.RunInTx so the replacement commits as one unit.
func (r *Repo) ReplaceSeries(ctx context.Context, executiveID uuid.UUID, removeSeriesID, removeID string, rows []domain.Task) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if removeSeriesID != "" {
		if _, err := querier.Exec(ctx, deleteBySeriesSQL, executiveID, removeSeriesID); err != nil {
			return postgres.MapError(err, "task_series", removeSeriesID)
		}
	}
	if removeID != "" {
		if _, err := querier.Exec(ctx, deleteByIDSQL, removeID); err != nil {
			return postgres.MapError(err, "task", removeID)
		}
	}

	return r.CreateBatch(ctx, rows)
}

// UpdateStatus changes the progress state of one task.
// Returns domain.ErrNotFound if the task does not exist.
func (r *Repo) UpdateStatus(ctx context.Context, id string, status domain.TaskStatus, updatedAt time.Time) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateStatusSQL, id, string(status), updatedAt)
	if err != nil {
		return postgres.MapError(err, "task", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a single task by id.
// Returns domain.ErrNotFound if no row was deleted.
func (r *Repo) Delete(ctx context.Context, id string) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteByIDSQL, id)
	if err != nil {
		return postgres.MapError(err, "task", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteBySeries removes every member of a series for one executive.
// Returns the number of rows removed.
func (r *Repo) DeleteBySeries(ctx context.Context, executiveID uuid.UUID, seriesID string) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteBySeriesSQL, executiveID, seriesID)
	if err != nil {
		return 0, postgres.MapError(err, "task_series", seriesID)
	}

	return int(tag.RowsAffected()), nil
}

// DeleteBySeriesFrom removes the series members whose due date falls on or
// after the given day. Returns the number of rows removed.
func (r *Repo) DeleteBySeriesFrom(ctx context.Context, executiveID uuid.UUID, seriesID string, from time.Time) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteBySeriesFromSQL, executiveID, seriesID, from)
	if err != nil {
		return 0, postgres.MapError(err, "task_series", seriesID)
	}

	return int(tag.RowsAffected()), nil
}

// ---------------------------------------------------------------------------
// Row scanning
// ---------------------------------------------------------------------------

func scanTasks(rows pgx.Rows) ([]domain.Task, error) {
	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if tasks == nil {
		tasks = []domain.Task{}
	}

	return tasks, nil
}

func scanTask(row pgx.Row) (domain.Task, error) {
	var (
		t        domain.Task
		priority string
		status   string
		ruleJSON []byte
	)

	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.DueDate, &priority, &status,
		&t.ExecutiveID, &t.RecurrenceID, &ruleJSON, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Task{}, err
	}

	t.Priority = domain.TaskPriority(priority)
	t.Status = domain.TaskStatus(status)

	rule, err := postgres.UnmarshalRule(ruleJSON)
	if err != nil {
		return domain.Task{}, err
	}
	t.Recurrence = rule

	// DATE columns scan as local midnight in some drivers; pin UTC.
	t.DueDate = time.Date(t.DueDate.Year(), t.DueDate.Month(), t.DueDate.Day(), 0, 0, 0, 0, time.UTC)

	return t, nil
}
