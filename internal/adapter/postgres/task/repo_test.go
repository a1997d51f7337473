package task_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/task"
	"github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/testhelper"
	"github.com/secretaria-app/secretaria-backend/internal/domain"
)

// newRepo sets up a test DB and returns a ready Repo + pool.
func newRepo(t *testing.T) (*task.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return task.New(pool), pool
}

func seedExec(t *testing.T, pool *pgxpool.Pool) domain.Executive {
	t.Helper()
	org := testhelper.SeedOrganization(t, pool)
	return testhelper.SeedExecutive(t, pool, org.ID)
}

func makeTask(executiveID uuid.UUID, id string, due time.Time) domain.Task {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return domain.Task{
		ID:          id,
		Title:       "Prepare briefing",
		DueDate:     due,
		Priority:    domain.TaskPriorityMedium,
		Status:      domain.TaskStatusTodo,
		ExecutiveID: executiveID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestRepo_Create_AndGetByID(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	exec := seedExec(t, pool)
	due := time.Date(2024, time.May, 6, 0, 0, 0, 0, time.UTC)

	count := 2
	tk := makeTask(exec.ID, "task_recur_a_0", due)
	tk.RecurrenceID = "recur_a"
	tk.Recurrence = &domain.RecurrenceRule{
		Frequency: domain.FrequencyWeekly,
		Interval:  1,
		DaysOfWeek: []time.Weekday{
			time.Monday,
		},
		Count: &count,
	}

	if err := repo.Create(ctx, &tk); err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	got, err := repo.GetByID(ctx, tk.ID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}
	if !got.DueDate.Equal(due) {
		t.Errorf("DueDate mismatch: got %s, want %s", got.DueDate, due)
	}
	if got.Priority != domain.TaskPriorityMedium {
		t.Errorf("Priority mismatch: got %s", got.Priority)
	}
	if got.Recurrence == nil {
		t.Fatal("Recurrence rule was not round-tripped")
	}
	if len(got.Recurrence.DaysOfWeek) != 1 || got.Recurrence.DaysOfWeek[0] != time.Monday {
		t.Errorf("rule weekday set mismatch: got %v", got.Recurrence.DaysOfWeek)
	}
}

func TestRepo_List_StatusFilter(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	exec := seedExec(t, pool)
	due := time.Date(2024, time.May, 6, 0, 0, 0, 0, time.UTC)

	todo := makeTask(exec.ID, "single_"+uuid.NewString(), due)
	done := makeTask(exec.ID, "single_"+uuid.NewString(), due.AddDate(0, 0, 1))
	done.Status = domain.TaskStatusDone

	for _, tk := range []domain.Task{todo, done} {
		tk := tk
		if err := repo.Create(ctx, &tk); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.List(ctx, exec.ID, task.ListFilter{Status: domain.TaskStatusDone})
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("List returned %d tasks, want 1", len(got))
	}
	if got[0].ID != done.ID {
		t.Errorf("List returned %s, want %s", got[0].ID, done.ID)
	}
}

func TestRepo_UpdateStatus(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	exec := seedExec(t, pool)
	tk := makeTask(exec.ID, "single_"+uuid.NewString(), time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC))
	if err := repo.Create(ctx, &tk); err != nil {
		t.Fatalf("Create: %v", err)
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	if err := repo.UpdateStatus(ctx, tk.ID, domain.TaskStatusInProgress, now); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	got, err := repo.GetByID(ctx, tk.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != domain.TaskStatusInProgress {
		t.Errorf("Status = %s, want IN_PROGRESS", got.Status)
	}
}

func TestRepo_UpdateStatus_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	err := repo.UpdateStatus(ctx, "task_missing_0", domain.TaskStatusDone, time.Now().UTC())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_ReplaceSeries_RemovesEditedRow(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	exec := seedExec(t, pool)
	due := time.Date(2024, time.October, 7, 0, 0, 0, 0, time.UTC)

	standalone := makeTask(exec.ID, "single_convert", due)
	if err := repo.Create(ctx, &standalone); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Converting the standalone into a series removes the original row and
	// inserts the expansion.
	var series []domain.Task
	for i := 0; i < 3; i++ {
		tk := makeTask(exec.ID, "task_recur_c_"+string(rune('0'+i)), due.AddDate(0, 0, i))
		tk.RecurrenceID = "recur_c"
		series = append(series, tk)
	}
	if err := repo.ReplaceSeries(ctx, exec.ID, "", standalone.ID, series); err != nil {
		t.Fatalf("ReplaceSeries: %v", err)
	}

	if _, err := repo.GetByID(ctx, standalone.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("converted standalone still present, err = %v", err)
	}
	got, err := repo.ListSeries(ctx, exec.ID, "recur_c")
	if err != nil {
		t.Fatalf("ListSeries: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("series has %d members, want 3", len(got))
	}
}

func TestRepo_DeleteBySeries(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	exec := seedExec(t, pool)
	due := time.Date(2024, time.November, 4, 0, 0, 0, 0, time.UTC)

	var series []domain.Task
	for i := 0; i < 4; i++ {
		tk := makeTask(exec.ID, "task_recur_d_"+string(rune('0'+i)), due.AddDate(0, 0, i))
		tk.RecurrenceID = "recur_d"
		series = append(series, tk)
	}
	if err := repo.CreateBatch(ctx, series); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}

	n, err := repo.DeleteBySeries(ctx, exec.ID, "recur_d")
	if err != nil {
		t.Fatalf("DeleteBySeries: %v", err)
	}
	if n != 4 {
		t.Fatalf("DeleteBySeries removed %d rows, want 4", n)
	}

	remaining, err := repo.ListSeries(ctx, exec.ID, "recur_d")
	if err != nil {
		t.Fatalf("ListSeries: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("series still has %d members", len(remaining))
	}
}
