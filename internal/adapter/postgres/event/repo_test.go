package event_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/event"
	"github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/testhelper"
	"github.com/secretaria-app/secretaria-backend/internal/domain"
)

// newRepo sets up a test DB and returns a ready Repo + pool.
func newRepo(t *testing.T) (*event.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return event.New(pool), pool
}

func seedExec(t *testing.T, pool *pgxpool.Pool) domain.Executive {
	t.Helper()
	org := testhelper.SeedOrganization(t, pool)
	return testhelper.SeedExecutive(t, pool, org.ID)
}

func makeEvent(executiveID uuid.UUID, id string, start time.Time) domain.Event {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return domain.Event{
		ID:          id,
		Title:       "Weekly sync",
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
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
	start := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)

	count := 3
	e := makeEvent(exec.ID, "evt_recur_x_0", start)
	e.RecurrenceID = "recur_x"
	e.Recurrence = &domain.RecurrenceRule{
		Frequency: domain.FrequencyDaily,
		Interval:  1,
		Count:     &count,
	}

	if err := repo.Create(ctx, &e); err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	got, err := repo.GetByID(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}
	if got.Title != e.Title {
		t.Errorf("Title mismatch: got %q, want %q", got.Title, e.Title)
	}
	if !got.StartTime.Equal(e.StartTime) {
		t.Errorf("StartTime mismatch: got %s, want %s", got.StartTime, e.StartTime)
	}
	if got.RecurrenceID != "recur_x" {
		t.Errorf("RecurrenceID mismatch: got %q", got.RecurrenceID)
	}
	if got.Recurrence == nil {
		t.Fatal("Recurrence rule was not round-tripped")
	}
	if got.Recurrence.Frequency != domain.FrequencyDaily {
		t.Errorf("rule frequency mismatch: got %s", got.Recurrence.Frequency)
	}
	if got.Recurrence.Count == nil || *got.Recurrence.Count != 3 {
		t.Errorf("rule count mismatch: got %v", got.Recurrence.Count)
	}
}

func TestRepo_GetByID_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "evt_missing_0")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_List_RangeFilter(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	exec := seedExec(t, pool)
	base := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		e := makeEvent(exec.ID, "single_"+uuid.NewString(), base.AddDate(0, 0, i))
		if err := repo.Create(ctx, &e); err != nil {
			t.Fatalf("Create[%d]: %v", i, err)
		}
	}

	got, err := repo.List(ctx, exec.ID, event.ListFilter{
		From: base.AddDate(0, 0, 1),
		To:   base.AddDate(0, 0, 4),
	})
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("List returned %d events, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].StartTime.Before(got[i-1].StartTime) {
			t.Fatal("List results are not ordered by start time")
		}
	}
}

func TestRepo_List_IsolatedPerExecutive(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	execA := seedExec(t, pool)
	execB := seedExec(t, pool)
	start := time.Date(2024, time.July, 1, 9, 0, 0, 0, time.UTC)
	testhelper.SeedEvent(t, pool, execA.ID, start)
	testhelper.SeedEvent(t, pool, execB.ID, start)

	got, err := repo.List(ctx, execA.ID, event.ListFilter{})
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}
	for _, e := range got {
		if e.ExecutiveID != execA.ID {
			t.Fatalf("List leaked event %s of another executive", e.ID)
		}
	}
}

func TestRepo_ReplaceSeries(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	exec := seedExec(t, pool)
	start := time.Date(2024, time.August, 5, 14, 0, 0, 0, time.UTC)

	// Original series: 4 members.
	var original []domain.Event
	for i := 0; i < 4; i++ {
		e := makeEvent(exec.ID, uuid.NewString(), start.AddDate(0, 0, i))
		e.ID = "evt_recur_old_" + string(rune('0'+i))
		e.RecurrenceID = "recur_old"
		original = append(original, e)
	}
	if err := repo.CreateBatch(ctx, original); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}

	// Replacement series: 2 members under the same id.
	var replacement []domain.Event
	for i := 0; i < 2; i++ {
		e := makeEvent(exec.ID, "evt_recur_old_r"+string(rune('0'+i)), start.AddDate(0, 0, 7*i))
		e.RecurrenceID = "recur_old"
		replacement = append(replacement, e)
	}

	if err := repo.ReplaceSeries(ctx, exec.ID, "recur_old", "", replacement); err != nil {
		t.Fatalf("ReplaceSeries: %v", err)
	}

	got, err := repo.ListSeries(ctx, exec.ID, "recur_old")
	if err != nil {
		t.Fatalf("ListSeries: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("series has %d members after replace, want 2", len(got))
	}
	for _, e := range got {
		if e.ID != "evt_recur_old_r0" && e.ID != "evt_recur_old_r1" {
			t.Errorf("stale member %s survived the replacement", e.ID)
		}
	}
}

func TestRepo_DeleteBySeriesFrom(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	exec := seedExec(t, pool)
	start := time.Date(2024, time.September, 2, 9, 0, 0, 0, time.UTC)

	var series []domain.Event
	for i := 0; i < 5; i++ {
		e := makeEvent(exec.ID, "evt_recur_f_"+string(rune('0'+i)), start.AddDate(0, 0, i))
		e.RecurrenceID = "recur_f"
		series = append(series, e)
	}
	if err := repo.CreateBatch(ctx, series); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}

	// Remove the third member and everything after it.
	n, err := repo.DeleteBySeriesFrom(ctx, exec.ID, "recur_f", series[2].StartTime)
	if err != nil {
		t.Fatalf("DeleteBySeriesFrom: %v", err)
	}
	if n != 3 {
		t.Fatalf("DeleteBySeriesFrom removed %d rows, want 3", n)
	}

	remaining, err := repo.ListSeries(ctx, exec.ID, "recur_f")
	if err != nil {
		t.Fatalf("ListSeries: %v", err)
	}
	if len(remaining) != 2 {
		t.Fatalf("series has %d members, want 2", len(remaining))
	}
	for _, e := range remaining {
		if !e.StartTime.Before(series[2].StartTime) {
			t.Errorf("member %s at %s should have been removed", e.ID, e.StartTime)
		}
	}
}

func TestRepo_Delete_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	err := repo.Delete(ctx, "evt_missing_1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_EventTypes(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	typ := domain.EventType{ID: uuid.New(), Name: "Board-" + uuid.NewString()[:8], ColorHex: "#336699"}
	if err := repo.CreateType(ctx, &typ); err != nil {
		t.Fatalf("CreateType: %v", err)
	}

	types, err := repo.ListTypes(ctx)
	if err != nil {
		t.Fatalf("ListTypes: %v", err)
	}
	found := false
	for _, tt := range types {
		if tt.ID == typ.ID {
			found = true
			if tt.ColorHex != "#336699" {
				t.Errorf("ColorHex mismatch: got %q", tt.ColorHex)
			}
		}
	}
	if !found {
		t.Fatal("created event type not returned by ListTypes")
	}
}
