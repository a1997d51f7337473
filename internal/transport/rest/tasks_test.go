package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/secretaria-app/secretaria-backend/internal/domain"
	"github.com/secretaria-app/secretaria-backend/internal/service/tasks"
)

type taskServiceMock struct {
	SaveTaskFunc     func(ctx context.Context, input tasks.SaveTaskInput) (*tasks.SaveResult, error)
	GetTaskFunc      func(ctx context.Context, id string) (*domain.Task, error)
	ListTasksFunc    func(ctx context.Context, input tasks.ListTasksInput) ([]domain.Task, error)
	DeleteTaskFunc   func(ctx context.Context, id string, scope domain.DeleteScope) error
	UpdateStatusFunc func(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error)
}

func (m *taskServiceMock) SaveTask(ctx context.Context, input tasks.SaveTaskInput) (*tasks.SaveResult, error) {
	return m.SaveTaskFunc(ctx, input)
}

func (m *taskServiceMock) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return m.GetTaskFunc(ctx, id)
}

func (m *taskServiceMock) ListTasks(ctx context.Context, input tasks.ListTasksInput) ([]domain.Task, error) {
	return m.ListTasksFunc(ctx, input)
}

func (m *taskServiceMock) DeleteTask(ctx context.Context, id string, scope domain.DeleteScope) error {
	return m.DeleteTaskFunc(ctx, id, scope)
}

func (m *taskServiceMock) UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error) {
	return m.UpdateStatusFunc(ctx, id, status)
}

func TestSaveTask_CreateRecurring(t *testing.T) {
	t.Parallel()

	execID := uuid.New()
	svc := &taskServiceMock{
		SaveTaskFunc: func(_ context.Context, input tasks.SaveTaskInput) (*tasks.SaveResult, error) {
			if input.Rule == nil || input.Rule.Frequency != domain.FrequencyWeekly {
				t.Errorf("expected weekly rule, got %+v", input.Rule)
			}
			return &tasks.SaveResult{Saved: []domain.Task{
				{ID: "task_s_0", ExecutiveID: input.ExecutiveID, Title: input.Title},
				{ID: "task_s_1", ExecutiveID: input.ExecutiveID, Title: input.Title},
			}}, nil
		},
	}
	h := NewTaskHandler(svc, discardLogger())

	body := `{"executiveId":"` + execID.String() + `","title":"Weekly report",` +
		`"dueDate":"2026-03-02T00:00:00Z",` +
		`"rule":{"frequency":"weekly","interval":1,"daysOfWeek":[1],"count":2}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.SaveTask(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp saveTasksResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(resp.Tasks))
	}
}

func TestUpdateStatus(t *testing.T) {
	t.Parallel()

	svc := &taskServiceMock{
		UpdateStatusFunc: func(_ context.Context, id string, status domain.TaskStatus) (*domain.Task, error) {
			if id != "task_s_1" {
				t.Errorf("expected id task_s_1, got %q", id)
			}
			return &domain.Task{ID: id, Status: status, Priority: domain.TaskPriorityMedium}, nil
		},
	}
	h := NewTaskHandler(svc, discardLogger())

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/tasks/task_s_1/status",
		strings.NewReader(`{"status":"DONE"}`))
	req.SetPathValue("id", "task_s_1")
	rec := httptest.NewRecorder()

	h.UpdateStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp taskResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "DONE" {
		t.Errorf("expected status DONE, got %q", resp.Status)
	}
}

func TestUpdateStatus_Invalid(t *testing.T) {
	t.Parallel()

	svc := &taskServiceMock{
		UpdateStatusFunc: func(_ context.Context, _ string, _ domain.TaskStatus) (*domain.Task, error) {
			return nil, domain.NewValidationError("status", "unknown status")
		},
	}
	h := NewTaskHandler(svc, discardLogger())

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/tasks/task_s_1/status",
		strings.NewReader(`{"status":"SHIPPED"}`))
	req.SetPathValue("id", "task_s_1")
	rec := httptest.NewRecorder()

	h.UpdateStatus(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestListTasks_Filters(t *testing.T) {
	t.Parallel()

	execID := uuid.New()

	var gotInput tasks.ListTasksInput
	svc := &taskServiceMock{
		ListTasksFunc: func(_ context.Context, input tasks.ListTasksInput) ([]domain.Task, error) {
			gotInput = input
			return nil, nil
		},
	}
	h := NewTaskHandler(svc, discardLogger())

	url := "/api/v1/tasks?executiveId=" + execID.String() + "&status=TODO&priority=HIGH"
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()

	h.ListTasks(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if gotInput.Status != domain.TaskStatusTodo || gotInput.Priority != domain.TaskPriorityHigh {
		t.Errorf("unexpected filters: %+v", gotInput)
	}
}

func TestDeleteTask_ScopeForwarded(t *testing.T) {
	t.Parallel()

	var gotScope domain.DeleteScope
	svc := &taskServiceMock{
		DeleteTaskFunc: func(_ context.Context, _ string, scope domain.DeleteScope) error {
			gotScope = scope
			return nil
		},
	}
	h := NewTaskHandler(svc, discardLogger())

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/tasks/task_s_0?scope=all", nil)
	req.SetPathValue("id", "task_s_0")
	rec := httptest.NewRecorder()

	h.DeleteTask(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	if gotScope != domain.DeleteScopeAll {
		t.Errorf("expected scope all, got %q", gotScope)
	}
}
