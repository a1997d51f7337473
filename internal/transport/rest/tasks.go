package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/secretaria-app/secretaria-backend/internal/domain"
	"github.com/secretaria-app/secretaria-backend/internal/service/tasks"
)

// taskService defines the minimal interface needed by TaskHandler.
type taskService interface {
	SaveTask(ctx context.Context, input tasks.SaveTaskInput) (*tasks.SaveResult, error)
	GetTask(ctx context.Context, id string) (*domain.Task, error)
	ListTasks(ctx context.Context, input tasks.ListTasksInput) ([]domain.Task, error)
	DeleteTask(ctx context.Context, id string, scope domain.DeleteScope) error
	UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error)
}

// TaskHandler serves task REST endpoints.
type TaskHandler struct {
	svc taskService
	log *slog.Logger
}

// NewTaskHandler creates a TaskHandler.
func NewTaskHandler(svc taskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{svc: svc, log: logger.With("handler", "tasks")}
}

type saveTaskRequest struct {
	ID          string                 `json:"id,omitempty"`
	ExecutiveID uuid.UUID              `json:"executiveId"`
	Title       string                 `json:"title"`
	Description string                 `json:"description,omitempty"`
	DueDate     time.Time              `json:"dueDate"`
	Priority    string                 `json:"priority,omitempty"`
	Status      string                 `json:"status,omitempty"`
	Rule        *domain.RecurrenceRule `json:"rule,omitempty"`
}

type taskResponse struct {
	ID           string                 `json:"id"`
	ExecutiveID  uuid.UUID              `json:"executiveId"`
	Title        string                 `json:"title"`
	Description  string                 `json:"description,omitempty"`
	DueDate      time.Time              `json:"dueDate"`
	Priority     string                 `json:"priority"`
	Status       string                 `json:"status"`
	RecurrenceID string                 `json:"recurrenceId,omitempty"`
	Recurrence   *domain.RecurrenceRule `json:"recurrence,omitempty"`
}

type saveTasksResponse struct {
	Tasks    []taskResponse `json:"tasks"`
	Warnings []string       `json:"warnings,omitempty"`
}

// SaveTask handles POST /tasks and PUT /tasks/{id}.
func (h *TaskHandler) SaveTask(w http.ResponseWriter, r *http.Request) {
	var req saveTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if pathID := r.PathValue("id"); pathID != "" {
		req.ID = pathID
	}

	result, err := h.svc.SaveTask(r.Context(), tasks.SaveTaskInput{
		ID:          req.ID,
		ExecutiveID: req.ExecutiveID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    domain.TaskPriority(req.Priority),
		Status:      domain.TaskStatus(req.Status),
		Rule:        req.Rule,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	status := http.StatusOK
	if req.ID == "" {
		status = http.StatusCreated
	}
	writeJSON(w, status, toSaveTasksResponse(result))
}

// GetTask handles GET /tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.svc.GetTask(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(*task))
}

// ListTasks handles GET /tasks?executiveId=&from=&to=&status=&priority=.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	executiveID, err := uuid.Parse(q.Get("executiveId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid executiveId")
		return
	}

	input := tasks.ListTasksInput{
		ExecutiveID: executiveID,
		Status:      domain.TaskStatus(q.Get("status")),
		Priority:    domain.TaskPriority(q.Get("priority")),
	}
	if input.From, err = queryTime(q.Get("from")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid from")
		return
	}
	if input.To, err = queryTime(q.Get("to")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid to")
		return
	}

	list, err := h.svc.ListTasks(r.Context(), input)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	out := make([]taskResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTaskResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

// DeleteTask handles DELETE /tasks/{id}?scope=one|future|all.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	scope := domain.DeleteScope(r.URL.Query().Get("scope"))
	if scope == "" {
		scope = domain.DeleteScopeOne
	}

	if err := h.svc.DeleteTask(r.Context(), r.PathValue("id"), scope); err != nil {
		respondError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /tasks/{id}/status. Status applies to the one
// occurrence only, never to the whole series.
func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.svc.UpdateStatus(r.Context(), r.PathValue("id"), domain.TaskStatus(req.Status))
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(*updated))
}

func toTaskResponse(t domain.Task) taskResponse {
	return taskResponse{
		ID:           t.ID,
		ExecutiveID:  t.ExecutiveID,
		Title:        t.Title,
		Description:  t.Description,
		DueDate:      t.DueDate,
		Priority:     t.Priority.String(),
		Status:       t.Status.String(),
		RecurrenceID: t.RecurrenceID,
		Recurrence:   t.Recurrence,
	}
}

func toSaveTasksResponse(result *tasks.SaveResult) saveTasksResponse {
	out := saveTasksResponse{
		Tasks:    make([]taskResponse, 0, len(result.Saved)),
		Warnings: result.Warnings,
	}
	for _, t := range result.Saved {
		out.Tasks = append(out.Tasks, toTaskResponse(t))
	}
	return out
}
