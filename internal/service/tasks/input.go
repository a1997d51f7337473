package tasks

import (
	"time"

	"github.com/google/uuid"

	"github.com/secretaria-app/secretaria-backend/internal/domain"
)

// SaveTaskInput holds parameters for SaveTask. An empty ID creates a new
// task; a non-empty ID edits an existing one. Rule is the recurrence pattern
// to apply, nil for a one-off task.
type SaveTaskInput struct {
	ID          string
	ExecutiveID uuid.UUID
	Title       string
	Description string
	DueDate     time.Time
	Priority    domain.TaskPriority
	Status      domain.TaskStatus
	Rule        *domain.RecurrenceRule
}

// Validate validates the save input. Empty priority and status default to
// MEDIUM and TODO.
func (i *SaveTaskInput) Validate() error {
	var errs []domain.FieldError

	if i.ExecutiveID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "executive_id", Message: "required"})
	}
	if i.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	} else if len(i.Title) > 500 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "too long"})
	}
	if i.DueDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "due_date", Message: "required"})
	}

	if i.Priority == "" {
		i.Priority = domain.TaskPriorityMedium
	} else if !i.Priority.IsValid() {
		errs = append(errs, domain.FieldError{Field: "priority", Message: "must be HIGH, MEDIUM or LOW"})
	}
	if i.Status == "" {
		i.Status = domain.TaskStatusTodo
	} else if !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be TODO, IN_PROGRESS or DONE"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListTasksInput holds parameters for ListTasks.
type ListTasksInput struct {
	ExecutiveID uuid.UUID
	From        time.Time
	To          time.Time
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
}

// Validate validates the list input.
func (i ListTasksInput) Validate() error {
	var errs []domain.FieldError

	if i.ExecutiveID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "executive_id", Message: "required"})
	}
	if !i.From.IsZero() && !i.To.IsZero() && i.To.Before(i.From) {
		errs = append(errs, domain.FieldError{Field: "to", Message: "before from"})
	}
	if i.Status != "" && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}
	if i.Priority != "" && !i.Priority.IsValid() {
		errs = append(errs, domain.FieldError{Field: "priority", Message: "unknown priority"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SaveResult is returned by SaveTask. Saved lists every persisted occurrence
// of the affected series, ordered by due date. Warnings carries non-blocking
// rule diagnostics.
type SaveResult struct {
	Saved    []domain.Task
	Warnings []string
}
