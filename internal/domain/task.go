package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskPriority represents how urgent a task is.
type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "HIGH"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityLow    TaskPriority = "LOW"
)

func (p TaskPriority) String() string { return string(p) }

func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityHigh, TaskPriorityMedium, TaskPriorityLow:
		return true
	}
	return false
}

// TaskStatus represents the progress state of a task.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

func (s TaskStatus) String() string { return string(s) }

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// Task is a dated to-do item for an executive. Tasks carry a due date only
// (UTC midnight), no end time. Series linkage works exactly as for events:
// expansion assigns ids "task_{seriesID}_{ordinal}" and stamps RecurrenceID
// plus the denormalized rule on every occurrence.
type Task struct {
	ID           string
	Title        string
	Description  string
	DueDate      time.Time
	Priority     TaskPriority
	Status       TaskStatus
	ExecutiveID  uuid.UUID
	RecurrenceID string
	Recurrence   *RecurrenceRule
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsRecurring reports whether the task belongs to a series.
func (t *Task) IsRecurring() bool { return t.RecurrenceID != "" }
