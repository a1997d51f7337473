package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/task"
	"github.com/secretaria-app/secretaria-backend/internal/domain"
)

// ListTasks returns the executive's tasks in the given due-date range,
// ordered by due date. Zero From/To leaves that bound open; empty status and
// priority match everything.
func (s *Service) ListTasks(ctx context.Context, input ListTasksInput) ([]domain.Task, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := s.access.CheckExecutive(ctx, input.ExecutiveID); err != nil {
		return nil, err
	}

	tasks, err := s.tasks.List(ctx, input.ExecutiveID, task.ListFilter{
		From:     input.From,
		To:       input.To,
		Status:   input.Status,
		Priority: input.Priority,
	})
	if err != nil {
		return nil, fmt.Errorf("tasks.ListTasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a single task by id, subject to the caller's visibility.
func (s *Service) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	if id == "" {
		return nil, domain.NewValidationError("id", "required")
	}

	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("tasks.GetTask: %w", err)
	}
	if err := s.access.CheckExecutive(ctx, t.ExecutiveID); err != nil {
		return nil, err
	}
	return t, nil
}
