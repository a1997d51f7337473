package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/secretaria-app/secretaria-backend/internal/domain"
)

// UpdateStatus moves a task between TODO, IN_PROGRESS and DONE. The change
// applies to this occurrence only; completing one member of a recurring
// series never touches its siblings.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error) {
	if id == "" {
		return nil, domain.NewValidationError("id", "required")
	}
	if !status.IsValid() {
		return nil, domain.NewValidationError("status", "must be TODO, IN_PROGRESS or DONE")
	}

	target, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("tasks.UpdateStatus get task: %w", err)
	}
	if err := s.access.CheckExecutive(ctx, target.ExecutiveID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if err := s.tasks.UpdateStatus(ctx, id, status, now); err != nil {
		return nil, fmt.Errorf("tasks.UpdateStatus: %w", err)
	}

	target.Status = status
	target.UpdatedAt = now

	s.log.InfoContext(ctx, "task status updated",
		slog.String("task_id", id),
		slog.String("status", status.String()))
	return target, nil
}
