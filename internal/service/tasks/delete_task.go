package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/secretaria-app/secretaria-backend/internal/domain"
)

// DeleteTask removes a task with the given scope. Scope semantics match
// agenda.DeleteEvent; for a one-off task the series scopes degrade to one.
func (s *Service) DeleteTask(ctx context.Context, id string, scope domain.DeleteScope) error {
	if id == "" {
		return domain.NewValidationError("id", "required")
	}
	if !scope.IsValid() {
		return domain.NewValidationError("scope", "must be one, future or all")
	}

	target, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("tasks.DeleteTask get task: %w", err)
	}
	if err := s.access.CheckExecutive(ctx, target.ExecutiveID); err != nil {
		return err
	}

	removed := 1
	switch {
	case scope == domain.DeleteScopeAll && target.IsRecurring():
		removed, err = s.tasks.DeleteBySeries(ctx, target.ExecutiveID, target.RecurrenceID)
	case scope == domain.DeleteScopeFuture && target.IsRecurring():
		removed, err = s.tasks.DeleteBySeriesFrom(ctx, target.ExecutiveID, target.RecurrenceID, target.DueDate)
	default:
		err = s.tasks.Delete(ctx, id)
	}
	if err != nil {
		return fmt.Errorf("tasks.DeleteTask: %w", err)
	}

	s.log.InfoContext(ctx, "task deleted",
		slog.String("task_id", id),
		slog.String("scope", scope.String()),
		slog.Int("removed", removed))
	return nil
}
