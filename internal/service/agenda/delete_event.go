package agenda

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/secretaria-app/secretaria-backend/internal/domain"
)

// DeleteEvent removes an event with the given scope. Scope one removes the
// occurrence itself, all the whole series, future the occurrence and every
// later sibling. For a standalone event the series scopes degrade to one.
func (s *Service) DeleteEvent(ctx context.Context, id string, scope domain.DeleteScope) error {
	if id == "" {
		return domain.NewValidationError("id", "required")
	}
	if !scope.IsValid() {
		return domain.NewValidationError("scope", "must be one, future or all")
	}

	target, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("agenda.DeleteEvent get event: %w", err)
	}
	if err := s.access.CheckExecutive(ctx, target.ExecutiveID); err != nil {
		return err
	}

	removed := 1
	switch {
	case scope == domain.DeleteScopeAll && target.IsRecurring():
		removed, err = s.events.DeleteBySeries(ctx, target.ExecutiveID, target.RecurrenceID)
	case scope == domain.DeleteScopeFuture && target.IsRecurring():
		removed, err = s.events.DeleteBySeriesFrom(ctx, target.ExecutiveID, target.RecurrenceID, target.StartTime)
	default:
		err = s.events.Delete(ctx, id)
	}
	if err != nil {
		return fmt.Errorf("agenda.DeleteEvent: %w", err)
	}

	s.log.InfoContext(ctx, "event deleted",
		slog.String("event_id", id),
		slog.String("scope", scope.String()),
		slog.Int("removed", removed))
	return nil
}
