package agenda

import (
	"context"
	"errors"
	"fmt"

	"github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/event"
	"github.com/secretaria-app/secretaria-backend/internal/domain"
)

// ListEvents returns the executive's events in the given range, ordered by
// start time. A zero From/To leaves that bound open.
func (s *Service) ListEvents(ctx context.Context, input ListEventsInput) ([]domain.Event, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := s.access.CheckExecutive(ctx, input.ExecutiveID); err != nil {
		return nil, err
	}

	events, err := s.events.List(ctx, input.ExecutiveID, event.ListFilter{
		From:        input.From,
		To:          input.To,
		EventTypeID: input.EventTypeID,
	})
	if err != nil {
		return nil, fmt.Errorf("agenda.ListEvents: %w", err)
	}
	return events, nil
}

// GetEvent returns a single event by id, subject to the caller's visibility.
func (s *Service) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	if id == "" {
		return nil, domain.NewValidationError("id", "required")
	}

	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("agenda.GetEvent: %w", err)
	}
	if err := s.access.CheckExecutive(ctx, e.ExecutiveID); err != nil {
		return nil, err
	}
	return e, nil
}
