package agenda

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/secretaria-app/secretaria-backend/internal/domain"
	"github.com/secretaria-app/secretaria-backend/internal/schedule"
)

// SaveEvent creates or edits an event, recurring or standalone.
//
// Editing any member of a series replaces the whole series: the old rows are
// deleted and the regenerated ones inserted in a single transaction, under
// the original series id. A nil rule on a series member converts it to a
// standalone event and drops its siblings.
func (s *Service) SaveEvent(ctx context.Context, input SaveEventInput) (*SaveResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := s.access.CheckExecutive(ctx, input.ExecutiveID); err != nil {
		return nil, err
	}

	var warnings []string
	if input.Rule != nil {
		if err := schedule.ValidateRule(*input.Rule); err != nil {
			warnings = append(warnings, err.Error())
		}
	}

	now := s.now().UTC()
	edited := domain.Event{
		ID:              input.ID,
		Title:           input.Title,
		Description:     input.Description,
		StartTime:       input.StartTime.UTC(),
		EndTime:         input.EndTime.UTC(),
		Location:        input.Location,
		EventTypeID:     input.EventTypeID,
		ExecutiveID:     input.ExecutiveID,
		ReminderMinutes: input.ReminderMinutes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// The rows the save replaces: the edited event's whole series, or just
	// the event itself when it is standalone. Empty for a create.
	var current []domain.Event
	oldSeriesID := ""
	if input.ID != "" {
		existing, err := s.events.GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("agenda.SaveEvent get event: %w", err)
		}
		if existing.ExecutiveID != input.ExecutiveID {
			return nil, domain.ErrForbidden
		}
		edited.CreatedAt = existing.CreatedAt

		oldSeriesID = existing.RecurrenceID
		if oldSeriesID != "" {
			current, err = s.events.ListSeries(ctx, input.ExecutiveID, oldSeriesID)
			if err != nil {
				return nil, fmt.Errorf("agenda.SaveEvent list series: %w", err)
			}
		} else {
			current = []domain.Event{*existing}
		}
	}

	// current contains only rows Resolve discards, so its output is exactly
	// the replacement set.
	rows := s.engine.Resolve(current, edited, input.Rule)

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.events.ReplaceSeries(ctx, input.ExecutiveID, oldSeriesID, input.ID, rows)
	})
	if err != nil {
		return nil, fmt.Errorf("agenda.SaveEvent replace series: %w", err)
	}

	s.log.InfoContext(ctx, "event saved",
		slog.String("executive_id", input.ExecutiveID.String()),
		slog.Int("occurrences", len(rows)),
		slog.Bool("recurring", input.Rule != nil))

	return &SaveResult{Saved: rows, Warnings: warnings}, nil
}
