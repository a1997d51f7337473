package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/secretaria-app/secretaria-backend/internal/domain"
	"github.com/secretaria-app/secretaria-backend/internal/schedule"
)

// SaveTask creates or edits a task, recurring or one-off. The series
// replacement protocol matches agenda.SaveEvent: editing any member of a
// series regenerates the whole series under its original series id, and a
// nil rule converts the member to a standalone task.
func (s *Service) SaveTask(ctx context.Context, input SaveTaskInput) (*SaveResult, error) {
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
	due := input.DueDate.UTC()
	edited := domain.Task{
		ID:          input.ID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC),
		Priority:    input.Priority,
		Status:      input.Status,
		ExecutiveID: input.ExecutiveID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var current []domain.Task
	oldSeriesID := ""
	if input.ID != "" {
		existing, err := s.tasks.GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("tasks.SaveTask get task: %w", err)
		}
		if existing.ExecutiveID != input.ExecutiveID {
			return nil, domain.ErrForbidden
		}
		edited.CreatedAt = existing.CreatedAt

		oldSeriesID = existing.RecurrenceID
		if oldSeriesID != "" {
			current, err = s.tasks.ListSeries(ctx, input.ExecutiveID, oldSeriesID)
			if err != nil {
				return nil, fmt.Errorf("tasks.SaveTask list series: %w", err)
			}
		} else {
			current = []domain.Task{*existing}
		}
	}

	rows := s.engine.Resolve(current, edited, input.Rule)

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.tasks.ReplaceSeries(ctx, input.ExecutiveID, oldSeriesID, input.ID, rows)
	})
	if err != nil {
		return nil, fmt.Errorf("tasks.SaveTask replace series: %w", err)
	}

	s.log.InfoContext(ctx, "task saved",
		slog.String("executive_id", input.ExecutiveID.String()),
		slog.Int("occurrences", len(rows)),
		slog.Bool("recurring", input.Rule != nil))

	return &SaveResult{Saved: rows, Warnings: warnings}, nil
}
