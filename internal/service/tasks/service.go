// Package tasks implements task management for executives. Recurring tasks
// follow the same save/delete protocol as agenda events: the engine in
// internal/schedule regenerates the series, and the repository swaps the old
// rows for the new ones in one transaction.
package tasks

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/task"
	"github.com/secretaria-app/secretaria-backend/internal/domain"
	"github.com/secretaria-app/secretaria-backend/internal/schedule"
)

type taskRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, executiveID uuid.UUID, filter task.ListFilter) ([]domain.Task, error)
	ListSeries(ctx context.Context, executiveID uuid.UUID, seriesID string) ([]domain.Task, error)
	ReplaceSeries(ctx context.Context, executiveID uuid.UUID, removeSeriesID, removeID string, rows []domain.Task) error
	UpdateStatus(ctx context.Context, id string, status domain.TaskStatus, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
	DeleteBySeries(ctx context.Context, executiveID uuid.UUID, seriesID string) (int, error)
	DeleteBySeriesFrom(ctx context.Context, executiveID uuid.UUID, seriesID string, from time.Time) (int, error)
}

type accessChecker interface {
	CheckExecutive(ctx context.Context, executiveID uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements task operations.
type Service struct {
	log    *slog.Logger
	tasks  taskRepo
	access accessChecker
	tx     txManager
	engine *schedule.Engine[domain.Task]
	now    func() time.Time
}

// NewService creates a tasks service. engine must be instantiated with
// schedule.TaskAdapter.
func NewService(
	logger *slog.Logger,
	tasks taskRepo,
	access accessChecker,
	tx txManager,
	engine *schedule.Engine[domain.Task],
) *Service {
	return &Service{
		log:    logger.With("service", "tasks"),
		tasks:  tasks,
		access: access,
		tx:     tx,
		engine: engine,
		now:    time.Now,
	}
}
