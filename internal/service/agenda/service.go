// Package agenda implements the event side of the back-office: listing an
// executive's agenda, saving standalone or recurring events, and scoped
// deletes of series members. Series arithmetic lives in internal/schedule;
// this package loads the affected rows, runs the engine, and persists the
// replacement set in one transaction.
package agenda

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/event"
	"github.com/secretaria-app/secretaria-backend/internal/domain"
	"github.com/secretaria-app/secretaria-backend/internal/schedule"
)

type eventRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context, executiveID uuid.UUID, filter event.ListFilter) ([]domain.Event, error)
	ListSeries(ctx context.Context, executiveID uuid.UUID, seriesID string) ([]domain.Event, error)
	ReplaceSeries(ctx context.Context, executiveID uuid.UUID, removeSeriesID, removeID string, rows []domain.Event) error
	Delete(ctx context.Context, id string) error
	DeleteBySeries(ctx context.Context, executiveID uuid.UUID, seriesID string) (int, error)
	DeleteBySeriesFrom(ctx context.Context, executiveID uuid.UUID, seriesID string, from time.Time) (int, error)
	ListTypes(ctx context.Context) ([]domain.EventType, error)
	CreateType(ctx context.Context, t *domain.EventType) error
}

type accessChecker interface {
	CheckExecutive(ctx context.Context, executiveID uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements agenda operations.
type Service struct {
	log    *slog.Logger
	events eventRepo
	access accessChecker
	tx     txManager
	engine *schedule.Engine[domain.Event]
	now    func() time.Time
}

// NewService creates an agenda service. engine must be instantiated with
// schedule.EventAdapter.
func NewService(
	logger *slog.Logger,
	events eventRepo,
	access accessChecker,
	tx txManager,
	engine *schedule.Engine[domain.Event],
) *Service {
	return &Service{
		log:    logger.With("service", "agenda"),
		events: events,
		access: access,
		tx:     tx,
		engine: engine,
		now:    time.Now,
	}
}
