package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/secretaria-app/secretaria-backend/internal/adapter/postgres"
	"github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/contact"
	"github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/event"
	"github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/executive"
	"github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/expense"
	"github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/organization"
	"github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/secretary"
	"github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/task"
	"github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/token"
	"github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/user"
	authjwt "github.com/secretaria-app/secretaria-backend/internal/auth"
	"github.com/secretaria-app/secretaria-backend/internal/config"
	"github.com/secretaria-app/secretaria-backend/internal/domain"
	"github.com/secretaria-app/secretaria-backend/internal/schedule"
	"github.com/secretaria-app/secretaria-backend/internal/service/access"
	"github.com/secretaria-app/secretaria-backend/internal/service/agenda"
	"github.com/secretaria-app/secretaria-backend/internal/service/auth"
	"github.com/secretaria-app/secretaria-backend/internal/service/contacts"
	"github.com/secretaria-app/secretaria-backend/internal/service/directory"
	"github.com/secretaria-app/secretaria-backend/internal/service/expenses"
	"github.com/secretaria-app/secretaria-backend/internal/service/ical"
	"github.com/secretaria-app/secretaria-backend/internal/service/tasks"
	"github.com/secretaria-app/secretaria-backend/internal/transport/middleware"
	"github.com/secretaria-app/secretaria-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires repositories, services and HTTP handlers, and serves
// until ctx is canceled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)

	eventRepo := event.New(pool)
	taskRepo := task.New(pool)
	userRepo := user.New(pool)
	tokenRepo := token.New(pool)
	executiveRepo := executive.New(pool)
	secretaryRepo := secretary.New(pool)
	organizationRepo := organization.New(pool)
	contactRepo := contact.New(pool)
	expenseRepo := expense.New(pool)

	jwtManager := authjwt.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	checker := access.NewChecker(userRepo, secretaryRepo, executiveRepo)

	eventEngine := schedule.NewEngine[domain.Event](schedule.EventAdapter{}, cfg.Schedule.MaxOccurrences)
	taskEngine := schedule.NewEngine[domain.Task](schedule.TaskAdapter{}, cfg.Schedule.MaxOccurrences)

	authSvc := auth.NewService(logger, userRepo, tokenRepo, jwtManager, cfg.Auth)
	agendaSvc := agenda.NewService(logger, eventRepo, checker, txManager, eventEngine)
	taskSvc := tasks.NewService(logger, taskRepo, checker, txManager, taskEngine)
	directorySvc := directory.NewService(logger, executiveRepo, secretaryRepo, organizationRepo)
	contactSvc := contacts.NewService(logger, contactRepo, checker)
	expenseSvc := expenses.NewService(logger, expenseRepo, checker)
	icalSvc := ical.NewService(logger, eventRepo, checker, cfg.ICal)

	mux := rest.NewRouter(rest.Handlers{
		Health:    rest.NewHealthHandler(pool, BuildVersion()),
		Auth:      rest.NewAuthHandler(authSvc, logger),
		Agenda:    rest.NewAgendaHandler(agendaSvc, logger),
		Tasks:     rest.NewTaskHandler(taskSvc, logger),
		Directory: rest.NewDirectoryHandler(directorySvc, logger),
		Contacts:  rest.NewContactHandler(contactSvc, logger),
		Expenses:  rest.NewExpenseHandler(expenseSvc, logger),
		ICal:      rest.NewICalHandler(icalSvc, logger),
	})

	chain := []middleware.Middleware{
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(authSvc),
	}

	var limiter *middleware.RateLimiter
	if cfg.Server.RateLimitPerMinute > 0 {
		limiter = middleware.NewRateLimiter(time.Minute)
		defer limiter.Stop()
		chain = append(chain, limiter.Limit(cfg.Server.RateLimitPerMinute))
	}

	handler := middleware.Chain(chain...)(mux)

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
