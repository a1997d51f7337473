// Command seeder populates the database with demo data: one organization
// with departments, two executives, a secretary assigned to both, login
// users for every role, and a sample agenda (events, tasks, contacts,
// expenses). It is intended for local development and demos, not production.
//
// Flags:
//
//	--password  plaintext password assigned to every seeded user (default: changeme123)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/secretaria-app/secretaria-backend/internal/adapter/postgres"
	"github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/contact"
	"github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/event"
	"github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/executive"
	"github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/expense"
	"github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/organization"
	"github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/secretary"
	"github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/task"
	"github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/user"
	"github.com/secretaria-app/secretaria-backend/internal/app"
	"github.com/secretaria-app/secretaria-backend/internal/config"
	"github.com/secretaria-app/secretaria-backend/internal/domain"
	"github.com/secretaria-app/secretaria-backend/internal/schedule"
)

func main() {
	passwordFlag := flag.String("password", "changeme123", "password for every seeded user")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if err := seed(ctx, pool, cfg, *passwordFlag); err != nil {
		logger.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("demo data seeded")
}

func seed(ctx context.Context, pool *pgxpool.Pool, cfg *config.Config, password string) error {
	now := time.Now().UTC()

	// Tenancy.
	org := &domain.Organization{ID: uuid.New(), Name: "Meridian Group", CreatedAt: now, UpdatedAt: now}
	if err := organization.New(pool).Create(ctx, org); err != nil {
		return fmt.Errorf("create organization: %w", err)
	}

	board := &domain.Department{ID: uuid.New(), Name: "Board", OrganizationID: org.ID, CreatedAt: now, UpdatedAt: now}
	finance := &domain.Department{ID: uuid.New(), Name: "Finance", OrganizationID: org.ID, CreatedAt: now, UpdatedAt: now}
	for _, d := range []*domain.Department{board, finance} {
		if err := organization.New(pool).CreateDepartment(ctx, d); err != nil {
			return fmt.Errorf("create department %s: %w", d.Name, err)
		}
	}

	// Executives and their secretary.
	execRepo := executive.New(pool)
	ceo := &domain.Executive{
		ID:             uuid.New(),
		FullName:       "Helena Vargas",
		JobTitle:       ptr("CEO"),
		WorkEmail:      ptr("helena.vargas@meridian.example"),
		WorkPhone:      ptr("+55 11 4002-1001"),
		OrganizationID: &org.ID,
		DepartmentID:   &board.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	cfo := &domain.Executive{
		ID:             uuid.New(),
		FullName:       "Ricardo Lima",
		JobTitle:       ptr("CFO"),
		WorkEmail:      ptr("ricardo.lima@meridian.example"),
		OrganizationID: &org.ID,
		DepartmentID:   &finance.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, e := range []*domain.Executive{ceo, cfo} {
		if err := execRepo.Create(ctx, e); err != nil {
			return fmt.Errorf("create executive %s: %w", e.FullName, err)
		}
	}

	secRepo := secretary.New(pool)
	sec := &domain.Secretary{
		ID:        uuid.New(),
		FullName:  "Marina Costa",
		Email:     ptr("marina.costa@meridian.example"),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := secRepo.Create(ctx, sec); err != nil {
		return fmt.Errorf("create secretary: %w", err)
	}
	for _, e := range []*domain.Executive{ceo, cfo} {
		if err := secRepo.Assign(ctx, sec.ID, e.ID); err != nil {
			return fmt.Errorf("assign secretary to %s: %w", e.FullName, err)
		}
	}

	// One login per role.
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.Auth.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	userRepo := user.New(pool)
	users := []domain.User{
		{ID: uuid.New(), Email: "admin@meridian.example", FullName: "Admin", PasswordHash: string(hash), Role: domain.RoleAdmin, OrganizationID: &org.ID},
		{ID: uuid.New(), Email: "marina.costa@meridian.example", FullName: sec.FullName, PasswordHash: string(hash), Role: domain.RoleSecretary, OrganizationID: &org.ID, SecretaryID: &sec.ID},
		{ID: uuid.New(), Email: "helena.vargas@meridian.example", FullName: ceo.FullName, PasswordHash: string(hash), Role: domain.RoleExecutive, OrganizationID: &org.ID, ExecutiveID: &ceo.ID},
	}
	for i := range users {
		users[i].CreatedAt = now
		users[i].UpdatedAt = now
		if err := userRepo.Create(ctx, &users[i]); err != nil {
			return fmt.Errorf("create user %s: %w", users[i].Email, err)
		}
	}

	if err := seedAgenda(ctx, pool, cfg, ceo.ID, now); err != nil {
		return err
	}
	return seedLedger(ctx, pool, ceo.ID, now)
}

// seedAgenda creates a standalone event, a weekly recurring series and a
// couple of tasks for the given executive, anchored on the next Monday.
func seedAgenda(ctx context.Context, pool *pgxpool.Pool, cfg *config.Config, executiveID uuid.UUID, now time.Time) error {
	eventRepo := event.New(pool)

	meetingType := &domain.EventType{ID: uuid.New(), Name: "Meeting", ColorHex: "#2563EB"}
	travelType := &domain.EventType{ID: uuid.New(), Name: "Travel", ColorHex: "#D97706"}
	for _, t := range []*domain.EventType{meetingType, travelType} {
		if err := eventRepo.CreateType(ctx, t); err != nil {
			return fmt.Errorf("create event type %s: %w", t.Name, err)
		}
	}

	monday := nextMonday(now)

	standalone := domain.Event{
		ID:          "single_" + uuid.NewString(),
		Title:       "Flight to São Paulo",
		Description: "GRU, gate info on the booking",
		StartTime:   monday.Add(-48 * time.Hour).Add(7 * time.Hour),
		EndTime:     monday.Add(-48 * time.Hour).Add(9 * time.Hour),
		Location:    "Airport",
		EventTypeID: &travelType.ID,
		ExecutiveID: executiveID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// Weekly board sync, four occurrences.
	count := 4
	rule := domain.RecurrenceRule{
		Frequency:  domain.FrequencyWeekly,
		Interval:   1,
		DaysOfWeek: []time.Weekday{time.Monday},
		Count:      &count,
	}
	base := domain.Event{
		Title:       "Board sync",
		Description: "Weekly alignment with the board",
		StartTime:   monday.Add(9 * time.Hour),
		EndTime:     monday.Add(10 * time.Hour),
		Location:    "Room 12",
		EventTypeID: &meetingType.ID,
		ExecutiveID: executiveID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	engine := schedule.NewEngine[domain.Event](schedule.EventAdapter{}, cfg.Schedule.MaxOccurrences)
	series := engine.Expand(base, rule, "recur_"+uuid.NewString())

	if err := eventRepo.CreateBatch(ctx, append(series, standalone)); err != nil {
		return fmt.Errorf("create events: %w", err)
	}

	tasks := []domain.Task{
		{
			ID:          "single_" + uuid.NewString(),
			Title:       "Review Q3 forecast",
			DueDate:     monday.Add(24 * time.Hour),
			Priority:    domain.TaskPriorityHigh,
			Status:      domain.TaskStatusTodo,
			ExecutiveID: executiveID,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "single_" + uuid.NewString(),
			Title:       "Sign travel authorization",
			DueDate:     monday,
			Priority:    domain.TaskPriorityMedium,
			Status:      domain.TaskStatusInProgress,
			ExecutiveID: executiveID,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
	if err := task.New(pool).CreateBatch(ctx, tasks); err != nil {
		return fmt.Errorf("create tasks: %w", err)
	}
	return nil
}

// seedLedger creates address-book and expense demo rows.
func seedLedger(ctx context.Context, pool *pgxpool.Pool, executiveID uuid.UUID, now time.Time) error {
	contactRepo := contact.New(pool)

	supplierType := &domain.ContactType{ID: uuid.New(), Name: "Supplier"}
	if err := contactRepo.CreateType(ctx, supplierType); err != nil {
		return fmt.Errorf("create contact type: %w", err)
	}
	contacts := []*domain.Contact{
		{
			ID:            uuid.New(),
			FullName:      "João Pereira",
			Email:         ptr("joao@cateringsp.example"),
			Phone:         ptr("+55 11 98888-1234"),
			Company:       ptr("Catering SP"),
			ContactTypeID: &supplierType.ID,
			ExecutiveID:   executiveID,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ID:          uuid.New(),
			FullName:    "Ana Duarte",
			Role:        ptr("Legal counsel"),
			ExecutiveID: executiveID,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
	for _, c := range contacts {
		if err := contactRepo.Create(ctx, c); err != nil {
			return fmt.Errorf("create contact %s: %w", c.FullName, err)
		}
	}

	expenseRepo := expense.New(pool)
	travelCat := &domain.ExpenseCategory{ID: uuid.New(), Name: "Travel"}
	if err := expenseRepo.CreateCategory(ctx, travelCat); err != nil {
		return fmt.Errorf("create expense category: %w", err)
	}
	expenses := []*domain.Expense{
		{
			ID:          uuid.New(),
			Description: "Flight GRU-SDU",
			AmountCents: 184900,
			ExpenseDate: now.Truncate(24 * time.Hour),
			Type:        domain.ExpenseTypePayable,
			EntityType:  domain.ExpenseEntityCompany,
			CategoryID:  &travelCat.ID,
			Status:      domain.ExpenseStatusPending,
			ExecutiveID: executiveID,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          uuid.New(),
			Description: "Speaking fee, fintech summit",
			AmountCents: 1200000,
			ExpenseDate: now.Truncate(24 * time.Hour),
			Type:        domain.ExpenseTypeReceivable,
			EntityType:  domain.ExpenseEntityCompany,
			Status:      domain.ExpenseStatusReceived,
			ExecutiveID: executiveID,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
	for _, e := range expenses {
		if err := expenseRepo.Create(ctx, e); err != nil {
			return fmt.Errorf("create expense %s: %w", e.Description, err)
		}
	}
	return nil
}

// nextMonday returns UTC midnight of the first Monday strictly after t.
func nextMonday(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	for {
		day = day.AddDate(0, 0, 1)
		if day.Weekday() == time.Monday {
			return day
		}
	}
}

func ptr[T any](v T) *T { return &v }
