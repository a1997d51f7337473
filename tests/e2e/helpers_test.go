//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/secretaria-app/secretaria-backend/internal/adapter/postgres"
	contactrepo "github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/contact"
	eventrepo "github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/event"
	executiverepo "github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/executive"
	expenserepo "github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/expense"
	organizationrepo "github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/organization"
	secretaryrepo "github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/secretary"
	taskrepo "github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/task"
	"github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/testhelper"
	tokenrepo "github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/token"
	userrepo "github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/user"
	authjwt "github.com/secretaria-app/secretaria-backend/internal/auth"
	"github.com/secretaria-app/secretaria-backend/internal/config"
	"github.com/secretaria-app/secretaria-backend/internal/domain"
	"github.com/secretaria-app/secretaria-backend/internal/schedule"
	"github.com/secretaria-app/secretaria-backend/internal/service/access"
	"github.com/secretaria-app/secretaria-backend/internal/service/agenda"
	authsvc "github.com/secretaria-app/secretaria-backend/internal/service/auth"
	"github.com/secretaria-app/secretaria-backend/internal/service/contacts"
	"github.com/secretaria-app/secretaria-backend/internal/service/directory"
	"github.com/secretaria-app/secretaria-backend/internal/service/expenses"
	"github.com/secretaria-app/secretaria-backend/internal/service/ical"
	"github.com/secretaria-app/secretaria-backend/internal/service/tasks"
	"github.com/secretaria-app/secretaria-backend/internal/transport/middleware"
	"github.com/secretaria-app/secretaria-backend/internal/transport/rest"
)

// testServer wraps the full HTTP stack backed by a real PostgreSQL
// container (shared across the test binary via testhelper).
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

const testJWTSecret = "test-secret-at-least-32-chars-long!!"

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	eventRepo := eventrepo.New(pool)
	taskRepo := taskrepo.New(pool)
	userRepo := userrepo.New(pool)
	tokenRepo := tokenrepo.New(pool)
	executiveRepo := executiverepo.New(pool)
	secretaryRepo := secretaryrepo.New(pool)
	organizationRepo := organizationrepo.New(pool)
	contactRepo := contactrepo.New(pool)
	expenseRepo := expenserepo.New(pool)

	authCfg := config.AuthConfig{
		JWTSecret:       testJWTSecret,
		JWTIssuer:       "secretaria-test",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 720 * time.Hour,
		BcryptCost:      bcrypt.MinCost,
	}
	jwtMgr := authjwt.NewJWTManager(authCfg.JWTSecret, authCfg.JWTIssuer, authCfg.AccessTokenTTL)
	checker := access.NewChecker(userRepo, secretaryRepo, executiveRepo)

	eventEngine := schedule.NewEngine[domain.Event](schedule.EventAdapter{}, 100)
	taskEngine := schedule.NewEngine[domain.Task](schedule.TaskAdapter{}, 100)

	authService := authsvc.NewService(logger, userRepo, tokenRepo, jwtMgr, authCfg)
	agendaService := agenda.NewService(logger, eventRepo, checker, txm, eventEngine)
	taskService := tasks.NewService(logger, taskRepo, checker, txm, taskEngine)
	directoryService := directory.NewService(logger, executiveRepo, secretaryRepo, organizationRepo)
	contactService := contacts.NewService(logger, contactRepo, checker)
	expenseService := expenses.NewService(logger, expenseRepo, checker)
	icalService := ical.NewService(logger, eventRepo, checker, config.ICalConfig{
		ProductID:    "-//secretaria//agenda//EN",
		CalendarName: "Secretaria Agenda",
	})

	mux := rest.NewRouter(rest.Handlers{
		Health:    rest.NewHealthHandler(pool, "e2e"),
		Auth:      rest.NewAuthHandler(authService, logger),
		Agenda:    rest.NewAgendaHandler(agendaService, logger),
		Tasks:     rest.NewTaskHandler(taskService, logger),
		Directory: rest.NewDirectoryHandler(directoryService, logger),
		Contacts:  rest.NewContactHandler(contactService, logger),
		Expenses:  rest.NewExpenseHandler(expenseService, logger),
		ICal:      rest.NewICalHandler(icalService, logger),
	})

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Auth(authService),
	)(mux)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
	}
}

// seedMaster inserts a master user directly and returns its credentials.
// Registration itself needs an authenticated admin, so the first account
// has to be bootstrapped below the API.
func seedMaster(t *testing.T, ts *testServer) (email, password string) {
	t.Helper()

	password = "master-password-1"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	now := time.Now().UTC()
	email = fmt.Sprintf("master-%s@example.com", uuid.NewString())
	u := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		FullName:     "Master",
		PasswordHash: string(hash),
		Role:         domain.RoleMaster,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, userrepo.New(ts.Pool).Create(context.Background(), u))
	return email, password
}

// login authenticates through the API and returns access and refresh tokens.
func login(t *testing.T, ts *testServer, email, password string) (accessToken, refreshToken string) {
	t.Helper()

	status, body := ts.doJSON(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, status, "login failed: %v", body)

	accessToken, _ = body["accessToken"].(string)
	refreshToken, _ = body["refreshToken"].(string)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)
	return accessToken, refreshToken
}

// masterToken bootstraps a master user and logs it in.
func masterToken(t *testing.T, ts *testServer) string {
	t.Helper()
	email, password := seedMaster(t, ts)
	token, _ := login(t, ts, email, password)
	return token
}

// createExecutive creates an executive through the API and returns its id.
func createExecutive(t *testing.T, ts *testServer, token, fullName string) uuid.UUID {
	t.Helper()

	status, body := ts.doJSON(t, http.MethodPost, "/api/v1/executives", token, map[string]any{
		"fullName": fullName,
	})
	require.Equal(t, http.StatusCreated, status, "create executive failed: %v", body)

	id, err := uuid.Parse(body["id"].(string))
	require.NoError(t, err)
	return id
}

// doJSON performs a request with an optional bearer token and JSON body and
// decodes the JSON response. A nil body sends no payload; a 204 response
// yields a nil map.
func (ts *testServer) doJSON(t *testing.T, method, path, token string, payload any) (int, map[string]any) {
	t.Helper()

	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, reqBody)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) == 0 {
		return resp.StatusCode, nil
	}

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body), "non-JSON response: %s", raw)
	return resp.StatusCode, body
}

// doRaw performs a request and returns the raw response body.
func (ts *testServer) doRaw(t *testing.T, method, path, token string) (int, http.Header, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, ts.URL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, resp.Header, raw
}
