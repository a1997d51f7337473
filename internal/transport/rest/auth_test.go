package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/secretaria-app/secretaria-backend/internal/domain"
	"github.com/secretaria-app/secretaria-backend/internal/service/auth"
)

type authServiceMock struct {
	LoginFunc          func(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error)
	RegisterFunc       func(ctx context.Context, input auth.RegisterInput) (*domain.User, error)
	RefreshFunc        func(ctx context.Context, input auth.RefreshInput) (*auth.AuthResult, error)
	LogoutFunc         func(ctx context.Context) error
	ChangePasswordFunc func(ctx context.Context, input auth.ChangePasswordInput) error
}

func (m *authServiceMock) Login(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error) {
	return m.LoginFunc(ctx, input)
}

func (m *authServiceMock) Register(ctx context.Context, input auth.RegisterInput) (*domain.User, error) {
	return m.RegisterFunc(ctx, input)
}

func (m *authServiceMock) Refresh(ctx context.Context, input auth.RefreshInput) (*auth.AuthResult, error) {
	return m.RefreshFunc(ctx, input)
}

func (m *authServiceMock) Logout(ctx context.Context) error {
	return m.LogoutFunc(ctx)
}

func (m *authServiceMock) ChangePassword(ctx context.Context, input auth.ChangePasswordInput) error {
	return m.ChangePasswordFunc(ctx, input)
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := &authServiceMock{
		LoginFunc: func(_ context.Context, input auth.LoginInput) (*auth.AuthResult, error) {
			if input.Email != "ana@example.com" {
				t.Errorf("unexpected email %q", input.Email)
			}
			return &auth.AuthResult{
				AccessToken:  "access",
				RefreshToken: "refresh",
				User: &domain.User{
					ID:    userID,
					Email: input.Email,
					Role:  domain.RoleSecretary,
				},
			}, nil
		},
	}
	h := NewAuthHandler(svc, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"ana@example.com","password":"secret123"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp authResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.AccessToken != "access" || resp.RefreshToken != "refresh" {
		t.Errorf("unexpected tokens: %+v", resp)
	}
	if resp.User.ID != userID.String() || resp.User.Role != "secretary" {
		t.Errorf("unexpected user: %+v", resp.User)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	svc := &authServiceMock{
		LoginFunc: func(_ context.Context, _ auth.LoginInput) (*auth.AuthResult, error) {
			return nil, domain.ErrUnauthorized
		},
	}
	h := NewAuthHandler(svc, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"ana@example.com","password":"wrong"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRegister_ReturnsUserWithoutTokens(t *testing.T) {
	t.Parallel()

	secretaryID := uuid.New()
	svc := &authServiceMock{
		RegisterFunc: func(_ context.Context, input auth.RegisterInput) (*domain.User, error) {
			return &domain.User{
				ID:          uuid.New(),
				Email:       input.Email,
				FullName:    input.FullName,
				Role:        input.Role,
				SecretaryID: input.SecretaryID,
			}, nil
		},
	}
	h := NewAuthHandler(svc, discardLogger())

	body := `{"email":"bia@example.com","fullName":"Bia Santos","password":"secret123",` +
		`"role":"secretary","secretaryId":"` + secretaryID.String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp userResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Email != "bia@example.com" || resp.Role != "secretary" {
		t.Errorf("unexpected user: %+v", resp)
	}
	if resp.SecretaryID == nil || *resp.SecretaryID != secretaryID {
		t.Errorf("expected secretary id %s, got %v", secretaryID, resp.SecretaryID)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := &authServiceMock{
		RegisterFunc: func(_ context.Context, _ auth.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrAlreadyExists
		},
	}
	h := NewAuthHandler(svc, discardLogger())

	body := `{"email":"dup@example.com","fullName":"Dup","password":"secret123","role":"master"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
}

func TestRefresh_InvalidBody(t *testing.T) {
	t.Parallel()

	h := NewAuthHandler(&authServiceMock{}, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", strings.NewReader("{"))
	rec := httptest.NewRecorder()

	h.Refresh(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestLogout_NoIdentity(t *testing.T) {
	t.Parallel()

	svc := &authServiceMock{
		LogoutFunc: func(_ context.Context) error {
			return domain.ErrUnauthorized
		},
	}
	h := NewAuthHandler(svc, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()

	h.Logout(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestChangePassword_Success(t *testing.T) {
	t.Parallel()

	var got auth.ChangePasswordInput
	svc := &authServiceMock{
		ChangePasswordFunc: func(_ context.Context, input auth.ChangePasswordInput) error {
			got = input
			return nil
		},
	}
	h := NewAuthHandler(svc, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/password",
		strings.NewReader(`{"currentPassword":"old-secret","newPassword":"new-secret-1"}`))
	rec := httptest.NewRecorder()

	h.ChangePassword(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got.CurrentPassword != "old-secret" || got.NewPassword != "new-secret-1" {
		t.Errorf("unexpected input: %+v", got)
	}
}
