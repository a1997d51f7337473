package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"
	authtoken "github.com/secretaria-app/secretaria-backend/internal/auth"
	"github.com/secretaria-app/secretaria-backend/internal/config"
	"github.com/secretaria-app/secretaria-backend/internal/domain"
	"github.com/secretaria-app/secretaria-backend/pkg/ctxutil"
)

// hashOf mirrors the hashing Refresh applies to the raw token.
func hashOf(raw string) string { return authtoken.HashToken(raw) }

//go:generate moq -out jwt_manager_mock_test.go -pkg auth . jwtManager

// defaultCfg returns a config suitable for most tests.
func defaultCfg() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:       "0123456789abcdef0123456789abcdef",
		JWTIssuer:       "secretaria-test",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 30 * 24 * time.Hour,
		BcryptCost:      bcrypt.MinCost, // minimum cost for fast tests
	}
}

// hashPassword returns a bcrypt hash for testing.
func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashPassword: %v", err)
	}
	return string(hash)
}

// userRepoFake is an in-memory userRepo.
type userRepoFake struct {
	byID    map[uuid.UUID]*domain.User
	byEmail map[string]*domain.User
}

func newUserRepoFake(users ...*domain.User) *userRepoFake {
	f := &userRepoFake{byID: map[uuid.UUID]*domain.User{}, byEmail: map[string]*domain.User{}}
	for _, u := range users {
		f.byID[u.ID] = u
		f.byEmail[u.Email] = u
	}
	return f
}

func (f *userRepoFake) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f *userRepoFake) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f *userRepoFake) Create(_ context.Context, u *domain.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return domain.ErrAlreadyExists
	}
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return nil
}

func (f *userRepoFake) UpdatePassword(_ context.Context, id uuid.UUID, hash string, updatedAt time.Time) error {
	u, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.PasswordHash = hash
	u.UpdatedAt = updatedAt
	return nil
}

// tokenRepoFake is an in-memory tokenRepo.
type tokenRepoFake struct {
	tokens map[string]*domain.RefreshToken
}

func newTokenRepoFake() *tokenRepoFake {
	return &tokenRepoFake{tokens: map[string]*domain.RefreshToken{}}
}

func (f *tokenRepoFake) Create(_ context.Context, t *domain.RefreshToken) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	f.tokens[t.TokenHash] = t
	return nil
}

func (f *tokenRepoFake) GetByHash(_ context.Context, hash string) (*domain.RefreshToken, error) {
	t, ok := f.tokens[hash]
	if !ok || t.IsRevoked() {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

func (f *tokenRepoFake) RevokeByID(_ context.Context, id uuid.UUID) error {
	for _, t := range f.tokens {
		if t.ID == id {
			now := time.Now()
			t.RevokedAt = &now
		}
	}
	return nil
}

func (f *tokenRepoFake) RevokeAllByUser(_ context.Context, userID uuid.UUID) error {
	for _, t := range f.tokens {
		if t.UserID == userID {
			now := time.Now()
			t.RevokedAt = &now
		}
	}
	return nil
}

func (f *tokenRepoFake) DeleteExpired(_ context.Context) (int, error) {
	n := 0
	for hash, t := range f.tokens {
		if t.IsExpired(time.Now()) {
			delete(f.tokens, hash)
			n++
		}
	}
	return n, nil
}

func newJWTMock() *jwtManagerMock {
	return &jwtManagerMock{
		GenerateAccessTokenFunc: func(userID uuid.UUID, role string) (string, error) {
			return "access_" + userID.String(), nil
		},
		GenerateRefreshTokenFunc: func() (string, string, error) {
			raw := uuid.NewString()
			return raw, hashOf(raw), nil
		},
		ValidateAccessTokenFunc: func(token string) (uuid.UUID, string, error) {
			return uuid.Nil, "", errors.New("not implemented")
		},
	}
}

func newTestService(users *userRepoFake, tokens *tokenRepoFake) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(logger, users, tokens, newJWTMock(), defaultCfg())
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	users := newUserRepoFake(&domain.User{
		ID:           userID,
		Email:        "ana@example.com",
		PasswordHash: hashPassword(t, "correct horse"),
		Role:         domain.RoleSecretary,
	})
	tokens := newTokenRepoFake()
	svc := newTestService(users, tokens)

	res, err := svc.Login(context.Background(), LoginInput{Email: "  Ana@Example.com ", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.AccessToken == "" || res.RefreshToken == "" {
		t.Errorf("missing tokens in result: %+v", res)
	}
	if res.User.ID != userID {
		t.Errorf("result user = %s, want %s", res.User.ID, userID)
	}
	if len(tokens.tokens) != 1 {
		t.Errorf("stored %d refresh tokens, want 1", len(tokens.tokens))
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	users := newUserRepoFake(&domain.User{
		ID:           uuid.New(),
		Email:        "ana@example.com",
		PasswordHash: hashPassword(t, "correct horse"),
		Role:         domain.RoleSecretary,
	})
	svc := newTestService(users, newTokenRepoFake())

	_, err := svc.Login(context.Background(), LoginInput{Email: "ana@example.com", Password: "wrong"})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("got %v, want ErrUnauthorized", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	t.Parallel()

	svc := newTestService(newUserRepoFake(), newTokenRepoFake())
	_, err := svc.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "whatever"})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("got %v, want ErrUnauthorized", err)
	}
}

func TestRefresh_RotatesToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	users := newUserRepoFake(&domain.User{
		ID:           userID,
		Email:        "ana@example.com",
		PasswordHash: hashPassword(t, "pw12345678"),
		Role:         domain.RoleSecretary,
	})
	tokens := newTokenRepoFake()
	svc := newTestService(users, tokens)

	login, err := svc.Login(context.Background(), LoginInput{Email: "ana@example.com", Password: "pw12345678"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), RefreshInput{RefreshToken: login.RefreshToken})
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if refreshed.RefreshToken == login.RefreshToken {
		t.Errorf("refresh token was not rotated")
	}

	// The old token is revoked; reusing it must fail.
	if _, err := svc.Refresh(context.Background(), RefreshInput{RefreshToken: login.RefreshToken}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("reuse got %v, want ErrUnauthorized", err)
	}
}

func TestRefresh_ExpiredToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	users := newUserRepoFake(&domain.User{ID: userID, Email: "ana@example.com", Role: domain.RoleSecretary})
	tokens := newTokenRepoFake()
	svc := newTestService(users, tokens)

	// HashToken("stale") is what Refresh will look up.
	raw := "stale"
	tokens.tokens[hashOf(raw)] = &domain.RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: hashOf(raw),
		ExpiresAt: time.Now().Add(-time.Hour),
	}

	_, err := svc.Refresh(context.Background(), RefreshInput{RefreshToken: raw})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("got %v, want ErrUnauthorized", err)
	}
}

func TestLogout_RevokesAllTokens(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	users := newUserRepoFake(&domain.User{
		ID:           userID,
		Email:        "ana@example.com",
		PasswordHash: hashPassword(t, "pw12345678"),
		Role:         domain.RoleSecretary,
	})
	tokens := newTokenRepoFake()
	svc := newTestService(users, tokens)

	login, err := svc.Login(context.Background(), LoginInput{Email: "ana@example.com", Password: "pw12345678"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	ctx := ctxutil.WithUserID(context.Background(), userID)
	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), RefreshInput{RefreshToken: login.RefreshToken}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("got %v, want ErrUnauthorized after logout", err)
	}
}

func TestLogout_NoUserInContext(t *testing.T) {
	t.Parallel()

	svc := newTestService(newUserRepoFake(), newTokenRepoFake())
	if err := svc.Logout(context.Background()); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("got %v, want ErrUnauthorized", err)
	}
}

func TestRegister_CreatesUser(t *testing.T) {
	t.Parallel()

	users := newUserRepoFake()
	svc := newTestService(users, newTokenRepoFake())
	secretaryID := uuid.New()

	ctx := ctxutil.WithRole(context.Background(), domain.RoleAdmin.String())
	user, err := svc.Register(ctx, RegisterInput{
		Email:       "New.Secretary@Example.com",
		FullName:    "New Secretary",
		Password:    "pw12345678",
		Role:        domain.RoleSecretary,
		SecretaryID: &secretaryID,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "new.secretary@example.com" {
		t.Errorf("email not normalized: %q", user.Email)
	}
	if user.PasswordHash == "pw12345678" || user.PasswordHash == "" {
		t.Errorf("password stored unhashed")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	users := newUserRepoFake(&domain.User{ID: uuid.New(), Email: "taken@example.com", Role: domain.RoleSecretary})
	svc := newTestService(users, newTokenRepoFake())
	secretaryID := uuid.New()

	ctx := ctxutil.WithRole(context.Background(), domain.RoleAdmin.String())
	_, err := svc.Register(ctx, RegisterInput{
		Email:       "taken@example.com",
		FullName:    "Dup",
		Password:    "pw12345678",
		Role:        domain.RoleSecretary,
		SecretaryID: &secretaryID,
	})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("got %v, want ErrAlreadyExists", err)
	}
}

func TestRegister_RoleRules(t *testing.T) {
	t.Parallel()

	svc := newTestService(newUserRepoFake(), newTokenRepoFake())
	orgID := uuid.New()

	adminCtx := ctxutil.WithRole(context.Background(), domain.RoleAdmin.String())
	secretaryCtx := ctxutil.WithRole(context.Background(), domain.RoleSecretary.String())
	masterCtx := ctxutil.WithRole(context.Background(), domain.RoleMaster.String())

	adminInput := RegisterInput{
		Email:          "boss@example.com",
		FullName:       "Boss",
		Password:       "pw12345678",
		Role:           domain.RoleAdmin,
		OrganizationID: &orgID,
	}

	// A secretary may not create accounts at all.
	secretaryID := uuid.New()
	if _, err := svc.Register(secretaryCtx, RegisterInput{
		Email: "x@example.com", FullName: "X", Password: "pw12345678",
		Role: domain.RoleSecretary, SecretaryID: &secretaryID,
	}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("secretary register got %v, want ErrForbidden", err)
	}

	// An admin may not create another admin.
	if _, err := svc.Register(adminCtx, adminInput); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("admin creating admin got %v, want ErrForbidden", err)
	}

	// A master may.
	if _, err := svc.Register(masterCtx, adminInput); err != nil {
		t.Fatalf("master creating admin: %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	users := newUserRepoFake(&domain.User{
		ID:           userID,
		Email:        "ana@example.com",
		PasswordHash: hashPassword(t, "old password"),
		Role:         domain.RoleSecretary,
	})
	tokens := newTokenRepoFake()
	svc := newTestService(users, tokens)

	login, err := svc.Login(context.Background(), LoginInput{Email: "ana@example.com", Password: "old password"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	ctx := ctxutil.WithUserID(context.Background(), userID)
	err = svc.ChangePassword(ctx, ChangePasswordInput{CurrentPassword: "old password", NewPassword: "new password"})
	if err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	// Old sessions are revoked.
	if _, err := svc.Refresh(context.Background(), RefreshInput{RefreshToken: login.RefreshToken}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("got %v, want ErrUnauthorized after password change", err)
	}

	// New password works, old one does not.
	if _, err := svc.Login(context.Background(), LoginInput{Email: "ana@example.com", Password: "new password"}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, err := svc.Login(context.Background(), LoginInput{Email: "ana@example.com", Password: "old password"}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("got %v, want ErrUnauthorized with old password", err)
	}
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	users := newUserRepoFake(&domain.User{
		ID:           userID,
		Email:        "ana@example.com",
		PasswordHash: hashPassword(t, "old password"),
		Role:         domain.RoleSecretary,
	})
	svc := newTestService(users, newTokenRepoFake())

	ctx := ctxutil.WithUserID(context.Background(), userID)
	err := svc.ChangePassword(ctx, ChangePasswordInput{CurrentPassword: "nope", NewPassword: "new password"})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("got %v, want ErrUnauthorized", err)
	}
}

func TestCleanupExpiredTokens(t *testing.T) {
	t.Parallel()

	tokens := newTokenRepoFake()
	tokens.tokens["h1"] = &domain.RefreshToken{ID: uuid.New(), TokenHash: "h1", ExpiresAt: time.Now().Add(-time.Hour)}
	tokens.tokens["h2"] = &domain.RefreshToken{ID: uuid.New(), TokenHash: "h2", ExpiresAt: time.Now().Add(time.Hour)}
	svc := newTestService(newUserRepoFake(), tokens)

	n, err := svc.CleanupExpiredTokens(context.Background())
	if err != nil {
		t.Fatalf("CleanupExpiredTokens: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted %d tokens, want 1", n)
	}
	if len(tokens.tokens) != 1 {
		t.Errorf("%d tokens remain, want 1", len(tokens.tokens))
	}
}
