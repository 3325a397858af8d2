package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskforge/taskforge/internal/core/domain"
	"github.com/taskforge/taskforge/internal/core/ports"
)

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by id
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

type stubSessionStore struct {
	entries map[string]string
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{entries: make(map[string]string)}
}

func (s *stubSessionStore) Store(_ context.Context, userID, refreshToken string, _ time.Duration) error {
	s.entries[userID] = refreshToken
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, userID string) (string, error) {
	return s.entries[userID], nil
}

func (s *stubSessionStore) Delete(_ context.Context, userID string) error {
	delete(s.entries, userID)
	return nil
}

func newAuthFixture() (*AuthService, *stubUserRepo, *stubSessionStore, *TokenIssuer) {
	repo := newStubUserRepo()
	sessions := newStubSessionStore()
	tokens := NewTokenIssuer(testSecret, 15*time.Minute, 7*24*time.Hour)
	svc := NewAuthService(repo, sessions, NewPasswordHasher(), tokens, zerolog.Nop())
	return svc, repo, sessions, tokens
}

func registerTestUser(t *testing.T, svc *AuthService, email, password string) *domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:     email,
		Password:  password,
		FirstName: "Test",
		LastName:  "User",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	return user
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:     "  Alice@Example.COM ",
		Password:  "secret1",
		FirstName: "Alice",
		LastName:  "Smith",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "secret1" || user.PasswordHash == "" {
		t.Fatalf("expected password to be hashed")
	}
	if !NewPasswordHasher().Verify("secret1", user.PasswordHash) {
		t.Fatalf("stored hash does not match password")
	}
	if user.Role != domain.RoleMember {
		t.Fatalf("expected default role %q, got %q", domain.RoleMember, user.Role)
	}
	if user.ID == "" {
		t.Fatalf("expected assigned id")
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, repo, _, _ := newAuthFixture()

	registerTestUser(t, svc, "bob@example.com", "secret1")
	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:     "BOB@example.com",
		Password:  "another",
		FirstName: "Bob",
		LastName:  "Jones",
	}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected exactly one stored user, got %d", len(repo.users))
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, sessions, tokens := newAuthFixture()
	user := registerTestUser(t, svc, "carol@example.com", "s3cret1")

	pair, loggedIn, err := svc.Login(context.Background(), "carol@example.com", "s3cret1")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected non-empty token pair")
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Fatalf("expected distinct access and refresh tokens")
	}
	if loggedIn.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, loggedIn.ID)
	}

	// The session slot must hold exactly the issued refresh token.
	if sessions.entries[user.ID] != pair.RefreshToken {
		t.Fatalf("expected refresh token stored in session slot")
	}

	userID, err := tokens.Verify(pair.AccessToken)
	if err != nil || userID != user.ID {
		t.Fatalf("access token does not verify to the user: %v", err)
	}
}

func TestAuthService_Login_InvalidCredentialsIndistinguishable(t *testing.T) {
	svc, _, _, _ := newAuthFixture()
	registerTestUser(t, svc, "dave@example.com", "goodpass")

	_, _, wrongPass := svc.Login(context.Background(), "dave@example.com", "badpass")
	_, _, unknown := svc.Login(context.Background(), "ghost@example.com", "whatever")

	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongPass)
	}
	if !errors.Is(unknown, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", unknown)
	}
}

func TestAuthService_Refresh_Success(t *testing.T) {
	svc, _, _, tokens := newAuthFixture()
	user := registerTestUser(t, svc, "erin@example.com", "secret1")

	pair, _, err := svc.Login(context.Background(), "erin@example.com", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	accessToken, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	userID, err := tokens.Verify(accessToken)
	if err != nil || userID != user.ID {
		t.Fatalf("refreshed access token does not verify: %v", err)
	}
}

func TestAuthService_Refresh_AccessTokenRejected(t *testing.T) {
	svc, _, _, _ := newAuthFixture()
	registerTestUser(t, svc, "frank@example.com", "secret1")

	pair, _, err := svc.Login(context.Background(), "frank@example.com", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// The access token verifies cryptographically but does not match the
	// session slot, so it must not pass as a refresh token.
	if _, err := svc.Refresh(context.Background(), pair.AccessToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for access token, got %v", err)
	}
}

func TestAuthService_Refresh_AfterLogout(t *testing.T) {
	svc, _, _, _ := newAuthFixture()
	user := registerTestUser(t, svc, "gina@example.com", "secret1")

	pair, _, err := svc.Login(context.Background(), "gina@example.com", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := svc.Logout(context.Background(), user.ID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	// Revocation beats cryptographic validity.
	if _, err := svc.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after logout, got %v", err)
	}
}

func TestAuthService_Refresh_SecondLoginInvalidatesFirst(t *testing.T) {
	svc, _, _, _ := newAuthFixture()
	registerTestUser(t, svc, "hank@example.com", "secret1")

	first, _, err := svc.Login(context.Background(), "hank@example.com", "secret1")
	if err != nil {
		t.Fatalf("first login failed: %v", err)
	}
	time.Sleep(1100 * time.Millisecond) // distinct exp → distinct token
	second, _, err := svc.Login(context.Background(), "hank@example.com", "secret1")
	if err != nil {
		t.Fatalf("second login failed: %v", err)
	}
	if first.RefreshToken == second.RefreshToken {
		t.Fatalf("expected second login to issue a different refresh token")
	}

	if _, err := svc.Refresh(context.Background(), first.RefreshToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected first session to be invalidated, got %v", err)
	}
	if _, err := svc.Refresh(context.Background(), second.RefreshToken); err != nil {
		t.Fatalf("expected second session to remain live, got %v", err)
	}
}

func TestAuthService_Refresh_Garbage(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	if _, err := svc.Refresh(context.Background(), "not-a-token"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthService_GetMe(t *testing.T) {
	svc, _, _, _ := newAuthFixture()
	user := registerTestUser(t, svc, "iris@example.com", "secret1")

	got, err := svc.GetMe(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetMe returned error: %v", err)
	}
	if got.Email != "iris@example.com" {
		t.Fatalf("unexpected email %q", got.Email)
	}

	if _, err := svc.GetMe(context.Background(), "missing-id"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Logout_Idempotent(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	if err := svc.Logout(context.Background(), "nobody"); err != nil {
		t.Fatalf("expected logout of unknown user to succeed, got %v", err)
	}
}
