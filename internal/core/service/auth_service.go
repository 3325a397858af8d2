package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskforge/taskforge/internal/api/metrics"
	"github.com/taskforge/taskforge/internal/core/domain"
	"github.com/taskforge/taskforge/internal/core/ports"
)

// AuthService orchestrates registration, login, token refresh and logout.
// Session state is never stored explicitly: a session is "live" when the
// presented refresh token verifies cryptographically AND matches the single
// slot held for the user in the session store.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionStore
	hasher   *PasswordHasher
	tokens   *TokenIssuer
	logger   zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, hasher *PasswordHasher, tokens *TokenIssuer, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register creates a new account. The existence check is an optimization;
// the store's unique email index settles concurrent registrations.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	email := normalizeEmail(input.Email)

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, domain.ErrUserExists
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Role:         domain.RoleMember,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.Inc()
	s.logger.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login verifies credentials and opens a session. An unknown email and a
// wrong password both come back as ErrInvalidCredentials so callers cannot
// enumerate accounts. Storing the refresh token overwrites any previous
// session for the user.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.TokenPair, *domain.User, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, nil, domain.ErrInvalidCredentials
	}

	accessToken, err := s.tokens.IssueAccessToken(user.ID)
	if err != nil {
		return nil, nil, err
	}
	refreshToken, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, nil, err
	}

	if err := s.sessions.Store(ctx, user.ID, refreshToken, s.tokens.RefreshTTL()); err != nil {
		return nil, nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")

	return &ports.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, user, nil
}

// Refresh exchanges a live refresh token for a new access token. The stored
// slot must hold exactly the presented token: a logout or a later login
// leaves the slot empty or different, and revocation beats a still-valid
// signature.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := s.tokens.Verify(refreshToken)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("rejected").Inc()
		return "", domain.ErrInvalidToken
	}

	stored, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	if stored == "" || stored != refreshToken {
		metrics.TokenRefreshesTotal.WithLabelValues("rejected").Inc()
		return "", domain.ErrInvalidToken
	}

	accessToken, err := s.tokens.IssueAccessToken(userID)
	if err != nil {
		return "", err
	}

	metrics.TokenRefreshesTotal.WithLabelValues("issued").Inc()
	return accessToken, nil
}

// GetMe returns the public profile for a verified user id. A live token
// referencing a deleted user yields ErrUserNotFound.
func (s *AuthService) GetMe(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// Logout revokes the user's session. Idempotent: logging out twice is fine.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.sessions.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", userID).Msg("user logged out")
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
