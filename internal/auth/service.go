package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lernify/road-api/internal/cache"
	"github.com/lernify/road-api/internal/models"
	"github.com/lernify/road-api/internal/storage"
)

var (
	// ErrEmailTaken is returned when registering an email that already has an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on login with an unknown email or wrong password.
	// Both cases map to the same error so responses do not reveal which part failed.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken is returned when a bearer token is missing, unknown or expired.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrWrongPassword is returned by ChangePassword when the old password does not match.
	ErrWrongPassword = errors.New("old password incorrect")
)

// Service implements account registration, login, token verification and
// profile management on top of a storage repository. Token lookups go through
// an optional Redis-backed cache; a nil cache disables caching entirely.
type Service struct {
	repo     storage.Repository
	tokens   *cache.TokenCache
	tokenTTL time.Duration
}

// NewService creates an auth service. tokenTTL bounds the lifetime of issued
// bearer tokens.
func NewService(repo storage.Repository, tokens *cache.TokenCache, tokenTTL time.Duration) *Service {
	return &Service{
		repo:     repo,
		tokens:   tokens,
		tokenTTL: tokenTTL,
	}
}

// Register validates the request and creates a new user account.
// The email is normalized to lower case before the uniqueness check.
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, salt, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:            uuid.New().String(),
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Email:         email,
		Phone:         strings.TrimSpace(req.Phone),
		Qualification: req.Qualification,
		PasswordHash:  hash,
		Salt:          salt,
		Progress:      map[string]int{},
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login verifies the credentials and issues a fresh bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !VerifyPassword(password, user.Salt, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := models.GenerateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	authToken := &models.AuthToken{
		Token:     token,
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.tokenTTL),
	}
	if err := s.repo.CreateToken(ctx, authToken); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}

	if err := s.tokens.Set(ctx, token, user.ID, authToken.TimeRemaining()); err != nil {
		slog.Warn("failed to cache token", "error", err)
	}

	slog.Info("user logged in", "user_id", user.ID)
	return &models.LoginResponse{
		Token:     token,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, nil
}

// Authenticate resolves a bearer token to its user. It consults the cache
// first and falls back to the repository, refilling the cache on a hit.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	userID, err := s.tokens.Get(ctx, token)
	if err != nil {
		slog.Warn("token cache lookup failed", "error", err)
	}
	if userID != "" {
		user, err := s.repo.GetUserByID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load user: %w", err)
		}
		if user != nil {
			return user, nil
		}
		// Cached token points at a deleted user. Drop the stale entry and
		// re-check against the repository below.
		if err := s.tokens.Delete(ctx, token); err != nil {
			slog.Warn("failed to evict stale token", "error", err)
		}
	}

	authToken, err := s.repo.GetToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to look up token: %w", err)
	}
	if authToken == nil {
		return nil, ErrInvalidToken
	}
	if authToken.IsExpired() {
		if err := s.repo.DeleteToken(ctx, token); err != nil {
			slog.Warn("failed to delete expired token", "error", err)
		}
		return nil, ErrInvalidToken
	}

	user, err := s.repo.GetUserByID(ctx, authToken.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidToken
	}

	if err := s.tokens.Set(ctx, token, user.ID, authToken.TimeRemaining()); err != nil {
		slog.Warn("failed to cache token", "error", err)
	}
	return user, nil
}

// Logout revokes a bearer token. Revoking an unknown token is not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.repo.DeleteToken(ctx, token); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	if err := s.tokens.Delete(ctx, token); err != nil {
		slog.Warn("failed to evict token from cache", "error", err)
	}
	return nil
}

// ChangePassword verifies the old password and stores a hash of the new one.
// Tokens issued before the change stay valid.
func (s *Service) ChangePassword(ctx context.Context, user *models.User, req *models.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if !VerifyPassword(req.OldPassword, user.Salt, user.PasswordHash) {
		return ErrWrongPassword
	}

	hash, salt, err := HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateUserPassword(ctx, user.ID, hash, salt); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	slog.Info("password changed", "user_id", user.ID)
	return nil
}

// UpdateProfile applies a partial profile update and returns the fresh user.
func (s *Service) UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	update := &models.UpdateProfileRequest{
		FirstName:     trimmed(req.FirstName),
		LastName:      trimmed(req.LastName),
		Phone:         trimmed(req.Phone),
		Qualification: req.Qualification,
	}
	if !update.IsEmpty() {
		if err := s.repo.UpdateUserProfile(ctx, userID, update); err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	return &s
}
