package storage

import (
	"context"

	"github.com/lernify/road-api/internal/models"
)

// Repository defines the persistence interface for student accounts,
// auth tokens, progress, attempts and resumes. Lookup methods return
// (nil, nil) when the record does not exist.
type Repository interface {
	// Users
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUserProfile(ctx context.Context, id string, upd *models.UpdateProfileRequest) error
	UpdateUserPassword(ctx context.Context, id, passwordHash, salt string) error

	// Tokens
	CreateToken(ctx context.Context, t *models.AuthToken) error
	GetToken(ctx context.Context, token string) (*models.AuthToken, error)
	DeleteToken(ctx context.Context, token string) error
	DeleteExpiredTokens(ctx context.Context) (int64, error)

	// Progress
	DomainProgress(ctx context.Context, userID, domain string) (int, error)
	AllProgress(ctx context.Context, userID string) (map[string]int, error)
	AdvanceProgress(ctx context.Context, userID, domain string, stepIndex int) (int, error)

	// Attempts
	AppendAttempt(ctx context.Context, a *models.Attempt) error
	ListAttempts(ctx context.Context, userID string) ([]*models.Attempt, error)

	// Resumes
	UpsertResume(ctx context.Context, userID string, resume *models.Resume) error
	GetResume(ctx context.Context, userID string) (*models.Resume, error)

	// Health
	Ping(ctx context.Context) error
	Close() error
}
