package models

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// AuthToken is an opaque bearer credential bound to one user.
// A user may hold several live tokens at once (one per device/session).
type AuthToken struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired checks if the token lifetime has elapsed
func (t *AuthToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// TimeRemaining returns the duration until expiry (0 if already expired)
func (t *AuthToken) TimeRemaining() time.Duration {
	remaining := time.Until(t.ExpiresAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// GenerateToken creates a cryptographically random 48-char hex token
func GenerateToken() (string, error) {
	bytes := make([]byte, 24)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
