package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2-HMAC-SHA256 parameters. Existing password records depend on these
// staying fixed; changing them requires a rehash-on-login migration.
const (
	saltBytes      = 16
	hashIterations = 100_000
	hashKeyBytes   = 32
)

// HashPassword derives a password hash with a fresh random salt. Both are
// returned hex encoded for storage.
func HashPassword(password string) (hash, salt string, err error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return hashWithSalt(password, raw), hex.EncodeToString(raw), nil
}

// VerifyPassword reports whether a password matches the stored hash/salt pair
func VerifyPassword(password, salt, hash string) bool {
	raw, err := hex.DecodeString(salt)
	if err != nil {
		return false
	}
	computed := hashWithSalt(password, raw)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}

func hashWithSalt(password string, salt []byte) string {
	key := pbkdf2.Key([]byte(password), salt, hashIterations, hashKeyBytes, sha256.New)
	return hex.EncodeToString(key)
}
