package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/lernify/road-api/internal/models"
	"github.com/lernify/road-api/internal/storage"
)

func newTestService(t *testing.T) (*Service, storage.Repository) {
	t.Helper()

	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "auth_test.db"))
	if err != nil {
		t.Fatalf("failed to open test repository: %v", err)
	}
	t.Cleanup(func() {
		repo.Close()
	})

	return NewService(repo, nil, time.Hour), repo
}

func registerReq(email string) *models.RegisterRequest {
	return &models.RegisterRequest{
		FirstName:     "Asha",
		LastName:      "Verma",
		Email:         email,
		Phone:         "9876543210",
		Qualification: "BCA",
		Password:      "secret123",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerReq("Asha@Example.com"))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected a generated user ID")
	}
	if user.Email != "asha@example.com" {
		t.Errorf("expected lowercased email, got %q", user.Email)
	}
	if user.PasswordHash == "secret123" || user.PasswordHash == "" {
		t.Error("expected password to be stored hashed")
	}

	// Login works regardless of email case.
	resp, err := svc.Login(ctx, "ASHA@example.COM", "secret123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if len(resp.Token) != 48 {
		t.Errorf("expected 48 char token, got %d", len(resp.Token))
	}
	if resp.FirstName != "Asha" || resp.LastName != "Verma" {
		t.Errorf("unexpected name in login response: %q %q", resp.FirstName, resp.LastName)
	}

	got, err := svc.Authenticate(ctx, resp.Token)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("expected user %s from token, got %s", user.ID, got.ID)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService(t)

	req := registerReq("bad-email")
	_, err := svc.Register(context.Background(), req)
	if !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerReq("asha@example.com")); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	// The same address with different casing is still a duplicate.
	_, err := svc.Register(ctx, registerReq("Asha@Example.com"))
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerReq("asha@example.com")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := svc.Login(ctx, "asha@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestAuthenticateInvalidToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Authenticate(ctx, ""); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for empty token, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "0123456789abcdef0123456789abcdef0123456789abcdef"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for unknown token, got %v", err)
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerReq("asha@example.com"))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	expired := &models.AuthToken{
		Token:     "aaaabbbbccccddddeeeeffff000011112222333344445555",
		UserID:    user.ID,
		CreatedAt: time.Now().UTC().Add(-2 * time.Hour),
		ExpiresAt: time.Now().UTC().Add(-time.Hour),
	}
	if err := repo.CreateToken(ctx, expired); err != nil {
		t.Fatalf("CreateToken failed: %v", err)
	}

	if _, err := svc.Authenticate(ctx, expired.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}

	// Expired tokens are removed as a side effect of the failed check.
	stored, err := repo.GetToken(ctx, expired.Token)
	if err != nil {
		t.Fatalf("GetToken failed: %v", err)
	}
	if stored != nil {
		t.Error("expected expired token to be deleted after authentication attempt")
	}
}

func TestLogout(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerReq("asha@example.com")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	resp, err := svc.Login(ctx, "asha@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if err := svc.Logout(ctx, resp.Token); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if _, err := svc.Authenticate(ctx, resp.Token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected revoked token to be rejected, got %v", err)
	}

	// Logging out twice is harmless.
	if err := svc.Logout(ctx, resp.Token); err != nil {
		t.Errorf("expected repeat logout to succeed, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerReq("asha@example.com"))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	resp, err := svc.Login(ctx, "asha@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	wrong := &models.ChangePasswordRequest{OldPassword: "nope", NewPassword: "newsecret1"}
	if err := svc.ChangePassword(ctx, user, wrong); !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}

	req := &models.ChangePasswordRequest{OldPassword: "secret123", NewPassword: "newsecret1"}
	if err := svc.ChangePassword(ctx, user, req); err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}

	if _, err := svc.Login(ctx, "asha@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected old password to stop working, got %v", err)
	}
	if _, err := svc.Login(ctx, "asha@example.com", "newsecret1"); err != nil {
		t.Errorf("expected new password to work, got %v", err)
	}

	// Tokens issued before the change stay valid.
	if _, err := svc.Authenticate(ctx, resp.Token); err != nil {
		t.Errorf("expected existing token to survive a password change, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerReq("asha@example.com"))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	first := "  Priya "
	phone := "1234567890"
	updated, err := svc.UpdateProfile(ctx, user.ID, &models.UpdateProfileRequest{
		FirstName: &first,
		Phone:     &phone,
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.FirstName != "Priya" {
		t.Errorf("expected trimmed first name %q, got %q", "Priya", updated.FirstName)
	}
	if updated.Phone != "1234567890" {
		t.Errorf("expected phone 1234567890, got %q", updated.Phone)
	}
	if updated.LastName != "Verma" {
		t.Errorf("expected untouched last name, got %q", updated.LastName)
	}
	if updated.Email != "asha@example.com" {
		t.Errorf("expected email to be immutable, got %q", updated.Email)
	}

	// An empty update is a no-op that still returns the current user.
	same, err := svc.UpdateProfile(ctx, user.ID, &models.UpdateProfileRequest{})
	if err != nil {
		t.Fatalf("empty UpdateProfile failed: %v", err)
	}
	if same.FirstName != "Priya" {
		t.Errorf("expected profile unchanged, got first name %q", same.FirstName)
	}

	bad := "Fine Arts"
	_, err = svc.UpdateProfile(ctx, user.ID, &models.UpdateProfileRequest{Qualification: &bad})
	if !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected validation error for qualification, got %v", err)
	}
}
