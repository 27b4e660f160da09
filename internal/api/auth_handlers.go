package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/lernify/road-api/internal/auth"
	"github.com/lernify/road-api/internal/models"
)

// Auth handlers

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := s.authService.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrValidation):
			respondError(w, http.StatusBadRequest, "validation_failed", err.Error())
		case errors.Is(err, auth.ErrEmailTaken):
			respondError(w, http.StatusConflict, "email_taken", "email already registered")
		default:
			slog.Error("failed to register user", "error", err)
			respondError(w, http.StatusInternalServerError, "internal_error", "failed to register user")
		}
		return
	}

	respondJSON(w, http.StatusCreated, models.RegisterResponse{UserID: user.ID})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := s.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
			return
		}
		slog.Error("failed to log in user", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to log in")
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req models.ChangePasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.authService.ChangePassword(r.Context(), user, &req); err != nil {
		switch {
		case errors.Is(err, models.ErrValidation):
			respondError(w, http.StatusBadRequest, "validation_failed", err.Error())
		case errors.Is(err, auth.ErrWrongPassword):
			respondError(w, http.StatusBadRequest, "wrong_password", "old password incorrect")
		default:
			slog.Error("failed to change password", "error", err, "user_id", user.ID)
			respondError(w, http.StatusInternalServerError, "internal_error", "failed to change password")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "password changed",
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := extractToken(r)

	if err := s.authService.Logout(r.Context(), token); err != nil {
		slog.Error("failed to log out", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to log out")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "logged out",
	})
}

// Profile handlers

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	respondJSON(w, http.StatusOK, user.Profile())
}

func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req models.UpdateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := s.authService.UpdateProfile(r.Context(), user.ID, &req)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			respondError(w, http.StatusBadRequest, "validation_failed", err.Error())
			return
		}
		slog.Error("failed to update profile", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update profile")
		return
	}

	respondJSON(w, http.StatusOK, updated.Profile())
}
