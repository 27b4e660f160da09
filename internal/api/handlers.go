package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/lernify/road-api/internal/models"
)

// Response helpers

type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *apiError   `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: false,
		Error: &apiError{
			Code:    code,
			Message: message,
		},
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return false
	}
	return true
}

// Health handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	// Check that the storage backend is reachable
	if err := s.repo.Ping(r.Context()); err != nil {
		slog.Error("readiness check failed", "error", err)
		respondError(w, http.StatusServiceUnavailable, "not_ready", "database not reachable")
		return
	}

	cacheStatus := "disabled"
	if s.tokens != nil {
		cacheStatus = "connected"
		if err := s.tokens.Ping(r.Context()); err != nil {
			// The cache is an optimization; a down cache does not fail readiness.
			slog.Warn("token cache not reachable", "error", err)
			cacheStatus = "unreachable"
		}
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status":   "ready",
		"database": "connected",
		"cache":    cacheStatus,
	})
}

// Curriculum handlers

func (s *Server) handleDomains(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.DomainsResponse{
		Domains: s.catalog.Domains(),
	})
}
