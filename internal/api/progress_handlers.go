package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lernify/road-api/internal/curriculum"
	"github.com/lernify/road-api/internal/grading"
	"github.com/lernify/road-api/internal/models"
	"github.com/lernify/road-api/internal/progress"
)

// Roadmap and assessment handlers

func (s *Server) handleRoadmap(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	domain := chi.URLParam(r, "domain")
	if domain == "" {
		respondError(w, http.StatusBadRequest, "validation_failed", "domain is required")
		return
	}

	roadmap, err := s.tracker.Roadmap(r.Context(), user.ID, domain)
	if err != nil {
		if errors.Is(err, curriculum.ErrDomainNotFound) {
			respondError(w, http.StatusNotFound, "domain_not_found", "domain not found")
			return
		}
		slog.Error("failed to build roadmap", "error", err, "domain", domain)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to build roadmap")
		return
	}

	respondJSON(w, http.StatusOK, roadmap)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req models.SubmitRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := s.tracker.Submit(r.Context(), user.ID, &req)
	if err != nil {
		switch {
		case errors.Is(err, curriculum.ErrDomainNotFound):
			respondError(w, http.StatusNotFound, "domain_not_found", "domain not found")
		case errors.Is(err, curriculum.ErrStepNotFound):
			respondError(w, http.StatusNotFound, "step_not_found", "step not found")
		case errors.Is(err, progress.ErrOutOfSequence):
			respondError(w, http.StatusBadRequest, "out_of_sequence", "you must complete the previous step first")
		case errors.Is(err, grading.ErrAnswerCountMismatch):
			respondError(w, http.StatusBadRequest, "answer_count_mismatch", "answer count mismatch")
		default:
			slog.Error("failed to grade submission", "error", err, "user_id", user.ID, "domain", req.Domain)
			respondError(w, http.StatusInternalServerError, "internal_error", "failed to grade submission")
		}
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	dash, err := s.tracker.Dashboard(r.Context(), user.ID)
	if err != nil {
		slog.Error("failed to build dashboard", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to build dashboard")
		return
	}

	respondJSON(w, http.StatusOK, dash)
}
