package api

import (
	"log/slog"
	"net/http"

	"github.com/lernify/road-api/internal/models"
)

// Resume handlers

func (s *Server) handleSaveResume(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req models.Resume
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.resumes.Save(r.Context(), user.ID, &req); err != nil {
		slog.Error("failed to save resume", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to save resume")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "resume saved",
	})
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	resume, err := s.resumes.Get(r.Context(), user.ID)
	if err != nil {
		slog.Error("failed to load resume", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load resume")
		return
	}

	respondJSON(w, http.StatusOK, resume)
}

func (s *Server) handleDownloadResume(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	resp, err := s.resumes.Download(r.Context(), user)
	if err != nil {
		slog.Error("failed to render resume", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to render resume")
		return
	}

	respondJSON(w, http.StatusOK, resp)
}
