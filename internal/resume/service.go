package resume

import (
	"context"
	"fmt"

	"github.com/lernify/road-api/internal/models"
	"github.com/lernify/road-api/internal/storage"
)

// Service stores and renders per-user resumes.
type Service struct {
	repo storage.Repository
}

// NewService creates a resume service.
func NewService(repo storage.Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the user's resume, or an empty skeleton when none is saved yet.
func (s *Service) Get(ctx context.Context, userID string) (*models.Resume, error) {
	r, err := s.repo.GetResume(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load resume: %w", err)
	}
	if r == nil {
		return models.EmptyResume(), nil
	}
	return r, nil
}

// Save replaces the user's resume with the given document.
func (s *Service) Save(ctx context.Context, userID string, r *models.Resume) error {
	r.Normalize()
	if err := s.repo.UpsertResume(ctx, userID, r); err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}
	return nil
}

// Download renders the user's resume as a standalone HTML document the
// frontend can display or print to PDF.
func (s *Service) Download(ctx context.Context, user *models.User) (*models.ResumeDownloadResponse, error) {
	r, err := s.Get(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	html, err := RenderHTML(user, r)
	if err != nil {
		return nil, err
	}
	return &models.ResumeDownloadResponse{HTML: html}, nil
}
