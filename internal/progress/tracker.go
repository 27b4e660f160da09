package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lernify/road-api/internal/curriculum"
	"github.com/lernify/road-api/internal/grading"
	"github.com/lernify/road-api/internal/models"
	"github.com/lernify/road-api/internal/storage"
)

// ErrOutOfSequence is returned when a submission targets any step other than
// the one directly after the user's completed count.
var ErrOutOfSequence = errors.New("you must complete the previous step first")

// Tracker enforces the step sequencing rules around grading: submissions are
// only accepted for the next unlocked step, and passing advances the per
// domain completed count monotonically.
type Tracker struct {
	catalog *curriculum.Catalog
	repo    storage.Repository
}

// NewTracker creates a tracker over a built catalog and a repository.
func NewTracker(catalog *curriculum.Catalog, repo storage.Repository) *Tracker {
	return &Tracker{
		catalog: catalog,
		repo:    repo,
	}
}

// Submit grades one answer sheet against the quiz of the requested step.
//
// The attempt is recorded whether or not the user passes. On a pass the
// domain's completed count advances to the submitted step; the repository
// takes the max of the current and submitted values, so a concurrent
// duplicate submission can never move progress backwards.
func (t *Tracker) Submit(ctx context.Context, userID string, req *models.SubmitRequest) (grading.Result, error) {
	step, err := t.catalog.Step(req.Domain, req.StepIndex)
	if err != nil {
		return grading.Result{}, err
	}

	completed, err := t.repo.DomainProgress(ctx, userID, req.Domain)
	if err != nil {
		return grading.Result{}, fmt.Errorf("failed to read progress: %w", err)
	}
	if req.StepIndex != completed+1 {
		return grading.Result{}, ErrOutOfSequence
	}

	result, err := grading.Grade(step.Quiz, req.Answers)
	if err != nil {
		return grading.Result{}, err
	}

	attempt := &models.Attempt{
		ID:        uuid.New().String(),
		UserID:    userID,
		Domain:    req.Domain,
		StepIndex: req.StepIndex,
		Score:     result.Score,
		Total:     result.Total,
		CreatedAt: time.Now().UTC(),
	}
	if err := t.repo.AppendAttempt(ctx, attempt); err != nil {
		return grading.Result{}, fmt.Errorf("failed to record attempt: %w", err)
	}

	if result.Passed {
		stored, err := t.repo.AdvanceProgress(ctx, userID, req.Domain, req.StepIndex)
		if err != nil {
			return grading.Result{}, fmt.Errorf("failed to advance progress: %w", err)
		}
		slog.Info("step passed",
			"user_id", userID,
			"domain", req.Domain,
			"step", req.StepIndex,
			"score", result.Score,
			"total", result.Total,
			"completed", stored)
	}

	return result, nil
}

// Roadmap returns the domain's full step list annotated with lock state.
// A step is locked when its index is beyond the next uncompleted step.
func (t *Tracker) Roadmap(ctx context.Context, userID, domain string) (*models.RoadmapResponse, error) {
	steps, err := t.catalog.Steps(domain)
	if err != nil {
		return nil, err
	}

	completed, err := t.repo.DomainProgress(ctx, userID, domain)
	if err != nil {
		return nil, fmt.Errorf("failed to read progress: %w", err)
	}

	annotated := make([]models.RoadmapStep, 0, len(steps))
	for _, step := range steps {
		annotated = append(annotated, models.RoadmapStep{
			Step:   step,
			Locked: step.Index > completed+1,
		})
	}

	return &models.RoadmapResponse{
		Steps:    annotated,
		Progress: completed,
	}, nil
}

// Quiz returns the question set for a step without any sequencing check.
// Fetching questions for a locked step is allowed; submitting is not.
func (t *Tracker) Quiz(domain string, stepIndex int) (models.QuestionSet, error) {
	step, err := t.catalog.Step(domain, stepIndex)
	if err != nil {
		return models.QuestionSet{}, err
	}
	return step.Quiz, nil
}

// Dashboard aggregates the user's attempt history with a completion
// percentage for every catalog domain, including untouched ones.
func (t *Tracker) Dashboard(ctx context.Context, userID string) (*models.DashboardResponse, error) {
	attempts, err := t.repo.ListAttempts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}

	progress, err := t.repo.AllProgress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read progress: %w", err)
	}

	domains := t.catalog.Domains()
	percent := make(map[string]int, len(domains))
	for _, name := range domains {
		count, err := t.catalog.StepCount(name)
		if err != nil {
			return nil, err
		}
		percent[name] = Percent(progress[name], count)
	}

	list := make([]models.Attempt, 0, len(attempts))
	for _, a := range attempts {
		list = append(list, *a)
	}

	return &models.DashboardResponse{
		Attempts: list,
		Progress: percent,
	}, nil
}

// Percent converts a completed count into a whole completion percentage,
// rounding down. A domain with no steps reads as 0.
func Percent(completed, stepCount int) int {
	if stepCount == 0 {
		return 0
	}
	return 100 * completed / stepCount
}
