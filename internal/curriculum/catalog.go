package curriculum

import (
	"errors"
	"fmt"

	"github.com/lernify/road-api/internal/models"
)

var (
	// ErrDomainNotFound is returned when a domain name is not in the catalog
	ErrDomainNotFound = errors.New("domain not found")
	// ErrStepNotFound is returned when a step index is out of range for a domain
	ErrStepNotFound = errors.New("step not found")
)

// Track is the authored form of one domain: a name plus its base lessons.
// Build expands each track into the full roadmap served to users.
type Track struct {
	Name        string
	Description string
	Lessons     []Lesson
}

// Lesson is one authored learning unit with its own short quiz
type Lesson struct {
	Title       string
	Description string
	Videos      []string
	Quiz        models.QuestionSet
}

// Catalog is the immutable table of all domain roadmaps. It is built once
// at startup and read concurrently without synchronization afterward.
type Catalog struct {
	order   []string
	domains map[string]*models.Domain
	bank    models.QuestionSet
}

// Build expands tracks into the catalog. For each track the base lessons
// L1..Ln become [L1, A1, L2, A2, ..., Ln, An, FinalAssessment] with indices
// 1..2n+1. Every generated assessment shares one fixed question bank.
// Building is deterministic: the same tracks always produce the same catalog.
func Build(tracks []Track) (*Catalog, error) {
	bank := questionBank()
	if len(bank.Questions) != bankSize {
		return nil, fmt.Errorf("question bank must hold %d questions, got %d", bankSize, len(bank.Questions))
	}
	if err := validateQuestions(bank, "question bank"); err != nil {
		return nil, err
	}

	c := &Catalog{
		order:   make([]string, 0, len(tracks)),
		domains: make(map[string]*models.Domain, len(tracks)),
		bank:    bank,
	}

	for _, track := range tracks {
		if track.Name == "" {
			return nil, fmt.Errorf("track name is required")
		}
		if _, exists := c.domains[track.Name]; exists {
			return nil, fmt.Errorf("duplicate track %q", track.Name)
		}
		if len(track.Lessons) == 0 {
			return nil, fmt.Errorf("track %q has no lessons", track.Name)
		}

		domain, err := expandTrack(track, bank)
		if err != nil {
			return nil, err
		}

		c.order = append(c.order, track.Name)
		c.domains[track.Name] = domain
	}

	return c, nil
}

// expandTrack interleaves lessons with assessments and appends the final one
func expandTrack(track Track, bank models.QuestionSet) (*models.Domain, error) {
	steps := make([]models.Step, 0, 2*len(track.Lessons)+1)

	for _, lesson := range track.Lessons {
		if lesson.Title == "" {
			return nil, fmt.Errorf("track %q: lesson title is required", track.Name)
		}
		if err := validateQuestions(lesson.Quiz, fmt.Sprintf("track %q lesson %q", track.Name, lesson.Title)); err != nil {
			return nil, err
		}

		steps = append(steps, models.Step{
			Index:       len(steps) + 1,
			Kind:        models.StepLesson,
			Title:       lesson.Title,
			Description: lesson.Description,
			Videos:      lesson.Videos,
			Quiz:        lesson.Quiz,
		})
		steps = append(steps, models.Step{
			Index:       len(steps) + 1,
			Kind:        models.StepAssessment,
			Title:       "Assessment: " + lesson.Title,
			Description: "Checkpoint quiz for " + lesson.Title + ".",
			Quiz:        bank,
		})
	}

	steps = append(steps, models.Step{
		Index:       len(steps) + 1,
		Kind:        models.StepAssessment,
		Title:       "Final Assessment",
		Description: "Comprehensive assessment for " + track.Name + ".",
		Quiz:        bank,
	})

	return &models.Domain{
		Name:        track.Name,
		Description: track.Description,
		Steps:       steps,
	}, nil
}

// validateQuestions checks that every question has at least two options and
// an in-bounds correct index
func validateQuestions(qs models.QuestionSet, where string) error {
	for i, q := range qs.Questions {
		if q.Prompt == "" {
			return fmt.Errorf("%s: question %d has no prompt", where, i+1)
		}
		if len(q.Options) < 2 {
			return fmt.Errorf("%s: question %d needs at least two options", where, i+1)
		}
		if q.Correct < 0 || q.Correct >= len(q.Options) {
			return fmt.Errorf("%s: question %d correct index %d out of range", where, i+1, q.Correct)
		}
	}
	return nil
}

// Domains returns all domain names in build order
func (c *Catalog) Domains() []string {
	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}

// Domain returns a domain by name
func (c *Catalog) Domain(name string) (*models.Domain, error) {
	domain, ok := c.domains[name]
	if !ok {
		return nil, ErrDomainNotFound
	}
	return domain, nil
}

// Steps returns the ordered step list for a domain
func (c *Catalog) Steps(name string) ([]models.Step, error) {
	domain, err := c.Domain(name)
	if err != nil {
		return nil, err
	}
	return domain.Steps, nil
}

// StepCount returns the number of steps in a domain
func (c *Catalog) StepCount(name string) (int, error) {
	domain, err := c.Domain(name)
	if err != nil {
		return 0, err
	}
	return len(domain.Steps), nil
}

// Step returns one step of a domain by its 1-based index
func (c *Catalog) Step(name string, index int) (*models.Step, error) {
	domain, err := c.Domain(name)
	if err != nil {
		return nil, err
	}
	if index < 1 || index > len(domain.Steps) {
		return nil, ErrStepNotFound
	}
	return &domain.Steps[index-1], nil
}

// Bank returns the shared assessment question bank
func (c *Catalog) Bank() models.QuestionSet {
	return c.bank
}
