package models

// StepKind distinguishes learning content from graded checkpoints
type StepKind string

const (
	StepLesson     StepKind = "lesson"
	StepAssessment StepKind = "assessment"
)

// Domain represents a named learning track with an ordered roadmap
type Domain struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Steps       []Step `json:"steps"`
}

// Step is one unit within a domain roadmap. Indices are 1-based and
// contiguous; every lesson is immediately followed by the assessment
// that evaluates it, and the final step is always an assessment.
type Step struct {
	Index       int         `json:"index"`
	Kind        StepKind    `json:"kind"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Videos      []string    `json:"videos,omitempty"`
	Quiz        QuestionSet `json:"quiz"`
}

// IsAssessment returns true for generated assessment steps
func (s *Step) IsAssessment() bool {
	return s.Kind == StepAssessment
}

// QuestionSet is an ordered list of quiz questions
type QuestionSet struct {
	Questions []Question `yaml:"questions" json:"questions"`
}

// Len returns the number of questions in the set
func (qs QuestionSet) Len() int {
	return len(qs.Questions)
}

// Question is a single multiple-choice quiz item. Correct is a zero-based
// index into Options and must always be in bounds.
type Question struct {
	Prompt  string   `yaml:"q" json:"q"`
	Options []string `yaml:"a" json:"a"`
	Correct int      `yaml:"correct" json:"correct"`
}

// RoadmapStep is a step enriched with the viewer's lock state
type RoadmapStep struct {
	Step
	Locked bool `json:"locked"`
}

// RoadmapResponse is the per-user view of one domain roadmap
type RoadmapResponse struct {
	Steps    []RoadmapStep `json:"steps"`
	Progress int           `json:"progress"`
}

// DomainsResponse lists the available learning tracks
type DomainsResponse struct {
	Domains []string `json:"domains"`
}
