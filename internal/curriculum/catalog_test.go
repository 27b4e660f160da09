package curriculum

import (
	"errors"
	"testing"

	"github.com/lernify/road-api/internal/models"
)

func TestBuildExpandsTracks(t *testing.T) {
	catalog, err := Build(DefaultTracks())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// Two base lessons expand to 2*2+1 = 5 steps
	count, err := catalog.StepCount("Backend Development")
	if err != nil {
		t.Fatalf("StepCount failed: %v", err)
	}
	if count != 5 {
		t.Errorf("expected 5 steps in Backend Development, got %d", count)
	}

	// Three base lessons expand to 7 steps
	count, err = catalog.StepCount("Frontend Development")
	if err != nil {
		t.Fatalf("StepCount failed: %v", err)
	}
	if count != 7 {
		t.Errorf("expected 7 steps in Frontend Development, got %d", count)
	}

	for _, name := range catalog.Domains() {
		steps, err := catalog.Steps(name)
		if err != nil {
			t.Fatalf("Steps(%s) failed: %v", name, err)
		}

		// Indices are contiguous starting at 1
		for i, step := range steps {
			if step.Index != i+1 {
				t.Errorf("%s: step at position %d has index %d", name, i, step.Index)
			}
		}

		// Lessons and assessments alternate, ending on the final assessment
		for i, step := range steps {
			wantKind := models.StepLesson
			if i%2 == 1 || i == len(steps)-1 {
				wantKind = models.StepAssessment
			}
			if step.Kind != wantKind {
				t.Errorf("%s: step %d kind = %s, want %s", name, step.Index, step.Kind, wantKind)
			}
		}

		last := steps[len(steps)-1]
		if !last.IsAssessment() {
			t.Errorf("%s: final step is not an assessment", name)
		}
		if last.Title != "Final Assessment" {
			t.Errorf("%s: final step title = %q", name, last.Title)
		}

		// Every assessment carries the full shared bank
		for _, step := range steps {
			if step.IsAssessment() && step.Quiz.Len() != 20 {
				t.Errorf("%s: assessment %d has %d questions, want 20", name, step.Index, step.Quiz.Len())
			}
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	first, err := Build(DefaultTracks())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	second, err := Build(DefaultTracks())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	firstNames := first.Domains()
	secondNames := second.Domains()
	if len(firstNames) != len(secondNames) {
		t.Fatalf("domain counts differ: %d vs %d", len(firstNames), len(secondNames))
	}

	for i, name := range firstNames {
		if secondNames[i] != name {
			t.Errorf("domain order differs at %d: %s vs %s", i, name, secondNames[i])
		}
		a, _ := first.Steps(name)
		b, _ := second.Steps(name)
		if len(a) != len(b) {
			t.Fatalf("%s: step counts differ", name)
		}
		for j := range a {
			if a[j].Index != b[j].Index || a[j].Title != b[j].Title || a[j].Kind != b[j].Kind {
				t.Errorf("%s: step %d differs between builds", name, j+1)
			}
		}
	}
}

func TestAssessmentsShareOneBank(t *testing.T) {
	catalog, err := Build(DefaultTracks())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	bank := catalog.Bank()
	for _, name := range catalog.Domains() {
		steps, _ := catalog.Steps(name)
		for _, step := range steps {
			if !step.IsAssessment() {
				continue
			}
			// Same backing array, not a copy per step
			if &step.Quiz.Questions[0] != &bank.Questions[0] {
				t.Fatalf("%s: assessment %d holds a private bank copy", name, step.Index)
			}
		}
	}
}

func TestCatalogLookups(t *testing.T) {
	catalog, err := Build(DefaultTracks())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if _, err := catalog.Domain("Quantum Computing"); !errors.Is(err, ErrDomainNotFound) {
		t.Errorf("expected ErrDomainNotFound, got %v", err)
	}
	if _, err := catalog.Step("Backend Development", 0); !errors.Is(err, ErrStepNotFound) {
		t.Errorf("expected ErrStepNotFound for index 0, got %v", err)
	}
	if _, err := catalog.Step("Backend Development", 6); !errors.Is(err, ErrStepNotFound) {
		t.Errorf("expected ErrStepNotFound for index 6, got %v", err)
	}

	step, err := catalog.Step("Backend Development", 1)
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if step.Title != "HTTP & REST" {
		t.Errorf("unexpected step title: %s", step.Title)
	}
	if step.Kind != models.StepLesson {
		t.Errorf("expected lesson kind, got %s", step.Kind)
	}

	step, err = catalog.Step("Backend Development", 2)
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if step.Title != "Assessment: HTTP & REST" {
		t.Errorf("unexpected assessment title: %s", step.Title)
	}
}

func TestBuildValidation(t *testing.T) {
	valid := Lesson{
		Title: "Intro",
		Quiz: models.QuestionSet{Questions: []models.Question{
			{Prompt: "1+1?", Options: []string{"2", "3"}, Correct: 0},
		}},
	}

	tests := []struct {
		name   string
		tracks []Track
	}{
		{"empty track name", []Track{{Name: "", Lessons: []Lesson{valid}}}},
		{"no lessons", []Track{{Name: "Empty"}}},
		{"duplicate track", []Track{
			{Name: "Twice", Lessons: []Lesson{valid}},
			{Name: "Twice", Lessons: []Lesson{valid}},
		}},
		{"lesson without title", []Track{{Name: "T", Lessons: []Lesson{{
			Quiz: models.QuestionSet{Questions: []models.Question{{Prompt: "?", Options: []string{"a", "b"}, Correct: 0}}},
		}}}}},
		{"single option question", []Track{{Name: "T", Lessons: []Lesson{{
			Title: "L",
			Quiz:  models.QuestionSet{Questions: []models.Question{{Prompt: "?", Options: []string{"only"}, Correct: 0}}},
		}}}}},
		{"correct index out of range", []Track{{Name: "T", Lessons: []Lesson{{
			Title: "L",
			Quiz:  models.QuestionSet{Questions: []models.Question{{Prompt: "?", Options: []string{"a", "b"}, Correct: 2}}},
		}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Build(tt.tracks); err == nil {
				t.Error("expected build error, got nil")
			}
		})
	}
}

func TestDefaultTrackOrder(t *testing.T) {
	catalog, err := Build(DefaultTracks())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	want := []string{
		"Frontend Development",
		"Backend Development",
		"AI/ML",
		"Data Science",
		"DevOps & Cloud",
	}
	got := catalog.Domains()
	if len(got) != len(want) {
		t.Fatalf("expected %d domains, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("domain %d = %s, want %s", i, got[i], want[i])
		}
	}
}
