package grading

import (
	"errors"
	"reflect"
	"testing"

	"github.com/lernify/road-api/internal/models"
)

// bank builds n two-option questions whose correct answer is option 0
func bank(n int) models.QuestionSet {
	qs := models.QuestionSet{Questions: make([]models.Question, n)}
	for i := range qs.Questions {
		qs.Questions[i] = models.Question{
			Prompt:  "?",
			Options: []string{"right", "wrong"},
			Correct: 0,
		}
	}
	return qs
}

// sheet builds an answer list with the first correct entries right and the
// rest wrong
func sheet(total, correct int) []int {
	answers := make([]int, total)
	for i := correct; i < total; i++ {
		answers[i] = 1
	}
	return answers
}

func TestGradeThreshold(t *testing.T) {
	tests := []struct {
		name   string
		total  int
		right  int
		passed bool
	}{
		{"all correct", 1, 1, true},
		{"all wrong", 1, 0, false},
		{"11 of 20 is 55 percent", 20, 11, false},
		{"12 of 20 is exactly 60 percent", 20, 12, true},
		{"13 of 20", 20, 13, true},
		{"3 of 5 is exactly 60 percent", 5, 3, true},
		{"2 of 5", 5, 2, false},
		{"2 of 3 is 66 percent", 3, 2, true},
		{"1 of 2", 2, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Grade(bank(tt.total), sheet(tt.total, tt.right))
			if err != nil {
				t.Fatalf("Grade failed: %v", err)
			}
			if result.Score != tt.right {
				t.Errorf("score = %d, want %d", result.Score, tt.right)
			}
			if result.Total != tt.total {
				t.Errorf("total = %d, want %d", result.Total, tt.total)
			}
			if result.Passed != tt.passed {
				t.Errorf("passed = %v, want %v", result.Passed, tt.passed)
			}
		})
	}
}

func TestGradeAnswerCountMismatch(t *testing.T) {
	qs := bank(20)

	if _, err := Grade(qs, sheet(19, 19)); !errors.Is(err, ErrAnswerCountMismatch) {
		t.Errorf("19 answers for 20 questions: got %v", err)
	}
	if _, err := Grade(qs, sheet(21, 21)); !errors.Is(err, ErrAnswerCountMismatch) {
		t.Errorf("21 answers for 20 questions: got %v", err)
	}
	if _, err := Grade(qs, nil); !errors.Is(err, ErrAnswerCountMismatch) {
		t.Errorf("nil answers for 20 questions: got %v", err)
	}
}

func TestGradeEmptySetPasses(t *testing.T) {
	result, err := Grade(models.QuestionSet{}, nil)
	if err != nil {
		t.Fatalf("Grade failed: %v", err)
	}
	if !result.Passed {
		t.Error("empty question set should pass vacuously")
	}
	if result.Score != 0 || result.Total != 0 {
		t.Errorf("expected 0/0, got %d/%d", result.Score, result.Total)
	}
	if result.Results == nil || len(result.Results) != 0 {
		t.Errorf("expected empty results vector, got %v", result.Results)
	}
}

func TestGradeResultsVector(t *testing.T) {
	qs := models.QuestionSet{Questions: []models.Question{
		{Prompt: "a", Options: []string{"x", "y", "z"}, Correct: 2},
		{Prompt: "b", Options: []string{"x", "y"}, Correct: 1},
		{Prompt: "c", Options: []string{"x", "y"}, Correct: 0},
		{Prompt: "d", Options: []string{"x", "y", "z", "w"}, Correct: 3},
	}}

	result, err := Grade(qs, []int{2, 0, 0, 1})
	if err != nil {
		t.Fatalf("Grade failed: %v", err)
	}

	want := []bool{true, false, true, false}
	if !reflect.DeepEqual(result.Results, want) {
		t.Errorf("results = %v, want %v", result.Results, want)
	}
	if result.Score != 2 {
		t.Errorf("score = %d, want 2", result.Score)
	}
	if result.Passed {
		t.Error("2 of 4 should not pass")
	}
}

func TestGradeDeterministic(t *testing.T) {
	qs := bank(20)
	answers := sheet(20, 14)

	first, err := Grade(qs, answers)
	if err != nil {
		t.Fatalf("Grade failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Grade(qs, answers)
		if err != nil {
			t.Fatalf("Grade failed: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("grade %d differs: %+v vs %+v", i, first, again)
		}
	}
}

func TestGradeOutOfRangeAnswers(t *testing.T) {
	// Off-list option indices are simply wrong, never a panic
	result, err := Grade(bank(3), []int{-1, 99, 0})
	if err != nil {
		t.Fatalf("Grade failed: %v", err)
	}
	if result.Score != 1 {
		t.Errorf("score = %d, want 1", result.Score)
	}
	want := []bool{false, false, true}
	if !reflect.DeepEqual(result.Results, want) {
		t.Errorf("results = %v, want %v", result.Results, want)
	}
}
