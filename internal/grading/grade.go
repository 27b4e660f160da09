package grading

import (
	"errors"

	"github.com/lernify/road-api/internal/models"
)

// ErrAnswerCountMismatch is returned when the answer sheet length does not
// match the question count. Callers must reject before mutating any state.
var ErrAnswerCountMismatch = errors.New("answer count mismatch")

// The pass threshold is score/total >= 3/5 (60%), compared in integer
// arithmetic to avoid floating-point boundary drift.
const (
	passNum = 3
	passDen = 5
)

// Result is the outcome of grading one answer sheet
type Result struct {
	Score   int    `json:"score"`
	Total   int    `json:"total"`
	Passed  bool   `json:"passed"`
	Results []bool `json:"results"`
}

// Grade scores an ordered answer sheet against a question set. Position i
// of the sheet answers question i; an answer is correct when it equals the
// question's correct option index. Grading is pure and deterministic, safe
// to call without committing an attempt.
//
// An empty question set grades as passed with score 0 of 0.
func Grade(qs models.QuestionSet, answers []int) (Result, error) {
	if len(answers) != qs.Len() {
		return Result{}, ErrAnswerCountMismatch
	}

	results := make([]bool, len(answers))
	score := 0
	for i, q := range qs.Questions {
		if answers[i] == q.Correct {
			results[i] = true
			score++
		}
	}

	total := qs.Len()
	return Result{
		Score:   score,
		Total:   total,
		Passed:  passDen*score >= passNum*total,
		Results: results,
	}, nil
}
