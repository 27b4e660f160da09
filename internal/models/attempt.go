package models

import "time"

// Attempt is the immutable record of one graded submission. Attempts are
// append-only and never influence progression; they exist for history.
type Attempt struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Domain    string    `json:"domain"`
	StepIndex int       `json:"step_index"`
	Score     int       `json:"score"`
	Total     int       `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}

// SubmitRequest represents an answer sheet for one assessment step
type SubmitRequest struct {
	Domain    string `json:"domain"`
	StepIndex int    `json:"step_index"`
	Answers   []int  `json:"answers"`
}

// DashboardResponse aggregates attempt history with per-domain completion.
// Progress maps domain name to a 0-100 percentage.
type DashboardResponse struct {
	Attempts []Attempt      `json:"attempts"`
	Progress map[string]int `json:"progress"`
}
