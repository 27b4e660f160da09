package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client is a Go SDK for the road-api HTTP API
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithToken sets a bearer token obtained from an earlier login
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// NewClient creates a new road-api client
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Token returns the bearer token the client currently sends
func (c *Client) Token() string {
	return c.token
}

// SetToken replaces the bearer token the client sends
func (c *Client) SetToken(token string) {
	c.token = token
}

// APIError is a structured error returned by the API
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: %s - %s", e.Code, e.Message)
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Qualification string `json:"qualification"`
	Password      string `json:"password"`
}

// LoginResult carries the token and display name returned by login
type LoginResult struct {
	Token     string `json:"token"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Profile represents the authenticated user's profile
type Profile struct {
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone"`
	Qualification string         `json:"qualification"`
	Progress      map[string]int `json:"progress"`
}

// ProfileUpdate is a partial profile update; nil fields are left unchanged
type ProfileUpdate struct {
	FirstName     *string `json:"first_name,omitempty"`
	LastName      *string `json:"last_name,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Qualification *string `json:"qualification,omitempty"`
}

// Question is a single multiple choice question
type Question struct {
	Prompt  string   `json:"q"`
	Options []string `json:"a"`
	Correct int      `json:"correct"`
}

// Quiz is the question set attached to a step
type Quiz struct {
	Questions []Question `json:"questions"`
}

// Step is one roadmap entry with its lock state
type Step struct {
	Index       int      `json:"index"`
	Kind        string   `json:"kind"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Videos      []string `json:"videos"`
	Quiz        Quiz     `json:"quiz"`
	Locked      bool     `json:"locked"`
}

// Roadmap is a domain's step list with the user's completed count
type Roadmap struct {
	Steps    []Step `json:"steps"`
	Progress int    `json:"progress"`
}

// SubmitResult is the grading outcome of one submission
type SubmitResult struct {
	Score   int    `json:"score"`
	Total   int    `json:"total"`
	Passed  bool   `json:"passed"`
	Results []bool `json:"results"`
}

// Attempt is one graded submission in the user's history
type Attempt struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Domain    string    `json:"domain"`
	StepIndex int       `json:"step_index"`
	Score     int       `json:"score"`
	Total     int       `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}

// Dashboard aggregates attempts and per-domain completion percentages
type Dashboard struct {
	Attempts []Attempt      `json:"attempts"`
	Progress map[string]int `json:"progress"`
}

// EducationEntry is one education item on a resume
type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// ExperienceEntry is one work item on a resume
type ExperienceEntry struct {
	Role     string `json:"role"`
	Company  string `json:"company"`
	Duration string `json:"duration"`
	Details  string `json:"details"`
}

// ProjectEntry is one project item on a resume
type ProjectEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Resume is the user's resume document
type Resume struct {
	Summary    string            `json:"summary"`
	Skills     []string          `json:"skills"`
	Education  []EducationEntry  `json:"education"`
	Experience []ExperienceEntry `json:"experience"`
	Projects   []ProjectEntry    `json:"projects"`
}

// Health checks if the service is healthy
func (c *Client) Health(ctx context.Context) error {
	_, err := c.doRequest(ctx, "GET", "/health", nil)
	return err
}

// Domains lists the available curriculum domains
func (c *Client) Domains(ctx context.Context) ([]string, error) {
	resp, err := c.doRequest(ctx, "GET", "/domains", nil)
	if err != nil {
		return nil, err
	}

	var data struct {
		Domains []string `json:"domains"`
	}
	if err := decodeData(resp, &data); err != nil {
		return nil, err
	}
	return data.Domains, nil
}

// Register creates a new account and returns the user ID
func (c *Client) Register(ctx context.Context, req RegisterRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx, "POST", "/auth/register", bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	var data struct {
		UserID string `json:"user_id"`
	}
	if err := decodeData(resp, &data); err != nil {
		return "", err
	}
	return data.UserID, nil
}

// Login authenticates and stores the returned token on the client
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx, "POST", "/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var data LoginResult
	if err := decodeData(resp, &data); err != nil {
		return nil, err
	}

	c.token = data.Token
	return &data, nil
}

// Logout revokes the stored token and clears it from the client
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.doRequest(ctx, "POST", "/auth/logout", nil)
	if err != nil {
		return err
	}
	if err := decodeData(resp, nil); err != nil {
		return err
	}

	c.token = ""
	return nil
}

// ChangePassword replaces the account password
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body, err := json.Marshal(map[string]string{
		"old_password": oldPassword,
		"new_password": newPassword,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx, "POST", "/auth/change-password", bytes.NewReader(body))
	if err != nil {
		return err
	}
	return decodeData(resp, nil)
}

// Me retrieves the authenticated user's profile
func (c *Client) Me(ctx context.Context) (*Profile, error) {
	resp, err := c.doRequest(ctx, "GET", "/me", nil)
	if err != nil {
		return nil, err
	}

	var data Profile
	if err := decodeData(resp, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// UpdateProfile applies a partial profile update and returns the fresh profile
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*Profile, error) {
	body, err := json.Marshal(update)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx, "PUT", "/me", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var data Profile
	if err := decodeData(resp, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Roadmap retrieves a domain's step list with lock state
func (c *Client) Roadmap(ctx context.Context, domain string) (*Roadmap, error) {
	resp, err := c.doRequest(ctx, "GET", "/roadmap/"+url.PathEscape(domain), nil)
	if err != nil {
		return nil, err
	}

	var data Roadmap
	if err := decodeData(resp, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Submit grades an answer sheet for one step
func (c *Client) Submit(ctx context.Context, domain string, stepIndex int, answers []int) (*SubmitResult, error) {
	body, err := json.Marshal(map[string]interface{}{
		"domain":     domain,
		"step_index": stepIndex,
		"answers":    answers,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx, "POST", "/assessment/submit", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var data SubmitResult
	if err := decodeData(resp, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Dashboard retrieves the attempt history and per-domain progress
func (c *Client) Dashboard(ctx context.Context) (*Dashboard, error) {
	resp, err := c.doRequest(ctx, "GET", "/dashboard", nil)
	if err != nil {
		return nil, err
	}

	var data Dashboard
	if err := decodeData(resp, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetResume retrieves the stored resume
func (c *Client) GetResume(ctx context.Context) (*Resume, error) {
	resp, err := c.doRequest(ctx, "GET", "/resume", nil)
	if err != nil {
		return nil, err
	}

	var data Resume
	if err := decodeData(resp, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// SaveResume stores a resume document
func (c *Client) SaveResume(ctx context.Context, resume Resume) error {
	body, err := json.Marshal(resume)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx, "POST", "/resume", bytes.NewReader(body))
	if err != nil {
		return err
	}
	return decodeData(resp, nil)
}

// DownloadResume retrieves the rendered HTML resume document
func (c *Client) DownloadResume(ctx context.Context) (string, error) {
	resp, err := c.doRequest(ctx, "GET", "/resume/download", nil)
	if err != nil {
		return "", err
	}

	var data struct {
		HTML string `json:"html"`
	}
	if err := decodeData(resp, &data); err != nil {
		return "", err
	}
	return data.HTML, nil
}

// doRequest performs an HTTP request
func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var envelope struct {
			Error *struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.Unmarshal(respBody, &envelope); err == nil && envelope.Error != nil {
			return nil, &APIError{
				Status:  resp.StatusCode,
				Code:    envelope.Error.Code,
				Message: envelope.Error.Message,
			}
		}
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}

// decodeData unwraps the response envelope into dst. A nil dst checks the
// envelope status and discards the payload.
func decodeData(resp []byte, dst interface{}) error {
	var result struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.Unmarshal(resp, &result); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !result.Success {
		if result.Error != nil {
			return fmt.Errorf("API error: %s - %s", result.Error.Code, result.Error.Message)
		}
		return fmt.Errorf("API error: request failed")
	}

	if dst == nil {
		return nil
	}
	if err := json.Unmarshal(result.Data, dst); err != nil {
		return fmt.Errorf("failed to unmarshal response data: %w", err)
	}
	return nil
}
