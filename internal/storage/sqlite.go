package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"

	"github.com/lernify/road-api/internal/models"
)

// SQLiteRepository implements Repository using SQLite. It backs local
// development and the test suite; timestamps are stored as integer
// unix nanoseconds so values round-trip exactly.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens (or creates) the SQLite database at dsn and
// applies the schema
func NewSQLiteRepository(dsn string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	repo := &SQLiteRepository{db: db}
	if err := repo.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return repo, nil
}

// applyPragmas configures SQLite for concurrent request handling
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func (r *SQLiteRepository) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		phone TEXT NOT NULL,
		qualification TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		salt TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS auth_tokens (
		token TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at INTEGER NOT NULL,
		expires_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_auth_tokens_user ON auth_tokens(user_id);
	CREATE INDEX IF NOT EXISTS idx_auth_tokens_expires ON auth_tokens(expires_at);

	CREATE TABLE IF NOT EXISTS user_progress (
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		domain TEXT NOT NULL,
		completed INTEGER NOT NULL DEFAULT 0,
		updated_at INTEGER NOT NULL,
		PRIMARY KEY (user_id, domain)
	);

	CREATE TABLE IF NOT EXISTS attempts (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		domain TEXT NOT NULL,
		step_index INTEGER NOT NULL,
		score INTEGER NOT NULL,
		total INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_attempts_user ON attempts(user_id, created_at);

	CREATE TABLE IF NOT EXISTS resumes (
		user_id TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		summary TEXT NOT NULL DEFAULT '',
		skills TEXT NOT NULL DEFAULT '[]',
		education TEXT NOT NULL DEFAULT '[]',
		experience TEXT NOT NULL DEFAULT '[]',
		projects TEXT NOT NULL DEFAULT '[]',
		updated_at INTEGER NOT NULL
	);
	`

	_, err := r.db.Exec(schema)
	return err
}

// Ping checks database connectivity
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the database
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// unixNano converts a time to its stored integer form
func unixNano(t time.Time) int64 {
	return t.UTC().UnixNano()
}

// fromUnixNano converts a stored integer back to a UTC time
func fromUnixNano(n int64) time.Time {
	return time.Unix(0, n).UTC()
}

// --- Users ---

// CreateUser creates a new user record
func (r *SQLiteRepository) CreateUser(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users (id, first_name, last_name, email, phone, qualification, password_hash, salt, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		u.ID,
		u.FirstName,
		u.LastName,
		u.Email,
		u.Phone,
		u.Qualification,
		u.PasswordHash,
		u.Salt,
		unixNano(u.CreatedAt),
	)

	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByID retrieves a user by ID, including the progress map
func (r *SQLiteRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return r.getUser(ctx, "id", id)
}

// GetUserByEmail retrieves a user by email, including the progress map
func (r *SQLiteRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, "email", email)
}

func (r *SQLiteRepository) getUser(ctx context.Context, field, value string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, first_name, last_name, email, phone, qualification, password_hash, salt, created_at
		FROM users
		WHERE %s = ?
	`, field)

	var u models.User
	var createdAt int64
	err := r.db.QueryRowContext(ctx, query, value).Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.Phone,
		&u.Qualification,
		&u.PasswordHash,
		&u.Salt,
		&createdAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	u.CreatedAt = fromUnixNano(createdAt)

	progress, err := r.AllProgress(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user progress: %w", err)
	}
	u.Progress = progress

	return &u, nil
}

// UpdateUserProfile applies the non-nil fields of a partial profile update
func (r *SQLiteRepository) UpdateUserProfile(ctx context.Context, id string, upd *models.UpdateProfileRequest) error {
	sets := make([]string, 0, 4)
	args := make([]interface{}, 0, 5)

	if upd.FirstName != nil {
		sets = append(sets, "first_name = ?")
		args = append(args, *upd.FirstName)
	}
	if upd.LastName != nil {
		sets = append(sets, "last_name = ?")
		args = append(args, *upd.LastName)
	}
	if upd.Phone != nil {
		sets = append(sets, "phone = ?")
		args = append(args, *upd.Phone)
	}
	if upd.Qualification != nil {
		sets = append(sets, "qualification = ?")
		args = append(args, *upd.Qualification)
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = ?`, strings.Join(sets, ", "))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("user not found: %s", id)
	}

	return nil
}

// UpdateUserPassword replaces the stored password hash and salt
func (r *SQLiteRepository) UpdateUserPassword(ctx context.Context, id, passwordHash, salt string) error {
	query := `UPDATE users SET password_hash = ?, salt = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, passwordHash, salt, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("user not found: %s", id)
	}

	return nil
}

// --- Tokens ---

// CreateToken persists a new auth token
func (r *SQLiteRepository) CreateToken(ctx context.Context, t *models.AuthToken) error {
	query := `
		INSERT INTO auth_tokens (token, user_id, created_at, expires_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, t.Token, t.UserID, unixNano(t.CreatedAt), unixNano(t.ExpiresAt))
	if err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}

	return nil
}

// GetToken retrieves an auth token by its value
func (r *SQLiteRepository) GetToken(ctx context.Context, token string) (*models.AuthToken, error) {
	query := `
		SELECT token, user_id, created_at, expires_at
		FROM auth_tokens
		WHERE token = ?
	`

	var t models.AuthToken
	var createdAt, expiresAt int64
	err := r.db.QueryRowContext(ctx, query, token).Scan(&t.Token, &t.UserID, &createdAt, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	t.CreatedAt = fromUnixNano(createdAt)
	t.ExpiresAt = fromUnixNano(expiresAt)

	return &t, nil
}

// DeleteToken revokes a token. Deleting an absent token is a no-op.
func (r *SQLiteRepository) DeleteToken(ctx context.Context, token string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE token = ?`, token); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

// DeleteExpiredTokens removes all tokens past their expiry and returns
// the number removed
func (r *SQLiteRepository) DeleteExpiredTokens(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE expires_at < ?`, unixNano(time.Now()))
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted tokens: %w", err)
	}

	return n, nil
}

// --- Progress ---

// DomainProgress returns the highest completed step index for one domain
func (r *SQLiteRepository) DomainProgress(ctx context.Context, userID, domain string) (int, error) {
	query := `SELECT completed FROM user_progress WHERE user_id = ? AND domain = ?`

	var completed int
	err := r.db.QueryRowContext(ctx, query, userID, domain).Scan(&completed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get progress: %w", err)
	}

	return completed, nil
}

// AllProgress returns the full domain -> completed map for a user
func (r *SQLiteRepository) AllProgress(ctx context.Context, userID string) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT domain, completed FROM user_progress WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress map: %w", err)
	}
	defer rows.Close()

	progress := make(map[string]int)
	for rows.Next() {
		var domain string
		var completed int
		if err := rows.Scan(&domain, &completed); err != nil {
			return nil, fmt.Errorf("failed to scan progress: %w", err)
		}
		progress[domain] = completed
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating progress: %w", err)
	}

	return progress, nil
}

// AdvanceProgress raises the completed index for (user, domain) to stepIndex
// unless the stored value is already higher, atomically, and returns the
// stored value after the call
func (r *SQLiteRepository) AdvanceProgress(ctx context.Context, userID, domain string, stepIndex int) (int, error) {
	query := `
		INSERT INTO user_progress (user_id, domain, completed, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, domain) DO UPDATE
		SET completed = MAX(user_progress.completed, excluded.completed), updated_at = excluded.updated_at
		RETURNING completed
	`

	var completed int
	err := r.db.QueryRowContext(ctx, query, userID, domain, stepIndex, unixNano(time.Now())).Scan(&completed)
	if err != nil {
		return 0, fmt.Errorf("failed to advance progress: %w", err)
	}

	return completed, nil
}

// --- Attempts ---

// AppendAttempt records one graded submission
func (r *SQLiteRepository) AppendAttempt(ctx context.Context, a *models.Attempt) error {
	query := `
		INSERT INTO attempts (id, user_id, domain, step_index, score, total, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.UserID,
		a.Domain,
		a.StepIndex,
		a.Score,
		a.Total,
		unixNano(a.CreatedAt),
	)

	if err != nil {
		return fmt.Errorf("failed to append attempt: %w", err)
	}

	return nil
}

// ListAttempts returns a user's attempts in append order
func (r *SQLiteRepository) ListAttempts(ctx context.Context, userID string) ([]*models.Attempt, error) {
	query := `
		SELECT id, user_id, domain, step_index, score, total, created_at
		FROM attempts
		WHERE user_id = ?
		ORDER BY created_at ASC, rowid ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	defer rows.Close()

	var attempts []*models.Attempt
	for rows.Next() {
		var a models.Attempt
		var createdAt int64
		err := rows.Scan(&a.ID, &a.UserID, &a.Domain, &a.StepIndex, &a.Score, &a.Total, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		a.CreatedAt = fromUnixNano(createdAt)
		attempts = append(attempts, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attempts: %w", err)
	}

	return attempts, nil
}

// --- Resumes ---

// UpsertResume creates or replaces a user's resume document
func (r *SQLiteRepository) UpsertResume(ctx context.Context, userID string, resume *models.Resume) error {
	skillsJSON, err := json.Marshal(resume.Skills)
	if err != nil {
		return fmt.Errorf("failed to marshal skills: %w", err)
	}
	educationJSON, err := json.Marshal(resume.Education)
	if err != nil {
		return fmt.Errorf("failed to marshal education: %w", err)
	}
	experienceJSON, err := json.Marshal(resume.Experience)
	if err != nil {
		return fmt.Errorf("failed to marshal experience: %w", err)
	}
	projectsJSON, err := json.Marshal(resume.Projects)
	if err != nil {
		return fmt.Errorf("failed to marshal projects: %w", err)
	}

	query := `
		INSERT INTO resumes (user_id, summary, skills, education, experience, projects, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE
		SET summary = excluded.summary,
		    skills = excluded.skills,
		    education = excluded.education,
		    experience = excluded.experience,
		    projects = excluded.projects,
		    updated_at = excluded.updated_at
	`

	_, err = r.db.ExecContext(ctx, query,
		userID,
		resume.Summary,
		string(skillsJSON),
		string(educationJSON),
		string(experienceJSON),
		string(projectsJSON),
		unixNano(time.Now()),
	)

	if err != nil {
		return fmt.Errorf("failed to upsert resume: %w", err)
	}

	return nil
}

// GetResume retrieves a user's resume document
func (r *SQLiteRepository) GetResume(ctx context.Context, userID string) (*models.Resume, error) {
	query := `
		SELECT summary, skills, education, experience, projects
		FROM resumes
		WHERE user_id = ?
	`

	var resume models.Resume
	var skillsJSON, educationJSON, experienceJSON, projectsJSON string

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&resume.Summary,
		&skillsJSON,
		&educationJSON,
		&experienceJSON,
		&projectsJSON,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	if err := json.Unmarshal([]byte(skillsJSON), &resume.Skills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal skills: %w", err)
	}
	if err := json.Unmarshal([]byte(educationJSON), &resume.Education); err != nil {
		return nil, fmt.Errorf("failed to unmarshal education: %w", err)
	}
	if err := json.Unmarshal([]byte(experienceJSON), &resume.Experience); err != nil {
		return nil, fmt.Errorf("failed to unmarshal experience: %w", err)
	}
	if err := json.Unmarshal([]byte(projectsJSON), &resume.Projects); err != nil {
		return nil, fmt.Errorf("failed to unmarshal projects: %w", err)
	}

	resume.Normalize()
	return &resume, nil
}
