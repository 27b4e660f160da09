package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lernify/road-api/internal/models"
)

// PostgresRepository implements Repository using PostgreSQL
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// PostgresConfig holds PostgreSQL connection configuration
type PostgresConfig struct {
	DSN          string
	MaxOpenConns int32
	MaxIdleConns int32
	MaxLifetime  time.Duration
}

// NewPostgresRepository creates a new PostgreSQL repository and verifies
// connectivity before returning
func NewPostgresRepository(ctx context.Context, cfg PostgresConfig) (*PostgresRepository, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		poolConfig.MaxConns = cfg.MaxOpenConns
	} else {
		poolConfig.MaxConns = 25 // default
	}

	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = cfg.MaxIdleConns
	} else {
		poolConfig.MinConns = 5 // default
	}

	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxLifetime
	} else {
		poolConfig.MaxConnLifetime = 30 * time.Minute
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{pool: pool}, nil
}

// Pool exposes the underlying connection pool for migrations
func (r *PostgresRepository) Pool() *pgxpool.Pool {
	return r.pool
}

// Ping checks database connectivity
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the database connection pool
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

// --- Users ---

// CreateUser creates a new user record
func (r *PostgresRepository) CreateUser(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users (id, first_name, last_name, email, phone, qualification, password_hash, salt, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		u.ID,
		u.FirstName,
		u.LastName,
		u.Email,
		u.Phone,
		u.Qualification,
		u.PasswordHash,
		u.Salt,
		u.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByID retrieves a user by ID, including the progress map
func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return r.getUser(ctx, "id", id)
}

// GetUserByEmail retrieves a user by email, including the progress map
func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, "email", email)
}

func (r *PostgresRepository) getUser(ctx context.Context, field, value string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, first_name, last_name, email, phone, qualification, password_hash, salt, created_at
		FROM users
		WHERE %s = $1
	`, field)

	var u models.User
	err := r.pool.QueryRow(ctx, query, value).Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.Phone,
		&u.Qualification,
		&u.PasswordHash,
		&u.Salt,
		&u.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	progress, err := r.AllProgress(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user progress: %w", err)
	}
	u.Progress = progress

	return &u, nil
}

// UpdateUserProfile applies the non-nil fields of a partial profile update
func (r *PostgresRepository) UpdateUserProfile(ctx context.Context, id string, upd *models.UpdateProfileRequest) error {
	sets := make([]string, 0, 4)
	args := []interface{}{id}
	argNum := 2

	if upd.FirstName != nil {
		sets = append(sets, fmt.Sprintf("first_name = $%d", argNum))
		args = append(args, *upd.FirstName)
		argNum++
	}
	if upd.LastName != nil {
		sets = append(sets, fmt.Sprintf("last_name = $%d", argNum))
		args = append(args, *upd.LastName)
		argNum++
	}
	if upd.Phone != nil {
		sets = append(sets, fmt.Sprintf("phone = $%d", argNum))
		args = append(args, *upd.Phone)
		argNum++
	}
	if upd.Qualification != nil {
		sets = append(sets, fmt.Sprintf("qualification = $%d", argNum))
		args = append(args, *upd.Qualification)
	}

	if len(sets) == 0 {
		return nil
	}

	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $1`, strings.Join(sets, ", "))

	result, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", id)
	}

	return nil
}

// UpdateUserPassword replaces the stored password hash and salt
func (r *PostgresRepository) UpdateUserPassword(ctx context.Context, id, passwordHash, salt string) error {
	query := `UPDATE users SET password_hash = $2, salt = $3 WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, passwordHash, salt)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", id)
	}

	return nil
}

// --- Tokens ---

// CreateToken persists a new auth token
func (r *PostgresRepository) CreateToken(ctx context.Context, t *models.AuthToken) error {
	query := `
		INSERT INTO auth_tokens (token, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query, t.Token, t.UserID, t.CreatedAt, t.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}

	return nil
}

// GetToken retrieves an auth token by its value
func (r *PostgresRepository) GetToken(ctx context.Context, token string) (*models.AuthToken, error) {
	query := `
		SELECT token, user_id, created_at, expires_at
		FROM auth_tokens
		WHERE token = $1
	`

	var t models.AuthToken
	err := r.pool.QueryRow(ctx, query, token).Scan(&t.Token, &t.UserID, &t.CreatedAt, &t.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	return &t, nil
}

// DeleteToken revokes a token. Deleting an absent token is a no-op.
func (r *PostgresRepository) DeleteToken(ctx context.Context, token string) error {
	query := `DELETE FROM auth_tokens WHERE token = $1`

	if _, err := r.pool.Exec(ctx, query, token); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}

	return nil
}

// DeleteExpiredTokens removes all tokens past their expiry and returns
// the number removed
func (r *PostgresRepository) DeleteExpiredTokens(ctx context.Context) (int64, error) {
	query := `DELETE FROM auth_tokens WHERE expires_at < NOW()`

	result, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}

	return result.RowsAffected(), nil
}

// --- Progress ---

// DomainProgress returns the highest completed step index for one domain.
// Users without a row have completed nothing.
func (r *PostgresRepository) DomainProgress(ctx context.Context, userID, domain string) (int, error) {
	query := `SELECT completed FROM user_progress WHERE user_id = $1 AND domain = $2`

	var completed int
	err := r.pool.QueryRow(ctx, query, userID, domain).Scan(&completed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get progress: %w", err)
	}

	return completed, nil
}

// AllProgress returns the full domain -> completed map for a user
func (r *PostgresRepository) AllProgress(ctx context.Context, userID string) (map[string]int, error) {
	query := `SELECT domain, completed FROM user_progress WHERE user_id = $1`

	rows, err := r.pool.Query(ctx, query, userID)
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
// unless the stored value is already higher. The conditional upsert makes the
// advance atomic under concurrent passing submissions; the stored value after
// the call is returned.
func (r *PostgresRepository) AdvanceProgress(ctx context.Context, userID, domain string, stepIndex int) (int, error) {
	query := `
		INSERT INTO user_progress (user_id, domain, completed, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, domain) DO UPDATE
		SET completed = GREATEST(user_progress.completed, EXCLUDED.completed), updated_at = NOW()
		RETURNING completed
	`

	var completed int
	if err := r.pool.QueryRow(ctx, query, userID, domain, stepIndex).Scan(&completed); err != nil {
		return 0, fmt.Errorf("failed to advance progress: %w", err)
	}

	return completed, nil
}

// --- Attempts ---

// AppendAttempt records one graded submission
func (r *PostgresRepository) AppendAttempt(ctx context.Context, a *models.Attempt) error {
	query := `
		INSERT INTO attempts (id, user_id, domain, step_index, score, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		a.ID,
		a.UserID,
		a.Domain,
		a.StepIndex,
		a.Score,
		a.Total,
		a.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to append attempt: %w", err)
	}

	return nil
}

// ListAttempts returns a user's attempts in append order
func (r *PostgresRepository) ListAttempts(ctx context.Context, userID string) ([]*models.Attempt, error) {
	query := `
		SELECT id, user_id, domain, step_index, score, total, created_at
		FROM attempts
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	defer rows.Close()

	var attempts []*models.Attempt
	for rows.Next() {
		var a models.Attempt
		err := rows.Scan(&a.ID, &a.UserID, &a.Domain, &a.StepIndex, &a.Score, &a.Total, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		attempts = append(attempts, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attempts: %w", err)
	}

	return attempts, nil
}

// --- Resumes ---

// UpsertResume creates or replaces a user's resume document
func (r *PostgresRepository) UpsertResume(ctx context.Context, userID string, resume *models.Resume) error {
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
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET summary = EXCLUDED.summary,
		    skills = EXCLUDED.skills,
		    education = EXCLUDED.education,
		    experience = EXCLUDED.experience,
		    projects = EXCLUDED.projects,
		    updated_at = NOW()
	`

	_, err = r.pool.Exec(ctx, query, userID, resume.Summary, skillsJSON, educationJSON, experienceJSON, projectsJSON)
	if err != nil {
		return fmt.Errorf("failed to upsert resume: %w", err)
	}

	return nil
}

// GetResume retrieves a user's resume document
func (r *PostgresRepository) GetResume(ctx context.Context, userID string) (*models.Resume, error) {
	query := `
		SELECT summary, skills, education, experience, projects
		FROM resumes
		WHERE user_id = $1
	`

	var resume models.Resume
	var skillsJSON, educationJSON, experienceJSON, projectsJSON []byte

	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&resume.Summary,
		&skillsJSON,
		&educationJSON,
		&experienceJSON,
		&projectsJSON,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	if err := json.Unmarshal(skillsJSON, &resume.Skills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal skills: %w", err)
	}
	if err := json.Unmarshal(educationJSON, &resume.Education); err != nil {
		return nil, fmt.Errorf("failed to unmarshal education: %w", err)
	}
	if err := json.Unmarshal(experienceJSON, &resume.Experience); err != nil {
		return nil, fmt.Errorf("failed to unmarshal experience: %w", err)
	}
	if err := json.Unmarshal(projectsJSON, &resume.Projects); err != nil {
		return nil, fmt.Errorf("failed to unmarshal projects: %w", err)
	}

	resume.Normalize()
	return &resume, nil
}
