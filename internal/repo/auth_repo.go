package repo

import (
	"context"
	"time"

	dom "github.com/amanbabu2004/web-application-students/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CredentialRepo provides login-account persistence.
type CredentialRepo interface {
	GetByUsername(ctx context.Context, username string) (dom.Credential, error)
	Create(ctx context.Context, username, passwordHash string) (dom.Credential, error)
	Count(ctx context.Context) (int64, error)
}

// SessionRepo provides session-token persistence.
type SessionRepo interface {
	Create(ctx context.Context, s dom.Session) error
	// GetValid returns the session only when it exists and has not expired.
	GetValid(ctx context.Context, token string, now time.Time) (dom.Session, error)
	// Delete reports whether a session row was actually removed.
	Delete(ctx context.Context, token string) (bool, error)
}

// PGCredentialRepo implements CredentialRepo with Postgres.
type PGCredentialRepo struct {
	db *pgxpool.Pool
}

// NewPGCredentialRepo returns a new PGCredentialRepo.
func NewPGCredentialRepo(db *pgxpool.Pool) *PGCredentialRepo {
	return &PGCredentialRepo{db: db}
}

// GetByUsername returns the credential by username.
func (r *PGCredentialRepo) GetByUsername(ctx context.Context, username string) (dom.Credential, error) {
	var c dom.Credential
	err := r.db.QueryRow(ctx,
		`SELECT id, username, password_hash, created_at FROM auth_users WHERE username = $1`,
		username,
	).Scan(&c.ID, &c.Username, &c.PasswordHash, &c.CreatedAt)
	return c, err
}

// Create inserts a new credential and returns it.
func (r *PGCredentialRepo) Create(ctx context.Context, username, passwordHash string) (dom.Credential, error) {
	query := `
		INSERT INTO auth_users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, username, password_hash, created_at`
	var c dom.Credential
	err := r.db.QueryRow(ctx, query, username, passwordHash).Scan(
		&c.ID, &c.Username, &c.PasswordHash, &c.CreatedAt,
	)
	return c, err
}

// Count returns the number of credentials; used by startup seeding.
func (r *PGCredentialRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM auth_users`).Scan(&n)
	return n, err
}

// PGSessionRepo implements SessionRepo with Postgres.
type PGSessionRepo struct {
	db *pgxpool.Pool
}

// NewPGSessionRepo returns a new PGSessionRepo.
func NewPGSessionRepo(db *pgxpool.Pool) *PGSessionRepo {
	return &PGSessionRepo{db: db}
}

func (r *PGSessionRepo) Create(ctx context.Context, s dom.Session) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO sessions (token, username, created_at, expires_at) VALUES ($1, $2, $3, $4)`,
		s.Token, s.Username, s.CreatedAt, s.ExpiresAt,
	)
	return err
}

func (r *PGSessionRepo) GetValid(ctx context.Context, token string, now time.Time) (dom.Session, error) {
	query := `
		SELECT token, username, created_at, expires_at
		FROM sessions WHERE token = $1 AND expires_at > $2`
	var s dom.Session
	err := r.db.QueryRow(ctx, query, token, now).Scan(
		&s.Token, &s.Username, &s.CreatedAt, &s.ExpiresAt,
	)
	return s, err
}

func (r *PGSessionRepo) Delete(ctx context.Context, token string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
