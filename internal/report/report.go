// Package report implements the read-only inspection and maintenance
// queries used by cmd/dbtool. It talks to the same tables as the API but
// runs independently of the API process.
package report

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	dom "github.com/amanbabu2004/web-application-students/internal/domain"
)

// Tool runs inspection queries over a plain database/sql handle.
type Tool struct {
	db *sql.DB
}

// New returns a new Tool.
func New(db *sql.DB) *Tool {
	return &Tool{db: db}
}

// Stats is the aggregate summary of the directory.
type Stats struct {
	UserCount       int64
	CredentialCount int64
	SessionCount    int64
	AverageAge      float64
	MinAge          int
	MaxAge          int
	MostCommonAge   int
}

// OccupationCount is one row of the occupation breakdown.
type OccupationCount struct {
	Occupation string
	Count      int64
	Percent    float64
}

// CredentialInfo is the safe-to-print subset of a credential row.
type CredentialInfo struct {
	Username  string
	CreatedAt time.Time
}

// Users returns all directory records ordered by name.
func (t *Tool) Users(ctx context.Context) ([]dom.User, error) {
	return t.queryUsers(ctx, `
		SELECT id, name, email, age, occupation, created_at, updated_at
		FROM users ORDER BY name`)
}

// Search returns records whose name or email contains term.
func (t *Tool) Search(ctx context.Context, term string) ([]dom.User, error) {
	return t.queryUsers(ctx, `
		SELECT id, name, email, age, occupation, created_at, updated_at
		FROM users WHERE name ILIKE $1 OR email ILIKE $1
		ORDER BY name`, "%"+term+"%")
}

func (t *Tool) queryUsers(ctx context.Context, query string, args ...any) ([]dom.User, error) {
	rows, err := t.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.User
	for rows.Next() {
		var u dom.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Age, &u.Occupation,
			&u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Stats gathers row counts and age aggregates.
func (t *Tool) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	if err := t.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&s.UserCount); err != nil {
		return Stats{}, err
	}
	if err := t.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM auth_users`).Scan(&s.CredentialCount); err != nil {
		return Stats{}, err
	}
	if err := t.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&s.SessionCount); err != nil {
		return Stats{}, err
	}
	if s.UserCount == 0 {
		return s, nil
	}
	err := t.db.QueryRowContext(ctx,
		`SELECT ROUND(AVG(age), 2), MIN(age), MAX(age) FROM users`,
	).Scan(&s.AverageAge, &s.MinAge, &s.MaxAge)
	if err != nil {
		return Stats{}, err
	}
	err = t.db.QueryRowContext(ctx, `
		SELECT age FROM users
		GROUP BY age ORDER BY COUNT(*) DESC, age LIMIT 1`,
	).Scan(&s.MostCommonAge)
	if err != nil {
		return Stats{}, err
	}
	return s, nil
}

// Occupations returns count and percentage per occupation, most common first.
func (t *Tool) Occupations(ctx context.Context) ([]OccupationCount, error) {
	rows, err := t.db.QueryContext(ctx, `
		SELECT occupation,
		       COUNT(*) AS count,
		       ROUND(COUNT(*) * 100.0 / (SELECT COUNT(*) FROM users), 2) AS percentage
		FROM users
		GROUP BY occupation
		ORDER BY count DESC, occupation`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []OccupationCount
	for rows.Next() {
		var oc OccupationCount
		if err := rows.Scan(&oc.Occupation, &oc.Count, &oc.Percent); err != nil {
			return nil, err
		}
		list = append(list, oc)
	}
	return list, rows.Err()
}

// Credentials returns usernames and creation times; hashes are never exposed.
func (t *Tool) Credentials(ctx context.Context) ([]CredentialInfo, error) {
	rows, err := t.db.QueryContext(ctx,
		`SELECT username, created_at FROM auth_users ORDER BY username`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []CredentialInfo
	for rows.Next() {
		var ci CredentialInfo
		if err := rows.Scan(&ci.Username, &ci.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, ci)
	}
	return list, rows.Err()
}

// ActiveSessions returns unexpired sessions, newest first.
func (t *Tool) ActiveSessions(ctx context.Context) ([]dom.Session, error) {
	rows, err := t.db.QueryContext(ctx, `
		SELECT token, username, created_at, expires_at
		FROM sessions WHERE expires_at > NOW()
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Session
	for rows.Next() {
		var s dom.Session
		if err := rows.Scan(&s.Token, &s.Username, &s.CreatedAt, &s.ExpiresAt); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// CleanupExpiredSessions deletes expired session rows and returns how many.
// The API process never does this; it is an operator action.
func (t *Tool) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	res, err := t.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Result holds the outcome of a raw query passthrough.
type Result struct {
	Columns  []string
	Rows     [][]string
	Affected int64
}

// Query executes an arbitrary statement. SELECTs return rows, everything
// else reports the affected-row count.
func (t *Tool) Query(ctx context.Context, query string) (Result, error) {
	if !strings.HasPrefix(strings.ToUpper(strings.TrimSpace(query)), "SELECT") {
		res, err := t.db.ExecContext(ctx, query)
		if err != nil {
			return Result{}, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return Result{}, err
		}
		return Result{Affected: n}, nil
	}

	rows, err := t.db.QueryContext(ctx, query)
	if err != nil {
		return Result{}, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return Result{}, err
	}
	out := Result{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		for i := range values {
			values[i] = new(any)
		}
		if err := rows.Scan(values...); err != nil {
			return Result{}, err
		}
		row := make([]string, len(cols))
		for i, v := range values {
			row[i] = formatValue(*(v.(*any)))
		}
		out.Rows = append(out.Rows, row)
	}
	return out, rows.Err()
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}
