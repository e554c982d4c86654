package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	dom "github.com/amanbabu2004/web-application-students/internal/domain"
)

// WriteUsersCSV writes the user table as CSV with a header row.
func WriteUsersCSV(w io.Writer, users []dom.User) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ID", "Name", "Email", "Age", "Occupation", "Created At", "Updated At"}); err != nil {
		return err
	}
	for _, u := range users {
		rec := []string{
			u.ID,
			u.Name,
			u.Email,
			strconv.Itoa(u.Age),
			u.Occupation,
			u.CreatedAt.Format(time.RFC3339),
			u.UpdatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DumpSQL writes INSERT statements for all three tables, usable to rebuild
// the data on an empty schema.
func (t *Tool) DumpSQL(ctx context.Context, w io.Writer) error {
	users, err := t.queryUsers(ctx, `
		SELECT id, name, email, age, occupation, created_at, updated_at
		FROM users ORDER BY id`)
	if err != nil {
		return err
	}
	for _, u := range users {
		stmt := insertStmt("users",
			[]string{"id", "name", "email", "age", "occupation", "created_at", "updated_at"},
			[]string{
				quoteSQL(u.ID), quoteSQL(u.Name), quoteSQL(u.Email),
				strconv.Itoa(u.Age), quoteSQL(u.Occupation),
				quoteSQL(u.CreatedAt.Format(time.RFC3339)),
				quoteSQL(u.UpdatedAt.Format(time.RFC3339)),
			})
		if _, err := fmt.Fprintln(w, stmt); err != nil {
			return err
		}
	}

	rows, err := t.db.QueryContext(ctx,
		`SELECT username, password_hash, created_at FROM auth_users ORDER BY username`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var username, hash string
		var createdAt time.Time
		if err := rows.Scan(&username, &hash, &createdAt); err != nil {
			return err
		}
		stmt := insertStmt("auth_users",
			[]string{"username", "password_hash", "created_at"},
			[]string{quoteSQL(username), quoteSQL(hash), quoteSQL(createdAt.Format(time.RFC3339))})
		if _, err := fmt.Fprintln(w, stmt); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	sessions, err := t.allSessions(ctx)
	if err != nil {
		return err
	}
	for _, s := range sessions {
		stmt := insertStmt("sessions",
			[]string{"token", "username", "created_at", "expires_at"},
			[]string{
				quoteSQL(s.Token), quoteSQL(s.Username),
				quoteSQL(s.CreatedAt.Format(time.RFC3339)),
				quoteSQL(s.ExpiresAt.Format(time.RFC3339)),
			})
		if _, err := fmt.Fprintln(w, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tool) allSessions(ctx context.Context) ([]dom.Session, error) {
	rows, err := t.db.QueryContext(ctx,
		`SELECT token, username, created_at, expires_at FROM sessions ORDER BY created_at`)
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

func insertStmt(table string, columns, values []string) string {
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);",
		table, strings.Join(columns, ", "), strings.Join(values, ", "))
}

// quoteSQL wraps s in single quotes, doubling embedded quotes.
func quoteSQL(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
