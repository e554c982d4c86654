package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	dom "github.com/amanbabu2004/web-application-students/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleUsers() []dom.User {
	created := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	return []dom.User{
		{
			ID: "1", Name: "Alice Johnson", Email: "alice@university.edu",
			Age: 20, Occupation: "CS Student",
			CreatedAt: created, UpdatedAt: created,
		},
		{
			ID: "2", Name: "Bob O'Brien", Email: "bob@university.edu",
			Age: 21, Occupation: "Engineering Student",
			CreatedAt: created, UpdatedAt: created,
		},
	}
}

func TestWriteUsersCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteUsersCSV(&buf, sampleUsers()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Name,Email,Age,Occupation,Created At,Updated At", lines[0])
	assert.Contains(t, lines[1], "Alice Johnson")
	assert.Contains(t, lines[1], "2025-01-15T10:00:00Z")
	assert.Contains(t, lines[2], "Bob O'Brien")
}

func TestWriteUsersCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteUsersCSV(&buf, nil))
	assert.Equal(t, "ID,Name,Email,Age,Occupation,Created At,Updated At\n", buf.String())
}

func TestInsertStmt(t *testing.T) {
	got := insertStmt("users", []string{"id", "name"}, []string{"'1'", "'Alice'"})
	assert.Equal(t, "INSERT INTO users (id, name) VALUES ('1', 'Alice');", got)
}

func TestQuoteSQLEscapesQuotes(t *testing.T) {
	assert.Equal(t, "'Bob O''Brien'", quoteSQL("Bob O'Brien"))
	assert.Equal(t, "''", quoteSQL(""))
}
