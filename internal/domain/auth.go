package domain

import "time"

// Credential is a login account seeded at startup.
type Credential struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Session is one issued token. There is no FK from Username to a
// credential; a dangling session is simply invalid once it expires.
type Session struct {
	Token     string
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}
