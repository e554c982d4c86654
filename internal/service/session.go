package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	dom "github.com/amanbabu2004/web-application-students/internal/domain"
	"github.com/amanbabu2004/web-application-students/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers both unknown username and wrong password so
// the response never reveals which one failed.
var ErrInvalidCredentials = errors.New("invalid username or password")

const defaultSessionTTL = 24 * time.Hour

// SessionService issues, verifies and revokes session tokens.
type SessionService struct {
	creds    repo.CredentialRepo
	sessions repo.SessionRepo
	ttl      time.Duration
}

// NewSessionService returns a new SessionService. ttl <= 0 means 24h.
func NewSessionService(creds repo.CredentialRepo, sessions repo.SessionRepo, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionService{creds: creds, sessions: sessions, ttl: ttl}
}

// Login checks the credential and, on success, persists and returns a fresh token.
func (s *SessionService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", ErrInvalidCredentials
	}
	cred, err := s.creds.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := newToken()
	if err != nil {
		return "", err
	}
	now := time.Now().UTC()
	err = s.sessions.Create(ctx, dom.Session{
		Token:     token,
		Username:  cred.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// Logout deletes the session if present and reports whether one was removed.
func (s *SessionService) Logout(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	return s.sessions.Delete(ctx, token)
}

// Verify returns the session's username when the token exists and has not
// expired. Expired rows are left in place; the dbtool cleanup removes them.
func (s *SessionService) Verify(ctx context.Context, token string) (string, bool, error) {
	if token == "" {
		return "", false, nil
	}
	sess, err := s.sessions.GetValid(ctx, token, time.Now().UTC())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return sess.Username, true, nil
}

// newToken returns 128 bits from crypto/rand, hex-encoded.
func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	return hex.EncodeToString(b), nil
}
