package service

import (
	"context"
	"strings"
	"sync"
	"time"

	dom "github.com/amanbabu2004/web-application-students/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation mimics what pgx returns when the users_email_key index fires.
func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]dom.User
	order []string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]dom.User{}}
}

func (r *fakeUserRepo) emailTaken(email, exceptID string) bool {
	for id, u := range r.users {
		if id != exceptID && u.Email == email {
			return true
		}
	}
	return false
}

func (r *fakeUserRepo) Create(_ context.Context, u dom.User) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; ok {
		return dom.User{}, uniqueViolation()
	}
	if r.emailTaken(u.Email, u.ID) {
		return dom.User{}, uniqueViolation()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	r.users[u.ID] = u
	r.order = append(r.order, u.ID)
	return u, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []dom.User
	for _, id := range r.order {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u dom.User) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[u.ID]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	if r.emailTaken(u.Email, u.ID) {
		return dom.User{}, uniqueViolation()
	}
	u.CreatedAt = existing.CreatedAt
	u.UpdatedAt = time.Now().UTC()
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return "", pgx.ErrNoRows
	}
	delete(r.users, id)
	return u.Name, nil
}

func (r *fakeUserRepo) Search(_ context.Context, q string) ([]dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []dom.User
	for _, id := range r.order {
		u, ok := r.users[id]
		if !ok {
			continue
		}
		if containsFold(u.Name, q) || containsFold(u.Email, q) {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeCredentialRepo struct {
	mu    sync.Mutex
	creds map[string]dom.Credential
	next  int64
}

func newFakeCredentialRepo() *fakeCredentialRepo {
	return &fakeCredentialRepo{creds: map[string]dom.Credential{}}
}

func (r *fakeCredentialRepo) GetByUsername(_ context.Context, username string) (dom.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.creds[username]
	if !ok {
		return dom.Credential{}, pgx.ErrNoRows
	}
	return c, nil
}

func (r *fakeCredentialRepo) Create(_ context.Context, username, passwordHash string) (dom.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.creds[username]; ok {
		return dom.Credential{}, uniqueViolation()
	}
	r.next++
	c := dom.Credential{ID: r.next, Username: username, PasswordHash: passwordHash, CreatedAt: time.Now().UTC()}
	r.creds[username] = c
	return c, nil
}

func (r *fakeCredentialRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.creds)), nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]dom.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]dom.Session{}}
}

func (r *fakeSessionRepo) Create(_ context.Context, s dom.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.Token] = s
	return nil
}

func (r *fakeSessionRepo) GetValid(_ context.Context, token string, now time.Time) (dom.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[token]
	if !ok || !s.ExpiresAt.After(now) {
		return dom.Session{}, pgx.ErrNoRows
	}
	return s, nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[token]
	delete(r.sessions, token)
	return ok, nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
