package service

import (
	"context"
	"testing"
	"time"

	dom "github.com/amanbabu2004/web-application-students/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newSessions(t *testing.T) (*SessionService, *fakeSessionRepo) {
	t.Helper()
	creds := newFakeCredentialRepo()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = creds.Create(context.Background(), "admin", string(hash))
	require.NoError(t, err)

	sessions := newFakeSessionRepo()
	return NewSessionService(creds, sessions, 24*time.Hour), sessions
}

func TestLoginAndVerify(t *testing.T) {
	svc, _ := newSessions(t)
	ctx := context.Background()

	token, err := svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.Len(t, token, 32) // 16 random bytes, hex-encoded

	username, ok, err := svc.Verify(ctx, token)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "admin", username)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newSessions(t)
	ctx := context.Background()

	_, errWrongPassword := svc.Login(ctx, "admin", "nope")
	_, errUnknownUser := svc.Login(ctx, "ghost", "admin123")

	assert.ErrorIs(t, errWrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknownUser, ErrInvalidCredentials)
	assert.Equal(t, errWrongPassword.Error(), errUnknownUser.Error())
}

func TestLoginEmptyInput(t *testing.T) {
	svc, _ := newSessions(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "", "admin123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "admin", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestConcurrentLoginsGetIndependentTokens(t *testing.T) {
	svc, _ := newSessions(t)
	ctx := context.Background()

	t1, err := svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	t2, err := svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.NotEqual(t, t1, t2)

	// both stay valid; no single-session-per-user rule
	_, ok, err := svc.Verify(ctx, t1)
	require.NoError(t, err)
	assert.True(t, ok)
	_, ok, err = svc.Verify(ctx, t2)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	svc, _ := newSessions(t)
	ctx := context.Background()

	token, err := svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)

	ok, err := svc.Logout(ctx, token)
	require.NoError(t, err)
	assert.True(t, ok)

	_, valid, err := svc.Verify(ctx, token)
	require.NoError(t, err)
	assert.False(t, valid)

	// second logout is a no-op, not an error
	ok, err = svc.Logout(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyExpiredTokenStillStored(t *testing.T) {
	svc, sessions := newSessions(t)
	ctx := context.Background()

	// insert an expired row directly; the service must read it as invalid
	// without deleting it
	err := sessions.Create(ctx, dom.Session{
		Token:     "deadbeefdeadbeefdeadbeefdeadbeef",
		Username:  "admin",
		CreatedAt: time.Now().UTC().Add(-48 * time.Hour),
		ExpiresAt: time.Now().UTC().Add(-24 * time.Hour),
	})
	require.NoError(t, err)

	_, ok, err := svc.Verify(ctx, "deadbeefdeadbeefdeadbeefdeadbeef")
	require.NoError(t, err)
	assert.False(t, ok)

	sessions.mu.Lock()
	_, stillThere := sessions.sessions["deadbeefdeadbeefdeadbeefdeadbeef"]
	sessions.mu.Unlock()
	assert.True(t, stillThere)
}

func TestVerifyUnknownToken(t *testing.T) {
	svc, _ := newSessions(t)

	_, ok, err := svc.Verify(context.Background(), "no-such-token")
	require.NoError(t, err)
	assert.False(t, ok)
}
