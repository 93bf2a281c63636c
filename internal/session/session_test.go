// ABOUTME: Tests for the persisted session store.
// ABOUTME: Covers login/logout, JWT expiry and opaque tokens.
package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/harperreed/wellness/internal/localstore"
	"github.com/harperreed/wellness/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	kv, err := localstore.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return New(kv)
}

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestNoSessionByDefault(t *testing.T) {
	s := newStore(t)

	_, ok := s.Current()
	assert.False(t, ok)

	_, err := s.Require()
	assert.ErrorIs(t, err, ErrNoSession)

	_, ok = s.Token()
	assert.False(t, ok)
}

func TestLoginLogout(t *testing.T) {
	s := newStore(t)
	user := models.User{ID: "u1", Name: "Sam", Email: "sam@example.com"}

	require.NoError(t, s.Login("opaque-token", user))

	sess, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "opaque-token", sess.Token)
	assert.Equal(t, user, sess.User)
	assert.Nil(t, sess.ExpiresAt)

	token, ok := s.Token()
	require.True(t, ok)
	assert.Equal(t, "opaque-token", token)

	require.NoError(t, s.Logout())
	_, ok = s.Current()
	assert.False(t, ok)
}

func TestLoginRejectsEmptyToken(t *testing.T) {
	s := newStore(t)
	assert.Error(t, s.Login("", models.User{}))
}

func TestExpiredTokenIsNoSession(t *testing.T) {
	s := newStore(t)
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Login(signed(t, now.Add(-time.Minute)), models.User{ID: "u1"}))
	_, ok := s.Current()
	assert.False(t, ok)

	require.NoError(t, s.Login(signed(t, now.Add(time.Hour)), models.User{ID: "u1"}))
	sess, ok := s.Current()
	require.True(t, ok)
	require.NotNil(t, sess.ExpiresAt)
	assert.Equal(t, now.Add(time.Hour).Unix(), sess.ExpiresAt.Unix())
}

func TestExpiresAt(t *testing.T) {
	exp := time.Now().Add(24 * time.Hour).Truncate(time.Second)

	got, ok := ExpiresAt(signed(t, exp))
	require.True(t, ok)
	assert.True(t, exp.Equal(got))

	_, ok = ExpiresAt("not-a-jwt")
	assert.False(t, ok)
}
