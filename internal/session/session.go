// ABOUTME: Process-wide session store holding the bearer token and current user.
// ABOUTME: Persisted in local storage; expired JWTs are treated as logged out.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/harperreed/wellness/internal/localstore"
	"github.com/harperreed/wellness/internal/models"
)

const (
	tokenKey = "token"
	userKey  = "user"
)

// Keys lists the local storage keys that hold the session.
func Keys() []string {
	return []string{tokenKey, userKey}
}

// ErrNoSession is returned by Require when nobody is logged in.
var ErrNoSession = errors.New("not logged in - run 'wellness login'")

// Session is an authenticated user and their bearer token.
type Session struct {
	Token     string
	User      models.User
	ExpiresAt *time.Time
}

// Store owns the persisted session. Only Login and Logout write to it.
type Store struct {
	mu  sync.RWMutex
	kv  localstore.Store
	now func() time.Time
}

// New creates a Store over persisted local storage.
func New(kv localstore.Store) *Store {
	return &Store{kv: kv, now: time.Now}
}

// Login persists token and user, replacing any previous session.
func (s *Store) Login(token string, user models.User) error {
	if token == "" {
		return fmt.Errorf("login: empty token")
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Set(tokenKey, []byte(token)); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	if err := s.kv.Set(userKey, data); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// Logout clears the token and user.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Delete(tokenKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	if err := s.kv.Delete(userKey); err != nil {
		return fmt.Errorf("clear user: %w", err)
	}
	return nil
}

// Current returns the active session, if any.
func (s *Store) Current() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, err := s.kv.Get(tokenKey)
	if err != nil || len(raw) == 0 {
		return Session{}, false
	}
	sess := Session{Token: string(raw)}

	if exp, ok := ExpiresAt(sess.Token); ok {
		if !s.now().Before(exp) {
			return Session{}, false
		}
		sess.ExpiresAt = &exp
	}

	if data, err := s.kv.Get(userKey); err == nil {
		_ = json.Unmarshal(data, &sess.User)
	}
	return sess, true
}

// Require returns the active session or ErrNoSession.
func (s *Store) Require() (Session, error) {
	sess, ok := s.Current()
	if !ok {
		return Session{}, ErrNoSession
	}
	return sess, nil
}

// Token returns the bearer token of the active session.
func (s *Store) Token() (string, bool) {
	sess, ok := s.Current()
	if !ok {
		return "", false
	}
	return sess.Token, true
}

// ExpiresAt reads the exp claim of a JWT without verifying its signature.
// Opaque tokens report no expiry.
func ExpiresAt(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
