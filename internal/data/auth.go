// ABOUTME: Login, registration and logout flows that own the session store.
// ABOUTME: The cache is cleared whenever the signed-in user changes.
package data

import (
	"context"
	"fmt"

	"github.com/harperreed/wellness/internal/models"
)

// Login authenticates and persists the session.
func (l *Layer) Login(ctx context.Context, creds models.Credentials) (*models.User, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	resp, err := l.res.Auth.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	return l.startSession(resp)
}

// Register creates an account and signs in with it.
func (l *Layer) Register(ctx context.Context, reg models.Registration) (*models.User, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	resp, err := l.res.Auth.Register(ctx, reg)
	if err != nil {
		return nil, err
	}
	return l.startSession(resp)
}

func (l *Layer) startSession(resp *models.AuthResponse) (*models.User, error) {
	if err := l.session.Login(resp.Token, resp.User); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	l.cache.Clear()
	user := resp.User
	return &user, nil
}

// Logout clears the session and every cached resource.
func (l *Layer) Logout() error {
	if err := l.session.Logout(); err != nil {
		return err
	}
	l.cache.Clear()
	return nil
}
