// ABOUTME: Authentication payloads exchanged with /api/auth.
// ABOUTME: Registration checks password length and confirmation before submit.
package models

// User is the identity persisted alongside the session token.
type User struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
}

// Credentials is the login form.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Validate checks the login form.
func (c *Credentials) Validate() error {
	return check(c)
}

// Registration is the sign-up form. ConfirmPassword never leaves the client.
type Registration struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"-" validate:"eqfield=Password"`
}

// Validate checks the sign-up form.
func (r *Registration) Validate() error {
	return check(r)
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	Token string `json:"token" response:"required"`
	User  User   `json:"user"`
}

// ValidateResponse rejects responses without a token.
func (a *AuthResponse) ValidateResponse() error {
	return checkShape(a)
}
