// ABOUTME: Registration, login and bearer-token authentication for the mock backend.
// ABOUTME: Tokens are HS256 JWTs; passwords are stored as bcrypt hashes.
package fakeapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/harperreed/wellness/internal/models"
)

var (
	errMissingToken = errors.New("missing bearer token")
	errInvalidToken = errors.New("invalid bearer token")
)

type contextKey string

const userIDKey contextKey = "wellness-user-id"

func userID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) issueToken(user models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"iss":   s.issuer,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) parseToken(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errMissingToken
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", fmt.Errorf("%w: %v", errInvalidToken, err)
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", errInvalidToken
	}
	return sub, nil
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			writeError(w, http.StatusUnauthorized, errMissingToken.Error())
			return
		}
		id, err := s.parseToken(header[len("Bearer "):])
		if err != nil {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}

		s.mu.RLock()
		_, ok := s.accounts[id]
		s.mu.RUnlock()
		if !ok {
			writeError(w, http.StatusUnauthorized, "unknown user")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, id)))
	})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decode(w, r, &req) {
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	switch {
	case strings.TrimSpace(req.Name) == "":
		writeError(w, http.StatusBadRequest, "name is required")
		return
	case req.Email == "":
		writeError(w, http.StatusBadRequest, "email is required")
		return
	case len(req.Password) < 6:
		writeError(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	s.mu.Lock()
	if _, exists := s.emails[req.Email]; exists {
		s.mu.Unlock()
		writeError(w, http.StatusConflict, "email already registered")
		return
	}
	user := models.User{ID: uuid.NewString(), Name: req.Name, Email: req.Email}
	s.accounts[user.ID] = &account{
		user:         user,
		passwordHash: hash,
		profile:      models.UserProfile{ID: user.ID, Name: user.Name, Email: user.Email},
	}
	s.emails[user.Email] = user.ID
	s.mu.Unlock()

	s.respondWithToken(w, http.StatusCreated, user)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if !decode(w, r, &creds) {
		return
	}
	email := strings.ToLower(strings.TrimSpace(creds.Email))

	s.mu.RLock()
	var (
		user  models.User
		hash  []byte
		found bool
	)
	if id, ok := s.emails[email]; ok {
		acct := s.accounts[id]
		user, hash, found = acct.user, acct.passwordHash, true
	}
	s.mu.RUnlock()

	if !found || bcrypt.CompareHashAndPassword(hash, []byte(creds.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	s.respondWithToken(w, http.StatusOK, user)
}

func (s *Server) respondWithToken(w http.ResponseWriter, status int, user models.User) {
	token, err := s.issueToken(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	writeJSON(w, status, models.AuthResponse{Token: token, User: user})
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	user := s.accounts[userID(r.Context())].user
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, user)
}
