// ABOUTME: Error taxonomy for the HTTP client.
// ABOUTME: No-auth, transport, non-2xx status and malformed response errors.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	// ErrNotAuthenticated is returned before any network I/O when a protected
	// request is attempted without a current session.
	ErrNotAuthenticated = errors.New("not logged in - run 'wellness login'")

	// ErrMalformedResponse wraps responses that fail to decode or validate.
	ErrMalformedResponse = errors.New("malformed server response")
)

// TransportError means the request never reached the server or no response came back.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to reach server: %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError is a non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

// IsUnauthorized reports whether the server rejected the bearer token.
func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}

const maxErrorBody = 64 << 10

func newStatusError(method, path string, resp *http.Response) *StatusError {
	se := &StatusError{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(body) == 0 {
		return se
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		switch {
		case payload.Message != "":
			se.Message = payload.Message
		case payload.Error != "":
			se.Message = payload.Error
		}
		return se
	}

	if text := strings.TrimSpace(string(body)); text != "" && !strings.HasPrefix(text, "<") && len(text) <= 200 {
		se.Message = text
	}
	return se
}
