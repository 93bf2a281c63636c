// ABOUTME: In-memory mock of the wellness REST backend for tests and local development.
// ABOUTME: gorilla/mux routes behind rs/cors and a request logging middleware.
package fakeapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/harperreed/wellness/internal/models"
)

// Server holds every account's data in memory.
type Server struct {
	mu       sync.RWMutex
	accounts map[string]*account // by user id
	emails   map[string]string   // email -> user id

	secret   []byte
	issuer   string
	tokenTTL time.Duration
	origins  []string
	now      func() time.Time
	logger   *log.Logger

	requests atomic.Int64
}

type account struct {
	user         models.User
	passwordHash []byte
	profile      models.UserProfile
	workouts     []*models.Workout
	meals        []*models.Meal
	moods        []*models.MoodEntry
}

// Option configures a Server.
type Option func(*Server)

// WithSecret sets the HS256 signing key.
func WithSecret(secret string) Option {
	return func(s *Server) { s.secret = []byte(secret) }
}

// WithTokenTTL sets how long issued tokens stay valid.
func WithTokenTTL(d time.Duration) Option {
	return func(s *Server) { s.tokenTTL = d }
}

// WithAllowedOrigins restricts CORS origins. The default allows any origin.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) { s.origins = origins }
}

// WithClock replaces time.Now for token issuance and validation.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New creates an empty backend.
func New(opts ...Option) *Server {
	s := &Server{
		accounts: make(map[string]*account),
		emails:   make(map[string]string),
		secret:   []byte(uuid.NewString()),
		issuer:   "wellness-mock",
		tokenTTL: 24 * time.Hour,
		origins:  []string{"*"},
		now:      time.Now,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Requests returns how many requests the server has received.
func (s *Server) Requests() int64 {
	return s.requests.Load()
}

// Handler returns the routed, CORS-wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.HandleFunc("/api/auth/register", s.register).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", s.login).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.authenticate)
	api.HandleFunc("/auth/me", s.me).Methods(http.MethodGet)

	api.HandleFunc("/workouts", s.listWorkouts).Methods(http.MethodGet)
	api.HandleFunc("/workouts", s.createWorkout).Methods(http.MethodPost)
	api.HandleFunc("/workouts/{id}", s.getWorkout).Methods(http.MethodGet)
	api.HandleFunc("/workouts/{id}", s.updateWorkout).Methods(http.MethodPut)
	api.HandleFunc("/workouts/{id}", s.deleteWorkout).Methods(http.MethodDelete)

	api.HandleFunc("/meals", s.listMeals).Methods(http.MethodGet)
	api.HandleFunc("/meals", s.createMeal).Methods(http.MethodPost)
	api.HandleFunc("/meals/{id}", s.getMeal).Methods(http.MethodGet)
	api.HandleFunc("/meals/{id}", s.updateMeal).Methods(http.MethodPut)
	api.HandleFunc("/meals/{id}", s.deleteMeal).Methods(http.MethodDelete)

	api.HandleFunc("/mood", s.listMoods).Methods(http.MethodGet)
	api.HandleFunc("/mood", s.createMood).Methods(http.MethodPost)
	api.HandleFunc("/mood/{id}", s.deleteMood).Methods(http.MethodDelete)

	api.HandleFunc("/users/profile", s.getProfile).Methods(http.MethodGet)
	api.HandleFunc("/users/profile", s.updateProfile).Methods(http.MethodPut)

	api.HandleFunc("/dashboard/summary", s.dashboardSummary).Methods(http.MethodGet)
	api.HandleFunc("/progress/summary", s.progressSummary).Methods(http.MethodGet)
	api.HandleFunc("/progress/trend", s.progressTrend).Methods(http.MethodGet)
	api.HandleFunc("/progress/records", s.progressRecords).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	})
	return c.Handler(s.logging(r))
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		start := time.Now()

		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapper, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapper.statusCode,
			"duration", time.Since(start),
			"request_id", r.Header.Get("X-Request-ID"))
	})
}

type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// valid writes a 400 with the validation message when v is invalid.
func valid(w http.ResponseWriter, v interface{ Validate() error }) bool {
	if err := v.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}
