// ABOUTME: Wellness configuration: API endpoint, local storage backend and diagnostics.
// ABOUTME: JSON file under XDG_CONFIG_HOME with WELLNESS_* environment and .env overrides.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/harperreed/wellness/internal/localstore"
)

// DefaultAPIURL is the backend used when none is configured.
const DefaultAPIURL = "http://localhost:5000"

// Environment variables that override the config file.
const (
	EnvAPIURL         = "WELLNESS_API_URL"
	EnvBackend        = "WELLNESS_BACKEND"
	EnvDataDir        = "WELLNESS_DATA_DIR"
	EnvRequestTimeout = "WELLNESS_REQUEST_TIMEOUT"
	EnvLogLevel       = "WELLNESS_LOG_LEVEL"
)

// CharmDatabase is the Charm KV database that holds the synced session.
const CharmDatabase = "wellness"

var backends = []string{"sqlite", "badger", "charm"}

// Config stores wellness CLI configuration.
type Config struct {
	// APIURL is the REST backend root, e.g. http://localhost:5000.
	APIURL string `json:"api_url,omitempty"`

	// Backend selects where the session is persisted: "sqlite" (default),
	// "badger" or "charm".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for local storage.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/wellness.
	DataDir string `json:"data_dir,omitempty"`

	// RequestTimeout bounds each HTTP request, e.g. "30s". Empty means no timeout.
	RequestTimeout string `json:"request_timeout,omitempty"`

	// LogLevel is one of debug, info, warn, error. Defaults to warn.
	LogLevel string `json:"log_level,omitempty"`
}

// GetAPIURL returns the configured API root without a trailing slash.
func (c *Config) GetAPIURL() string {
	if c.APIURL == "" {
		return DefaultAPIURL
	}
	return strings.TrimRight(c.APIURL, "/")
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "sqlite"
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return localstore.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetRequestTimeout parses RequestTimeout. Zero means no timeout.
func (c *Config) GetRequestTimeout() (time.Duration, error) {
	if c.RequestTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid request_timeout %q: %w", c.RequestTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid request_timeout %q: must not be negative", c.RequestTimeout)
	}
	return d, nil
}

// GetLogLevel returns the diagnostic log level, defaulting to warn.
func (c *Config) GetLogLevel() log.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return log.WarnLevel
	}
	return level
}

func parseLevel(s string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DebugLevel, nil
	case "info":
		return log.InfoLevel, nil
	case "", "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return log.WarnLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStore opens the local store for the configured backend.
func (c *Config) OpenStore() (localstore.Store, error) {
	backend := c.GetBackend()
	dataDir := c.GetDataDir()

	var (
		store localstore.Store
		err   error
	)
	switch backend {
	case "sqlite":
		store, err = localstore.OpenSQLite(filepath.Join(dataDir, "wellness.db"))
	case "badger":
		store, err = localstore.OpenBadger(filepath.Join(dataDir, "badger"))
	case "charm":
		store, err = localstore.OpenCharm(CharmDatabase)
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

// WithBackend returns a copy of c that opens backend instead.
func (c *Config) WithBackend(backend string) *Config {
	out := *c
	out.Backend = backend
	return &out
}

// LoadDotEnv loads KEY=value pairs from path (default ".env") into the
// environment without overriding variables that are already set.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// WithEnv returns a copy of c with WELLNESS_* environment overrides applied.
func (c *Config) WithEnv() *Config {
	out := *c
	out.APIURL = getEnv(EnvAPIURL, out.APIURL)
	out.Backend = getEnv(EnvBackend, out.Backend)
	out.DataDir = getEnv(EnvDataDir, out.DataDir)
	out.RequestTimeout = getEnv(EnvRequestTimeout, out.RequestTimeout)
	out.LogLevel = getEnv(EnvLogLevel, out.LogLevel)
	return &out
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// Keys lists the settable configuration keys.
func Keys() []string {
	keys := []string{"api_url", "backend", "data_dir", "request_timeout", "log_level"}
	sort.Strings(keys)
	return keys
}

// Get returns the raw value stored for key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "api_url":
		return c.APIURL, nil
	case "backend":
		return c.Backend, nil
	case "data_dir":
		return c.DataDir, nil
	case "request_timeout":
		return c.RequestTimeout, nil
	case "log_level":
		return c.LogLevel, nil
	default:
		return "", fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}
}

// Set validates and stores value under key. An empty value resets the default.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "api_url":
		if value != "" && !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			return fmt.Errorf("api_url must start with http:// or https://")
		}
		c.APIURL = value
	case "backend":
		if value != "" && !isBackend(value) {
			return fmt.Errorf("unknown backend %q (valid: %s)", value, strings.Join(backends, ", "))
		}
		c.Backend = value
	case "data_dir":
		c.DataDir = value
	case "request_timeout":
		next := Config{RequestTimeout: value}
		if _, err := next.GetRequestTimeout(); err != nil {
			return err
		}
		c.RequestTimeout = value
	case "log_level":
		if _, err := parseLevel(value); err != nil {
			return err
		}
		c.LogLevel = value
	default:
		return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}
	return nil
}

func isBackend(name string) bool {
	for _, b := range backends {
		if b == name {
			return true
		}
	}
	return false
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "wellness", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
