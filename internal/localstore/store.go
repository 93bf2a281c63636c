// ABOUTME: Store interface for persisted client-side key/value state.
// ABOUTME: Plays the role of browser local storage for the session token and user.
package localstore

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by Get when the key has never been set or was deleted.
var ErrNotFound = errors.New("key not found")

// Store persists small values across CLI invocations.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// DataDir returns the default data directory under XDG_DATA_HOME.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "wellness")
}

// Copy writes each key present in src into dst and returns how many were
// copied. Keys missing from src are left untouched in dst.
func Copy(dst, src Store, keys ...string) (int, error) {
	copied := 0
	for _, key := range keys {
		value, err := src.Get(key)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return copied, err
		}
		if err := dst.Set(key, value); err != nil {
			return copied, err
		}
		copied++
	}
	return copied, nil
}
