// Package store persists the active CLIP schema and its metadata on disk.
package store

import (
	"errors"
	"os"
	"path/filepath"
	"time"
)

// ErrNotFound indicates no usable cached schema. Partial or unreadable pairs
// are reported as not found rather than as corruption.
var ErrNotFound = errors.New("schema not cached")

// Entry is a stored schema plus the metadata recorded alongside it.
type Entry struct {
	Schema    map[string]any
	Version   string
	FetchedAt time.Time
	URL       string
}

// Store is durable persistence for exactly one active schema.
type Store interface {
	// Read returns the cached schema. Both the schema file and its
	// metadata must be present and parseable; anything less is ErrNotFound.
	Read() (*Entry, error)

	// Write persists the schema and its metadata, overwriting in place.
	Write(schema map[string]any, version string, fetchedAt time.Time, url string) error

	// Clear removes both files. Absence of either is not an error.
	Clear() error
}

// DefaultDir returns the default cache directory, ~/.clip/schemas.
func DefaultDir() string {
	if env := os.Getenv("CLIP_CACHE_DIR"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".clip", "schemas")
}
