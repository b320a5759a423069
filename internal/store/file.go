package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
)

const (
	schemaFile   = "schema.json"
	metadataFile = "metadata.json"
)

// metadata is the on-disk companion of the schema file. Both files are plain
// JSON so they stay inspectable with any text tool.
type metadata struct {
	Schema      string `json:"schema"`
	Version     string `json:"version"`
	LastFetched string `json:"lastFetched"`
	URL         string `json:"url"`
}

// FileStore implements Store with two JSON files under a root directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir. The directory is created on
// first write, not here.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) schemaPath() string   { return filepath.Join(s.dir, schemaFile) }
func (s *FileStore) metadataPath() string { return filepath.Join(s.dir, metadataFile) }

// Read loads the schema and metadata pair. The schema is read before the
// metadata so a crash between the two writes surfaces as a miss, never as a
// mismatched pair.
func (s *FileStore) Read() (*Entry, error) {
	schemaBytes, err := os.ReadFile(s.schemaPath())
	if err != nil {
		return nil, ErrNotFound
	}

	var schema map[string]any
	if err := json.Unmarshal(schemaBytes, &schema); err != nil {
		return nil, ErrNotFound
	}

	metaBytes, err := os.ReadFile(s.metadataPath())
	if err != nil {
		return nil, ErrNotFound
	}

	var meta metadata
	if err := json.Unmarshal(metaBytes, &meta); err != nil {
		return nil, ErrNotFound
	}

	fetchedAt, err := time.Parse(time.RFC3339, meta.LastFetched)
	if err != nil {
		return nil, ErrNotFound
	}

	return &Entry{
		Schema:    schema,
		Version:   meta.Version,
		FetchedAt: fetchedAt,
		URL:       meta.URL,
	}, nil
}

// Write persists the schema, then the metadata. Ordering matters: Read treats
// a missing metadata file as a miss, so an interrupted write is invisible.
func (s *FileStore) Write(schema map[string]any, version string, fetchedAt time.Time, url string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("encode schema: %w", err)
	}
	if err := os.WriteFile(s.schemaPath(), schemaBytes, 0o644); err != nil {
		return fmt.Errorf("write schema: %w", err)
	}

	meta := metadata{
		Schema:      schemaFile,
		Version:     version,
		LastFetched: fetchedAt.UTC().Format(time.RFC3339Nano),
		URL:         url,
	}
	metaBytes, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	if err := os.WriteFile(s.metadataPath(), metaBytes, 0o644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}

	return nil
}

// Clear removes both files, ignoring files that are already gone.
func (s *FileStore) Clear() error {
	for _, p := range []string{s.schemaPath(), s.metadataPath()} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", filepath.Base(p), err)
		}
	}
	return nil
}
