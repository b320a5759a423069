// Package schema acquires the CLIP JSON Schema through an ordered source
// chain (remote, cache, local fallback) and tracks staleness of the cached
// copy.
package schema

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/clip-organization/clip-toolkit/internal/model"
	"github.com/clip-organization/clip-toolkit/internal/store"
)

// DefaultURL is the canonical location of the CLIP schema.
const DefaultURL = "https://raw.githubusercontent.com/clip-organization/spec/main/clip.schema.json"

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "clip-toolkit/1.0"
)

// ErrAllSourcesExhausted is returned by GetSchema when every configured
// source failed. Individual source failures are logged, never propagated.
var ErrAllSourcesExhausted = errors.New("all schema sources exhausted")

// FetchError is a non-200 response from the schema URL.
type FetchError struct {
	Status int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("schema fetch failed with status %d", e.Status)
}

// FormatError is a payload that parsed as JSON but is not plausibly a JSON
// Schema (no $schema identifier).
type FormatError struct {
	URL string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("payload from %s is missing the $schema identifier", e.URL)
}

// Config holds Manager options. Zero values get defaults.
type Config struct {
	URL       string        // schema URL (default DefaultURL)
	LocalPath string        // optional local fallback schema file
	Timeout   time.Duration // remote fetch timeout (default 10s)
	UserAgent string
	Logger    *zap.Logger
}

// Manager produces SchemaRecords via remote fetch with cache and local-file
// fallbacks.
type Manager struct {
	url       string
	localPath string
	store     store.Store
	client    *http.Client
	userAgent string
	logger    *zap.Logger
	now       func() time.Time
}

// NewManager creates a Manager backed by the given store.
func NewManager(st store.Store, cfg Config) *Manager {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Manager{
		url:       cfg.URL,
		localPath: cfg.LocalPath,
		store:     st,
		client:    &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
		logger:    cfg.Logger,
		now:       time.Now,
	}
}

// FetchRemote GETs the schema URL, verifies the payload looks like a JSON
// Schema, writes it through to the store, and returns a remote-origin record.
func (m *Manager) FetchRemote(ctx context.Context) (*model.SchemaRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build schema request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", m.userAgent)

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch schema: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read schema payload: %w", err)
	}

	var schema map[string]any
	if err := json.Unmarshal(body, &schema); err != nil {
		return nil, fmt.Errorf("decode schema payload: %w", err)
	}
	if _, ok := schema["$schema"]; !ok {
		return nil, &FormatError{URL: m.url}
	}

	fetchedAt := m.now()
	version := deriveVersion(schema, fetchedAt)

	if err := m.store.Write(schema, version, fetchedAt, m.url); err != nil {
		return nil, fmt.Errorf("cache schema: %w", err)
	}

	m.logger.Info("fetched schema",
		zap.String("url", m.url),
		zap.String("version", version))

	return &model.SchemaRecord{
		Schema:    schema,
		Version:   version,
		FetchedAt: fetchedAt,
		Origin:    model.OriginRemote,
	}, nil
}

// ReadCache returns the stored schema with cache origin.
func (m *Manager) ReadCache() (*model.SchemaRecord, error) {
	entry, err := m.store.Read()
	if err != nil {
		return nil, err
	}
	return &model.SchemaRecord{
		Schema:    entry.Schema,
		Version:   entry.Version,
		FetchedAt: entry.FetchedAt,
		Origin:    model.OriginCache,
	}, nil
}

// ReadLocal reads the configured fallback schema file verbatim. Without a
// configured path it reports store.ErrNotFound.
func (m *Manager) ReadLocal() (*model.SchemaRecord, error) {
	if m.localPath == "" {
		return nil, store.ErrNotFound
	}

	body, err := os.ReadFile(m.localPath)
	if err != nil {
		return nil, fmt.Errorf("read local schema: %w", err)
	}

	var schema map[string]any
	if err := json.Unmarshal(body, &schema); err != nil {
		return nil, fmt.Errorf("decode local schema: %w", err)
	}

	fetchedAt := m.now()
	return &model.SchemaRecord{
		Schema:    schema,
		Version:   deriveVersion(schema, fetchedAt),
		FetchedAt: fetchedAt,
		Origin:    model.OriginLocal,
	}, nil
}

// source is one step of the acquisition chain.
type source struct {
	name string
	load func(ctx context.Context) (*model.SchemaRecord, error)
}

func (m *Manager) sources() []source {
	srcs := []source{
		{name: "remote", load: m.FetchRemote},
		{name: "cache", load: func(context.Context) (*model.SchemaRecord, error) {
			return m.ReadCache()
		}},
	}
	if m.localPath != "" {
		srcs = append(srcs, source{name: "local", load: func(context.Context) (*model.SchemaRecord, error) {
			return m.ReadLocal()
		}})
	}
	return srcs
}

// GetSchema walks the source chain and returns the first record it can get.
// Source failures are logged and swallowed; only exhausting every source
// surfaces an error.
func (m *Manager) GetSchema(ctx context.Context) (*model.SchemaRecord, error) {
	for _, src := range m.sources() {
		rec, err := src.load(ctx)
		if err != nil {
			m.logger.Warn("schema source failed",
				zap.String("source", src.name),
				zap.Error(err))
			continue
		}
		return rec, nil
	}
	return nil, ErrAllSourcesExhausted
}

// Refresh unconditionally refetches from the remote. Unlike GetSchema it has
// no fallback: the caller asked for a fresh copy, so fetch errors propagate.
func (m *Manager) Refresh(ctx context.Context) (*model.SchemaRecord, error) {
	return m.FetchRemote(ctx)
}

// IsStale reports whether the cached schema is older than maxAge. A missing
// cache counts as stale. It never triggers acquisition.
func (m *Manager) IsStale(maxAge time.Duration) bool {
	entry, err := m.store.Read()
	if err != nil {
		return true
	}
	return m.now().Sub(entry.FetchedAt) > maxAge
}

// ClearCache removes the stored schema pair.
func (m *Manager) ClearCache() error {
	return m.store.Clear()
}
