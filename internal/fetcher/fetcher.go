// Package fetcher loads CLIP documents from files, URLs, and readers, and
// discovers likely CLIP files in directories. It hands parsed values to the
// toolkit; it never validates beyond a basic structure check.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/clip-organization/clip-toolkit/internal/model"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultRetries   = 3
	defaultUserAgent = "clip-toolkit/1.0"
)

// Config holds Fetcher options. Zero values get defaults.
type Config struct {
	Timeout    time.Duration
	MaxRetries int
	UserAgent  string
	Logger     *zap.Logger
}

// Fetcher loads parsed CLIP documents from heterogeneous sources.
type Fetcher struct {
	client     *http.Client
	maxRetries int
	userAgent  string
	logger     *zap.Logger
}

// FailedSource records one source that could not be fetched during a
// multi-source fetch.
type FailedSource struct {
	Source string `json:"source"`
	Error  string `json:"error"`
}

// New creates a Fetcher.
func New(cfg Config) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultRetries
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Fetcher{
		client:     &http.Client{Timeout: cfg.Timeout},
		maxRetries: cfg.MaxRetries,
		userAgent:  cfg.UserAgent,
		logger:     cfg.Logger,
	}
}

// Fetch loads a document from a URL or file path, whichever the source
// looks like.
func (f *Fetcher) Fetch(ctx context.Context, source string) (any, error) {
	if IsURL(source) {
		return f.FetchURL(ctx, source)
	}
	return f.FetchFile(source)
}

// FetchURL GETs and parses a document, retrying transient failures.
func (f *Fetcher) FetchURL(ctx context.Context, rawURL string) (any, error) {
	var lastErr error
	for attempt := 1; attempt <= f.maxRetries; attempt++ {
		doc, err := f.fetchOnce(ctx, rawURL)
		if err == nil {
			return doc, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		if attempt < f.maxRetries {
			f.logger.Warn("fetch attempt failed, retrying",
				zap.String("url", rawURL),
				zap.Int("attempt", attempt),
				zap.Error(err))
		}
	}
	return nil, fmt.Errorf("fetch %s: %w", rawURL, lastErr)
}

func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return decode(resp.Body)
}

// FetchFile reads and parses a document from disk.
func (f *Fetcher) FetchFile(path string) (any, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	doc, err := decode(file)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// FetchReader parses a document from an arbitrary reader, typically stdin.
func (f *Fetcher) FetchReader(r io.Reader) (any, error) {
	return decode(r)
}

// FetchMultiple loads every source it can; failures are collected, logged,
// and never abort the rest.
func (f *Fetcher) FetchMultiple(ctx context.Context, sources []string) ([]any, []FailedSource) {
	var docs []any
	var failed []FailedSource
	for _, src := range sources {
		doc, err := f.Fetch(ctx, src)
		if err != nil {
			f.logger.Warn("source failed", zap.String("source", src), zap.Error(err))
			failed = append(failed, FailedSource{Source: src, Error: err.Error()})
			continue
		}
		docs = append(docs, doc)
	}
	return docs, failed
}

// Discover walks a directory for .json files that look like CLIP objects.
// Unreadable or non-JSON files are skipped, not reported.
func (f *Fetcher) Discover(dir string, recursive bool) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("discover %s: not a directory", dir)
	}

	var found []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if !recursive && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		doc, err := f.FetchFile(path)
		if err != nil {
			return nil
		}
		if model.IsCLIPObject(doc) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	f.logger.Info("discovered CLIP files",
		zap.String("dir", dir),
		zap.Int("count", len(found)))
	return found, nil
}

// IsURL reports whether a source string is an http(s) URL.
func IsURL(source string) bool {
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func decode(r io.Reader) (any, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return doc, nil
}
