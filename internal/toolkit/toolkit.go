// Package toolkit binds schema acquisition to the validation engine, lazily
// keeping one compiled validator in sync with the freshest available schema.
package toolkit

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/clip-organization/clip-toolkit/internal/engine"
	"github.com/clip-organization/clip-toolkit/internal/model"
	"github.com/clip-organization/clip-toolkit/internal/schema"
)

// DefaultMaxSchemaAge is how old a schema may get before auto-refresh kicks in.
const DefaultMaxSchemaAge = 24 * time.Hour

// Config holds Toolkit options. Zero values give the default policy:
// auto-refresh on, 24h max age.
type Config struct {
	DisableAutoRefresh bool
	MaxSchemaAge       time.Duration
	Logger             *zap.Logger
}

// Toolkit validates documents without making callers manage schema
// acquisition. It starts uninitialized; the first Validate acquires and
// compiles, later calls reuse the compiled validator until it goes stale.
//
// No lock is taken: two calls racing the first initialization may both
// acquire and compile, which is redundant work, not a correctness problem.
type Toolkit struct {
	manager     *schema.Manager
	autoRefresh bool
	maxAge      time.Duration
	logger      *zap.Logger

	engine      *engine.Engine
	record      *model.SchemaRecord
	lastFetched time.Time
	now         func() time.Time
}

// New creates a Toolkit on top of an acquisition manager.
func New(manager *schema.Manager, cfg Config) *Toolkit {
	if cfg.MaxSchemaAge <= 0 {
		cfg.MaxSchemaAge = DefaultMaxSchemaAge
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Toolkit{
		manager:     manager,
		autoRefresh: !cfg.DisableAutoRefresh,
		maxAge:      cfg.MaxSchemaAge,
		logger:      cfg.Logger,
		now:         time.Now,
	}
}

// ensureReady acquires and compiles when uninitialized, or when auto-refresh
// is on and the current validator has gone stale. If a refresh attempt fails
// while a compiled validator exists, the stale validator keeps serving.
func (t *Toolkit) ensureReady(ctx context.Context) error {
	refreshDue := t.autoRefresh && t.now().Sub(t.lastFetched) > t.maxAge
	if t.engine != nil && !refreshDue {
		return nil
	}

	rec, err := t.manager.GetSchema(ctx)
	if err != nil {
		if t.engine != nil {
			t.logger.Warn("schema refresh failed, reusing stale validator", zap.Error(err))
			t.lastFetched = t.now()
			return nil
		}
		return err
	}

	eng, err := engine.Compile(rec.Schema)
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	t.engine = eng
	t.record = rec
	t.lastFetched = t.now()
	return nil
}

// Validate validates one parsed document, acquiring and compiling the schema
// first if needed. It only errors when no schema could be obtained or
// compiled at all; document problems come back inside the result.
func (t *Toolkit) Validate(ctx context.Context, doc any) (model.ValidationResult, error) {
	if err := t.ensureReady(ctx); err != nil {
		return model.ValidationResult{}, err
	}
	return t.engine.Validate(doc), nil
}

// ValidateBatch validates each document independently against one schema.
func (t *Toolkit) ValidateBatch(ctx context.Context, docs []any) ([]model.ValidationResult, error) {
	if err := t.ensureReady(ctx); err != nil {
		return nil, err
	}
	return t.engine.ValidateBatch(docs), nil
}

// RefreshSchema forces a remote refetch and recompile regardless of
// staleness. Fetch and compile errors propagate; on failure the previous
// validator, if any, is left untouched.
func (t *Toolkit) RefreshSchema(ctx context.Context) (*model.SchemaRecord, error) {
	rec, err := t.manager.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	eng, err := engine.Compile(rec.Schema)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	t.engine = eng
	t.record = rec
	t.lastFetched = t.now()
	return rec, nil
}

// ClearCache clears the underlying store and discards the compiled
// validator, returning the toolkit to its uninitialized state.
func (t *Toolkit) ClearCache() error {
	if err := t.manager.ClearCache(); err != nil {
		return err
	}
	t.engine = nil
	t.record = nil
	t.lastFetched = time.Time{}
	return nil
}

// IsSchemaStale reports staleness of the cached schema without triggering
// acquisition.
func (t *Toolkit) IsSchemaStale() bool {
	return t.manager.IsStale(t.maxAge)
}

// SchemaRecord returns the record behind the current validator, or nil while
// uninitialized.
func (t *Toolkit) SchemaRecord() *model.SchemaRecord {
	return t.record
}
