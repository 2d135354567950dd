package cached

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/joppuyo/relevanssi-finnish-base-forms/backend"
	"github.com/joppuyo/relevanssi-finnish-base-forms/core"
	"github.com/joppuyo/relevanssi-finnish-base-forms/storage"
)

// DefaultTTL is how long a stored analysis stays valid.
const DefaultTTL = 30 * 24 * time.Hour

// Analyzer wraps another backend.Analyzer with a cache.
type Analyzer struct {
	inner  backend.Analyzer
	cache  storage.AnalysisCache
	cfg    core.BackendConfig
	ttl    time.Duration
	logger *slog.Logger
}

var _ backend.Analyzer = (*Analyzer)(nil)

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithTTL sets the lifetime of stored entries. Zero or negative keeps
// entries until purged.
func WithTTL(ttl time.Duration) Option {
	return func(a *Analyzer) {
		a.ttl = ttl
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
	}
}

// New wraps inner. cfg must describe the configuration inner was built
// from so that cache keys separate differently configured backends.
// Close releases inner and the cache.
func New(inner backend.Analyzer, cache storage.AnalysisCache, cfg *core.BackendConfig, opts ...Option) (*Analyzer, error) {
	if inner == nil {
		return nil, errors.New("inner analyzer required")
	}
	if cache == nil {
		return nil, errors.New("analysis cache required")
	}
	if cfg == nil {
		return nil, errors.New("backend config required")
	}

	a := &Analyzer{
		inner:  inner,
		cache:  cache,
		cfg:    *cfg,
		ttl:    DefaultTTL,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With("component", "analysis-cache")
	return a, nil
}

// Analyze returns a stored analysis for tokens when present, otherwise
// delegates to the wrapped analyzer and stores a complete result.
func (a *Analyzer) Analyze(ctx context.Context, tokens []string) (*core.Analysis, error) {
	if len(tokens) == 0 {
		return a.inner.Analyze(ctx, tokens)
	}

	key := core.CacheKey(&a.cfg, tokens)
	cachedAnalysis, err := a.cache.Get(ctx, key)
	switch {
	case err == nil:
		a.logger.Debug("cache hit", "key", key, "tokens", len(tokens))
		return cachedAnalysis, nil
	case !errors.Is(err, storage.ErrNotFound):
		a.logger.Warn("cache read failed", "key", key, "err", err)
	}

	analysis, err := a.inner.Analyze(ctx, tokens)
	if err != nil {
		return nil, err
	}

	if len(analysis.Failures) > 0 {
		a.logger.Debug("not caching partial analysis", "key", key, "failures", len(analysis.Failures))
		return analysis, nil
	}
	if err := a.cache.Put(ctx, key, analysis, a.ttl); err != nil {
		a.logger.Warn("cache write failed", "key", key, "err", err)
	}
	return analysis, nil
}

// Purge drops every stored analysis.
func (a *Analyzer) Purge(ctx context.Context) error {
	return a.cache.Purge(ctx)
}

// Close closes the wrapped analyzer and the cache.
func (a *Analyzer) Close() error {
	return errors.Join(a.inner.Close(), a.cache.Close())
}
