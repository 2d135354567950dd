// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package baseforms augments Finnish text with base forms for search
// indexing.
//
// A Service ties together the persisted settings, the selected
// lemmatization backend, the optional analysis cache and the
// lemmatization pipeline. Open one with Open and release it with Close.
package baseforms

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/joppuyo/relevanssi-finnish-base-forms/backend"
	"github.com/joppuyo/relevanssi-finnish-base-forms/backend/cached"
	"github.com/joppuyo/relevanssi-finnish-base-forms/config"
	"github.com/joppuyo/relevanssi-finnish-base-forms/core"
	"github.com/joppuyo/relevanssi-finnish-base-forms/lemmatize"
	"github.com/joppuyo/relevanssi-finnish-base-forms/storage/badger"
)

// ErrCacheDisabled is returned by Purge when no cache directory is configured.
var ErrCacheDisabled = errors.New("analysis cache disabled")

// AnalyzerFactory builds an analyzer for one backend configuration.
type AnalyzerFactory func(cfg *core.BackendConfig) (backend.Analyzer, error)

type Service struct {
	settings     *config.Settings
	analyzer     backend.Analyzer
	cache        *cached.Analyzer
	cacheBackend *badger.Backend
	lemmatizer   *lemmatize.Lemmatizer
	newAnalyzer  AnalyzerFactory
	logger       *slog.Logger
}

// Option configures a Service.
type Option func(*serviceOptions)

type serviceOptions struct {
	logger      *slog.Logger
	httpClient  *http.Client
	newAnalyzer AnalyzerFactory
}

// WithLogger sets the logger used by the service and its components.
func WithLogger(logger *slog.Logger) Option {
	return func(o *serviceOptions) {
		o.logger = logger
	}
}

// WithHTTPClient sets the client used by the web API backend.
func WithHTTPClient(client *http.Client) Option {
	return func(o *serviceOptions) {
		o.httpClient = client
	}
}

// WithAnalyzerFactory replaces backend.New as the way analyzers are built.
func WithAnalyzerFactory(factory AnalyzerFactory) Option {
	return func(o *serviceOptions) {
		o.newAnalyzer = factory
	}
}

// Open validates settings and builds the service. Nil settings means
// config.DefaultSettings. The settings are copied.
func Open(settings *config.Settings, opts ...Option) (*Service, error) {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	settings = settings.Clone()
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	options := &serviceOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}
	if options.newAnalyzer == nil {
		backendOpts := []backend.Option{backend.WithLogger(options.logger)}
		if options.httpClient != nil {
			backendOpts = append(backendOpts, backend.WithHTTPClient(options.httpClient))
		}
		options.newAnalyzer = func(cfg *core.BackendConfig) (backend.Analyzer, error) {
			return backend.New(cfg, backendOpts...)
		}
	}

	cfg := settings.BackendConfig()
	analyzer, err := options.newAnalyzer(cfg)
	if err != nil {
		return nil, err
	}

	s := &Service{
		settings:    settings,
		analyzer:    analyzer,
		newAnalyzer: options.newAnalyzer,
		logger:      options.logger.With("component", "service"),
	}

	// Lemmatization goes through the cache when one is configured
	var pipelineAnalyzer backend.Analyzer = analyzer
	if settings.CacheDir != "" {
		if err := s.openCache(cfg, options.logger); err != nil {
			analyzer.Close()
			return nil, err
		}
		pipelineAnalyzer = s.cache
	}

	lemmatizer, err := lemmatize.NewLemmatizer(pipelineAnalyzer, cfg, lemmatize.WithLogger(options.logger))
	if err != nil {
		s.Close()
		return nil, err
	}
	s.lemmatizer = lemmatizer

	return s, nil
}

func (s *Service) openCache(cfg *core.BackendConfig, logger *slog.Logger) error {
	cacheBackend, err := badger.OpenBackend(s.settings.CacheDir, false)
	if err != nil {
		return err
	}

	analysisCache, err := badger.NewAnalysisCache(cacheBackend)
	if err != nil {
		cacheBackend.Close()
		return err
	}

	cachedAnalyzer, err := cached.New(s.analyzer, analysisCache, cfg,
		cached.WithTTL(s.settings.CacheTTL), cached.WithLogger(logger))
	if err != nil {
		analysisCache.Close()
		cacheBackend.Close()
		return err
	}

	s.cacheBackend = cacheBackend
	s.cache = cachedAnalyzer
	return nil
}

// Close releases the backend and the cache.
func (s *Service) Close() error {
	var errs []error

	if s.cache != nil {
		// Closes the wrapped analyzer as well
		if err := s.cache.Close(); err != nil {
			s.logger.Error("error closing cached analyzer", "err", err)
			errs = append(errs, err)
		}
	} else if err := s.analyzer.Close(); err != nil {
		s.logger.Error("error closing analyzer", "err", err)
		errs = append(errs, err)
	}

	if s.cacheBackend != nil {
		if err := s.cacheBackend.Close(); err != nil {
			s.logger.Error("error closing cache storage", "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Service) Lemmatizer() *lemmatize.Lemmatizer {
	return s.lemmatizer
}

// Settings returns a copy of the settings the service was opened with.
func (s *Service) Settings() *config.Settings {
	return s.settings.Clone()
}

// Verify checks the configured backend against the reference word.
// The cache is bypassed.
func (s *Service) Verify(ctx context.Context) error {
	return lemmatize.Verify(ctx, s.analyzer, s.settings.SplitCompoundWords)
}

// VerifySettings checks a backend built from settings instead of the
// service's own. The backend is closed before returning.
func (s *Service) VerifySettings(ctx context.Context, settings *config.Settings) error {
	settings = settings.Clone()
	if err := settings.Validate(); err != nil {
		s.logger.Debug("verification settings invalid", "err", err)
		return lemmatize.ErrVerificationFailed
	}

	analyzer, err := s.newAnalyzer(settings.BackendConfig())
	if err != nil {
		s.logger.Debug("verification backend unavailable", "err", err)
		return lemmatize.ErrVerificationFailed
	}
	defer analyzer.Close()

	return lemmatize.Verify(ctx, analyzer, settings.SplitCompoundWords)
}

// Purge drops every cached analysis.
func (s *Service) Purge(ctx context.Context) error {
	if s.cache == nil {
		return ErrCacheDisabled
	}
	return s.cache.Purge(ctx)
}
