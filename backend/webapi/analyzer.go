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

package webapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	"github.com/joppuyo/relevanssi-finnish-base-forms/core"
	"github.com/panjf2000/ants/v2"
)

// maxBodySize caps a single analysis response.
const maxBodySize = 1 << 20

// Analyzer implements per-token analysis against a remote service.
type Analyzer struct {
	endpoint string
	split    bool
	client   *http.Client
	pool     *ants.Pool
	logger   *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithHTTPClient sets the HTTP client.
// Default is a client whose timeout is the configured RequestTimeout.
func WithHTTPClient(client *http.Client) Option {
	return func(a *Analyzer) {
		if client != nil {
			a.client = client
		}
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

// analysisItem is one element of the JSON array returned by the service.
type analysisItem struct {
	BaseForm  *string `json:"BASEFORM"`
	WordBases *string `json:"WORDBASES"`
}

// tokenResult is the outcome of a single request.
type tokenResult struct {
	baseForms []string
	wordBases []string
	err       error
}

// New creates a web API analyzer. The worker pool lives until Close.
func New(cfg *core.BackendConfig, opts ...Option) (*Analyzer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("backend config required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.APIType != core.APITypeWebAPI {
		return nil, fmt.Errorf("%w: %q is not the web api", core.ErrInvalidAPIType, cfg.APIType)
	}

	pool, err := ants.NewPool(cfg.Concurrency)
	if err != nil {
		return nil, err
	}

	a := &Analyzer{
		endpoint: cfg.Endpoint,
		split:    cfg.SplitCompoundWords,
		client:   &http.Client{Timeout: cfg.RequestTimeout},
		pool:     pool,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With("component", "webapi", "endpoint", a.endpoint)

	return a, nil
}

// Analyze requests every token concurrently and waits for all of them.
func (a *Analyzer) Analyze(ctx context.Context, tokens []string) (*core.Analysis, error) {
	analysis := &core.Analysis{}
	if len(tokens) == 0 {
		return analysis, nil
	}

	results := make([]tokenResult, len(tokens))
	var wg sync.WaitGroup
	for i, token := range tokens {
		wg.Add(1)
		err := a.pool.Submit(func() {
			defer wg.Done()
			results[i] = a.analyzeToken(ctx, token)
		})
		if err != nil {
			wg.Done()
			results[i] = tokenResult{err: fmt.Errorf("%w: submit request: %w", core.ErrNetworkFailure, err)}
		}
	}
	wg.Wait()

	for i, res := range results {
		if res.err != nil {
			analysis.Failures = append(analysis.Failures, core.TokenFailure{Token: tokens[i], Err: res.err})
			continue
		}
		analysis.BaseForms = append(analysis.BaseForms, res.baseForms...)
		analysis.CompoundAnnotations = append(analysis.CompoundAnnotations, res.wordBases...)
	}

	if n := len(analysis.Failures); n > 0 {
		a.logger.Warn("dropped tokens after failed requests", "dropped", n, "tokens", len(tokens),
			"err", analysis.Failures[0].Err)
	}
	a.logger.Debug("analyzed tokens", "tokens", len(tokens), "base_forms", len(analysis.BaseForms))

	return analysis, nil
}

// Close releases the worker pool.
func (a *Analyzer) Close() error {
	a.pool.Release()
	return nil
}

// analyzeToken performs one request and decodes its body.
func (a *Analyzer) analyzeToken(ctx context.Context, token string) tokenResult {
	reqURL := a.endpoint + "analyze/" + url.PathEscape(token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return tokenResult{err: fmt.Errorf("%w: %w", core.ErrNetworkFailure, err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return tokenResult{err: fmt.Errorf("%w: %w", core.ErrNetworkFailure, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return tokenResult{err: fmt.Errorf("%w: unexpected status %d", core.ErrNetworkFailure, resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return tokenResult{err: fmt.Errorf("%w: read body: %w", core.ErrNetworkFailure, err)}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return tokenResult{}
	}

	var items []analysisItem
	if err := json.Unmarshal(body, &items); err != nil {
		return tokenResult{err: fmt.Errorf("%w: %w", core.ErrMalformedResponse, err)}
	}

	var res tokenResult
	for _, item := range items {
		if item.BaseForm != nil {
			res.baseForms = append(res.baseForms, *item.BaseForm)
		}
		if a.split && item.WordBases != nil {
			res.wordBases = append(res.wordBases, *item.WordBases)
		}
	}
	return res
}
