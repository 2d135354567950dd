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

package backend

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/joppuyo/relevanssi-finnish-base-forms/backend/voikko"
	"github.com/joppuyo/relevanssi-finnish-base-forms/backend/webapi"
	"github.com/joppuyo/relevanssi-finnish-base-forms/core"
)

var (
	_ Analyzer = (*voikko.Analyzer)(nil)
	_ Analyzer = (*webapi.Analyzer)(nil)
)

// Option configures the analyzer built by New.
type Option func(*options)

type options struct {
	logger     *slog.Logger
	httpClient *http.Client
}

// WithLogger sets the logger handed to the selected backend.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithHTTPClient sets the client used by the web API backend.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// New validates cfg and builds the backend it selects.
//
// Returns the Analyzer interface so callers stay independent of the
// concrete variant.
func New(cfg *core.BackendConfig, opts ...Option) (Analyzer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("backend config required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}

	switch cfg.APIType {
	case core.APITypeBinary, core.APITypeCommandLine:
		analyzer, err := voikko.New(cfg, voikko.WithLogger(o.logger))
		if err != nil {
			return nil, err
		}
		return analyzer, nil
	case core.APITypeWebAPI:
		webOpts := []webapi.Option{webapi.WithLogger(o.logger)}
		if o.httpClient != nil {
			webOpts = append(webOpts, webapi.WithHTTPClient(o.httpClient))
		}
		analyzer, err := webapi.New(cfg, webOpts...)
		if err != nil {
			return nil, err
		}
		return analyzer, nil
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrInvalidAPIType, cfg.APIType)
	}
}
