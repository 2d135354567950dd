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

package voikko

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joppuyo/relevanssi-finnish-base-forms/core"
)

const (
	binaryName     = "voikkospell"
	dictionaryName = "dictionary"
)

// Analyzer invokes voikkospell for each batch of tokens.
type Analyzer struct {
	apiType     core.APIType
	path        string
	args        []string
	split       bool
	locale      string
	listLocales func(ctx context.Context) ([]string, error)

	localeOnce sync.Once
	logger     *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

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

// WithLocaleLister replaces the `locale -a` lookup used when no locale
// is configured.
func WithLocaleLister(list func(ctx context.Context) ([]string, error)) Option {
	return func(a *Analyzer) {
		if list != nil {
			a.listLocales = list
		}
	}
}

// New creates an analyzer for the binary or command_line API type.
func New(cfg *core.BackendConfig, opts ...Option) (*Analyzer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("backend config required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &Analyzer{
		apiType:     cfg.APIType,
		split:       cfg.SplitCompoundWords,
		locale:      cfg.Locale,
		listLocales: listLocales,
		logger:      slog.Default(),
	}

	switch cfg.APIType {
	case core.APITypeBinary:
		a.path = filepath.Join(cfg.BinaryDir, binaryName)
		a.args = []string{"-p", filepath.Join(cfg.BinaryDir, dictionaryName), "-M"}
	case core.APITypeCommandLine:
		a.path = cfg.Command
		a.args = []string{"-M"}
	default:
		return nil, fmt.Errorf("%w: %q is not a voikkospell variant", core.ErrInvalidAPIType, cfg.APIType)
	}

	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With("component", "voikko", "api_type", a.apiType.String())

	return a, nil
}

// Analyze runs voikkospell once for the whole batch.
func (a *Analyzer) Analyze(ctx context.Context, tokens []string) (*core.Analysis, error) {
	if len(tokens) == 0 {
		return &core.Analysis{}, nil
	}

	if a.apiType == core.APITypeBinary {
		if err := EnsurePermissions(a.path); err != nil {
			return nil, err
		}
	}

	locale := a.resolveLocale(ctx)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, a.path, a.args...)
	cmd.Env = append(os.Environ(), "LANG="+locale, "LC_ALL="+locale)
	cmd.Stdin = strings.NewReader(strings.Join(tokens, "\n"))
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	a.logger.Debug("running voikkospell", "tokens", len(tokens), "locale", locale)
	err := cmd.Run()
	if err != nil || stderr.Len() > 0 {
		a.logger.Error("voikkospell failed", "err", err, "stderr", stderr.String())
		return nil, &core.ExternalToolError{Stderr: stderr.String(), Err: err}
	}

	analysis := parseOutput(stdout.String(), a.split)
	a.logger.Debug("voikkospell finished", "base_forms", len(analysis.BaseForms),
		"word_bases", len(analysis.CompoundAnnotations))
	return analysis, nil
}

// Close releases resources held by the analyzer.
// Currently a no-op since every batch runs its own process.
func (a *Analyzer) Close() error {
	return nil
}

// resolveLocale returns the configured locale or discovers one once.
func (a *Analyzer) resolveLocale(ctx context.Context) string {
	a.localeOnce.Do(func() {
		if a.locale != "" {
			return
		}
		locales, err := a.listLocales(ctx)
		if err != nil {
			a.logger.Warn("error listing locales", "err", err)
		}
		a.locale = pickUTF8Locale(locales)
		if a.locale == "" {
			a.locale = fallbackLocale
			a.logger.Warn("no UTF-8 locale found, using fallback", "locale", fallbackLocale)
		}
	})
	return a.locale
}
