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

package lemmatize

import (
	"context"
	"log/slog"
	"strings"

	"github.com/joppuyo/relevanssi-finnish-base-forms/backend"
	"github.com/joppuyo/relevanssi-finnish-base-forms/core"
	"github.com/joppuyo/relevanssi-finnish-base-forms/text"
)

// Lemmatizer appends base forms to content using one analyzer.
// It is safe for concurrent use when the analyzer is.
type Lemmatizer struct {
	analyzer backend.Analyzer
	split    bool
	logger   *slog.Logger
}

// Option configures a Lemmatizer.
type Option func(*Lemmatizer)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Lemmatizer) {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
	}
}

// NewLemmatizer creates a Lemmatizer. cfg supplies the compound splitting
// flag; nil means no splitting. The analyzer stays owned by the caller.
func NewLemmatizer(analyzer backend.Analyzer, cfg *core.BackendConfig, opts ...Option) (*Lemmatizer, error) {
	if analyzer == nil {
		return nil, ErrAnalyzerRequired
	}

	l := &Lemmatizer{
		analyzer: analyzer,
		logger:   slog.Default(),
	}
	if cfg != nil {
		l.split = cfg.SplitCompoundWords
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.With("component", "lemmatizer")
	return l, nil
}

// SplitCompoundWords reports whether compound parts are added.
func (l *Lemmatizer) SplitCompoundWords() bool {
	return l.split
}

// Lemmatize returns content followed by the base forms of its words,
// separated by single spaces and trimmed at both ends.
func (l *Lemmatizer) Lemmatize(ctx context.Context, content string) (string, error) {
	words, err := l.extraWords(ctx, content)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content + " " + strings.Join(words, " ")), nil
}

// LemmatizeQuery augments a search query. Inflected query words then match
// the base forms stored alongside indexed content.
func (l *Lemmatizer) LemmatizeQuery(ctx context.Context, query string) (string, error) {
	return l.Lemmatize(ctx, query)
}

// LemmatizeFields augments the first value of a custom field and returns
// it as the only value. Empty input is returned as is.
func (l *Lemmatizer) LemmatizeFields(ctx context.Context, fields []string) ([]string, error) {
	if len(fields) == 0 {
		return fields, nil
	}
	augmented, err := l.Lemmatize(ctx, fields[0])
	if err != nil {
		return nil, err
	}
	return []string{augmented}, nil
}

// LemmatizeTerms augments a list of search terms and returns the unique
// terms of the result in order of first appearance.
func (l *Lemmatizer) LemmatizeTerms(ctx context.Context, terms []string) ([]string, error) {
	augmented, err := l.Lemmatize(ctx, strings.Join(terms, " "))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	result := make([]string, 0, len(terms))
	for _, term := range strings.Split(augmented, " ") {
		if term == "" {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		result = append(result, term)
	}
	return result, nil
}

// MaxSearchTerms returns how many search terms a query may carry once
// augmented. Compound splitting roughly doubles the word count.
func MaxSearchTerms(split bool) int {
	if split {
		return 24
	}
	return 12
}

// extraWords analyzes the tokens of content and returns the words to append.
func (l *Lemmatizer) extraWords(ctx context.Context, content string) ([]string, error) {
	tokens := text.Tokenize(text.Normalize(text.StripTags(content)))
	if len(tokens) == 0 {
		return nil, nil
	}

	analysis, err := l.analyzer.Analyze(ctx, tokens)
	if err != nil {
		l.logger.Error("analysis failed", "tokens", len(tokens), "err", err)
		return nil, err
	}
	if len(analysis.Failures) > 0 {
		l.logger.Debug("partial analysis", "tokens", len(tokens), "failures", len(analysis.Failures))
	}
	return analysis.Words(l.split), nil
}
