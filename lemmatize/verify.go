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

	"github.com/joppuyo/relevanssi-finnish-base-forms/backend"
)

const (
	// VerificationToken is the inflected word sent to a backend under test.
	VerificationToken = "käden"

	// VerificationBaseForm is the only word the backend may return for it.
	VerificationBaseForm = "käsi"
)

// Verify sends VerificationToken to analyzer and succeeds only when the
// merged words are exactly VerificationBaseForm. Every other outcome,
// including a backend error or a dropped request, is reported as
// ErrVerificationFailed; the cause is logged at debug level.
func Verify(ctx context.Context, analyzer backend.Analyzer, split bool) error {
	if analyzer == nil {
		return ErrAnalyzerRequired
	}
	logger := slog.Default().With("component", "verify")

	analysis, err := analyzer.Analyze(ctx, []string{VerificationToken})
	if err != nil {
		logger.Debug("verification request failed", "err", err)
		return ErrVerificationFailed
	}
	if err := analysis.Err(); err != nil {
		logger.Debug("verification request dropped", "err", err)
		return ErrVerificationFailed
	}

	words := analysis.Words(split)
	if len(words) != 1 || words[0] != VerificationBaseForm {
		logger.Debug("unexpected verification result", "words", words)
		return ErrVerificationFailed
	}
	return nil
}

// Verify checks the Lemmatizer's own analyzer.
func (l *Lemmatizer) Verify(ctx context.Context) error {
	return Verify(ctx, l.analyzer, l.split)
}
