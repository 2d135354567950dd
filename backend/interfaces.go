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
	"context"

	"github.com/joppuyo/relevanssi-finnish-base-forms/core"
)

// Analyzer sends tokens to an external lemmatizer.
// Implementations must be safe for concurrent use.
type Analyzer interface {
	// Analyze returns the backend output for all tokens. An empty token
	// slice yields an empty analysis without contacting the backend.
	// Failures that invalidate the whole batch are returned as errors;
	// failures isolated to single tokens are recorded in
	// core.Analysis.Failures.
	Analyze(ctx context.Context, tokens []string) (*core.Analysis, error)

	// Close releases resources held by the analyzer.
	Close() error
}
