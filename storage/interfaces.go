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

package storage

import (
	"context"
	"time"

	"github.com/joppuyo/relevanssi-finnish-base-forms/core"
)

// AnalysisCache stores backend analyses by cache key.
// Implementations must be thread-safe and support concurrent access.
type AnalysisCache interface {
	// Get returns the analysis stored under key.
	// Returns ErrNotFound if the key is absent or expired.
	Get(ctx context.Context, key string) (*core.Analysis, error)

	// Put stores analysis under key. A ttl of zero stores it without expiry.
	Put(ctx context.Context, key string, analysis *core.Analysis, ttl time.Duration) error

	// Purge removes every cached analysis.
	Purge(ctx context.Context) error

	// Close releases resources held by the cache. It does not close the
	// underlying storage backend.
	Close() error
}
