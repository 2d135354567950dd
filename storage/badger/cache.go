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

package badger

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/joppuyo/relevanssi-finnish-base-forms/core"
	"github.com/joppuyo/relevanssi-finnish-base-forms/storage"
)

// analysisCache implements storage.AnalysisCache on a Backend.
type analysisCache struct {
	backend *Backend
	closed  atomic.Bool
}

var _ storage.AnalysisCache = (*analysisCache)(nil)

// NewAnalysisCache creates an analysis cache stored in backend.
// The caller keeps ownership of backend and closes it after the cache.
func NewAnalysisCache(backend *Backend) (storage.AnalysisCache, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	return &analysisCache{backend: backend}, nil
}

func (c *analysisCache) Get(ctx context.Context, key string) (*core.Analysis, error) {
	if c.isClosed() {
		return nil, storage.ErrStorageClosed
	}

	var analysis *core.Analysis
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeAnalysisKey(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			analysis, err = storage.UnmarshalAnalysis(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return analysis, nil
}

func (c *analysisCache) Put(ctx context.Context, key string, analysis *core.Analysis, ttl time.Duration) error {
	if c.isClosed() {
		return storage.ErrStorageClosed
	}
	if analysis == nil {
		return errors.New("analysis required")
	}

	entry := badger.NewEntry(makeAnalysisKey(key), storage.MarshalAnalysis(analysis))
	if ttl > 0 {
		entry = entry.WithTTL(ttl)
	}

	return c.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.SetEntry(entry); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

func (c *analysisCache) Purge(ctx context.Context) error {
	if c.isClosed() {
		return storage.ErrStorageClosed
	}
	return c.backend.DropPrefix([]byte(analysisPrefix + ":"))
}

func (c *analysisCache) Close() error {
	c.closed.Store(true)
	return nil
}

func (c *analysisCache) isClosed() bool {
	return c.closed.Load() || c.backend.IsClosed()
}
