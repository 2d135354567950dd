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

// Package storage provides the storage abstraction for cached analyses.
//
// Re-indexing a site sends the same content through the lemmatizer again
// and again. The AnalysisCache interface lets the backend/cached decorator
// remember what a backend answered for a batch of tokens, keyed by
// core.CacheKey, so repeated batches skip the process spawn or the HTTP
// round trips.
//
// # Constructor Return Type Pattern
//
// Public constructors return the interface type:
//
//	cache, err := badger.NewAnalysisCache(backend)  // returns storage.AnalysisCache
//
// # Serialization
//
// Values are encoded with mus-go (see MarshalAnalysis). Only base forms
// and compound annotations are stored; per-token failures never are.
//
// # Thread Safety
//
// All implementations must be safe for concurrent use.
package storage
