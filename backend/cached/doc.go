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

// Package cached provides an Analyzer decorator that stores analyses in a
// storage.AnalysisCache.
//
// Voikko analyzes a whole token batch in one process, so entries are keyed
// on the batch rather than on single tokens. Keys come from core.CacheKey
// and therefore change with the backend type, endpoint and compound
// splitting flag. Analyses carrying token failures are never stored.
package cached
