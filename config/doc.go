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

// Package config holds the persisted settings of the base-form service.
//
// Settings are stored as YAML under the same logical keys the search
// plugin used (api_type, api_url, split_compound_words,
// lemmatize_search_query) plus a few keys for local process, web API and
// cache tuning. Every backend call is built from an immutable
// core.BackendConfig derived from the current Settings.
package config
