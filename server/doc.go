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

// Package server exposes base-form augmentation to a search engine over
// HTTP.
//
// Routes:
//
//	POST /api/verify                 form or JSON {api_type, api_root}
//	POST /api/filter/content         {"content"} -> {"content"}
//	POST /api/filter/title           {"content"} -> {"content"}
//	POST /api/filter/custom-field    {"values"}  -> {"values"}
//	POST /api/filter/query           {"q"}       -> {"q"}
//	POST /api/filter/terms           {"terms"}   -> {"terms", "max_terms", "and_logic"}
//	GET  /api/settings
//
// Filters return their input unchanged when augmentation is disabled.
// A failing backend yields 502 so the caller can index the original
// content instead.
package server
