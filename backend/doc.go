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

// Package backend defines the lemmatization backend abstraction.
//
// A backend receives a batch of tokens and reports the base forms (and,
// when compound splitting is enabled, the WORDBASES annotations) the
// external lemmatizer produced for them. The set of backends is closed:
//
//   - backend/voikko: the bundled voikkospell binary or a system command
//   - backend/webapi: a remote analysis service queried per token
//
// New is the single place that selects a variant from a core.BackendConfig,
// so callers never branch on the API type themselves.
//
// Two further packages wrap or replace real backends:
//
//   - backend/cached: persists analyses in an AnalysisCache
//   - backend/mock: dictionary-driven test double
//
// # Usage Example
//
//	cfg := &core.BackendConfig{APIType: core.APITypeWebAPI, Endpoint: "http://localhost:3000"}
//	analyzer, err := backend.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer analyzer.Close()
//
//	analysis, err := analyzer.Analyze(ctx, []string{"käden"})
package backend
