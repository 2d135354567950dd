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

// Package webapi queries a remote voikko analysis service.
//
// Every token is requested independently as GET <endpoint>/analyze/<token>.
// Requests run on a bounded ants worker pool (10 in flight by default) and
// each writes only its own result slot; the slots are merged once all
// requests have settled. A failed request never aborts its siblings. It
// contributes nothing to the base forms and is recorded in
// core.Analysis.Failures instead.
package webapi
