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

// Package lemmatize augments text with Finnish base forms.
//
// A Lemmatizer runs the whole chain for one piece of content:
//   - Strip markup and split the text into tokens
//   - Send all tokens to the configured backend.Analyzer in one call
//   - Merge base forms and, when compound splitting is on, compound parts
//   - Append the deduplicated words to the original content
//
// The original content is never modified, only extended. Backend errors
// propagate to the caller; there is no retry and no fallback to another
// backend. Verify checks that a backend answers the reference word
// correctly before it is put to use.
package lemmatize
