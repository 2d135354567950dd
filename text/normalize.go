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

package text

import "golang.org/x/text/unicode/norm"

// Normalize returns s in Unicode normalization form C, so that a letter
// typed as base letter plus combining mark ("a" + U+0308) becomes the
// single precomposed code point ("ä") voikkospell expects.
func Normalize(s string) string {
	return norm.NFC.String(s)
}
