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

import (
	"regexp"
	"strings"
)

// compoundPart matches a parenthesized sub-word. Groups starting with '+'
// are boundary placeholders, not sub-words.
var compoundPart = regexp.MustCompile(`\(([^+].*?)\)`)

// ParseCompoundParts extracts the base form of every sub-word from voikko
// WORDBASES annotations such as "+koti(koti)+koira(koira)". Morpheme
// boundary markers ('=') are removed. Results keep the order of discovery
// and may contain duplicates.
func ParseCompoundParts(annotations []string) []string {
	var parts []string
	for _, annotation := range annotations {
		for _, m := range compoundPart.FindAllStringSubmatch(annotation, -1) {
			parts = append(parts, strings.ReplaceAll(m[1], "=", ""))
		}
	}
	return parts
}
