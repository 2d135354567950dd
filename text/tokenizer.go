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
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenize splits s into maximal runs of word characters. A word character
// is any code point that is not punctuation, a separator, or in the
// "other" category (control, format, surrogate, private use, unassigned).
// Invalid UTF-8 bytes act as boundaries. Empty input yields no tokens.
func Tokenize(s string) []string {
	return strings.FieldsFunc(s, isBoundary)
}

// isBoundary reports whether r separates tokens.
func isBoundary(r rune) bool {
	if r == utf8.RuneError {
		return true
	}
	if unicode.IsPunct(r) || unicode.In(r, unicode.Z, unicode.C) {
		return true
	}
	return !isAssigned(r)
}

// isAssigned reports whether r belongs to any general category other than
// Cn (unassigned).
func isAssigned(r rune) bool {
	return unicode.In(r, unicode.L, unicode.M, unicode.N, unicode.P, unicode.S, unicode.Z, unicode.C)
}
