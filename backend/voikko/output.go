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

package voikko

import (
	"regexp"
	"strings"

	"github.com/joppuyo/relevanssi-finnish-base-forms/core"
)

var (
	baseFormLine  = regexp.MustCompile(`(?m)BASEFORM=(.+)$`)
	wordBasesLine = regexp.MustCompile(`(?m)WORDBASES=(.+)$`)
)

// parseOutput collects BASEFORM values and, when split is set, WORDBASES
// values from voikkospell -M output.
func parseOutput(out string, split bool) *core.Analysis {
	analysis := &core.Analysis{
		BaseForms: matchValues(baseFormLine, out),
	}
	if split {
		analysis.CompoundAnnotations = matchValues(wordBasesLine, out)
	}
	return analysis
}

func matchValues(re *regexp.Regexp, out string) []string {
	var values []string
	for _, m := range re.FindAllStringSubmatch(out, -1) {
		if v := strings.TrimRight(m[1], "\r"); v != "" {
			values = append(values, v)
		}
	}
	return values
}
