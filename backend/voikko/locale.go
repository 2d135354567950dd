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
	"bufio"
	"context"
	"os/exec"
	"regexp"
	"strings"
)

const fallbackLocale = "C.UTF-8"

var utf8Locale = regexp.MustCompile(`(?i)utf-?8`)

// listLocales returns the output of `locale -a`, one locale per entry.
func listLocales(ctx context.Context) ([]string, error) {
	out, err := exec.CommandContext(ctx, "locale", "-a").Output()
	if err != nil {
		return nil, err
	}
	var locales []string
	scanner := bufio.NewScanner(strings.NewReader(string(out)))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			locales = append(locales, line)
		}
	}
	return locales, scanner.Err()
}

// pickUTF8Locale returns the first locale naming a UTF-8 encoding.
func pickUTF8Locale(locales []string) string {
	for _, l := range locales {
		if utf8Locale.MatchString(l) {
			return l
		}
	}
	return ""
}
