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

package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joppuyo/relevanssi-finnish-base-forms/text"
)

// APIType selects the lemmatization backend.
type APIType string

const (
	// APITypeBinary runs the voikkospell binary bundled next to the dictionary.
	APITypeBinary APIType = "binary"
	// APITypeCommandLine runs a voikkospell command installed on the host.
	APITypeCommandLine APIType = "command_line"
	// APITypeWebAPI queries a remote analysis service over HTTP.
	APITypeWebAPI APIType = "web_api"
)

const (
	// DefaultCommand is the system command used by APITypeCommandLine.
	DefaultCommand = "voikkospell"
	// DefaultBinaryDir holds the bundled voikkospell binary and its dictionary.
	DefaultBinaryDir = "bin"
	// DefaultConcurrency bounds in-flight web API requests.
	DefaultConcurrency = 10
	// DefaultRequestTimeout bounds a single web API request.
	DefaultRequestTimeout = 30 * time.Second
)

// ParseAPIType converts a persisted api_type value into an APIType.
func ParseAPIType(s string) (APIType, error) {
	switch t := APIType(strings.ToLower(strings.TrimSpace(s))); t {
	case APITypeBinary, APITypeCommandLine, APITypeWebAPI:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAPIType, s)
	}
}

// IsLocal reports whether the backend spawns a local voikkospell process.
func (t APIType) IsLocal() bool {
	return t == APITypeBinary || t == APITypeCommandLine
}

// String returns the persisted form of the API type.
func (t APIType) String() string {
	return string(t)
}

// BackendConfig selects and parameterizes one lemmatization backend.
// It is built once per lemmatization call and never mutated afterwards.
type BackendConfig struct {
	// APIType selects the backend variant.
	APIType APIType

	// Endpoint is the root URL of the analysis service (web_api only).
	// Example: "https://voikko.example.com/"
	Endpoint string

	// SplitCompoundWords adds compound sub-words to the extracted base forms.
	SplitCompoundWords bool

	// BinaryDir contains the bundled voikkospell executable and its
	// dictionary directory (binary only).
	BinaryDir string

	// Command is the voikkospell executable looked up on PATH (command_line only).
	Command string

	// Locale overrides the UTF-8 locale passed as LANG and LC_ALL.
	// Empty means discover one from `locale -a`.
	Locale string

	// Concurrency bounds in-flight requests (web_api only). Default: 10
	Concurrency int

	// RequestTimeout bounds each request (web_api only). Default: 30s
	RequestTimeout time.Duration
}

// Normalize fills defaults and puts the endpoint in canonical form.
func (c *BackendConfig) Normalize() {
	if c.APIType == "" {
		c.APIType = APITypeBinary
	}
	if c.BinaryDir == "" {
		c.BinaryDir = DefaultBinaryDir
	}
	if c.Command == "" {
		c.Command = DefaultCommand
	}
	if c.Concurrency < 1 {
		c.Concurrency = DefaultConcurrency
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	c.Endpoint = NormalizeEndpoint(c.Endpoint)
}

// Validate checks the configuration after normalizing it.
func (c *BackendConfig) Validate() error {
	c.Normalize()

	if _, err := ParseAPIType(string(c.APIType)); err != nil {
		return err
	}
	if c.APIType == APITypeWebAPI && c.Endpoint == "" {
		return ErrEndpointRequired
	}
	return nil
}

// NormalizeEndpoint trims whitespace and makes the endpoint end with
// exactly one slash. An empty endpoint stays empty.
func NormalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return ""
	}
	return strings.TrimRight(endpoint, "/") + "/"
}

// TokenFailure records a token whose analysis could not be obtained.
type TokenFailure struct {
	Token string
	Err   error
}

// Analysis is the raw output of a backend for one batch of tokens.
type Analysis struct {
	// BaseForms are the dictionary forms reported by the backend, in the
	// order they were reported. Duplicates are possible.
	BaseForms []string

	// CompoundAnnotations are WORDBASES values, only collected when
	// compound splitting is enabled.
	CompoundAnnotations []string

	// Failures lists tokens that contributed nothing because their
	// individual request failed.
	Failures []TokenFailure
}

// Words returns the deduplicated union of base forms and, when split is
// set, the compound sub-words parsed from the annotations.
func (a *Analysis) Words(split bool) []string {
	if a == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(a.BaseForms))
	words := make([]string, 0, len(a.BaseForms))
	add := func(w string) {
		if w == "" {
			return
		}
		if _, ok := seen[w]; ok {
			return
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}

	for _, w := range a.BaseForms {
		add(w)
	}
	if split {
		for _, w := range text.ParseCompoundParts(a.CompoundAnnotations) {
			add(w)
		}
	}
	return words
}

// Err joins the per-token failures into a single error, or returns nil.
func (a *Analysis) Err() error {
	if a == nil || len(a.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(a.Failures))
	for i, f := range a.Failures {
		errs[i] = fmt.Errorf("token %q: %w", f.Token, f.Err)
	}
	return errors.Join(errs...)
}
