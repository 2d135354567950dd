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
	"strings"
)

// Backend failures
var (
	// ErrExternalToolFailure indicates voikkospell could not be spawned,
	// exited non-zero, or wrote to its error stream.
	ErrExternalToolFailure = errors.New("external tool failure")

	// ErrNetworkFailure indicates a web API request failed in transport
	// or returned a non-success status.
	ErrNetworkFailure = errors.New("network failure")

	// ErrMalformedResponse indicates a web API body was not a JSON array of objects.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrPermissionRepairFailure indicates the bundled binary could not be made executable.
	ErrPermissionRepairFailure = errors.New("permission repair failure")
)

// Configuration errors
var (
	// ErrInvalidAPIType indicates an api_type outside binary, command_line and web_api.
	ErrInvalidAPIType = errors.New("invalid api type")

	// ErrEndpointRequired indicates web_api was selected without an endpoint.
	ErrEndpointRequired = errors.New("web api endpoint required")

	// ErrInvalidConfig indicates settings values outside their allowed range.
	ErrInvalidConfig = errors.New("invalid config")
)

// ExternalToolError carries the error stream of a failed voikkospell run.
type ExternalToolError struct {
	Stderr string
	Err    error
}

func (e *ExternalToolError) Error() string {
	var b strings.Builder
	b.WriteString(ErrExternalToolFailure.Error())
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		b.WriteString(": ")
		b.WriteString(s)
	}
	return b.String()
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *ExternalToolError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrExternalToolFailure}
	}
	return []error{ErrExternalToolFailure, e.Err}
}
