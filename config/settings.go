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

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joppuyo/relevanssi-finnish-base-forms/core"
	"gopkg.in/yaml.v3"
)

// DefaultCacheTTL is how long cached analyses stay valid by default.
const DefaultCacheTTL = 720 * time.Hour

// Settings holds the service configuration.
type Settings struct {
	// APIType selects the lemmatizer backend.
	// Default: binary
	APIType core.APIType `yaml:"api_type"`

	// APIURL is the root of the analysis web API. Required for web_api.
	// Example: "https://voikko.example.com/"
	APIURL string `yaml:"api_url"`

	// SplitCompoundWords adds the parts of compound words to the output.
	SplitCompoundWords bool `yaml:"split_compound_words"`

	// LemmatizeSearchQuery augments search queries as well as content.
	LemmatizeSearchQuery bool `yaml:"lemmatize_search_query"`

	// BinaryDir contains the bundled voikkospell and its dictionary.
	// Default: bin
	BinaryDir string `yaml:"binary_dir"`

	// Command is the system voikkospell used by command_line.
	// Default: voikkospell
	Command string `yaml:"command"`

	// Locale overrides the UTF-8 locale passed to voikkospell.
	Locale string `yaml:"locale"`

	// Concurrency bounds in-flight web API requests.
	// Default: 10
	Concurrency int `yaml:"concurrency"`

	// RequestTimeout bounds each web API request.
	// Default: 30s
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// CacheDir holds the analysis cache. Empty disables caching.
	CacheDir string `yaml:"cache_dir"`

	// CacheTTL is how long cached analyses stay valid.
	// Default: 720h
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

// SettingsOption is a functional option for configuring Settings.
type SettingsOption func(*Settings)

// WithAPIType sets the backend type.
func WithAPIType(apiType core.APIType) SettingsOption {
	return func(s *Settings) {
		s.APIType = apiType
	}
}

// WithAPIURL sets the web API root.
func WithAPIURL(url string) SettingsOption {
	return func(s *Settings) {
		s.APIURL = url
	}
}

// WithSplitCompoundWords toggles compound splitting.
func WithSplitCompoundWords(split bool) SettingsOption {
	return func(s *Settings) {
		s.SplitCompoundWords = split
	}
}

// WithLemmatizeSearchQuery toggles search query augmentation.
func WithLemmatizeSearchQuery(enabled bool) SettingsOption {
	return func(s *Settings) {
		s.LemmatizeSearchQuery = enabled
	}
}

// WithBinaryDir sets the directory of the bundled binary.
func WithBinaryDir(dir string) SettingsOption {
	return func(s *Settings) {
		s.BinaryDir = dir
	}
}

// WithCacheDir enables the analysis cache in dir.
func WithCacheDir(dir string) SettingsOption {
	return func(s *Settings) {
		s.CacheDir = dir
	}
}

// DefaultSettings returns Settings for the bundled binary without caching.
func DefaultSettings() *Settings {
	return &Settings{
		APIType:        core.APITypeBinary,
		BinaryDir:      core.DefaultBinaryDir,
		Command:        core.DefaultCommand,
		Concurrency:    core.DefaultConcurrency,
		RequestTimeout: core.DefaultRequestTimeout,
		CacheTTL:       DefaultCacheTTL,
	}
}

// NewSettings creates Settings with the default values and applies opts.
func NewSettings(opts ...SettingsOption) *Settings {
	s := DefaultSettings()
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads Settings from a YAML file. Keys missing from the file keep
// their defaults; a missing file yields DefaultSettings.
func Load(path string) (*Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	s.Normalize()
	return s, nil
}

// Save writes s to path as YAML, creating parent directories.
func (s *Settings) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// Normalize fills unset values with defaults and canonicalizes the API URL.
func (s *Settings) Normalize() {
	if s.APIType == "" {
		s.APIType = core.APITypeBinary
	}
	if s.BinaryDir == "" {
		s.BinaryDir = core.DefaultBinaryDir
	}
	if s.Command == "" {
		s.Command = core.DefaultCommand
	}
	if s.Concurrency == 0 {
		s.Concurrency = core.DefaultConcurrency
	}
	if s.RequestTimeout == 0 {
		s.RequestTimeout = core.DefaultRequestTimeout
	}
	s.APIURL = core.NormalizeEndpoint(s.APIURL)
}

// Validate checks that the settings are usable.
// It normalizes the settings before validation.
func (s *Settings) Validate() error {
	s.Normalize()

	if s.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be at least 1", core.ErrInvalidConfig)
	}
	if s.RequestTimeout < 0 {
		return fmt.Errorf("%w: request_timeout must not be negative", core.ErrInvalidConfig)
	}
	if s.CacheTTL < 0 {
		return fmt.Errorf("%w: cache_ttl must not be negative", core.ErrInvalidConfig)
	}
	return s.BackendConfig().Validate()
}

// Enabled reports whether content should be augmented at all: a web API
// URL is configured or a local backend is selected.
func (s *Settings) Enabled() bool {
	return s.APIURL != "" || s.APIType.IsLocal()
}

// BackendConfig returns a fresh backend configuration for one call.
func (s *Settings) BackendConfig() *core.BackendConfig {
	cfg := &core.BackendConfig{
		APIType:            s.APIType,
		Endpoint:           s.APIURL,
		SplitCompoundWords: s.SplitCompoundWords,
		BinaryDir:          s.BinaryDir,
		Command:            s.Command,
		Locale:             s.Locale,
		Concurrency:        s.Concurrency,
		RequestTimeout:     s.RequestTimeout,
	}
	cfg.Normalize()
	return cfg
}

// Clone returns a copy of s.
func (s *Settings) Clone() *Settings {
	c := *s
	return &c
}
