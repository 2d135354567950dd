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

package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	baseforms "github.com/joppuyo/relevanssi-finnish-base-forms"
	"github.com/joppuyo/relevanssi-finnish-base-forms/config"
	"github.com/joppuyo/relevanssi-finnish-base-forms/core"
	"github.com/joppuyo/relevanssi-finnish-base-forms/server"
	"github.com/joppuyo/relevanssi-finnish-base-forms/text"
	"github.com/urfave/cli/v2"
)

// openService is replaced in tests.
var openService = func(settings *config.Settings) (*baseforms.Service, error) {
	return baseforms.Open(settings)
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "baseforms",
		Usage: "Append Finnish base forms to text for search indexing",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML settings file",
				Value:   "baseforms.yaml",
			},
			&cli.StringFlag{
				Name:  "api-type",
				Usage: "Override the backend (binary, command_line, web_api)",
			},
			&cli.StringFlag{
				Name:  "api-url",
				Usage: "Override the web API root URL",
			},
			&cli.BoolFlag{
				Name:  "split-compound-words",
				Usage: "Override compound word splitting",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "lemmatize",
				Usage:  "Read text from stdin and print it with base forms appended",
				Action: lemmatizeCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "query",
						Usage: "Treat the input as a search query",
					},
				},
			},
			{
				Name:   "tokenize",
				Usage:  "Read text from stdin and print one token per line",
				Action: tokenizeCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "strip-tags",
						Usage: "Remove HTML markup before tokenizing",
						Value: true,
					},
				},
			},
			{
				Name:   "verify",
				Usage:  "Check that the configured backend returns käsi for käden",
				Action: verifyCommand,
			},
			{
				Name:   "serve",
				Usage:  "Run the HTTP filter service",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address",
						Value: ":8080",
					},
					&cli.StringSliceFlag{
						Name:  "cors-origin",
						Usage: "Allowed browser origin (repeatable)",
					},
				},
			},
			{
				Name:   "purge-cache",
				Usage:  "Delete every cached analysis",
				Action: purgeCacheCommand,
			},
		},
	}
}

// loadSettings reads the settings file and applies flag overrides.
func loadSettings(c *cli.Context) (*config.Settings, error) {
	settings, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	if c.IsSet("api-type") {
		apiType, err := core.ParseAPIType(c.String("api-type"))
		if err != nil {
			return nil, err
		}
		settings.APIType = apiType
	}
	if c.IsSet("api-url") {
		settings.APIURL = c.String("api-url")
	}
	if c.IsSet("split-compound-words") {
		settings.SplitCompoundWords = c.Bool("split-compound-words")
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

func openFromFlags(c *cli.Context) (*baseforms.Service, error) {
	settings, err := loadSettings(c)
	if err != nil {
		return nil, err
	}
	svc, err := openService(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to open service: %w", err)
	}
	return svc, nil
}

func lemmatizeCommand(c *cli.Context) error {
	input, err := io.ReadAll(c.App.Reader)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	svc, err := openFromFlags(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	lemmatizer := svc.Lemmatizer()
	var result string
	if c.Bool("query") {
		result, err = lemmatizer.LemmatizeQuery(c.Context, string(input))
	} else {
		result, err = lemmatizer.Lemmatize(c.Context, string(input))
	}
	if err != nil {
		return fmt.Errorf("lemmatization failed: %w", err)
	}

	fmt.Fprintln(c.App.Writer, result)
	return nil
}

func tokenizeCommand(c *cli.Context) error {
	input, err := io.ReadAll(c.App.Reader)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	s := string(input)
	if c.Bool("strip-tags") {
		s = text.StripTags(s)
	}
	for _, token := range text.Tokenize(s) {
		fmt.Fprintln(c.App.Writer, token)
	}
	return nil
}

func verifyCommand(c *cli.Context) error {
	svc, err := openFromFlags(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.Verify(c.Context); err != nil {
		return cli.Exit("verification failed", 1)
	}
	fmt.Fprintln(c.App.Writer, "ok")
	return nil
}

func serveCommand(c *cli.Context) error {
	svc, err := openFromFlags(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	srv, err := server.New(svc.Settings(), svc.Lemmatizer(), svc,
		server.WithCORSOrigins(c.StringSlice("cors-origin")...),
		server.WithLogger(slog.Default()),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.ListenAndServe(ctx, c.String("addr"))
}

func purgeCacheCommand(c *cli.Context) error {
	svc, err := openFromFlags(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.Purge(c.Context); err != nil {
		if errors.Is(err, baseforms.ErrCacheDisabled) {
			return fmt.Errorf("no cache_dir configured")
		}
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	fmt.Fprintln(c.App.Writer, "cache purged")
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Logs go to stderr so stdout stays usable in pipes
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
