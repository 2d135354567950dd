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

package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joppuyo/relevanssi-finnish-base-forms/config"
	"github.com/rs/cors"
)

// Lemmatizer augments content, fields and search queries.
type Lemmatizer interface {
	Lemmatize(ctx context.Context, content string) (string, error)
	LemmatizeFields(ctx context.Context, fields []string) ([]string, error)
	LemmatizeQuery(ctx context.Context, query string) (string, error)
	LemmatizeTerms(ctx context.Context, terms []string) ([]string, error)
}

// Verifier checks a backend built from settings against the reference word.
type Verifier interface {
	VerifySettings(ctx context.Context, settings *config.Settings) error
}

// Server routes filter and verification requests.
type Server struct {
	settings        *config.Settings
	lemmatizer      Lemmatizer
	verifier        Verifier
	corsOrigins     []string
	shutdownTimeout time.Duration
	logger          *slog.Logger
	router          chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// WithCORSOrigins allows browser requests from origins, typically the
// admin UI. Without origins no CORS headers are sent.
func WithCORSOrigins(origins ...string) Option {
	return func(s *Server) {
		s.corsOrigins = append(s.corsOrigins, origins...)
	}
}

// WithShutdownTimeout bounds graceful shutdown in ListenAndServe.
// Default is 10 seconds.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.shutdownTimeout = d
	}
}

// New creates a Server. settings is copied.
func New(settings *config.Settings, lemmatizer Lemmatizer, verifier Verifier, opts ...Option) (*Server, error) {
	if settings == nil {
		return nil, errors.New("settings required")
	}
	if lemmatizer == nil {
		return nil, errors.New("lemmatizer required")
	}
	if verifier == nil {
		return nil, errors.New("verifier required")
	}

	s := &Server{
		settings:        settings.Clone(),
		lemmatizer:      lemmatizer,
		verifier:        verifier,
		shutdownTimeout: 10 * time.Second,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "server")
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	if len(s.corsOrigins) > 0 {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: s.corsOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost},
			AllowedHeaders: []string{"Content-Type"},
		}).Handler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/verify", s.handleVerify)
		r.Get("/settings", s.handleSettings)
		r.Route("/filter", func(r chi.Router) {
			r.Post("/content", s.handleContent)
			r.Post("/title", s.handleContent)
			r.Post("/custom-field", s.handleCustomField)
			r.Post("/query", s.handleQuery)
			r.Post("/terms", s.handleTerms)
		})
	})
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// requestLogger logs one line per request through slog.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
