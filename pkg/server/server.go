// Package server exposes chart rendering over HTTP.
//
// # Routes
//
//	GET  /healthz                    build info
//	POST /v1/render?format=svg       render a chart from the request body
//	POST /v1/charts                  store a chart definition, returns {"id": ...}
//	GET  /v1/charts/{id}/{format}    render a stored chart
//
// Render bodies carry the dataset in its JSON form plus optional settings
// and page options:
//
//	{
//	  "dataset":  {"Revenue": {"Q1": 120, "Q2": 98.5}},
//	  "settings": {"format": "currency", "gridlines": 5},
//	  "options":  {"width": 640}
//	}
//
// Responses carry the artifact with its content type and an X-Render-ID
// header. Errors are JSON objects with a code and a message; the status is
// derived from the error code.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/colgraph/pkg/pipeline"
	"github.com/matzehuels/colgraph/pkg/store"
)

// Defaults.
const (
	DefaultAddr          = ":8080"
	DefaultMaxBodyBytes  = 4 << 20
	DefaultRenderTimeout = 30 * time.Second
	shutdownTimeout      = 10 * time.Second
)

// Config configures a Server.
type Config struct {
	Runner *pipeline.Runner
	Store  store.Store
	Logger *log.Logger
	// MaxBodyBytes limits request bodies. Zero selects DefaultMaxBodyBytes.
	MaxBodyBytes int64
	// RenderTimeout bounds a single render request.
	RenderTimeout time.Duration
}

// Server serves the HTTP API.
type Server struct {
	runner  *pipeline.Runner
	store   store.Store
	logger  *log.Logger
	maxBody int64
	timeout time.Duration
	router  chi.Router
}

// New creates a Server. A nil runner renders without caching and a nil
// store keeps charts in memory.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.RenderTimeout <= 0 {
		cfg.RenderTimeout = DefaultRenderTimeout
	}

	s := &Server{
		runner:  cfg.Runner,
		store:   cfg.Store,
		logger:  cfg.Logger,
		maxBody: cfg.MaxBodyBytes,
		timeout: cfg.RenderTimeout,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Post("/charts", s.handleCreateChart)
		r.Get("/charts/{id}/{format}", s.handleGetChart)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
