// Package server exposes the clique solver over HTTP.
//
// Routes:
//
//	POST /v1/solve        DIMACS body, query: quality, time_limit, iterations, seed, refresh
//	POST /v1/color        DIMACS body, query: strategy, seed
//	GET  /v1/runs         stored benchmark runs, query: limit
//	GET  /v1/runs/{id}    one stored run
//	GET  /healthz
//	GET  /version
//
// Errors are JSON objects {"code": ..., "error": ...} with the status taken
// from the error code.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/maxclique/pkg/graph"
	"github.com/matzehuels/maxclique/pkg/report"
	"github.com/matzehuels/maxclique/pkg/solver"
)

// Defaults for Config.
const (
	DefaultAddr         = "127.0.0.1:8080"
	DefaultMaxBodyBytes = 64 << 20
	DefaultMaxTimeLimit = 5 * time.Minute
	DefaultMaxVertices  = 5000
)

// Config holds server settings. Zero fields take the defaults.
type Config struct {
	Addr string
	// MaxBodyBytes caps the size of uploaded graphs.
	MaxBodyBytes int64
	// MaxTimeLimit caps the time_limit a client may request.
	MaxTimeLimit time.Duration
	// MaxVertices caps the vertex count of uploaded graphs. It is clamped
	// to graph.MaxVertices.
	MaxVertices int
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.MaxTimeLimit <= 0 {
		c.MaxTimeLimit = DefaultMaxTimeLimit
	}
	if c.MaxVertices <= 0 {
		c.MaxVertices = DefaultMaxVertices
	}
	c.MaxVertices = min(c.MaxVertices, graph.MaxVertices)
}

// Server is the HTTP API.
type Server struct {
	cfg    Config
	runner *solver.Runner
	store  report.Store // nil disables the runs routes
	logger *log.Logger
	router chi.Router
}

// New creates a server. store may be nil.
func New(cfg Config, runner *solver.Runner, store report.Store, logger *log.Logger) *Server {
	cfg.setDefaults()
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		cfg:    cfg,
		runner: runner,
		store:  store,
		logger: logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/solve", s.handleSolve)
		r.Post("/color", s.handleColor)
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{id}", s.handleGetRun)
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.cfg.Addr
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return ctx.Err()
	}
}
