// Package server exposes the planarity pipeline over HTTP.
//
// # Endpoints
//
//	POST /v1/check       test a JSON graph; query: algorithm, st=s,t, refresh
//	POST /v1/embed       embed a JSON graph; query: refresh
//	POST /v1/planarize   planarize a JSON graph; query: virtual_start, refresh
//	GET  /v1/reports     list saved reports; query: limit
//	GET  /v1/reports/{id}
//	GET  /v1/version
//	GET  /healthz
//	GET  /metrics        Prometheus exposition
//
// Request bodies use the JSON graph format of package io. Errors are JSON
// objects with the coded error of package errors:
//
//	{"code": "INVALID_GRAPH", "error": "node 3: duplicate node label"}
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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	perrors "github.com/matzehuels/planarity/pkg/errors"
	"github.com/matzehuels/planarity/pkg/observability"
	"github.com/matzehuels/planarity/pkg/pipeline"
	"github.com/matzehuels/planarity/pkg/store"
)

// DefaultAddr is the listen address when Options.Addr is empty.
const DefaultAddr = ":8080"

// MaxBodyBytes bounds request bodies.
const MaxBodyBytes = 32 << 20

// Options configures a Server.
type Options struct {
	Addr string
	// Runner computes results. Its Store, when set, also serves the
	// report endpoints.
	Runner *pipeline.Runner
	// Limits bounds accepted graphs; zero selects pipeline.DefaultLimits.
	Limits perrors.Limits
	// Algorithm is used when a check request names none.
	Algorithm string
	// Gatherer backs /metrics; nil selects the default registry.
	Gatherer prometheus.Gatherer
	Hooks    observability.HTTPHooks
	Logger   *log.Logger
}

// Server is the HTTP API.
type Server struct {
	opts   Options
	router chi.Router
}

// New builds the router.
func New(opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}
	if opts.Runner == nil {
		opts.Runner = pipeline.NewRunner(nil, nil, nil, opts.Logger)
	}
	if opts.Limits == (perrors.Limits{}) {
		opts.Limits = pipeline.DefaultLimits
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	s := &Server{opts: opts}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/version", s.handleVersion)
		r.Post("/check", s.handleCheck)
		r.Post("/embed", s.handleEmbed)
		r.Post("/planarize", s.handlePlanarize)
		r.Get("/reports", s.handleListReports)
		r.Get("/reports/{id}", s.handleGetReport)
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// Addr returns the listen address.
func (s *Server) Addr() string { return s.opts.Addr }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.opts.Logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.opts.Logger.Info("server stopped")
	return nil
}

func (s *Server) store() store.Store { return s.opts.Runner.Store }
