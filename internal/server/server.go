// Package server exposes a skeleton store over a read-mostly HTTP API.
//
// Every read runs inside a [skeleton.Reader] scope, so requests observe a
// consistent committed graph and never see staged changes. Selections
// (filter and highlight) go through [skeleton.Store.Select] and are the
// only requests that change the store.
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

	"github.com/Aishwarya3011/gapr-sub000/pkg/cache"
	"github.com/Aishwarya3011/gapr-sub000/pkg/skeleton"
)

// Server serves one store.
type Server struct {
	store    *skeleton.Store
	logger   *log.Logger
	gatherer prometheus.Gatherer
	cache    cache.Cache
	keyer    cache.Keyer
	ttl      time.Duration
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithGatherer sets the registry exposed on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// WithCache caches rendered exports under keys built by keyer.
func WithCache(c cache.Cache, keyer cache.Keyer, ttl time.Duration) Option {
	return func(s *Server) {
		s.cache = c
		s.keyer = keyer
		s.ttl = ttl
	}
}

// New builds a server for store.
func New(store *skeleton.Store, opts ...Option) *Server {
	s := &Server{
		store:    store,
		logger:   log.Default(),
		gatherer: prometheus.DefaultGatherer,
		cache:    cache.NewNullCache(),
		keyer:    cache.NewDefaultKeyer(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/stats", s.handleStats)
		r.Get("/state", s.handleState)
		r.Get("/roots", s.handleRoots)
		r.Get("/visible", s.handleVisible)
		r.Get("/vertices/{id}", s.handleVertex)
		r.Get("/edges/{id}", s.handleEdge)
		r.Get("/export/{format}", s.handleExport)
		r.Post("/filter", s.handleFilter)
		r.Post("/highlight/{mode}", s.handleHighlight)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("serving", "addr", "http://"+addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
