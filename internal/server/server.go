// Package server exposes sitemap selection and structured-data graphs over HTTP.
package server

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"git.home.luguber.info/inful/sitegraph/internal/content"
	"git.home.luguber.info/inful/sitegraph/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegraph/internal/logfields"
	"git.home.luguber.info/inful/sitegraph/internal/metrics"
	"git.home.luguber.info/inful/sitegraph/internal/schema"
	"git.home.luguber.info/inful/sitegraph/internal/sitemap"
)

// ContentSelector resolves sitemap entries.
type ContentSelector interface {
	SelectContent(ctx context.Context, types []string, opts sitemap.Options) ([]content.ContentItem, error)
	SelectTerms(ctx context.Context, taxonomy string, opts sitemap.Options) ([]content.TermItem, error)
}

// GraphBuilder assembles the structured-data graph of a page.
type GraphBuilder interface {
	BuildGraph(ctx context.Context, pc *schema.PageContext) ([]*schema.Node, error)
}

// PostFinder looks up a single content row.
type PostFinder interface {
	Post(ctx context.Context, id int64) (content.ContentItem, bool, error)
}

// Pinger reports storage connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services are the collaborators the HTTP handlers delegate to.
type Services struct {
	Selector ContentSelector
	Graph    GraphBuilder
	Posts    PostFinder
	Authors  content.AuthorStore
	Health   Pinger
	// SiteURL is the canonical site URL used to derive page URLs.
	SiteURL string
}

// Config controls the listener and the optional metrics endpoint.
type Config struct {
	Addr string
	// MetricsPath mounts Metrics when both are set.
	MetricsPath string
	Metrics     http.Handler
}

// Server is the HTTP API server.
type Server struct {
	Addr     string
	router   *chi.Mux
	server   *http.Server
	listener net.Listener
	svc      Services
	adapter  *errors.HTTPErrorAdapter
	recorder metrics.Recorder
	logger   *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option { return func(s *Server) { s.recorder = r } }

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(s *Server) { s.logger = l } }

// New creates the API server.
func New(cfg Config, svc Services, opts ...Option) *Server {
	s := &Server{
		Addr:     cfg.Addr,
		router:   chi.NewRouter(),
		svc:      svc,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.adapter = errors.NewHTTPErrorAdapter(s.logger)
	s.setupRoutes(cfg)

	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes(cfg Config) {
	s.router.Use(requestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(Chain(s.logger, s.adapter))
	s.router.Use(instrument(s.recorder))
	s.router.Use(middleware.Timeout(30 * time.Second))

	s.router.Get("/healthz", s.handleHealth)
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/ping", s.handlePing)
		r.Get("/sitemap/posts", s.handleSitemapPosts)
		r.Get("/sitemap/terms/{taxonomy}", s.handleSitemapTerms)
		r.Get("/schema/home", s.handleSchemaHome)
		r.Get("/schema/posts/{id}", s.handleSchemaPost)
		r.Get("/schema/authors/{id}", s.handleSchemaAuthor)
		r.Get("/schema/search", s.handleSchemaSearch)
	})
	if cfg.Metrics != nil && cfg.MetricsPath != "" {
		s.router.Method(http.MethodGet, cfg.MetricsPath, cfg.Metrics)
	}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler { return s.router }

// Start binds the listener and serves in the background until Shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return errors.WrapError(err, errors.CategoryHTTP, "failed to bind http listener").
			WithContext("addr", s.Addr).
			Build()
	}
	s.listener = ln
	s.logger.Info("Starting HTTP server", slog.String("addr", ln.Addr().String()))
	go func() {
		if err := s.server.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server failed", logfields.Error(err))
		}
	}()
	return nil
}

// ListenAddr returns the bound address once started.
func (s *Server) ListenAddr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
