// Package server exposes the library lookup over HTTP and serves the web client.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/steam-dilemma/config"
	"github.com/s0up4200/steam-dilemma/filter"
	"github.com/s0up4200/steam-dilemma/steam"
)

const defaultShutdownTimeout = 10 * time.Second

// LibraryFetcher fetches the owned games of a Steam user
type LibraryFetcher interface {
	GetUserLibrary(ctx context.Context, steamID string) (*steam.UserLibrary, error)
}

var _ LibraryFetcher = (*steam.Client)(nil)

// Server is the HTTP front end
type Server struct {
	cfg      config.ServerConfig
	fetcher  LibraryFetcher
	compiler filter.Compiler
	state    *AppModel
	logger   zerolog.Logger
}

// Option configures a Server
type Option func(*Server)

// WithCompiler sets the compiler used for the filter query parameter
func WithCompiler(compiler filter.Compiler) Option {
	return func(s *Server) {
		if compiler != nil {
			s.compiler = compiler
		}
	}
}

// WithAppModel sets the shared state, mostly useful in tests
func WithAppModel(state *AppModel) Option {
	return func(s *Server) {
		if state != nil {
			s.state = state
		}
	}
}

// New creates a server that looks libraries up through fetcher
func New(cfg config.ServerConfig, fetcher LibraryFetcher, logger zerolog.Logger, opts ...Option) *Server {
	s := &Server{
		cfg:      cfg,
		fetcher:  fetcher,
		compiler: filter.NewExprCompiler(filter.WithCache(64)),
		state:    NewAppModel(),
		logger:   logger.With().Str("component", "server").Logger(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Handler builds the full routing tree with middleware applied
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("GET /api/health", s.handleHealth)
	api.HandleFunc("POST /api/increment", s.handleIncrement)
	api.HandleFunc("POST /api/get_customer_library", s.handleGetCustomerLibrary)

	apiMiddleware := []Middleware{corsMiddleware}
	if s.cfg.RateLimit.RPS > 0 {
		apiMiddleware = append(apiMiddleware, newRateLimiter(s.cfg.RateLimit.RPS, s.cfg.RateLimit.Burst).middleware)
	}
	if s.cfg.MaxBodyBytes > 0 {
		apiMiddleware = append(apiMiddleware, bodyLimitMiddleware(s.cfg.MaxBodyBytes))
	}

	root := http.NewServeMux()
	root.Handle("/api/", chain(api, apiMiddleware...))
	root.Handle("/", newSPAHandler(s.cfg.StaticDir))

	return chain(root,
		requestIDMiddleware,
		accessLogMiddleware(s.logger),
	)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down gracefully
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	shutdownTimeout := s.cfg.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("Listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		s.logger.Info().Msg("Shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Run listens on the configured address and serves until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}
