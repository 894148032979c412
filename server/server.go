package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// ErrNilHandler is returned by New when the config carries no handler.
var ErrNilHandler = errors.New("server: nil handler")

// Config configures a Server. Zero duration fields select the defaults
// noted on each field.
type Config struct {
	// Addr is the TCP listen address (default ":8080").
	Addr string

	// Handler receives every request, typically a *dispatch.Dispatcher.
	Handler http.Handler

	// CORS enables cross-origin handling through rs/cors when non-nil.
	// A pointer to a zero Options value selects the permissive rs/cors
	// defaults (any origin, simple methods).
	CORS *cors.Options

	// EnableH2C additionally serves HTTP/2 over cleartext TCP for
	// clients that speak it, such as gRPC gateways and h2c-aware
	// proxies. HTTP/1.1 clients are unaffected.
	EnableH2C bool

	// Logger receives lifecycle events. Defaults to slog.Default with a
	// "component" attribute.
	Logger *slog.Logger

	// ReadHeaderTimeout bounds reading request headers (default 5s).
	ReadHeaderTimeout time.Duration

	// ReadTimeout bounds reading the full request (default 30s).
	ReadTimeout time.Duration

	// WriteTimeout bounds writing the response (default 30s).
	WriteTimeout time.Duration

	// IdleTimeout bounds keep-alive waits (default 2m).
	IdleTimeout time.Duration

	// ShutdownTimeout bounds the graceful drain on shutdown
	// (default 10s).
	ShutdownTimeout time.Duration
}

// withDefaults returns the config with zero fields replaced by defaults.
func (cfg Config) withDefaults() Config {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.ReadHeaderTimeout == 0 {
		cfg.ReadHeaderTimeout = 5 * time.Second
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 30 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 30 * time.Second
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = 2 * time.Minute
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	return cfg
}

// Server runs an http.Server around a handler with graceful shutdown.
type Server struct {
	cfg    Config
	logger *slog.Logger

	mu         sync.Mutex
	addr       string
	httpServer *http.Server
}

// New creates a server for the given config. It returns ErrNilHandler if
// cfg.Handler is nil.
func New(cfg Config) (*Server, error) {
	if cfg.Handler == nil {
		return nil, ErrNilHandler
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default().With("component", "server")
	}

	return &Server{
		cfg:    cfg.withDefaults(),
		logger: logger,
	}, nil
}

// Run listens on the configured address and serves until ctx is canceled
// or the listener fails. Cancellation triggers a graceful shutdown bounded
// by ShutdownTimeout; a clean shutdown returns nil. The variadic started
// channels are closed once the listener is accepting connections, so tests
// and callers binding ":0" can wait before reading Addr.
func (s *Server) Run(ctx context.Context, started ...chan struct{}) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("server: listen on %s: %w", s.cfg.Addr, err)
	}

	handler := s.cfg.Handler
	if s.cfg.CORS != nil {
		handler = cors.New(*s.cfg.CORS).Handler(handler)
	}
	if s.cfg.EnableH2C {
		handler = h2c.NewHandler(handler, &http2.Server{})
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
	}

	s.mu.Lock()
	s.addr = ln.Addr().String()
	s.httpServer = srv
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	s.logger.Info("server starting", "address", s.Addr())

	for _, ch := range started {
		close(ch)
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down", "reason", ctx.Err())
		return s.Shutdown(context.Background())
	}
}

// Addr returns the listener's address once Run has bound it, and ""
// before. With a ":0" config address this is the only way to learn the
// assigned port.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Shutdown gracefully stops the server, waiting up to ShutdownTimeout for
// in-flight requests to finish. It is a no-op before Run.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()

	if srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		s.logger.Error("shutdown error", "error", err)
		return err
	}

	s.logger.Info("server shutdown complete")
	return nil
}
