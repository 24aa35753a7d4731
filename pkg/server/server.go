package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/mchmarny/smartnav/pkg/logger"
	"github.com/mchmarny/smartnav/pkg/metric"
)

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = 9876

	// DefaultReadTimeout is the maximum duration for reading the entire request,
	// including the body. A zero or negative value means there will be no timeout.
	// This helps prevent slowloris attacks.
	DefaultReadTimeout = 10 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	// This should be set higher than ReadTimeout to account for handler execution time.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled. If IdleTimeout is zero, ReadTimeout is used.
	DefaultIdleTimeout = 60 * time.Second

	// DefaultShutdownTimeout is the maximum duration to wait for active connections
	// to gracefully close during server shutdown. Should be less than Kubernetes
	// terminationGracePeriodSeconds to allow proper pod termination.
	DefaultShutdownTimeout = 5 * time.Second

	// DefaultMaxHeaderBytes controls the maximum number of bytes the server will
	// read parsing the request header's keys and values, including the request line.
	// 1 MB is a conservative default to prevent header-based DoS attacks.
	DefaultMaxHeaderBytes = 1 << 20 // 1 MB

	// MetricsPath is where WithMetrics exposes the registry.
	MetricsPath = "/metrics"

	// HealthPath is where WithSimpleHealth answers.
	HealthPath = "/healthz"
)

// Server defines the interface for an HTTP server serving the site pages, metrics
// and health checks. Implementations must support graceful shutdown via context
// cancellation.
type Server interface {
	// Serve starts the HTTP server and blocks until the context is canceled.
	// It returns an error if the server fails to start or encounters an error
	// during shutdown. Returns nil on successful graceful shutdown.
	Serve(ctx context.Context) error

	// IsRunning returns true if the server is currently accepting connections.
	// This method is thread-safe and can be called concurrently.
	// Returns true only after the socket has been successfully bound.
	IsRunning() bool

	// Addr returns the bound address while running, the configured one otherwise.
	Addr() string
}

// server is the internal implementation of the Server interface.
// It uses the standard library http.Server with additional lifecycle management.
type server struct {
	mux             *http.ServeMux // HTTP request multiplexer
	port            int            // Port to listen on
	readTimeout     time.Duration  // Maximum duration for reading requests
	writeTimeout    time.Duration  // Maximum duration for writing responses
	idleTimeout     time.Duration  // Maximum idle time for keep-alive connections
	shutdownTimeout time.Duration  // Grace period for shutdown
	maxHeaderBytes  int            // Maximum header size in bytes
	errLog          *log.Logger    // Error logger backed by slog
	tlsConfig       *TLSConfig     // Optional TLS configuration
	mu              sync.RWMutex   // Protects running state and addr
	running         bool           // Indicates if server is currently running
	addr            string         // Configured, then bound, listen address
}

// TLSConfig contains the certificate and key file paths for TLS/HTTPS support.
type TLSConfig struct {
	CertFile string // Path to the TLS certificate file
	KeyFile  string // Path to the TLS private key file
}

// Option is a functional option for configuring the Server.
// This pattern allows for flexible, backward-compatible configuration.
type Option func(*server)

// WithPort sets the port number for the HTTP server.
// If not specified, DefaultPort (9876) is used. Zero picks a free port,
// reported by Addr once the server is running.
func WithPort(port int) Option {
	return func(s *server) { s.port = port }
}

// WithReadTimeout sets the maximum duration for reading the entire request.
// This includes reading the request headers and body.
// If not specified, DefaultReadTimeout (10s) is used.
func WithReadTimeout(d time.Duration) Option {
	return func(s *server) { s.readTimeout = d }
}

// WithWriteTimeout sets the maximum duration before timing out writes of the response.
// This should be set higher than ReadTimeout to account for handler execution time.
// If not specified, DefaultWriteTimeout (10s) is used.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *server) { s.writeTimeout = d }
}

// WithIdleTimeout sets the maximum time to wait for the next request when keep-alives are enabled.
// If not specified, DefaultIdleTimeout (60s) is used.
func WithIdleTimeout(d time.Duration) Option {
	return func(s *server) { s.idleTimeout = d }
}

// WithShutdownTimeout sets the maximum duration to wait for graceful shutdown.
// This should be less than Kubernetes terminationGracePeriodSeconds to ensure
// proper pod termination before SIGKILL. If not specified, DefaultShutdownTimeout (5s) is used.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *server) { s.shutdownTimeout = d }
}

// WithMaxHeaderBytes sets the maximum number of bytes to read from request headers.
// This helps prevent header-based DoS attacks. If not specified, DefaultMaxHeaderBytes (1 MB) is used.
func WithMaxHeaderBytes(n int) Option {
	return func(s *server) { s.maxHeaderBytes = n }
}

// WithHandler registers a custom HTTP handler for the specified pattern.
// Multiple handlers can be registered by calling this option multiple times.
//
// Example:
//
//	pages := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//	    w.Write([]byte("page"))
//	})
//	srv := server.New(server.WithHandler("/", pages))
func WithHandler(pattern string, handler http.Handler) Option {
	return func(s *server) {
		s.mux.Handle(pattern, handler)
	}
}

// WithSimpleHealth adds a simple health check endpoint at /healthz that always returns 200 OK.
// The page handler renders menus in memory without external dependencies, so
// there is nothing more to verify.
//
// The endpoint returns:
//   - 200 OK with body "ok"
//
// Example:
//
//	srv := server.New(server.WithSimpleHealth())
func WithSimpleHealth() Option {
	return func(s *server) {
		s.mux.HandleFunc(HealthPath, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
	}
}

// WithMetrics exposes the metrics gathered by reg on /metrics.
// Each server gets its own registry so tests and multiple instances do not conflict.
//
// Example:
//
//	reg := prometheus.NewRegistry()
//	srv := server.New(
//	    server.WithHandler("/", s.Handler(reg)),
//	    server.WithMetrics(reg),
//	)
func WithMetrics(reg *prometheus.Registry) Option {
	return func(s *server) {
		s.mux.Handle(MetricsPath, metric.HandlerFor(reg))
	}
}

// WithTLS configures the server to use TLS/HTTPS with the provided certificate and key files.
// The listener is wrapped with TLS 1.2 as the minimum version.
//
// Example:
//
//	srv := server.New(
//	    server.WithPort(8443),
//	    server.WithTLS(server.TLSConfig{
//	        CertFile: "/path/to/cert.pem",
//	        KeyFile:  "/path/to/key.pem",
//	    }),
//	)
func WithTLS(cfg TLSConfig) Option {
	return func(s *server) {
		s.tlsConfig = &cfg
	}
}

// New creates a new HTTP server with the provided options.
// If no options are provided, the server uses sensible defaults suitable for most services.
//
// Default configuration:
//   - Port: 9876
//   - ReadTimeout: 10s
//   - WriteTimeout: 10s
//   - IdleTimeout: 60s
//   - ShutdownTimeout: 5s
//   - MaxHeaderBytes: 1 MB
//
// Example:
//
//	srv := server.New(
//	    server.WithPort(9876),
//	    server.WithMetrics(reg),
//	    server.WithSimpleHealth(),
//	)
func New(opts ...Option) Server {
	s := &server{
		port:            DefaultPort,
		readTimeout:     DefaultReadTimeout,
		writeTimeout:    DefaultWriteTimeout,
		idleTimeout:     DefaultIdleTimeout,
		shutdownTimeout: DefaultShutdownTimeout,
		maxHeaderBytes:  DefaultMaxHeaderBytes,
		mux:             http.NewServeMux(),
		errLog:          logger.NewLogLogger(slog.LevelError),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.addr = fmt.Sprintf(":%d", s.port)

	slog.Debug("server initialized",
		"port", s.port,
		"read_timeout", s.readTimeout,
		"write_timeout", s.writeTimeout)

	return s
}

// IsRunning returns true if the server is currently running and accepting connections.
// This method is thread-safe and can be called concurrently from multiple goroutines.
//
// The server is considered "running" after the socket has been successfully bound and
// the server has started accepting connections. It returns false before the socket is
// bound and after the server has stopped.
//
// Example:
//
//	srv := server.New(server.WithPort(0))
//	go srv.Serve(ctx)
//	time.Sleep(100 * time.Millisecond) // Give server time to start
//	if srv.IsRunning() {
//	    log.Println("Server is accepting connections on", srv.Addr())
//	}
func (s *server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.running
}

// Addr returns the address the server listens on. While running it is the bound
// address, which resolves the actual port when WithPort(0) was used.
func (s *server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.addr
}

func (s *server) setRunning(running bool, addr string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.running = running
	if addr != "" {
		s.addr = addr
	}
}

// Serve starts the HTTP server and blocks until the context is canceled or an error occurs.
//
// The listener is created first so the server is marked running only once the socket
// is bound. The server then uses errgroup to manage two goroutines:
//  1. Server goroutine: Serves on the pre-created (optionally TLS wrapped) listener
//  2. Shutdown goroutine: Waits for context cancellation and initiates graceful shutdown
//
// When the context is canceled (e.g., SIGTERM), the shutdown goroutine:
//   - Calls Shutdown() with a timeout to gracefully close active connections
//   - Waits for in-flight requests to complete (up to shutdownTimeout)
//   - Logs the shutdown progress
//
// This method returns:
//   - nil on successful graceful shutdown
//   - An error if the server fails to start or shutdown encounters an error
//
// Error handling:
//   - http.ErrServerClosed is not considered an error (it's expected during shutdown)
//   - All other errors are returned to the caller
//
// Example usage with errgroup for multiple services:
//
//	g, gCtx := errgroup.WithContext(ctx)
//
//	g.Go(func() error {
//	    return srv.Serve(gCtx)
//	})
//
//	g.Go(func() error {
//	    return otherService.Run(gCtx)
//	})
//
//	if err := g.Wait(); err != nil {
//	    log.Fatal(err)
//	}
func (s *server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:           s.Addr(),
		Handler:        s.mux,
		ReadTimeout:    s.readTimeout,
		WriteTimeout:   s.writeTimeout,
		IdleTimeout:    s.idleTimeout,
		MaxHeaderBytes: s.maxHeaderBytes,
		ErrorLog:       s.errLog,
	}

	listener, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}

	if s.tlsConfig != nil {
		cert, certErr := tls.LoadX509KeyPair(s.tlsConfig.CertFile, s.tlsConfig.KeyFile)
		if certErr != nil {
			listener.Close()
			return fmt.Errorf("failed to load TLS certificate: %w", certErr)
		}

		listener = tls.NewListener(listener, &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		})
	}

	slog.Info("starting server", "addr", listener.Addr().String(), "tls", s.tlsConfig != nil)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.setRunning(true, listener.Addr().String())
		defer s.setRunning(false, "")

		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		slog.Info("shutting down server", "grace_period", s.shutdownTimeout)

		shutdownStart := time.Now()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}

		slog.Info("server shutdown complete", "duration", time.Since(shutdownStart))

		return nil
	})

	return g.Wait()
}
