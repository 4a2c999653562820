package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/neotech-labs/auth-core/docs"
	"github.com/neotech-labs/auth-core/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer      *http.Server
	router          *http.ServeMux
	version         string
	allowedOrigins  []string
	shutdownTimeout time.Duration
	logger          *slog.Logger

	// Services
	authService driving.AuthService
	sessions    driving.SessionAuthenticator

	// Infrastructure
	store Pinger // credential store readiness check
}

// Config holds server configuration
type Config struct {
	Host            string
	Port            int
	Version         string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:            "0.0.0.0",
		Port:            8080,
		Version:         "dev",
		ShutdownTimeout: 30 * time.Second,
	}
}

// NewServer creates a new HTTP server. A nil logger uses slog.Default().
func NewServer(
	cfg Config,
	authService driving.AuthService,
	sessions driving.SessionAuthenticator,
	store Pinger,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}

	s := &Server{
		router:          http.NewServeMux(),
		version:         cfg.Version,
		allowedOrigins:  cfg.AllowedOrigins,
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger.With("component", "http"),
		authService:     authService,
		sessions:        sessions,
		store:           store,
	}

	docs.SwaggerInfo.Version = cfg.Version

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Health endpoints
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)
	s.router.HandleFunc("GET /swagger/doc.json", s.handleSwaggerDoc)

	// Auth endpoints (public)
	s.router.HandleFunc("POST /api/auth/register", s.handleRegister)
	s.router.HandleFunc("POST /api/auth/login", s.handleLogin)

	// Authenticated
	s.router.Handle("GET /api/auth/me",
		RequireAuthenticated(http.HandlerFunc(s.handleGetMe)))
}

// Handler returns the router wrapped in the global middleware chain.
// Order, outermost first: logging, recovery, CORS, session. Recovery sits
// inside logging so a panicking request still gets its request line.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.router
	h = NewSessionMiddleware(s.sessions, s.logger).Handler(h)
	h = NewCORSMiddleware(s.allowedOrigins).Handler(h)
	h = NewRecoveryMiddleware(s.logger).Handler(h)
	h = NewLoggingMiddleware(s.logger).Handler(h)
	return h
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}
