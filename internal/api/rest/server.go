package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/nDmitry/ytblog/internal/app"
	"github.com/nDmitry/ytblog/internal/cache"
	"github.com/nDmitry/ytblog/internal/editor"
	"github.com/nDmitry/ytblog/internal/entity"
	"github.com/nDmitry/ytblog/internal/workflow"
)

const sweepInterval = time.Minute

// Server represents the REST API server
type Server struct {
	mux        *http.ServeMux
	server     *http.Server
	logger     *slog.Logger
	cache      cache.Cache
	resolver   Resolver
	blog       workflow.Generator
	feeds      FeedGenerator
	workspaces *Workspaces
	config     *entity.Config
}

// NewServer creates a new REST API server
func NewServer(config *entity.Config, c cache.Cache, r Resolver, b workflow.Generator, f FeedGenerator) *Server {
	mux := http.NewServeMux()
	logger := app.Logger()

	server := &Server{
		mux:        mux,
		logger:     logger,
		cache:      c,
		resolver:   r,
		blog:       b,
		feeds:      f,
		workspaces: NewWorkspaces(r, b, editor.Load, config.IdleTTL()),
		config:     config,
		server: &http.Server{
			Addr:              ":" + config.HTTPPort,
			Handler:           nil,              // Will be set in Run
			ReadHeaderTimeout: 10 * time.Second, // Mitigate Slowloris
			ReadTimeout:       30 * time.Second, // Time to read entire request (including body)
			// Blog generation can take minutes.
			WriteTimeout: 4 * time.Minute,
			IdleTimeout:  120 * time.Second, // Keep-alive timeout
		},
	}

	server.registerHandlers()

	return server
}

// registerHandlers sets up all API routes
func (s *Server) registerHandlers() {
	NewWorkspaceHandler(s.mux, s.workspaces)
	NewFeedHandler(s.mux, s.cache, s.resolver, s.feeds, s.config.FeedVideosLimit)
}

// Handler returns the router wrapped in middleware.
func (s *Server) Handler() http.Handler {
	return Logger(s.mux)
}

// Run starts the server and blocks until the context is canceled
func (s *Server) Run(ctx context.Context) error {
	s.server.Handler = s.Handler()

	go s.workspaces.Run(ctx, sweepInterval)

	// Set BaseContext to pass the parent context
	s.server.BaseContext = func(_ net.Listener) context.Context { return ctx }

	// Register shutdown handler
	s.server.RegisterOnShutdown(func() {
		s.logger.Info("Server is shutting down...")
	})

	// Start server in a goroutine
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("Starting HTTP server", "port", s.config.HTTPPort)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server error: %w", err)
		}
		close(errCh)
	}()

	// Wait for context cancellation or server error
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	// Create a timeout for shutdown
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	s.logger.Info("Server exited gracefully")

	return nil
}
