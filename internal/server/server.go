// Package server assembles the HTTP engine and runs it with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/teamup/internal/config"
	"github.com/festy23/teamup/internal/health"
	"github.com/festy23/teamup/internal/middleware"
	"github.com/festy23/teamup/internal/teamrequest/repository"
	"github.com/festy23/teamup/internal/teamrequest/router"
	"github.com/festy23/teamup/internal/teamrequest/service"
)

// Store is the connection the engine serves requests from.
type Store interface {
	middleware.StoreConnector
	health.StoreStatus
	Requests() repository.Repository
}

// NewEngine builds the gin engine with every route and middleware attached.
func NewEngine(cfg config.Config, store Store, logger *zap.SugaredLogger, opts ...service.Option) *gin.Engine {
	gin.SetMode(cfg.GinMode)

	engine := gin.New()
	engine.Use(
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	healthHandler := health.New(store, cfg.App.Environment, cfg.App.Version)
	engine.GET("/", healthHandler.Index)
	engine.GET("/health", healthHandler.Check)

	api := engine.Group("/api", middleware.RequireStore(store, logger))
	router.RegisterRoutes(api, store.Requests(), logger, opts...)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return engine
}

// Server wraps http.Server with the configured timeouts.
type Server struct {
	httpServer *http.Server
	cfg        config.ServerConfig
	logger     *zap.SugaredLogger
}

// New creates a server for handler.
func New(cfg config.ServerConfig, handler http.Handler, logger *zap.SugaredLogger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.GetAddress(),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		cfg:    cfg,
		logger: logger,
	}
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Infow("server listening", "address", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Infow("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	s.logger.Infow("server stopped")
	return nil
}
