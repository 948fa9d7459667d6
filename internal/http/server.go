// Package http provides the HTTP server, routing, and middleware for the
// policy assembly API.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	policyHTTP "github.com/allisson/policies/internal/policy/http"
)

// RouterConfig holds everything needed to assemble the API router.
type RouterConfig struct {
	Logger *slog.Logger

	CatalogHandler  *policyHTTP.CatalogHandler
	CompileHandler  *policyHTTP.CompileHandler
	DocumentHandler *policyHTTP.DocumentHandler

	CORSEnabled      bool
	CORSAllowOrigins string

	RateLimitEnabled        bool
	RateLimitRequestsPerSec float64
	RateLimitBurst          int

	// MetricsMiddleware records per-request metrics when set.
	MetricsMiddleware gin.HandlerFunc
}

// SetupRouter builds the Gin engine with all middleware and API routes.
func SetupRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(cfg.Logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, cfg.Logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MetricsMiddleware != nil {
		router.Use(cfg.MetricsMiddleware)
	}

	// Health and readiness endpoints stay outside the rate limit.
	router.GET("/health", healthHandler)
	router.GET("/ready", readinessHandler)

	v1 := router.Group("/v1")
	if cfg.RateLimitEnabled {
		v1.Use(RateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, cfg.Logger))
	}

	v1.POST("/catalogs", cfg.CatalogHandler.CreateHandler)
	v1.GET("/catalogs", cfg.CatalogHandler.ListHandler)
	v1.GET("/catalogs/:id", cfg.CatalogHandler.GetHandler)
	v1.DELETE("/catalogs/:id", cfg.CatalogHandler.DeleteHandler)
	v1.POST("/catalogs/:id/compile", cfg.CompileHandler.CompileHandler)
	v1.GET("/documents/:principal", cfg.DocumentHandler.ListByPrincipalHandler)

	return router
}

// healthHandler reports process liveness.
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports readiness to receive traffic.
func readinessHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// Server represents the API HTTP server.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a new HTTP server serving the given router.
func NewServer(host string, port int, logger *slog.Logger, router *gin.Engine) *Server {
	return &Server{
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
