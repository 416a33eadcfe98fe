// Package server exposes sessions, theme, transcription and analysis over a
// JSON HTTP API for the browser front end, and serves its static assets.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/alkime/voicescribe/internal/analysis"
	"github.com/alkime/voicescribe/internal/config"
	"github.com/alkime/voicescribe/internal/session"
	"github.com/alkime/voicescribe/internal/theme"
	"github.com/alkime/voicescribe/internal/transcription"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

// Transcriber turns uploaded audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string, lang transcription.Language) (string, error)
}

// Analyzer computes transcript metrics.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*analysis.Metrics, error)
}

// Deps are the domain services the API is built on.
type Deps struct {
	Sessions    *session.Manager
	Theme       *theme.Preference
	Transcriber Transcriber
	Analyzer    Analyzer
}

// Server represents the HTTP server
type Server struct {
	config *config.Config
	logger *slog.Logger
	router *gin.Engine
	deps   Deps
}

// New creates a new Server instance
func New(cfg *config.Config, logger *slog.Logger, deps Deps) *Server {
	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery())

	if len(cfg.TrustedProxies) > 0 {
		if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
			logger.Error("Failed to set trusted proxies", "error", err)
		} else {
			logger.Debug("Configured trusted proxies", "proxies", cfg.TrustedProxies)
		}
	}

	server := &Server{
		config: cfg,
		logger: logger,
		router: router,
		deps:   deps,
	}

	// Setup middleware and routes
	setupSecurityMiddleware(router, cfg, logger)
	server.setupRoutes()

	return server
}

// Router returns the underlying handler, for tests and embedding.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run starts the HTTP server
func Run(s *Server) error {
	s.logger.Info("Server listening", "port", s.config.Port)
	return s.router.Run(":" + s.config.Port)
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Static assets first; unmatched paths fall through to the API routes.
	if s.config.PublicDir != "" {
		s.router.Use(static.Serve("/", static.LocalFile(s.config.PublicDir, false)))
	}

	// Health check endpoint
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")
	{
		api.GET("/sessions", s.handleListSessions)
		api.POST("/sessions", s.handleCreateSession)
		api.GET("/sessions/:id", s.handleGetSession)
		api.PATCH("/sessions/:id", s.handleRenameSession)
		api.DELETE("/sessions/:id", s.handleDeleteSession)

		api.GET("/theme", s.handleGetTheme)
		api.PUT("/theme", s.handleSetTheme)
		api.POST("/theme/toggle", s.handleToggleTheme)

		api.GET("/languages", s.handleLanguages)
		api.POST("/transcriptions", s.handleTranscribe)
		api.POST("/metrics", s.handleMetrics)
	}

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorBody("not found"))
	})
}

// handleHealth handles the health check endpoint
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "voicescribe",
	})
}

func errorBody(msg string) gin.H {
	return gin.H{"error": msg}
}
