package server

import (
	"time"

	"triage/internal/config"
	"triage/internal/email"
	"triage/internal/handlers"
	"triage/internal/processor"
	"triage/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Server represents the application server
type Server struct {
	echo       *echo.Echo
	config     *config.Config
	store      *store.Store
	processor  *processor.Processor
	dispatcher *email.Dispatcher
	validate   *validator.Validate
	logger     zerolog.Logger
}

// New creates a new server instance
func New(cfg *config.Config, st *store.Store, proc *processor.Processor, dispatcher *email.Dispatcher, logger zerolog.Logger) *Server {
	return &Server{
		config:     cfg,
		store:      st,
		processor:  proc,
		dispatcher: dispatcher,
		validate:   validator.New(),
		logger:     logger,
	}
}

// zerologMiddleware creates a zerolog-based logging middleware for Echo
func (s *Server) zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			req := c.Request()
			res := c.Response()

			s.logger.Info().
				Str("method", req.Method).
				Str("uri", req.RequestURI).
				Str("remote_ip", c.RealIP()).
				Int("status", res.Status).
				Int64("latency_ms", time.Since(start).Milliseconds()).
				Str("user_agent", req.UserAgent()).
				Msg("HTTP request")

			return err
		}
	}
}

// Initialize sets up the Echo framework with middleware and routes
func (s *Server) Initialize() {
	s.echo = echo.New()

	// Middleware
	s.echo.Use(s.zerologMiddleware())
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORS())

	// Hide Echo banner
	s.echo.HideBanner = true

	// Setup routes
	s.setupRoutes()
}

// setupRoutes configures all the application routes
func (s *Server) setupRoutes() {
	// API group with /api prefix
	api := s.echo.Group("/api")

	// Swagger documentation
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	// Health endpoint (kept at root level for monitoring)
	s.echo.GET("/healthz", handlers.HealthHandler(s.config.Version))

	// API endpoints under /api prefix
	api.GET("/", handlers.RootHandler(s.config.Version))

	api.GET("/emails", handlers.ListEmailsHandler(s.store))
	api.POST("/emails", handlers.CreateEmailHandler(s.store, s.processor, s.validate))
	api.POST("/emails/refresh", handlers.RefreshEmailsHandler(s.store, s.config))
	api.GET("/emails/:id", handlers.GetEmailHandler(s.store))
	api.PATCH("/emails/:id/status", handlers.UpdateEmailStatusHandler(s.store, s.validate))
	api.GET("/emails/:id/response", handlers.GetResponseHandler(s.store))

	api.PATCH("/responses/:id", handlers.UpdateResponseHandler(s.store, s.validate))
	api.POST("/responses/:id/send", handlers.SendResponseHandler(s.store, s.dispatcher, s.logger))

	api.GET("/analytics", handlers.AnalyticsHandler(s.store))
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info().Str("port", s.config.Port).Msg("Server starting")
	return s.echo.Start(":" + s.config.Port)
}
