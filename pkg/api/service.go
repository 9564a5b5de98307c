package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/api/handlers"
	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/auth"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/sirupsen/logrus"
)

// Service defines the API service interface
type Service interface {
	Start(ctx context.Context) error
	Stop() error
}

type service struct {
	app             *fiber.App
	server          *http.Server
	config          *Config
	store           handlers.Store
	syncer          handlers.Syncer
	authenticator   auth.Authenticator
	frontendHandler http.Handler
	log             logrus.FieldLogger
}

// NewService creates a new API and frontend service. syncer and
// frontendHandler may be nil.
func NewService(cfg *Config, store handlers.Store, syncer handlers.Syncer, authenticator auth.Authenticator, frontendHandler http.Handler, log logrus.FieldLogger) Service {
	return &service{
		config:          cfg,
		store:           store,
		syncer:          syncer,
		authenticator:   authenticator,
		frontendHandler: frontendHandler,
		log:             log.WithField("service", "api"),
	}
}

// Start initializes and starts the API server with frontend integration
func (s *service) Start(_ context.Context) error {
	if !s.config.Enabled {
		s.log.Info("API service is disabled")
		return nil
	}

	s.app = s.buildApp()

	// Create HTTP server with the Fiber app
	fiberHandler := adaptor.FiberApp(s.app)
	s.server = &http.Server{
		Addr:              s.config.Addr,
		Handler:           fiberHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		s.log.WithFields(logrus.Fields{
			"addr":   s.config.Addr,
			"prefix": s.config.RoutePrefix(),
		}).Info("Starting API and frontend server")

		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.WithError(err).Error("Server failed to start")
		}
	}()

	return nil
}

// buildApp wires middleware, API routes and the frontend fallback
func (s *service) buildApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
		AppName:      "FairWindSK Settings",
	})

	setupMiddleware(app, s.config)

	prefix := s.config.RoutePrefix()

	// Writes require admin; the caller's level comes from the host server.
	router := app.Group(prefix, adminGate(s.authenticator, s.log))

	handlers.NewServer(s.store, s.syncer, s.log).RegisterHandlers(router)

	// Register frontend handler as fallback for non-API routes
	if s.frontendHandler != nil {
		frontend := s.frontendHandler
		if prefix != "" {
			frontend = http.StripPrefix(prefix, frontend)

			// The editor resolves its assets and API calls against the page
			// directory, which only works with the trailing slash.
			app.Get(prefix, func(c fiber.Ctx) error {
				if c.Path() != prefix {
					return c.Next()
				}

				return c.Redirect().Status(fiber.StatusMovedPermanently).To(prefix + "/")
			})
		}

		app.Use(prefix, adaptor.HTTPHandler(frontend))
	}

	return app
}

// Stop gracefully shuts down the API server
func (s *service) Stop() error {
	if s.server == nil {
		return nil
	}

	s.log.Info("Stopping API and frontend server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
