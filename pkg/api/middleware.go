package api

import (
	"errors"
	"net/http"

	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/auth"
	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/observability"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/sirupsen/logrus"
)

// setupMiddleware configures global middleware for the Fiber app
func setupMiddleware(app *fiber.App, cfg *Config) {
	// Recovery middleware catches panics
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	// Logger middleware for request logging
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	// CORS middleware for cross-origin requests
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: false,
	}))

	app.Use(metricsMiddleware)
}

// metricsMiddleware counts requests by method and final status
func metricsMiddleware(c fiber.Ctx) error {
	err := c.Next()

	code := c.Response().StatusCode()

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	} else if err != nil {
		code = fiber.StatusInternalServerError
	}

	observability.RecordHTTPRequest(c.Method(), code)

	return err
}

// adminGate rejects writes from callers below admin. Reads pass through.
func adminGate(authenticator auth.Authenticator, log logrus.FieldLogger) fiber.Handler {
	return func(c fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}

		header := make(http.Header)
		for name, values := range c.GetReqHeaders() {
			for _, value := range values {
				header.Add(name, value)
			}
		}

		level, err := authenticator.PrivilegeLevel(c.Context(), header)
		if err != nil {
			log.WithError(err).Warn("Failed to resolve caller privilege level")
			return fiber.NewError(fiber.StatusServiceUnavailable, "authentication service unavailable")
		}

		if level < auth.LevelAdmin {
			return fiber.NewError(fiber.StatusForbidden, "admin privileges required")
		}

		return c.Next()
	}
}

// errorHandler provides consistent error responses
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var fiberErr *fiber.Error
	if ok := errors.As(err, &fiberErr); ok {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
		"code":  code,
	})
}
