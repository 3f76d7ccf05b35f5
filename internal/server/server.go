package server

import (
	"time"

	"github.com/flowbaker/commerce-go/internal/auth"
	"github.com/flowbaker/commerce-go/internal/controllers"
	"github.com/flowbaker/commerce-go/internal/middlewares"
	"github.com/flowbaker/commerce-go/internal/version"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

type HTTPServerDependencies struct {
	Verifier           *auth.APISignatureVerifier
	ResourceController *controllers.ResourceController
	// DisableRequestLog turns off the per-request access log
	DisableRequestLog bool
}

// NewHTTPServer builds the sandbox platform. Every route except /health is
// signature checked the same way the commerce platform checks it.
func NewHTTPServer(deps HTTPServerDependencies) *fiber.App {
	router := fiber.New(fiber.Config{
		AppName: "commerce-sandbox",
	})

	if !deps.DisableRequestLog {
		router.Use(logger.New())
	}

	// Health check endpoint (no authentication required)
	router.Get("/health", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":    "healthy",
			"service":   "commerce-sandbox",
			"version":   version.GetVersion(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	router.Use(middlewares.APISignatureMiddleware(deps.Verifier))

	rc := deps.ResourceController
	known := rc.RequireKnownPath

	api := router.Group("/:version/:resource")

	api.Get("/", known, rc.List)
	api.Post("/", known, rc.Build)
	api.Get("/:id", known, rc.Get)
	api.Post("/:id", known, rc.Update)
	api.Delete("/:id", known, rc.Delete)
	api.Get("/:id/:nested", known, rc.ListNested)
	api.Get("/:id/:nested/:nestedId", known, rc.GetNested)

	return router
}
