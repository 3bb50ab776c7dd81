package api

import (
	"errors"

	"rag-iishka-client/internal/api/handlers"
	"rag-iishka-client/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
)

type Config struct {
	Sessions    *session.Store
	Credentials middleware.CredentialsLoader
	// RequestLog enables fiber's access log.
	RequestLog bool
	// Fiber carries timeouts and limits. Its ErrorHandler is replaced.
	Fiber fiber.Config
}

func SetupRouter(
	authHandler *handlers.AuthHandler,
	docHandler *handlers.DocumentHandler,
	cfg Config,
	appLogger *zap.Logger,
) *fiber.App {
	fiberCfg := cfg.Fiber
	fiberCfg.ErrorHandler = func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
		}
		if code >= fiber.StatusInternalServerError {
			appLogger.Error("Request failed", zap.String("path", c.Path()), zap.Error(err))
		}
		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	app := fiber.New(fiberCfg)

	// Middleware
	app.Use(recover.New())
	if cfg.RequestLog {
		app.Use(logger.New())
	}

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Use(middleware.Identify(cfg.Sessions, appLogger))

	app.Get("/", authHandler.Home)
	app.Get("/login", authHandler.LoginPage)
	app.Post("/login", authHandler.Login)
	app.Get("/register", authHandler.RegisterPage)
	app.Post("/register", authHandler.Register)
	app.Post("/logout", authHandler.Logout)

	// Pages that need credentials
	documents := app.Group("/documents", middleware.RequireCredentials(cfg.Credentials, appLogger))
	documents.Get("", docHandler.ListDocuments)
	documents.Post("/upload", docHandler.UploadDocument)
	documents.Post("/:id/process", docHandler.ProcessDocument)
	documents.Get("/:id", docHandler.DocumentDetails)
	documents.Get("/:id/recommendations", docHandler.DocumentRecommendations)

	return app
}
