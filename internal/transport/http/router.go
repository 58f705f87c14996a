package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/wrfweb/taskmonitor/internal/config"
	"github.com/wrfweb/taskmonitor/internal/infrastructure/logger"
	"github.com/wrfweb/taskmonitor/internal/transport/http/dto"
	"github.com/wrfweb/taskmonitor/internal/transport/http/handlers"
	httpmw "github.com/wrfweb/taskmonitor/internal/transport/http/middleware"
)

type RouterConfig struct {
	Logger *logger.Logger
	Config *config.Config
}

// NewApp builds the development server: the browser bundle and pages are
// served from the static directory, and every task service route is
// forwarded upstream so the page talks to a single origin.
func NewApp(cfg RouterConfig) *fiber.App {
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNop()
	}
	srv := cfg.Config.Server

	app := fiber.New(fiber.Config{
		ReadTimeout:           srv.ReadTimeout,
		WriteTimeout:          srv.WriteTimeout,
		IdleTimeout:           srv.IdleTimeout,
		ErrorHandler:          globalErrorHandler(cfg.Logger),
		DisableStartupMessage: true,
	})

	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	app.Use(httpmw.RequestID(httpmw.RequestIDHeader))
	if srv.RequestLogging {
		app.Use(httpmw.AccessLog(cfg.Logger))
	}

	SetupRoutes(app, cfg)
	return app
}

func SetupRoutes(app *fiber.App, cfg RouterConfig) {
	healthHandler := handlers.NewHealthHandler(cfg.Config.Server.Upstream)
	proxyHandler := handlers.NewProxyHandler(cfg.Config.Server.Upstream, cfg.Logger)
	settingsHandler := handlers.NewSettingsHandler(cfg.Config)

	app.Get("/health", healthHandler.Check)
	app.Get("/taskmonitor/settings.json", settingsHandler.Get)

	app.All("/api/*", proxyHandler.Forward)
	app.All("/results/*", proxyHandler.Forward)

	if dir := strings.TrimSpace(cfg.Config.Server.StaticDir); dir != "" {
		app.Static("/", dir, fiber.Static{
			Index:         "index.html",
			CacheDuration: -1,
		})
	}
}

func globalErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}
		if code >= fiber.StatusInternalServerError {
			log.Errorw("http_error",
				"path", c.Path(),
				"status", code,
				"error", err,
			)
		}
		return c.Status(code).JSON(dto.ErrorResponse{Error: err.Error()})
	}
}
