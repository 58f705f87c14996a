package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/wrfweb/taskmonitor/internal/infrastructure/logger"
)

func AccessLog(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		routePath := ""
		if c.Route() != nil {
			routePath = c.Route().Path
		}
		log.Infow("http_access",
			"method", c.Method(),
			"path", c.Path(),
			"route", routePath,
			"status", c.Response().StatusCode(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.IP(),
			"request_id", GetRequestID(c),
			"resp_bytes", len(c.Response().Body()),
		)
		return err
	}
}
