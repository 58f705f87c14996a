package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/proxy"

	"github.com/wrfweb/taskmonitor/internal/infrastructure/logger"
	"github.com/wrfweb/taskmonitor/internal/transport/http/dto"
)

// ProxyHandler forwards requests, path and query intact, to the task
// service.
type ProxyHandler struct {
	upstream string
	logger   *logger.Logger
}

func NewProxyHandler(upstream string, log *logger.Logger) *ProxyHandler {
	return &ProxyHandler{
		upstream: strings.TrimRight(upstream, "/"),
		logger:   log,
	}
}

func (h *ProxyHandler) Forward(c *fiber.Ctx) error {
	if h.upstream == "" {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Error: "no upstream configured"})
	}

	target := h.upstream + c.OriginalURL()
	if err := proxy.Do(c, target); err != nil {
		h.logger.Warnw("proxy_upstream_error",
			"target", target,
			"error", err,
		)
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Error: "upstream unavailable"})
	}

	c.Response().Header.Del(fiber.HeaderServer)
	return nil
}
