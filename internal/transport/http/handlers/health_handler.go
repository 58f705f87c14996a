package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wrfweb/taskmonitor/internal/transport/http/dto"
)

type HealthHandler struct {
	upstream string
}

func NewHealthHandler(upstream string) *HealthHandler {
	return &HealthHandler{upstream: upstream}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Status: "ok", Upstream: h.upstream})
}
