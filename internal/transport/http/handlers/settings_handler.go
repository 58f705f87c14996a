package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wrfweb/taskmonitor/internal/config"
	"github.com/wrfweb/taskmonitor/internal/transport/http/dto"
)

type SettingsHandler struct {
	cfg *config.Config
}

func NewSettingsHandler(cfg *config.Config) *SettingsHandler {
	return &SettingsHandler{cfg: cfg}
}

func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	return c.JSON(dto.SettingsResponse{
		PollIntervalMS:   h.cfg.Poller.Interval.Milliseconds(),
		CSRFEnabled:      h.cfg.CSRF.Enabled,
		CSRFMetaName:     h.cfg.CSRF.MetaName,
		CSRFHeader:       h.cfg.CSRF.Header,
		StartingLabel:    h.cfg.Labels.Starting,
		StartedLabel:     h.cfg.Labels.Started,
		ViewResultLabel:  h.cfg.Labels.ViewResult,
		ResultPathPrefix: h.cfg.Render.ResultPathPrefix,
	})
}
