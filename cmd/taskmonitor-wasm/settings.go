//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/wrfweb/taskmonitor/internal/config"
	"github.com/wrfweb/taskmonitor/internal/infrastructure/logger"
)

const settingsPath = "/taskmonitor/settings.json"

type settings struct {
	PollIntervalMS   int64  `json:"poll_interval_ms"`
	CSRFEnabled      bool   `json:"csrf_enabled"`
	CSRFMetaName     string `json:"csrf_meta_name"`
	CSRFHeader       string `json:"csrf_header"`
	StartingLabel    string `json:"starting_label"`
	StartedLabel     string `json:"started_label"`
	ViewResultLabel  string `json:"view_result_label"`
	ResultPathPrefix string `json:"result_path_prefix"`
}

// applySettings overlays the settings published by the dev server. Pages
// served by the real application have no such document and keep defaults.
func applySettings(ctx context.Context, cfg *config.Config, origin string, log *logger.Logger) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(origin, "/")+settingsPath, nil)
	if err != nil {
		return
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Debugw("settings_unavailable", "error", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Debugw("settings_unavailable", "status", resp.StatusCode)
		return
	}

	var s settings
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		log.Warnw("settings_parse_error", "error", err)
		return
	}

	if s.PollIntervalMS > 0 {
		cfg.Poller.Interval = time.Duration(s.PollIntervalMS) * time.Millisecond
	}
	cfg.CSRF.Enabled = s.CSRFEnabled
	setIfNotEmpty(&cfg.CSRF.MetaName, s.CSRFMetaName)
	setIfNotEmpty(&cfg.CSRF.Header, s.CSRFHeader)
	setIfNotEmpty(&cfg.Labels.Starting, s.StartingLabel)
	setIfNotEmpty(&cfg.Labels.Started, s.StartedLabel)
	setIfNotEmpty(&cfg.Labels.ViewResult, s.ViewResultLabel)
	setIfNotEmpty(&cfg.Render.ResultPathPrefix, s.ResultPathPrefix)
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
