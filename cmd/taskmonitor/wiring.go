package main

import (
	"net/http"

	"github.com/wrfweb/taskmonitor/internal/config"
	"github.com/wrfweb/taskmonitor/internal/core/ports"
	"github.com/wrfweb/taskmonitor/internal/infrastructure/logger"
	"github.com/wrfweb/taskmonitor/internal/infrastructure/taskapi"
)

// newTaskClient builds the task service client. The CSRF header is only
// injected when csrf.enabled is set; the token comes from config or, when
// a page is loaded, from its meta tag.
func newTaskClient(cfg *config.Config, log *logger.Logger, doc ports.Document) *taskapi.Client {
	var transport http.RoundTripper = http.DefaultTransport

	if cfg.CSRF.Enabled {
		token := cfg.CSRF.Token
		if token == "" && doc != nil {
			token, _ = doc.Meta(cfg.CSRF.MetaName)
		}
		if token == "" {
			log.Warnw("csrf_token_missing", "meta_name", cfg.CSRF.MetaName)
		}
		transport = taskapi.CSRFTransport(transport, cfg.CSRF.Header, token)
	}
	transport = taskapi.RequestIDTransport(transport)

	return taskapi.NewClient(taskapi.ClientConfig{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		UserAgent: cfg.API.UserAgent + "/" + Version,
		Transport: transport,
		Logger:    log,
	})
}
