//go:build js && wasm

// Command taskmonitor-wasm is the browser build of the task monitor. It binds
// the run and refresh buttons, polls every task status placeholder on the
// page and guards forms marked data-confirm-leave.
package main

import (
	"context"

	"github.com/wrfweb/taskmonitor/internal/config"
	"github.com/wrfweb/taskmonitor/internal/core/services"
	"github.com/wrfweb/taskmonitor/internal/infrastructure/dom"
	"github.com/wrfweb/taskmonitor/internal/infrastructure/eventloop"
	"github.com/wrfweb/taskmonitor/internal/infrastructure/logger"
	"github.com/wrfweb/taskmonitor/internal/infrastructure/taskapi"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	cfg.Logger.OutputPaths = []string{"stdout"}
	cfg.Logger.ErrorOutputPaths = []string{"stdout"}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	// The page's lifetime is the program's lifetime; nothing cancels ctx.
	ctx := context.Background()

	doc := dom.NewJSDocument()
	loop := eventloop.New()

	applySettings(ctx, cfg, doc.Location(), log)

	// The injector stays dormant unless the settings enable it.
	transport := taskapi.RequestIDTransport(nil)
	if cfg.CSRF.Enabled {
		if token, ok := doc.Meta(cfg.CSRF.MetaName); ok {
			transport = taskapi.CSRFTransport(transport, cfg.CSRF.Header, token)
		}
	}
	client := taskapi.NewClient(taskapi.ClientConfig{
		BaseURL:   doc.Location(),
		Transport: transport,
		Logger:    log,
	})

	renderer := services.NewRenderer(services.RendererConfig{
		Document: doc,
		Logger:   log,
		Render:   cfg.Render,
		Labels:   cfg.Labels,
	})
	dispatcher := services.NewDispatcher(services.DispatcherConfig{
		API:       client,
		Document:  doc,
		Renderer:  renderer,
		Scheduler: loop,
		Notifier:  dom.Alerter{},
		Logger:    log,
		Labels:    cfg.Labels,
	})
	dispatcher.Bind(ctx, doc)

	guard := services.NewLeaveGuard("")
	guard.Attach(doc)
	if guard.Active() {
		doc.OnBeforeUnload(guard.BeforeUnload)
	}

	registry := services.NewRegistry()
	if registry.Scan(doc) > 0 {
		poller := services.NewPoller(services.PollerConfig{
			Registry: registry,
			Checker:  dispatcher,
			Interval: cfg.Poller.Interval,
			Logger:   log,
		})
		go poller.Run(ctx)
	}

	log.Infow("task_monitor_ready", "tasks", registry.Len())
	_ = loop.Run(ctx)
}
