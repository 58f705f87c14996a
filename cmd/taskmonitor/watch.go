package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wrfweb/taskmonitor/internal/config"
	"github.com/wrfweb/taskmonitor/internal/core/services"
	"github.com/wrfweb/taskmonitor/internal/domain"
	"github.com/wrfweb/taskmonitor/internal/infrastructure/dom"
	"github.com/wrfweb/taskmonitor/internal/infrastructure/eventloop"
	"github.com/wrfweb/taskmonitor/internal/infrastructure/logger"
	"github.com/wrfweb/taskmonitor/internal/infrastructure/notify"
)

type watchOptions struct {
	page      string
	out       string
	immediate bool
	tasks     []string
}

func newWatchCommand(opts *rootOptions) *cobra.Command {
	w := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll every task on a page and keep a rendered snapshot up to date",
		Long: `watch loads a server-rendered page (file or URL), finds its task status
placeholders and refreshes them on a fixed interval, exactly as the browser
would. After every update the page is written to --out.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, opts.cfg, opts.log, w, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&w.page, "page", "p", "", "page to monitor: a file path or an http(s) URL (relative paths resolve against api.base_url when prefixed with /)")
	f.StringVarP(&w.out, "out", "o", "-", "where to write the rendered page, - for stdout")
	f.BoolVar(&w.immediate, "immediate", false, "refresh once at start instead of waiting a full interval")
	f.StringSliceVar(&w.tasks, "task", nil, "extra task ids to poll besides those found on the page")
	f.Duration("interval", 0, "poll interval (overrides poller.interval)")
	_ = cmd.MarkFlagRequired("page")

	return cmd
}

func runWatch(ctx context.Context, cfg *config.Config, log *logger.Logger, w *watchOptions, stdout io.Writer) error {
	doc, err := loadPage(ctx, cfg, w.page)
	if err != nil {
		return err
	}

	loop := eventloop.New()
	snapshot := func(taskID string, payload domain.StatusPayload) {
		if err := writeSnapshot(doc, w.out, stdout); err != nil {
			log.Warnw("snapshot_write_failed", "task_id", taskID, "error", err)
		}
	}

	renderer := services.NewRenderer(services.RendererConfig{
		Document: doc,
		Logger:   log,
		Render:   cfg.Render,
		Labels:   cfg.Labels,
		OnRender: snapshot,
	})
	dispatcher := services.NewDispatcher(services.DispatcherConfig{
		API:       newTaskClient(cfg, log, doc),
		Document:  doc,
		Renderer:  renderer,
		Scheduler: loop,
		Notifier:  notify.NewConsole(os.Stderr),
		Logger:    log,
		Labels:    cfg.Labels,
	})

	registry := services.NewRegistry()
	found := registry.Scan(doc)
	for _, id := range w.tasks {
		registry.Register(id)
	}
	dispatcher.Bind(ctx, doc)

	log.Infow("watch_started",
		"page", w.page,
		"tasks_on_page", found,
		"tasks_total", registry.Len(),
		"interval", cfg.Poller.Interval,
	)
	if registry.Len() == 0 {
		log.Warn("no task status placeholders found; nothing to poll")
		return writeSnapshot(doc, w.out, stdout)
	}

	poller := services.NewPoller(services.PollerConfig{
		Registry: registry,
		Checker:  dispatcher,
		Interval: cfg.Poller.Interval,
		Logger:   log,
	})

	go func() {
		if w.immediate {
			poller.Tick(ctx)
		}
		_ = poller.Run(ctx)
	}()

	if err := loop.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	log.Info("watch stopped")
	return nil
}

func loadPage(ctx context.Context, cfg *config.Config, page string) (*dom.HTMLDocument, error) {
	if strings.HasPrefix(page, "/") && !fileExists(page) {
		page = strings.TrimRight(cfg.API.BaseURL, "/") + page
	}

	if !strings.HasPrefix(page, "http://") && !strings.HasPrefix(page, "https://") {
		f, err := os.Open(page)
		if err != nil {
			return nil, fmt.Errorf("failed to open page: %w", err)
		}
		defer f.Close()
		return dom.Parse(f)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, page, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch page: %w: status %d", domain.ErrResponseNotOK, resp.StatusCode)
	}
	return dom.Parse(resp.Body)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func writeSnapshot(doc *dom.HTMLDocument, out string, stdout io.Writer) error {
	if out == "" || out == "-" {
		return doc.Render(stdout)
	}

	tmp := out + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := doc.Render(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, out)
}
