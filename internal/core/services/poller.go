package services

import (
	"context"
	"time"

	"github.com/wrfweb/taskmonitor/internal/infrastructure/logger"
)

const DefaultPollInterval = 10 * time.Second

// StatusChecker is satisfied by Dispatcher.
type StatusChecker interface {
	CheckStatus(ctx context.Context, taskID string) <-chan Result
}

// Poller refreshes every registered task on a fixed interval for as long as
// its context lives. Ticks never wait for earlier requests to finish.
type Poller struct {
	registry *Registry
	checker  StatusChecker
	interval time.Duration
	logger   *logger.Logger
}

type PollerConfig struct {
	Registry *Registry
	Checker  StatusChecker
	Interval time.Duration
	Logger   *logger.Logger
}

func NewPoller(cfg PollerConfig) *Poller {
	log := cfg.Logger
	if log == nil {
		log = logger.NewNop()
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		registry: cfg.Registry,
		checker:  cfg.Checker,
		interval: interval,
		logger:   log.Named("poller"),
	}
}

// Run blocks until ctx is done. Tasks registered while it runs are picked
// up on the next tick.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Infow("poll_loop_started",
		"interval", p.interval,
		"tasks", p.registry.Len(),
	)

	for {
		select {
		case <-ticker.C:
			p.Tick(ctx)
		case <-ctx.Done():
			p.logger.Debug("poll loop stopped")
			return ctx.Err()
		}
	}
}

// Tick issues one status check per registered task and returns without
// waiting for the responses. Failures are reported by the checker.
func (p *Poller) Tick(ctx context.Context) int {
	ids := p.registry.IDs()
	if len(ids) == 0 {
		return 0
	}
	for _, id := range ids {
		p.checker.CheckStatus(ctx, id)
	}
	p.logger.Debugw("poll_tick", "tasks", len(ids))
	return len(ids)
}
