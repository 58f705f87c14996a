package services

import (
	"context"

	"github.com/wrfweb/taskmonitor/internal/config"
	"github.com/wrfweb/taskmonitor/internal/core/ports"
	"github.com/wrfweb/taskmonitor/internal/domain"
	"github.com/wrfweb/taskmonitor/internal/infrastructure/logger"
)

const (
	DefaultStartingLabel = "Starting..."
	DefaultStartedLabel  = "Started"
)

// Result is the outcome of one dispatched request. Exactly one of Payload
// and Err is set.
type Result struct {
	TaskID  string
	Payload *domain.StatusPayload
	Err     error
}

// Dispatcher turns user intents into task service calls and hands the
// responses to the Renderer. Requests run on their own goroutines; every
// page mutation is posted to the scheduler.
type Dispatcher struct {
	api       ports.TaskAPI
	doc       ports.Document
	renderer  *Renderer
	scheduler ports.Scheduler
	notifier  ports.Notifier
	logger    *logger.Logger
	starting  string
	started   string
}

type DispatcherConfig struct {
	API       ports.TaskAPI
	Document  ports.Document
	Renderer  *Renderer
	Scheduler ports.Scheduler
	Notifier  ports.Notifier
	Logger    *logger.Logger
	Labels    config.LabelsConfig
}

func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	log := cfg.Logger
	if log == nil {
		log = logger.NewNop()
	}
	starting := cfg.Labels.Starting
	if starting == "" {
		starting = DefaultStartingLabel
	}
	started := cfg.Labels.Started
	if started == "" {
		started = DefaultStartedLabel
	}
	return &Dispatcher{
		api:       cfg.API,
		doc:       cfg.Document,
		renderer:  cfg.Renderer,
		scheduler: cfg.Scheduler,
		notifier:  cfg.Notifier,
		logger:    log.Named("dispatcher"),
		starting:  starting,
		started:   started,
	}
}

// Bind wires click handlers onto every check and run trigger on the page.
// ctx bounds the requests those clicks start.
func (d *Dispatcher) Bind(ctx context.Context, doc ports.Document) int {
	bound := 0
	for _, el := range doc.QueryAll(ports.RoleCheckTrigger) {
		id, _ := el.Attr(ports.TaskIDAttr)
		el.On(ports.EventClick, func() { d.CheckStatus(ctx, id) })
		bound++
	}
	for _, el := range doc.QueryAll(ports.RoleRunTrigger) {
		id, _ := el.Attr(ports.TaskIDAttr)
		el.On(ports.EventClick, func() { d.RunTask(ctx, id) })
		bound++
	}
	d.logger.Debugw("triggers_bound", "count", bound)
	return bound
}

// CheckStatus fetches the task's status and renders it. Trigger buttons are
// not touched. The returned channel yields the outcome once the page has
// been updated.
func (d *Dispatcher) CheckStatus(ctx context.Context, taskID string) <-chan Result {
	out := make(chan Result, 1)

	go func() {
		payload, err := d.api.CheckStatus(ctx, taskID)
		if err == nil && payload == nil {
			err = domain.ErrDecodePayload
		}
		res := Result{TaskID: taskID, Payload: payload, Err: err}

		d.post(out, res, func() {
			if err != nil {
				d.fail("task_check_failed", "Failed to check task status", taskID, err)
				return
			}
			d.renderer.Render(taskID, *payload)
		})
	}()

	return out
}

// RunTask disables the run button, asks the service to start the task and
// renders the answer. On success the button stays disabled with the
// started label; on failure it is restored so the user can retry.
//
// RunTask must be called on the goroutine that owns the document: the button
// is disabled before it returns, so a second click cannot submit again.
func (d *Dispatcher) RunTask(ctx context.Context, taskID string) <-chan Result {
	out := make(chan Result, 1)

	button, found := Locator{TaskID: taskID}.RunTrigger(d.doc)
	var originalLabel string
	if found {
		originalLabel = button.Text()
		button.SetDisabled(true)
		button.SetText(d.starting)
	}

	go func() {
		payload, err := d.api.RunTask(ctx, taskID)
		if err == nil && payload == nil {
			err = domain.ErrDecodePayload
		}
		res := Result{TaskID: taskID, Payload: payload, Err: err}

		d.post(out, res, func() {
			if err != nil {
				d.fail("task_run_failed", "Failed to start task", taskID, err)
				if found {
					button.SetDisabled(false)
					button.SetText(originalLabel)
				}
				return
			}
			d.renderer.Render(taskID, *payload)
			if found {
				button.SetText(d.started)
			}
		})
	}()

	return out
}

// post runs apply on the scheduler and then delivers res. If the scheduler
// has stopped, the page is gone and res is delivered without rendering.
func (d *Dispatcher) post(out chan<- Result, res Result, apply func()) {
	if !d.scheduler.Post(func() {
		apply()
		out <- res
	}) {
		out <- res
	}
}

func (d *Dispatcher) fail(event, alert, taskID string, err error) {
	d.logger.Errorw(event, "task_id", taskID, "error", err)
	if d.notifier != nil {
		d.notifier.Alert(alert + ": " + err.Error())
	}
}
