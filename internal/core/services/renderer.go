package services

import (
	"github.com/wrfweb/taskmonitor/internal/config"
	"github.com/wrfweb/taskmonitor/internal/core/ports"
	"github.com/wrfweb/taskmonitor/internal/domain"
	"github.com/wrfweb/taskmonitor/internal/infrastructure/logger"
)

const (
	DefaultResultPathPrefix = "/results/"
	DefaultViewResultLabel  = "View result"
)

var resultLinkClasses = []string{"btn", "btn-success", "btn-sm"}

// Renderer is the only component that writes task state into the page.
// It must run on the goroutine that owns the document.
type Renderer struct {
	doc              ports.Document
	logger           *logger.Logger
	resultPathPrefix string
	viewResultLabel  string
	onRender         func(taskID string, payload domain.StatusPayload)
}

type RendererConfig struct {
	Document ports.Document
	Logger   *logger.Logger
	Render   config.RenderConfig
	Labels   config.LabelsConfig
	// OnRender, if set, is called after every render.
	OnRender func(taskID string, payload domain.StatusPayload)
}

func NewRenderer(cfg RendererConfig) *Renderer {
	log := cfg.Logger
	if log == nil {
		log = logger.NewNop()
	}
	prefix := cfg.Render.ResultPathPrefix
	if prefix == "" {
		prefix = DefaultResultPathPrefix
	}
	label := cfg.Labels.ViewResult
	if label == "" {
		label = DefaultViewResultLabel
	}
	return &Renderer{
		doc:              cfg.Document,
		logger:           log.Named("renderer"),
		resultPathPrefix: prefix,
		viewResultLabel:  label,
		onRender:         cfg.OnRender,
	}
}

// Render overwrites the task's badge, message and, for completed tasks,
// result link. Missing fragments are skipped. Rendering the same payload
// twice leaves the page unchanged.
func (r *Renderer) Render(taskID string, payload domain.StatusPayload) {
	loc := Locator{TaskID: taskID}

	if el, ok := loc.Status(r.doc); ok {
		el.SetText(payload.Status.String())
		el.SetClasses(payload.Status.BadgeClasses()...)
		if !payload.Status.Known() {
			r.logger.Warnw("unrecognized_task_status", "task_id", taskID, "status", payload.Status)
		}
	}

	if el, ok := loc.Message(r.doc); ok {
		el.SetText(payload.Message)
	}

	// A link rendered earlier is left in place if the status later regresses.
	if payload.ResultAvailable() {
		if el, ok := loc.ResultLink(r.doc); ok {
			el.ReplaceWithLink(r.ResultURL(taskID), r.viewResultLabel, resultLinkClasses...)
		}
	}

	if r.onRender != nil {
		r.onRender(taskID, payload)
	}
}

func (r *Renderer) ResultURL(taskID string) string {
	return r.resultPathPrefix + taskID
}
