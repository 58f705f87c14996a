package services

import (
	"sync"

	"github.com/wrfweb/taskmonitor/internal/core/ports"
)

const (
	modifiedAttr = "data-modified"

	DefaultLeaveMessage = "You have unsaved changes. Are you sure you want to leave?"
)

// LeaveGuard blocks navigation while any tracked form has unsaved edits.
// The modified flag lives on the form itself as data-modified and is only
// touched on the goroutine that owns the document.
type LeaveGuard struct {
	mu      sync.Mutex // guards forms
	forms   []ports.Element
	message string
}

func NewLeaveGuard(message string) *LeaveGuard {
	if message == "" {
		message = DefaultLeaveMessage
	}
	return &LeaveGuard{message: message}
}

// Attach tracks every form marked data-confirm-leave and returns how many
// were found.
func (g *LeaveGuard) Attach(doc ports.Document) int {
	forms := doc.QueryAll(ports.RoleConfirmLeave)
	for _, f := range forms {
		form := f
		form.On(ports.EventInput, func() { g.setModified(form, true) })
		form.On(ports.EventSubmit, func() { g.setModified(form, false) })
	}

	g.mu.Lock()
	g.forms = append(g.forms, forms...)
	g.mu.Unlock()
	return len(forms)
}

func (g *LeaveGuard) setModified(form ports.Element, modified bool) {
	v := "false"
	if modified {
		v = "true"
	}
	form.SetAttr(modifiedAttr, v)
}

// Active reports whether any forms are tracked. Without them no unload
// listener is needed.
func (g *LeaveGuard) Active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.forms) > 0
}

// BeforeUnload reports whether leaving the page should be blocked, and the
// prompt to show if so.
func (g *LeaveGuard) BeforeUnload() (bool, string) {
	g.mu.Lock()
	forms := g.forms
	g.mu.Unlock()
	for _, f := range forms {
		if v, _ := f.Attr(modifiedAttr); v == "true" {
			return true, g.message
		}
	}
	return false, ""
}
