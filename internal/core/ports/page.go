package ports

import "fmt"

// TaskIDAttr correlates every fragment with its task.
const TaskIDAttr = "data-task-id"

// Role identifies one kind of page fragment. A role matches either by class
// token or by attribute presence, never both. Tag optionally narrows the
// match to one element name.
type Role struct {
	Name  string
	Tag   string
	Class string
	Attr  string
}

var (
	RoleCheckTrigger = Role{Name: "check-trigger", Class: "task-status-btn"}
	RoleRunTrigger   = Role{Name: "run-trigger", Class: "task-run-btn"}
	RoleStatus       = Role{Name: "status", Attr: "data-task-status"}
	RoleMessage      = Role{Name: "message", Attr: "data-task-message"}
	RoleResultLink   = Role{Name: "result-link", Attr: "data-result-link-container"}
	RoleConfirmLeave = Role{Name: "confirm-leave", Tag: "form", Attr: "data-confirm-leave"}
)

// Selector renders the role as a CSS selector.
func (r Role) Selector() string {
	if r.Class != "" {
		return r.Tag + "." + r.Class
	}
	return fmt.Sprintf("%s[%s]", r.Tag, r.Attr)
}

func (r Role) String() string {
	return r.Name
}

// Event names understood by Element.On.
const (
	EventClick  = "click"
	EventInput  = "input"
	EventSubmit = "submit"
)

// Element is the subset of a DOM element the monitor touches.
type Element interface {
	Attr(name string) (string, bool)
	SetAttr(name, value string)
	Text() string
	SetText(text string)
	Classes() []string
	SetClasses(classes ...string)
	Disabled() bool
	SetDisabled(disabled bool)
	// ReplaceWithLink drops all children and appends a single anchor.
	ReplaceWithLink(href, label string, classes ...string)
	// On registers a listener. Handlers run synchronously and must not block.
	On(event string, handler func())
}

type Document interface {
	// Query returns the first element with the given role and task id.
	Query(role Role, taskID string) (Element, bool)
	QueryAll(role Role) []Element
	// Meta returns the content of <meta name=...>.
	Meta(name string) (string, bool)
}
