package services

import (
	"sort"
	"sync"

	"github.com/wrfweb/taskmonitor/internal/core/ports"
	"github.com/wrfweb/taskmonitor/internal/domain"
)

// Locator resolves the page fragments belonging to one task. Every lookup
// goes back to the document, so fragments added or removed after
// registration are picked up.
type Locator struct {
	TaskID string
}

func (l Locator) find(doc ports.Document, role ports.Role) (ports.Element, bool) {
	if doc == nil {
		return nil, false
	}
	return doc.Query(role, l.TaskID)
}

func (l Locator) Status(doc ports.Document) (ports.Element, bool) {
	return l.find(doc, ports.RoleStatus)
}

func (l Locator) Message(doc ports.Document) (ports.Element, bool) {
	return l.find(doc, ports.RoleMessage)
}

func (l Locator) ResultLink(doc ports.Document) (ports.Element, bool) {
	return l.find(doc, ports.RoleResultLink)
}

func (l Locator) RunTrigger(doc ports.Document) (ports.Element, bool) {
	return l.find(doc, ports.RoleRunTrigger)
}

// Registry is the set of tasks the poller refreshes. It is safe for
// concurrent use.
type Registry struct {
	mu    sync.RWMutex
	tasks map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{tasks: make(map[string]struct{})}
}

// Scan registers every status placeholder on the page that carries a task
// id and returns how many were added.
func (r *Registry) Scan(doc ports.Document) int {
	added := 0
	for _, el := range doc.QueryAll(ports.RoleStatus) {
		id, ok := el.Attr(ports.TaskIDAttr)
		if !ok || id == "" {
			continue
		}
		if r.Register(id) {
			added++
		}
	}
	return added
}

// Register reports whether id was newly added.
func (r *Registry) Register(taskID string) bool {
	if taskID == "" {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tasks[taskID]; exists {
		return false
	}
	r.tasks[taskID] = struct{}{}
	return true
}

func (r *Registry) Unregister(taskID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tasks[taskID]; !exists {
		return domain.ErrTaskNotRegistered
	}
	delete(r.tasks, taskID)
	return nil
}

// IDs returns the registered task ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	ids := make([]string, 0, len(r.tasks))
	for id := range r.tasks {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	sort.Strings(ids)
	return ids
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tasks)
}
