package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/wrfweb/taskmonitor/internal/domain"
	"github.com/wrfweb/taskmonitor/internal/infrastructure/dom"
	"github.com/wrfweb/taskmonitor/internal/infrastructure/eventloop"
	"github.com/wrfweb/taskmonitor/internal/infrastructure/notify"
)

const taskRowPage = `<html><body>
<span class="badge bg-secondary" data-task-status data-task-id="t1">pending</span>
<p data-task-message data-task-id="t1">queued</p>
<div data-result-link-container data-task-id="t1"></div>
<button class="btn task-run-btn" data-task-id="t1">Run task</button>
<button class="btn task-status-btn" data-task-id="t1">Refresh</button>
<span class="badge" data-task-status data-task-id="t2">running</span>
<span class="badge" data-task-status>orphan</span>
</body></html>`

type fakeAPI struct {
	mu         sync.Mutex
	check      func(ctx context.Context, id string) (*domain.StatusPayload, error)
	run        func(ctx context.Context, id string) (*domain.StatusPayload, error)
	checkCalls map[string]int
	runCalls   map[string]int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		checkCalls: make(map[string]int),
		runCalls:   make(map[string]int),
	}
}

func (f *fakeAPI) CheckStatus(ctx context.Context, id string) (*domain.StatusPayload, error) {
	f.mu.Lock()
	f.checkCalls[id]++
	fn := f.check
	f.mu.Unlock()
	if fn == nil {
		return &domain.StatusPayload{TaskID: id, Status: domain.StatusRunning}, nil
	}
	return fn(ctx, id)
}

func (f *fakeAPI) RunTask(ctx context.Context, id string) (*domain.StatusPayload, error) {
	f.mu.Lock()
	f.runCalls[id]++
	fn := f.run
	f.mu.Unlock()
	if fn == nil {
		return &domain.StatusPayload{TaskID: id, Status: domain.StatusRunning}, nil
	}
	return fn(ctx, id)
}

func (f *fakeAPI) checks(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.checkCalls[id]
}

func (f *fakeAPI) runs(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.runCalls[id]
}

type harness struct {
	doc        *dom.HTMLDocument
	loop       *eventloop.Loop
	api        *fakeAPI
	alerts     *notify.Recorder
	renderer   *Renderer
	dispatcher *Dispatcher
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	doc, err := dom.ParseString(taskRowPage)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	loop := eventloop.New()
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = loop.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-loop.Stopped()
	})

	h := &harness{
		doc:    doc,
		loop:   loop,
		api:    newFakeAPI(),
		alerts: &notify.Recorder{},
	}
	h.renderer = NewRenderer(RendererConfig{Document: doc})
	h.dispatcher = NewDispatcher(DispatcherConfig{
		API:       h.api,
		Document:  doc,
		Renderer:  h.renderer,
		Scheduler: loop,
		Notifier:  h.alerts,
	})
	return h
}

// onLoop runs fn on the loop and waits for it.
func (h *harness) onLoop(t *testing.T, fn func()) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := h.loop.Do(ctx, fn); err != nil {
		t.Fatalf("loop: %v", err)
	}
}

// runTask starts a run from the loop, the way a click would.
func (h *harness) runTask(t *testing.T, id string) <-chan Result {
	t.Helper()
	var ch <-chan Result
	h.onLoop(t, func() { ch = h.dispatcher.RunTask(context.Background(), id) })
	return ch
}

func await(t *testing.T, ch <-chan Result) Result {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for result")
		return Result{}
	}
}

func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met in time")
}
