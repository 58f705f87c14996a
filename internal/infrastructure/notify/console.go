package notify

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Console writes alerts to a terminal stream. It is the CLI stand-in for a
// browser alert box.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stderr
	}
	return &Console{w: w}
}

func (c *Console) Alert(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "ALERT: %s\n", message)
}

// Recorder keeps every alert in memory.
type Recorder struct {
	mu       sync.Mutex
	messages []string
}

func (r *Recorder) Alert(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.messages))
	copy(out, r.messages)
	return out
}
