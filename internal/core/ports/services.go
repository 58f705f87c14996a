package ports

import (
	"context"

	"github.com/wrfweb/taskmonitor/internal/domain"
)

// TaskAPI is the external task service. Both calls collapse transport
// failures and non-200 responses into a single error.
type TaskAPI interface {
	CheckStatus(ctx context.Context, taskID string) (*domain.StatusPayload, error)
	RunTask(ctx context.Context, taskID string) (*domain.StatusPayload, error)
}

// Notifier surfaces a failure to the person looking at the page.
type Notifier interface {
	Alert(message string)
}

// Scheduler runs fn on the goroutine that owns the document. Post must not
// block and must be safe to call from any goroutine, including the owner.
type Scheduler interface {
	Post(fn func()) bool
}
