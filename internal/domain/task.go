package domain

// Status is the server-reported lifecycle stage of a task. Values outside
// the four known stages are kept verbatim so they can still be displayed.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
)

// BadgeBaseClass is always present on a rendered status badge.
const BadgeBaseClass = "badge"

func (s Status) Known() bool {
	_, ok := s.BadgeClass()
	return ok
}

// BadgeClass maps a status to its colour class. The second result is false
// for unrecognized statuses, which get the base class only.
func (s Status) BadgeClass() (string, bool) {
	switch s {
	case StatusPending:
		return "bg-warning", true
	case StatusRunning:
		return "bg-primary", true
	case StatusCompleted:
		return "bg-success", true
	case StatusError:
		return "bg-danger", true
	default:
		return "", false
	}
}

// BadgeClasses returns the full class list for a badge showing s.
func (s Status) BadgeClasses() []string {
	if c, ok := s.BadgeClass(); ok {
		return []string{BadgeBaseClass, c}
	}
	return []string{BadgeBaseClass}
}

func (s Status) String() string {
	return string(s)
}

// StatusPayload is the body returned by both the check and run endpoints.
// Success is only sent by the run endpoint.
type StatusPayload struct {
	TaskID  string `json:"task_id,omitempty"`
	Status  Status `json:"status"`
	Message string `json:"message"`
	Success *bool  `json:"success,omitempty"`
}

func (p StatusPayload) ResultAvailable() bool {
	return p.Status == StatusCompleted
}
