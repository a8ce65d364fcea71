package session

import "context"

// Severity categorizes a flash message for rendering.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// State is the server-side data bound to a session token. A zero UserID
// means the session is anonymous.
type State struct {
	UserID   int64
	Username string
}

// Store persists session state and flash messages keyed by the opaque
// token. Implementations: Redis for deployments, in-memory for tests.
type Store interface {
	Load(ctx context.Context, token string) (State, error)
	Bind(ctx context.Context, token string, userID int64, username string) error
	Destroy(ctx context.Context, token string) error
	PushFlash(ctx context.Context, token string, severity Severity, message string) error
	DrainFlash(ctx context.Context, token string) (map[Severity][]string, error)
}
