package session

import (
	"context"

	"github.com/segusengineering/worksync/internal/worksession"
)

// PauseRequest carries the pause form contents. EstimatedMinutes is clamped
// to [1, 120] before it reaches the backend.
type PauseRequest struct {
	Reason           string `json:"reason"`
	EstimatedMinutes int    `json:"estimated_duration"`
}

// SessionAPI is the backend REST contract for session mutations and reads.
// Mutations are idempotency-unaware server-side; the manager's in-flight
// guard is the only protection against double-sending.
type SessionAPI interface {
	StartSession(ctx context.Context, notes string) (*worksession.WorkSession, error)
	PauseSession(ctx context.Context, id int64, req PauseRequest) (*worksession.WorkSession, error)
	ResumeSession(ctx context.Context, id int64) (*worksession.WorkSession, error)
	EndSession(ctx context.Context, id int64) (*worksession.WorkSession, error)
	// CurrentSession returns nil, nil when the employee has no open session.
	CurrentSession(ctx context.Context) (*worksession.WorkSession, error)
	ListSessions(ctx context.Context) ([]worksession.WorkSession, error)
	MyStats(ctx context.Context) (*worksession.EmployeeWorkStats, error)
	AllEmployeeStats(ctx context.Context) ([]worksession.EmployeeWorkStats, error)
}

// Notifier publishes outbound session events to the realtime backend.
// Delivery is best-effort: implementations log failures and the manager never
// fails a command over a notification.
type Notifier interface {
	Notify(ctx context.Context, kind string, data any) error
}
