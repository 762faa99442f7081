package journal

import (
	"context"
	"time"
)

// Entry is one observed session transition, kept for offline audit.
type Entry struct {
	SessionID  int64
	Employee   string
	Kind       string
	OccurredAt time.Time
	Payload    []byte
}

// Journal records session transitions. Implementations must tolerate being
// called from the command path: a journal failure never fails the command.
type Journal interface {
	Record(ctx context.Context, entry Entry) error
	// RecentBySession returns up to limit entries for one session, newest
	// first.
	RecentBySession(ctx context.Context, sessionID int64, limit int) ([]Entry, error)
}

// Noop is the journal used when no database is configured.
type Noop struct{}

func (Noop) Record(context.Context, Entry) error { return nil }

func (Noop) RecentBySession(context.Context, int64, int) ([]Entry, error) { return nil, nil }
