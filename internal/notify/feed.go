package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

const defaultTTL = 5 * time.Second

// Notification is one ephemeral user-facing message.
type Notification struct {
	ID        string
	Severity  Severity
	Message   string
	CreatedAt time.Time
}

// Feed is a bounded, self-expiring list of notifications. Each entry removes
// itself after the display duration unless dismissed first; dismissal and
// expiry may race, so removal is idempotent.
//
// The application runs two independent instances: a newest-last toast feed
// and a newest-first, capped header feed.
type Feed struct {
	mu          sync.Mutex
	entries     []Notification
	timers      map[string]*time.Timer
	newestFirst bool
	max         int
	ttl         time.Duration
	onChange    func()
}

type Option func(*Feed)

// NewestFirst prepends entries instead of appending, as the header bell does.
func NewestFirst() Option {
	return func(f *Feed) { f.newestFirst = true }
}

// WithCap bounds the feed to n entries; the oldest is evicted on overflow.
func WithCap(n int) Option {
	return func(f *Feed) { f.max = n }
}

// WithTTL overrides the display duration. Used by tests.
func WithTTL(d time.Duration) Option {
	return func(f *Feed) { f.ttl = d }
}

// OnChange registers a callback invoked after every mutation, outside the
// feed lock.
func OnChange(fn func()) Option {
	return func(f *Feed) { f.onChange = fn }
}

func NewFeed(opts ...Option) *Feed {
	f := &Feed{
		timers: make(map[string]*time.Timer),
		ttl:    defaultTTL,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Add appends a notification and schedules its expiry. Returns the entry id.
func (f *Feed) Add(severity Severity, message string) string {
	n := Notification{
		ID:        uuid.NewString(),
		Severity:  severity,
		Message:   message,
		CreatedAt: time.Now(),
	}

	f.mu.Lock()
	if f.newestFirst {
		f.entries = append([]Notification{n}, f.entries...)
	} else {
		f.entries = append(f.entries, n)
	}
	var evicted []string
	for f.max > 0 && len(f.entries) > f.max {
		var victim Notification
		if f.newestFirst {
			victim = f.entries[len(f.entries)-1]
			f.entries = f.entries[:len(f.entries)-1]
		} else {
			victim = f.entries[0]
			f.entries = f.entries[1:]
		}
		evicted = append(evicted, victim.ID)
	}
	f.timers[n.ID] = time.AfterFunc(f.ttl, func() { f.Dismiss(n.ID) })
	for _, id := range evicted {
		if tm, ok := f.timers[id]; ok {
			tm.Stop()
			delete(f.timers, id)
		}
	}
	f.mu.Unlock()

	f.notifyChange()
	return n.ID
}

// Dismiss removes an entry. Safe to call twice: the auto-expiry timer and a
// manual dismissal may both fire for the same id.
func (f *Feed) Dismiss(id string) {
	f.mu.Lock()
	tm, known := f.timers[id]
	if !known {
		f.mu.Unlock()
		return
	}
	tm.Stop()
	delete(f.timers, id)
	for i, n := range f.entries {
		if n.ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			break
		}
	}
	f.mu.Unlock()

	f.notifyChange()
}

// Snapshot returns a copy of the current entries in display order.
func (f *Feed) Snapshot() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Notification, len(f.entries))
	copy(out, f.entries)
	return out
}

func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

func (f *Feed) notifyChange() {
	if f.onChange != nil {
		f.onChange()
	}
}
