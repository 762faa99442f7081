package stats

import (
	"sort"
	"sync"
	"time"

	"github.com/segusengineering/worksync/internal/events"
	"github.com/segusengineering/worksync/internal/worksession"
)

// View is the session list view-model. Two independent sources feed it — the
// periodic full reload and push-driven incremental updates — in no guaranteed
// order, so both apply as idempotent merges keyed by session id.
type View struct {
	mu       sync.Mutex
	sessions map[int64]worksession.WorkSession
	filter   Filter
	page     int
	pageSize int
	now      func() time.Time
}

func NewView() *View {
	return &View{
		sessions: make(map[int64]worksession.WorkSession),
		page:     1,
		pageSize: DefaultPageSize,
		now:      time.Now,
	}
}

// ApplySnapshot replaces the full collection with a reload result. Applying
// the same snapshot twice converges to the same state.
func (v *View) ApplySnapshot(sessions []worksession.WorkSession) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sessions = make(map[int64]worksession.WorkSession, len(sessions))
	for _, s := range sessions {
		v.sessions[s.ID] = s
	}
}

// ApplyUpdate upserts the single session carried by a push event. Events
// without a session snapshot still flip the status of a known session.
func (v *View) ApplyUpdate(u events.WorkSessionUpdate) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if u.Session != nil {
		v.sessions[u.Session.ID] = *u.Session
		return
	}
	s, ok := v.sessions[u.SessionID]
	if !ok {
		return
	}
	switch u.Kind {
	case events.KindSessionPaused:
		s.Status = worksession.StatusPaused
	case events.KindSessionResumed:
		s.Status = worksession.StatusActive
	case events.KindSessionEnded:
		s.Status = worksession.StatusCompleted
	case events.KindSessionStarted:
		s.Status = worksession.StatusActive
	}
	v.sessions[u.SessionID] = s
}

// SetFilter replaces the filter and resets pagination to page 1.
func (v *View) SetFilter(f Filter) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filter = f
	v.page = 1
}

// SetPage requests a page; the effective page is clamped on read.
func (v *View) SetPage(page int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if page < 1 {
		page = 1
	}
	v.page = page
}

// Sessions returns the filtered collection, newest start first.
func (v *View) Sessions() []worksession.WorkSession {
	v.mu.Lock()
	all := make([]worksession.WorkSession, 0, len(v.sessions))
	for _, s := range v.sessions {
		all = append(all, s)
	}
	f := v.filter
	now := v.now()
	v.mu.Unlock()

	sort.Slice(all, func(i, j int) bool { return all[i].StartTime.After(all[j].StartTime) })
	return ApplyFilter(all, f, now)
}

// Page returns the current page of the filtered collection and the effective
// page number after clamping.
func (v *View) Page() ([]worksession.WorkSession, int) {
	filtered := v.Sessions()
	v.mu.Lock()
	page, size := v.page, v.pageSize
	v.mu.Unlock()
	items, effective := Paginate(filtered, page, size)
	return items, effective
}

// Stats aggregates over the filtered collection.
func (v *View) Stats() SessionStats {
	return Compute(v.Sessions())
}

// EmployeeStats rebuilds per-employee buckets from the unfiltered collection.
func (v *View) EmployeeStats() map[string]EmployeeBuckets {
	v.mu.Lock()
	all := make([]worksession.WorkSession, 0, len(v.sessions))
	for _, s := range v.sessions {
		all = append(all, s)
	}
	now := v.now()
	v.mu.Unlock()
	return BucketByEmployee(all, now)
}
