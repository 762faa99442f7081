package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/segusengineering/worksync/internal/auth"
	"github.com/segusengineering/worksync/internal/events"
	"github.com/segusengineering/worksync/internal/journal"
	"github.com/segusengineering/worksync/internal/notify"
	"github.com/segusengineering/worksync/internal/worksession"
)

// Outbound notification kinds sent to the realtime backend.
const (
	notifyStarted      = "work_session_started"
	notifyPaused       = "work_session_paused"
	notifyResumed      = "work_session_resumed"
	notifyEnded        = "work_session_ended"
	notifyStatsRequest = "request_stats_update"
)

const (
	minPauseMinutes = 1
	maxPauseMinutes = 120
)

// State is the manager's view of the employee's session lifecycle. Completed
// sessions clear the current reference, so the observable state returns to
// none once End succeeds.
type State string

const (
	StateNone   State = "none"
	StateActive State = "active"
	StatePaused State = "paused"
)

// Manager is the client-side mirror of one employee's work session. It is
// scoped to exactly one current session — the acting employee's — and never
// mutates anyone else's. At most one mutating request is in flight at a time.
type Manager struct {
	api      SessionAPI
	notifier Notifier
	journal  journal.Journal
	feed     *notify.Feed
	current  *events.Topic[*worksession.WorkSession]

	mu          sync.Mutex
	session     *worksession.WorkSession
	inFlight    bool
	lastPause   *PauseRequest
	autoStarted bool
}

func NewManager(api SessionAPI, notifier Notifier, jrnl journal.Journal, feed *notify.Feed) *Manager {
	return &Manager{
		api:      api,
		notifier: notifier,
		journal:  jrnl,
		feed:     feed,
		current:  events.NewTopic[*worksession.WorkSession](),
	}
}

// Current exposes the current-session topic: nil when no session is open.
func (m *Manager) Current() *events.Topic[*worksession.WorkSession] { return m.current }

// State derives the lifecycle state from the current session reference.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stateLocked()
}

func (m *Manager) stateLocked() State {
	switch {
	case m.session == nil:
		return StateNone
	case m.session.Status == worksession.StatusPaused:
		return StatePaused
	case m.session.Status == worksession.StatusActive:
		return StateActive
	default:
		return StateNone
	}
}

// Session returns a copy of the current session, or nil.
func (m *Manager) Session() *worksession.WorkSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil
	}
	s := *m.session
	return &s
}

// LastPauseRequest returns the pause form contents preserved from a failed
// pause attempt, if any.
func (m *Manager) LastPauseRequest() *PauseRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lastPause == nil {
		return nil
	}
	r := *m.lastPause
	return &r
}

// Elapsed is the wall-clock time since the session started, or zero.
func (m *Manager) Elapsed() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return 0
	}
	return time.Since(m.session.StartTime)
}

// PauseElapsed is the duration of the pause segment currently running, plus
// the accumulated pause total reported by the backend.
func (m *Manager) PauseElapsed() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return 0
	}
	total := worksession.ParseClock(m.session.TotalPauseTime)
	if m.session.Status == worksession.StatusPaused && m.session.PauseStartTime != nil {
		total += time.Since(*m.session.PauseStartTime)
	}
	return total
}

// begin validates the state transition and takes the in-flight slot
// atomically. A non-nil error means the backend must not be called.
func (m *Manager) begin(allowed ...State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inFlight {
		return fmt.Errorf("%w: another command is in flight", ErrCommandRejected)
	}
	state := m.stateLocked()
	for _, a := range allowed {
		if state == a {
			m.inFlight = true
			return nil
		}
	}
	return fmt.Errorf("%w: not allowed from state %q", ErrCommandRejected, state)
}

func (m *Manager) finish() {
	m.mu.Lock()
	m.inFlight = false
	m.mu.Unlock()
}

// Start creates a new session. Valid only when no session is open; on failure
// no local session object is retained.
func (m *Manager) Start(ctx context.Context, notes string) (*worksession.WorkSession, error) {
	if err := m.begin(StateNone); err != nil {
		return nil, err
	}
	defer m.finish()

	created, err := m.api.StartSession(ctx, notes)
	if err != nil {
		m.surfaceError("Erreur lors du démarrage de la session", err)
		return nil, err
	}

	m.setSession(created)
	m.feed.Add(notify.SeveritySuccess, "Session de travail démarrée avec succès !")
	m.afterTransition(ctx, notifyStarted, created, map[string]any{
		"session_id": created.ID,
		"start_time": created.StartTime,
	})
	return created, nil
}

// Pause suspends the active session. The reason is required; the estimated
// duration is clamped to [1, 120] minutes. On failure the request values are
// preserved so the form can be retried unchanged.
func (m *Manager) Pause(ctx context.Context, req PauseRequest) (*worksession.WorkSession, error) {
	if strings.TrimSpace(req.Reason) == "" {
		return nil, fmt.Errorf("%w: pause reason is required", ErrCommandRejected)
	}
	if req.EstimatedMinutes < minPauseMinutes {
		req.EstimatedMinutes = minPauseMinutes
	}
	if req.EstimatedMinutes > maxPauseMinutes {
		req.EstimatedMinutes = maxPauseMinutes
	}

	if err := m.begin(StateActive); err != nil {
		return nil, err
	}
	defer m.finish()

	id := m.sessionID()
	updated, err := m.api.PauseSession(ctx, id, req)
	if err != nil {
		m.mu.Lock()
		m.lastPause = &req
		m.mu.Unlock()
		m.surfaceError("Erreur lors de la mise en pause", err)
		return nil, err
	}

	m.mu.Lock()
	m.lastPause = nil
	m.mu.Unlock()
	m.setSession(updated)
	m.feed.Add(notify.SeverityWarning, "Session mise en pause")
	m.afterTransition(ctx, notifyPaused, updated, map[string]any{
		"session_id":         updated.ID,
		"reason":             req.Reason,
		"estimated_duration": req.EstimatedMinutes,
	})
	return updated, nil
}

// Resume reactivates a paused session.
func (m *Manager) Resume(ctx context.Context) (*worksession.WorkSession, error) {
	if err := m.begin(StatePaused); err != nil {
		return nil, err
	}
	defer m.finish()

	id := m.sessionID()
	updated, err := m.api.ResumeSession(ctx, id)
	if err != nil {
		m.surfaceError("Erreur lors de la reprise de la session", err)
		return nil, err
	}

	m.setSession(updated)
	m.feed.Add(notify.SeveritySuccess, "Session reprise avec succès !")
	m.afterTransition(ctx, notifyResumed, updated, map[string]any{
		"session_id": updated.ID,
	})
	return updated, nil
}

// End finalizes the session from active or paused. On success the current
// reference is cleared so a future Start is valid again.
func (m *Manager) End(ctx context.Context) (*worksession.WorkSession, error) {
	if err := m.begin(StateActive, StatePaused); err != nil {
		return nil, err
	}
	defer m.finish()

	id := m.sessionID()
	ended, err := m.api.EndSession(ctx, id)
	if err != nil {
		m.surfaceError("Erreur lors de la fin de la session", err)
		return nil, err
	}

	m.mu.Lock()
	m.session = nil
	m.lastPause = nil
	m.mu.Unlock()
	m.current.Publish(nil)

	m.feed.Add(notify.SeveritySuccess, "Session terminée")
	m.afterTransition(ctx, notifyEnded, ended, map[string]any{
		"session_id":       ended.ID,
		"total_work_time":  ended.TotalWorkTime,
		"total_pause_time": ended.TotalPauseTime,
	})
	return ended, nil
}

// LoadCurrent fetches the employee's open session from the backend and adopts
// its state. Called at startup and whenever a stale mirror is suspected.
func (m *Manager) LoadCurrent(ctx context.Context) error {
	current, err := m.api.CurrentSession(ctx)
	if err != nil {
		if errors.Is(err, auth.ErrAuthRequired) {
			m.mu.Lock()
			m.session = nil
			m.mu.Unlock()
			m.current.Publish(nil)
		}
		return err
	}
	if current != nil && !current.Open() {
		current = nil
	}
	m.mu.Lock()
	m.session = current
	m.mu.Unlock()
	m.current.Publish(current)
	return nil
}

// MaybeAutoStart starts a session when none is open. It arms at most once
// per process; a failed attempt re-arms so a later reload can retry.
func (m *Manager) MaybeAutoStart(ctx context.Context) {
	m.mu.Lock()
	if m.autoStarted || m.session != nil {
		m.mu.Unlock()
		return
	}
	m.autoStarted = true
	m.mu.Unlock()

	if _, err := m.Start(ctx, ""); err != nil {
		slog.Error("automatic session start failed", "error", err)
		m.mu.Lock()
		m.autoStarted = false
		m.mu.Unlock()
	}
}

// RequestStatsUpdate asks the backend to broadcast a fresh admin snapshot.
func (m *Manager) RequestStatsUpdate(ctx context.Context) {
	if err := m.notifier.Notify(ctx, notifyStatsRequest, map[string]any{}); err != nil {
		slog.Warn("stats update request failed", "error", err)
	}
}

func (m *Manager) sessionID() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return 0
	}
	return m.session.ID
}

func (m *Manager) setSession(s *worksession.WorkSession) {
	m.mu.Lock()
	m.session = s
	m.mu.Unlock()
	m.current.Publish(s)
}

// afterTransition handles the best-effort side effects of a confirmed
// transition: the outbound notification and the audit journal. Neither may
// fail the command.
func (m *Manager) afterTransition(ctx context.Context, kind string, s *worksession.WorkSession, data map[string]any) {
	if err := m.notifier.Notify(ctx, kind, data); err != nil {
		slog.Warn("outbound session notification failed", "kind", kind, "error", err)
	}
	payload, err := json.Marshal(data)
	if err != nil {
		payload = nil
	}
	if err := m.journal.Record(ctx, journal.Entry{
		SessionID:  s.ID,
		Employee:   s.Employee,
		Kind:       kind,
		OccurredAt: time.Now(),
		Payload:    payload,
	}); err != nil {
		slog.Warn("journal record failed", "kind", kind, "session_id", s.ID, "error", err)
	}
}

func (m *Manager) surfaceError(message string, err error) {
	slog.Error("session command failed", "error", err)
	m.feed.Add(notify.SeverityError, message)
}
