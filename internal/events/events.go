package events

import (
	"time"

	"github.com/segusengineering/worksync/internal/worksession"
)

// Frame type discriminators used by the backend push channel.
const (
	FrameWorkSessionUpdate = "work_session_update"
	FrameAdminStatsUpdate  = "admin_stats_update"
	FrameSessionStatus     = "session_status_update"
)

type Kind string

const (
	KindSessionStarted Kind = "session_started"
	KindSessionPaused  Kind = "session_paused"
	KindSessionResumed Kind = "session_resumed"
	KindSessionEnded   Kind = "session_ended"
)

func (k Kind) Valid() bool {
	switch k {
	case KindSessionStarted, KindSessionPaused, KindSessionResumed, KindSessionEnded:
		return true
	}
	return false
}

// WorkSessionUpdate describes one state transition of some employee's
// session. It is consumed once and discarded; the client never persists it.
type WorkSessionUpdate struct {
	Kind          Kind                     `json:"type"`
	SessionID     int64                    `json:"session_id"`
	EmployeeID    int64                    `json:"employee_id"`
	EmployeeEmail string                   `json:"employee_email"`
	Session       *worksession.WorkSession `json:"session,omitempty"`
	Timestamp     int64                    `json:"timestamp"`
}

func (u WorkSessionUpdate) Time() time.Time {
	return time.UnixMilli(u.Timestamp)
}

// EmployeeSessionSummary is one row of an admin stats snapshot.
type EmployeeSessionSummary struct {
	EmployeeID   int64              `json:"employee_id"`
	EmployeeName string             `json:"employee_name"`
	Status       worksession.Status `json:"status"`
	StartTime    *time.Time         `json:"start_time,omitempty"`
}

// AdminStats is a point-in-time snapshot of the whole floor. Each snapshot
// supersedes the previous one; no history is kept.
type AdminStats struct {
	ActiveSessions     int                      `json:"active_sessions"`
	ConnectedEmployees int                      `json:"connected_employees"`
	ConnectedAdmins    int                      `json:"connected_admins"`
	EmployeeSessions   []EmployeeSessionSummary `json:"employee_sessions"`
	Timestamp          int64                    `json:"timestamp"`
}

// SessionStatus is a lightweight status flip for a single session.
type SessionStatus struct {
	SessionID  int64              `json:"session_id"`
	EmployeeID int64              `json:"employee_id"`
	Status     worksession.Status `json:"status"`
	Timestamp  int64              `json:"timestamp"`
}
