package events

import (
	"encoding/json"
	"log/slog"

	"github.com/segusengineering/worksync/internal/realtime"
)

// Router validates incoming push frames once, at the boundary, and
// republishes each category on its own latest-value topic. Unknown or
// malformed frames are logged and dropped; they are never fatal.
type Router struct {
	workSessions  *Topic[WorkSessionUpdate]
	adminStats    *Topic[AdminStats]
	sessionStatus *Topic[SessionStatus]
	connection    *Topic[realtime.ConnectionState]
}

func NewRouter() *Router {
	return &Router{
		workSessions:  NewTopic[WorkSessionUpdate](),
		adminStats:    NewTopic[AdminStats](),
		sessionStatus: NewTopic[SessionStatus](),
		connection:    NewTopic[realtime.ConnectionState](),
	}
}

func (r *Router) WorkSessions() *Topic[WorkSessionUpdate]         { return r.workSessions }
func (r *Router) AdminStats() *Topic[AdminStats]                  { return r.adminStats }
func (r *Router) SessionStatus() *Topic[SessionStatus]            { return r.sessionStatus }
func (r *Router) Connection() *Topic[realtime.ConnectionState]    { return r.connection }

// Dispatch routes one frame to the topic matching its type discriminator.
func (r *Router) Dispatch(frame realtime.Frame) {
	switch frame.Type {
	case FrameWorkSessionUpdate:
		var u WorkSessionUpdate
		if err := json.Unmarshal(frame.Data, &u); err != nil {
			slog.Warn("dropping malformed work session update", "error", err)
			return
		}
		if !u.Kind.Valid() {
			slog.Warn("dropping work session update with unknown kind", "kind", string(u.Kind))
			return
		}
		r.workSessions.Publish(u)
	case FrameAdminStatsUpdate:
		var s AdminStats
		if err := json.Unmarshal(frame.Data, &s); err != nil {
			slog.Warn("dropping malformed admin stats update", "error", err)
			return
		}
		r.adminStats.Publish(s)
	case FrameSessionStatus:
		var s SessionStatus
		if err := json.Unmarshal(frame.Data, &s); err != nil {
			slog.Warn("dropping malformed session status update", "error", err)
			return
		}
		r.sessionStatus.Publish(s)
	default:
		slog.Debug("unhandled frame type", "type", frame.Type)
	}
}

// TrackConnection republishes transport state changes on the connection topic
// so observers get the same latest-value semantics as event categories.
func (r *Router) TrackConnection(state realtime.ConnectionState) {
	r.connection.Publish(state)
}
