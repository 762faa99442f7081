package events

import (
	"encoding/json"
	"testing"

	"github.com/segusengineering/worksync/internal/realtime"
)

func TestDispatchWorkSessionUpdate(t *testing.T) {
	r := NewRouter()
	r.Dispatch(realtime.Frame{
		Type: FrameWorkSessionUpdate,
		Data: json.RawMessage(`{"type":"session_started","session_id":42,"employee_email":"a@segus.tn","timestamp":1700000000000}`),
	})

	u, ok := r.WorkSessions().Latest()
	if !ok {
		t.Fatal("work session topic has no value")
	}
	if u.Kind != KindSessionStarted || u.SessionID != 42 {
		t.Fatalf("unexpected update: %+v", u)
	}
	if _, ok := r.AdminStats().Latest(); ok {
		t.Fatal("admin stats topic must not be touched by a work session frame")
	}
	if _, ok := r.SessionStatus().Latest(); ok {
		t.Fatal("session status topic must not be touched by a work session frame")
	}
}

func TestDispatchAdminStats(t *testing.T) {
	r := NewRouter()
	r.Dispatch(realtime.Frame{
		Type: FrameAdminStatsUpdate,
		Data: json.RawMessage(`{"active_sessions":3,"connected_employees":5,"connected_admins":1,"timestamp":1}`),
	})
	s, ok := r.AdminStats().Latest()
	if !ok {
		t.Fatal("admin stats topic has no value")
	}
	if s.ActiveSessions != 3 || s.ConnectedEmployees != 5 {
		t.Fatalf("unexpected stats: %+v", s)
	}
}

func TestDispatchUnknownTypeDropped(t *testing.T) {
	r := NewRouter()
	r.Dispatch(realtime.Frame{Type: "chat_message", Data: json.RawMessage(`{}`)})
	if _, ok := r.WorkSessions().Latest(); ok {
		t.Fatal("unknown frame must not publish anywhere")
	}
}

func TestDispatchMalformedPayloadDropped(t *testing.T) {
	r := NewRouter()
	r.Dispatch(realtime.Frame{Type: FrameWorkSessionUpdate, Data: json.RawMessage(`not json`)})
	if _, ok := r.WorkSessions().Latest(); ok {
		t.Fatal("malformed payload must be dropped")
	}
}

func TestDispatchUnknownKindDropped(t *testing.T) {
	r := NewRouter()
	r.Dispatch(realtime.Frame{
		Type: FrameWorkSessionUpdate,
		Data: json.RawMessage(`{"type":"session_exploded","session_id":1}`),
	})
	if _, ok := r.WorkSessions().Latest(); ok {
		t.Fatal("update with unknown kind must be dropped")
	}
}

func TestTrackConnection(t *testing.T) {
	r := NewRouter()
	r.TrackConnection(realtime.StateConnected)
	s, ok := r.Connection().Latest()
	if !ok || s != realtime.StateConnected {
		t.Fatalf("Connection().Latest() = %v, %v", s, ok)
	}
}
