package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) Token() (string, error) {
	return s.token, s.err
}

func TestNotifySendsPayload(t *testing.T) {
	var (
		gotPath   string
		gotAuth   string
		gotBody   map[string]any
		gotMethod string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotMethod = r.Method
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewHTTPNotifier(srv.URL, 42, staticTokens{token: "tok"})
	before := time.Now().UnixMilli()
	if err := n.Notify(context.Background(), "work_session_started", map[string]any{"session_id": 7}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	after := time.Now().UnixMilli()

	if gotMethod != http.MethodPost {
		t.Errorf("method = %s, want POST", gotMethod)
	}
	if gotPath != "/api/realtime/notify-session/" {
		t.Errorf("path = %s", gotPath)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("authorization = %q", gotAuth)
	}
	if gotBody["type"] != "work_session_started" {
		t.Errorf("type = %v", gotBody["type"])
	}
	if gotBody["user_id"] != float64(42) {
		t.Errorf("user_id = %v", gotBody["user_id"])
	}
	ts, ok := gotBody["timestamp"].(float64)
	if !ok || int64(ts) < before || int64(ts) > after {
		t.Errorf("timestamp = %v, want between %d and %d", gotBody["timestamp"], before, after)
	}
}

func TestNotifyReportsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n := NewHTTPNotifier(srv.URL, 1, staticTokens{token: "tok"})
	if err := n.Notify(context.Background(), "work_session_ended", nil); err == nil {
		t.Fatal("expected error on 502 response")
	}
}

func TestNotifyRequiresToken(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	wantErr := errors.New("no token")
	n := NewHTTPNotifier(srv.URL, 1, staticTokens{err: wantErr})
	if err := n.Notify(context.Background(), "request_stats_update", nil); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
	if called {
		t.Error("request sent despite missing token")
	}
}
