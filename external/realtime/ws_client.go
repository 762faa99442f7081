package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/segusengineering/worksync/internal/auth"
	"github.com/segusengineering/worksync/internal/realtime"
)

const wsPath = "/api/realtime/ws/work-sessions/"

// NewWebSocketClient carries the same frames as the SSE client over a
// websocket, one JSON document per text message.
func NewWebSocketClient(baseURL string, tokens auth.TokenProvider) realtime.Client {
	return newClient(func(ctx context.Context) (stream, error) {
		token, err := tokens.Token()
		if err != nil {
			return nil, err
		}

		u := wsURL(baseURL) + wsPath + "?token=" + url.QueryEscape(token)
		conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
		if err != nil {
			if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
				return nil, fmt.Errorf("websocket rejected with status %d: %w", resp.StatusCode, auth.ErrAuthRequired)
			}
			return nil, err
		}
		return &wsStream{conn: conn}, nil
	})
}

func wsURL(baseURL string) string {
	switch {
	case strings.HasPrefix(baseURL, "https://"):
		return "wss://" + strings.TrimPrefix(baseURL, "https://")
	case strings.HasPrefix(baseURL, "http://"):
		return "ws://" + strings.TrimPrefix(baseURL, "http://")
	default:
		return baseURL
	}
}

type wsStream struct {
	conn *websocket.Conn
}

func (s *wsStream) ReadFrame() (realtime.Frame, error) {
	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			return realtime.Frame{}, err
		}
		var f realtime.Frame
		if err := json.Unmarshal(msg, &f); err != nil {
			slog.Warn("dropping malformed message", "error", err)
			continue
		}
		return f, nil
	}
}

func (s *wsStream) Close() error {
	return s.conn.Close()
}
