package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/segusengineering/worksync/internal/auth"
)

const notifyPath = "/api/realtime/notify-session/"

// HTTPNotifier posts outbound session events to the realtime backend.
// Delivery is fire-and-forget: the backend sends no meaningful response and
// callers only log the returned error.
type HTTPNotifier struct {
	baseURL string
	userID  int64
	tokens  auth.TokenProvider
	client  *http.Client
}

func NewHTTPNotifier(baseURL string, userID int64, tokens auth.TokenProvider) *HTTPNotifier {
	return &HTTPNotifier{
		baseURL: baseURL,
		userID:  userID,
		tokens:  tokens,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type notificationPayload struct {
	Type      string `json:"type"`
	UserID    int64  `json:"user_id"`
	Data      any    `json:"data"`
	Timestamp int64  `json:"timestamp"`
}

func (n *HTTPNotifier) Notify(ctx context.Context, kind string, data any) error {
	token, err := n.tokens.Token()
	if err != nil {
		return err
	}

	b, err := json.Marshal(notificationPayload{
		Type:      kind,
		UserID:    n.userID,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+notifyPath, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if !isHTTPSuccessStatus(resp.StatusCode) {
		return fmt.Errorf("notify-session returned status %d", resp.StatusCode)
	}
	return nil
}

func isHTTPSuccessStatus(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
