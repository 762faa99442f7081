package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/segusengineering/worksync/internal/auth"
	"github.com/segusengineering/worksync/internal/session"
	"github.com/segusengineering/worksync/internal/worksession"
)

const requestTimeout = 15 * time.Second

// HTTPClient implements session.SessionAPI against the employees REST API.
type HTTPClient struct {
	baseURL string
	tokens  auth.TokenProvider
	client  *http.Client
}

func NewHTTPClient(baseURL string, tokens auth.TokenProvider) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		tokens:  tokens,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

func (c *HTTPClient) StartSession(ctx context.Context, notes string) (*worksession.WorkSession, error) {
	var out worksession.WorkSession
	err := c.do(ctx, http.MethodPost, "/api/employees/work-sessions/start_session/",
		map[string]string{"notes": notes}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) PauseSession(ctx context.Context, id int64, req session.PauseRequest) (*worksession.WorkSession, error) {
	var out worksession.WorkSession
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/employees/work-sessions/%d/pause/", id), req, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ResumeSession(ctx context.Context, id int64) (*worksession.WorkSession, error) {
	var out worksession.WorkSession
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/employees/work-sessions/%d/resume/", id), struct{}{}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) EndSession(ctx context.Context, id int64) (*worksession.WorkSession, error) {
	var out worksession.WorkSession
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/employees/work-sessions/%d/end/", id), struct{}{}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CurrentSession returns nil, nil when no session is open. The backend
// signals "no session" either as 204 or as a body carrying only a message
// field.
func (c *HTTPClient) CurrentSession(ctx context.Context) (*worksession.WorkSession, error) {
	body, status, err := c.raw(ctx, http.MethodGet, "/api/employees/work-sessions/current-session/", nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNoContent || len(body) == 0 {
		return nil, nil
	}
	var probe struct {
		ID      int64  `json:"id"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, fmt.Errorf("%w: decoding current session: %v", session.ErrRequestFailed, err)
	}
	if probe.Message != "" && probe.ID == 0 {
		return nil, nil
	}
	var out worksession.WorkSession
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: decoding current session: %v", session.ErrRequestFailed, err)
	}
	return &out, nil
}

func (c *HTTPClient) ListSessions(ctx context.Context) ([]worksession.WorkSession, error) {
	var out []worksession.WorkSession
	if err := c.do(ctx, http.MethodGet, "/api/employees/work-sessions/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) MyStats(ctx context.Context) (*worksession.EmployeeWorkStats, error) {
	var out worksession.EmployeeWorkStats
	if err := c.do(ctx, http.MethodGet, "/api/employees/work-stats/my_stats/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) AllEmployeeStats(ctx context.Context) ([]worksession.EmployeeWorkStats, error) {
	var out []worksession.EmployeeWorkStats
	if err := c.do(ctx, http.MethodGet, "/api/employees/work-stats/all_employees/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	data, status, err := c.raw(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil || status == http.StatusNoContent {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decoding %s response: %v", session.ErrRequestFailed, path, err)
	}
	return nil
}

func (c *HTTPClient) raw(ctx context.Context, method, path string, body any) ([]byte, int, error) {
	token, err := c.tokens.Token()
	if err != nil {
		return nil, 0, err
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s %s: %v", session.ErrRequestFailed, method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: reading %s response: %v", session.ErrRequestFailed, path, err)
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, resp.StatusCode, fmt.Errorf("%s %s returned 401: %w", method, path, auth.ErrAuthRequired)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.StatusCode, fmt.Errorf("%w: %s %s returned status %d: %s", session.ErrRequestFailed, method, path, resp.StatusCode, string(data))
	}
	return data, resp.StatusCode, nil
}
