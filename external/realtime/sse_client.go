package realtime

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/segusengineering/worksync/internal/auth"
	"github.com/segusengineering/worksync/internal/realtime"
)

const ssePath = "/api/realtime/sse/work-sessions/"

// NewSSEClient streams server-sent events from the backend. The access token
// travels as a query parameter because EventSource-style endpoints cannot
// read headers from the browser clients they were built for.
func NewSSEClient(baseURL string, tokens auth.TokenProvider) realtime.Client {
	httpClient := &http.Client{}
	return newClient(func(ctx context.Context) (stream, error) {
		token, err := tokens.Token()
		if err != nil {
			return nil, err
		}

		u := baseURL + ssePath + "?token=" + url.QueryEscape(token)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "text/event-stream")
		req.Header.Set("Cache-Control", "no-cache")

		resp, err := httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			_ = resp.Body.Close()
			return nil, fmt.Errorf("event stream rejected with status %d: %w", resp.StatusCode, auth.ErrAuthRequired)
		}
		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()
			return nil, fmt.Errorf("event stream returned status %d", resp.StatusCode)
		}
		return &sseStream{body: resp.Body, scanner: bufio.NewScanner(resp.Body)}, nil
	})
}

type sseStream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
}

// ReadFrame consumes the stream until a complete event is assembled. Comment
// and id lines are skipped; events that do not decode as a frame are dropped.
func (s *sseStream) ReadFrame() (realtime.Frame, error) {
	var data strings.Builder
	for s.scanner.Scan() {
		line := s.scanner.Text()
		switch {
		case line == "":
			if data.Len() == 0 {
				continue
			}
			var f realtime.Frame
			if err := json.Unmarshal([]byte(data.String()), &f); err != nil {
				slog.Warn("dropping malformed event", "error", err)
				data.Reset()
				continue
			}
			return f, nil
		case strings.HasPrefix(line, "data:"):
			data.WriteString(strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		default:
			// event:, id:, retry: and comment lines carry nothing we route on.
		}
	}
	if err := s.scanner.Err(); err != nil {
		return realtime.Frame{}, err
	}
	return realtime.Frame{}, io.EOF
}

func (s *sseStream) Close() error {
	return s.body.Close()
}
