package realtime

import (
	"context"
	"encoding/json"
)

type ConnectionState string

const (
	StateDisconnected ConnectionState = "disconnected"
	StateConnecting   ConnectionState = "connecting"
	StateConnected    ConnectionState = "connected"
)

// Frame is one push message as received from the backend, decoded just far
// enough to route it. Data stays raw until the router validates it.
type Frame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Client is a single long-lived push connection to the backend.
//
// Connect is idempotent: calling it while connected is a no-op, and any
// previously open channel is closed before a new dial. Frame and state
// handlers must be registered before Connect.
type Client interface {
	Connect(ctx context.Context) error
	Disconnect()
	// ForceReconnect tears the channel down and redials after a short fixed
	// delay, restarting the backoff cycle from attempt 1.
	ForceReconnect()
	State() ConnectionState
	OnFrame(handler func(Frame))
	OnStateChange(handler func(ConnectionState))
}
