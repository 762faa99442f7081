package realtime

import "time"

const (
	baseReconnectDelay   = 1 * time.Second
	maxReconnectDelay    = 30 * time.Second
	maxReconnectAttempts = 5

	// Delay between teardown and redial on a forced reconnect.
	forceReconnectDelay = 1 * time.Second
)

// reconnectDelay returns the wait before reconnect attempt n (1-based),
// doubling from one second and capping at thirty.
func reconnectDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := baseReconnectDelay
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= maxReconnectDelay {
			return maxReconnectDelay
		}
	}
	return d
}
