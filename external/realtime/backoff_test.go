package realtime

import (
	"testing"
	"time"
)

func TestReconnectDelayDoubles(t *testing.T) {
	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 1 * time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{4, 8 * time.Second},
		{5, 16 * time.Second},
		{6, 30 * time.Second},
		{10, 30 * time.Second},
		{0, 1 * time.Second},
	}
	for _, c := range cases {
		if got := reconnectDelay(c.attempt); got != c.want {
			t.Errorf("reconnectDelay(%d) = %s, want %s", c.attempt, got, c.want)
		}
	}
}
