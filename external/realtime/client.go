package realtime

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/segusengineering/worksync/internal/auth"
	"github.com/segusengineering/worksync/internal/realtime"
)

// stream is one established push channel, transport-specific. ReadFrame
// blocks until the next frame or a connection error.
type stream interface {
	ReadFrame() (realtime.Frame, error)
	Close() error
}

type dialFunc func(ctx context.Context) (stream, error)

// client runs the connection lifecycle shared by every transport: dial,
// read, and redial with exponential backoff when the channel drops. The
// transport only supplies the dial function.
type client struct {
	dial dialFunc

	// Overridden by tests to drive the retry loop without real waits.
	retryDelay func(attempt int) time.Duration
	forceDelay time.Duration

	mu            sync.Mutex
	state         realtime.ConnectionState
	frameHandlers []func(realtime.Frame)
	stateHandlers []func(realtime.ConnectionState)
	cancel        context.CancelFunc
	done          chan struct{}
}

func newClient(dial dialFunc) *client {
	return &client{
		dial:       dial,
		retryDelay: reconnectDelay,
		forceDelay: forceReconnectDelay,
		state:      realtime.StateDisconnected,
	}
}

func (c *client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.cancel != nil {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	c.setState(realtime.StateConnecting)
	s, err := c.dial(ctx)
	if err != nil {
		c.setState(realtime.StateDisconnected)
		return err
	}
	c.setState(realtime.StateConnected)

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	c.mu.Lock()
	if c.cancel != nil {
		// Lost the race with a concurrent Connect.
		c.mu.Unlock()
		cancel()
		_ = s.Close()
		return nil
	}
	c.cancel = cancel
	c.done = done
	c.mu.Unlock()

	go c.run(runCtx, s, done)
	return nil
}

func (c *client) Disconnect() {
	c.mu.Lock()
	cancel := c.cancel
	done := c.done
	c.cancel = nil
	c.done = nil
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (c *client) ForceReconnect() {
	c.Disconnect()
	go func() {
		time.Sleep(c.forceDelay)
		if err := c.Connect(context.Background()); err != nil {
			slog.Error("forced reconnect failed", "error", err)
		}
	}()
}

func (c *client) State() realtime.ConnectionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *client) OnFrame(handler func(realtime.Frame)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frameHandlers = append(c.frameHandlers, handler)
}

func (c *client) OnStateChange(handler func(realtime.ConnectionState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stateHandlers = append(c.stateHandlers, handler)
}

func (c *client) run(ctx context.Context, s stream, done chan struct{}) {
	// On exit the connection slot must be released, whether the loop gave up
	// on its own or Disconnect cancelled it, so a later Connect can redial.
	defer func() {
		c.mu.Lock()
		if c.done == done {
			c.cancel = nil
			c.done = nil
		}
		c.mu.Unlock()
		c.setState(realtime.StateDisconnected)
		close(done)
	}()

	for {
		// Closing the stream is the only way to unblock a pending read, so
		// tie its lifetime to the context.
		stop := make(chan struct{})
		go func(s stream) {
			select {
			case <-ctx.Done():
				_ = s.Close()
			case <-stop:
			}
		}(s)

		err := c.readLoop(ctx, s)
		close(stop)
		_ = s.Close()
		if ctx.Err() != nil {
			return
		}
		slog.Warn("realtime channel dropped", "error", err)

		s = c.redial(ctx)
		if s == nil {
			return
		}
	}
}

// redial retries the dial with exponential backoff and gives up after the
// attempt cap. Auth failures stop immediately: retrying with the same
// expired token cannot succeed.
func (c *client) redial(ctx context.Context) stream {
	for attempt := 1; attempt <= maxReconnectAttempts; attempt++ {
		c.setState(realtime.StateConnecting)
		if err := sleepCtx(ctx, c.retryDelay(attempt)); err != nil {
			return nil
		}
		s, err := c.dial(ctx)
		if err == nil {
			c.setState(realtime.StateConnected)
			return s
		}
		if errors.Is(err, auth.ErrAuthRequired) {
			slog.Error("reconnect aborted, authentication required")
			return nil
		}
		slog.Warn("reconnect attempt failed", "attempt", attempt, "error", err)
	}
	slog.Error("giving up after repeated reconnect failures", "attempts", maxReconnectAttempts)
	return nil
}

func (c *client) readLoop(ctx context.Context, s stream) error {
	for {
		f, err := s.ReadFrame()
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.dispatch(f)
	}
}

func (c *client) dispatch(f realtime.Frame) {
	c.mu.Lock()
	handlers := make([]func(realtime.Frame), len(c.frameHandlers))
	copy(handlers, c.frameHandlers)
	c.mu.Unlock()
	for _, h := range handlers {
		h(f)
	}
}

func (c *client) setState(s realtime.ConnectionState) {
	c.mu.Lock()
	if c.state == s {
		c.mu.Unlock()
		return
	}
	c.state = s
	handlers := make([]func(realtime.ConnectionState), len(c.stateHandlers))
	copy(handlers, c.stateHandlers)
	c.mu.Unlock()
	for _, h := range handlers {
		h(s)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
