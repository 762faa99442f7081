package events

import "sync"

// Topic is a latest-value broadcast channel: it holds exactly one current
// value per category, late subscribers immediately receive the latest
// snapshot, and a slow subscriber never blocks the publisher (its pending
// value is replaced, not queued).
type Topic[T any] struct {
	mu     sync.Mutex
	latest T
	has    bool
	subs   map[int]chan T
	nextID int
}

func NewTopic[T any]() *Topic[T] {
	return &Topic[T]{subs: make(map[int]chan T)}
}

// Publish replaces the current value and fans it out to all subscribers.
func (t *Topic[T]) Publish(v T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.latest = v
	t.has = true
	for _, ch := range t.subs {
		deliver(ch, v)
	}
}

// Latest returns the most recently published value, if any.
func (t *Topic[T]) Latest() (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.latest, t.has
}

// Subscribe registers a new subscriber. The returned channel carries the
// current value (if one was ever published) followed by every later
// replacement. The cancel function is idempotent.
func (t *Topic[T]) Subscribe() (<-chan T, func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextID
	t.nextID++
	ch := make(chan T, 1)
	t.subs[id] = ch
	if t.has {
		deliver(ch, t.latest)
	}
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.subs, id)
			t.mu.Unlock()
		})
	}
	return ch, cancel
}

// deliver implements replace semantics on the subscriber's buffer: if the
// previous value was not consumed yet it is dropped in favor of the new one.
func deliver[T any](ch chan T, v T) {
	select {
	case ch <- v:
	default:
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- v:
		default:
		}
	}
}
