package notify

import (
	"sync"
	"testing"
	"time"
)

func TestAddAndSnapshotOrder(t *testing.T) {
	toast := NewFeed()
	toast.Add(SeveritySuccess, "first")
	toast.Add(SeverityError, "second")

	got := toast.Snapshot()
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Message != "first" || got[1].Message != "second" {
		t.Fatalf("toast feed must be newest-last: %v", got)
	}

	header := NewFeed(NewestFirst())
	header.Add(SeverityInfo, "first")
	header.Add(SeverityInfo, "second")
	got = header.Snapshot()
	if got[0].Message != "second" || got[1].Message != "first" {
		t.Fatalf("header feed must be newest-first: %v", got)
	}
}

func TestCapEvictsOldest(t *testing.T) {
	f := NewFeed(NewestFirst(), WithCap(3))
	for _, msg := range []string{"a", "b", "c", "d"} {
		f.Add(SeverityInfo, msg)
	}
	got := f.Snapshot()
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	if got[0].Message != "d" || got[2].Message != "b" {
		t.Fatalf("oldest entry not evicted: %v", got)
	}
}

func TestAutoExpiry(t *testing.T) {
	f := NewFeed(WithTTL(20 * time.Millisecond))
	f.Add(SeverityWarning, "transient")
	if f.Len() != 1 {
		t.Fatal("entry not added")
	}

	deadline := time.Now().Add(2 * time.Second)
	for f.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("entry did not expire")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestDismissIdempotentUnderRace(t *testing.T) {
	f := NewFeed(WithTTL(10 * time.Millisecond))
	id := f.Add(SeverityError, "racy")

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.Dismiss(id)
		}()
	}
	wg.Wait()
	time.Sleep(30 * time.Millisecond) // let the expiry timer fire too

	if f.Len() != 0 {
		t.Fatal("entry survived dismissal")
	}
	f.Dismiss(id) // removing an unknown id is a no-op
}

func TestOnChangeCallback(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	f := NewFeed(OnChange(func() {
		mu.Lock()
		calls++
		mu.Unlock()
	}))
	id := f.Add(SeverityInfo, "x")
	f.Dismiss(id)

	mu.Lock()
	defer mu.Unlock()
	if calls != 2 {
		t.Fatalf("expected 2 change callbacks, got %d", calls)
	}
}
