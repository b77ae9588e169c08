package notebook

import (
	"sync"
	"testing"
	"time"
)

type fireRecorder struct {
	mu      sync.Mutex
	indexes []int
	ch      chan int
}

func newFireRecorder() *fireRecorder {
	return &fireRecorder{ch: make(chan int, 16)}
}

func (f *fireRecorder) fire(idx int) {
	f.mu.Lock()
	f.indexes = append(f.indexes, idx)
	f.mu.Unlock()
	f.ch <- idx
}

func (f *fireRecorder) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.indexes)
}

func TestSchedulerCoalescesBurst(t *testing.T) {
	rec := newFireRecorder()
	s := NewScheduler(30*time.Millisecond, rec.fire)

	s.Trigger(3)
	s.Trigger(1)
	s.Trigger(2)

	select {
	case got := <-rec.ch:
		if got != 2 {
			t.Fatalf("fired with index %d, want the most recent edit's index 2", got)
		}
	case <-time.After(1 * time.Second):
		t.Fatalf("scheduler did not fire")
	}

	// No second firing from the same burst.
	select {
	case got := <-rec.ch:
		t.Fatalf("unexpected second firing with index %d", got)
	case <-time.After(100 * time.Millisecond):
	}
	if n := rec.count(); n != 1 {
		t.Fatalf("fire count = %d, want 1", n)
	}
}

func TestSchedulerSeparateBurstsFireSeparately(t *testing.T) {
	rec := newFireRecorder()
	s := NewScheduler(20*time.Millisecond, rec.fire)

	s.Trigger(0)
	select {
	case <-rec.ch:
	case <-time.After(1 * time.Second):
		t.Fatalf("first burst did not fire")
	}

	s.Trigger(5)
	select {
	case got := <-rec.ch:
		if got != 5 {
			t.Fatalf("second burst fired with index %d, want 5", got)
		}
	case <-time.After(1 * time.Second):
		t.Fatalf("second burst did not fire")
	}
}

func TestSchedulerStopCancelsPending(t *testing.T) {
	rec := newFireRecorder()
	s := NewScheduler(30*time.Millisecond, rec.fire)

	s.Trigger(0)
	s.Stop()

	select {
	case <-rec.ch:
		t.Fatalf("fired after Stop")
	case <-time.After(100 * time.Millisecond):
	}
}
