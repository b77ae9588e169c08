package errlog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

type fakeMirror struct {
	mu       sync.Mutex
	appended []Entry
	fetched  []Entry
	fetchErr error
}

func (m *fakeMirror) Append(_ context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appended = append(m.appended, e)
	return nil
}

func (m *fakeMirror) Fetch(context.Context) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetched, m.fetchErr
}

func (m *fakeMirror) appendedEntries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.appended))
	copy(out, m.appended)
	return out
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out: %s", msg)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestAppendCapsAtHundred(t *testing.T) {
	l := New(nil)
	for i := 0; i < 101; i++ {
		l.Append(Entry{Type: TypeClient, Message: fmt.Sprintf("err-%d", i)})
	}
	entries := l.Entries()
	if len(entries) != 100 {
		t.Fatalf("len(entries) = %d, want 100", len(entries))
	}
	if entries[0].Message != "err-1" {
		t.Fatalf("oldest entry = %q, want err-1 (err-0 evicted)", entries[0].Message)
	}
	if entries[99].Message != "err-100" {
		t.Fatalf("newest entry = %q, want err-100", entries[99].Message)
	}
}

func TestAppendDefaultsAndMirrors(t *testing.T) {
	m := &fakeMirror{}
	l := New(m)
	l.Append(Entry{Message: "boom"})

	entries := l.Entries()
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0].Type != TypeClient {
		t.Fatalf("default type = %q, want %q", entries[0].Type, TypeClient)
	}
	if entries[0].Timestamp == "" {
		t.Fatalf("timestamp not set")
	}

	waitFor(t, func() bool { return len(m.appendedEntries()) == 1 }, "mirror append")
	if got := m.appendedEntries()[0].Message; got != "boom" {
		t.Fatalf("mirrored message = %q, want boom", got)
	}
}

func TestRefreshReplacesBufferWholesale(t *testing.T) {
	m := &fakeMirror{fetched: []Entry{
		{Timestamp: "2026-01-01T00:00:00Z", Type: TypeAPI, Message: "remote"},
	}}
	l := New(m)
	l.Append(Entry{Type: TypeClient, Message: "local-only"})

	entries, err := l.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Message != "remote" {
		t.Fatalf("entries = %v, want the remote list", entries)
	}
}

func TestRefreshErrorLeavesBuffer(t *testing.T) {
	m := &fakeMirror{fetchErr: errors.New("store down")}
	l := New(m)
	l.Append(Entry{Type: TypeClient, Message: "keep-me"})

	if _, err := l.Refresh(context.Background()); err == nil {
		t.Fatalf("Refresh() succeeded, want error")
	}
	entries := l.Entries()
	if len(entries) != 1 || entries[0].Message != "keep-me" {
		t.Fatalf("buffer mutated on failed refresh: %v", entries)
	}
}

func TestClearEmptiesAndSendsMarker(t *testing.T) {
	m := &fakeMirror{}
	l := New(m)
	l.Append(Entry{Type: TypeClient, Message: "a"})
	l.Append(Entry{Type: TypeClient, Message: "b"})
	waitFor(t, func() bool { return len(m.appendedEntries()) == 2 }, "mirror appends")

	l.Clear()
	if got := l.Entries(); len(got) != 0 {
		t.Fatalf("entries after clear = %v, want none", got)
	}
	waitFor(t, func() bool { return len(m.appendedEntries()) == 3 }, "clear marker")
	marker := m.appendedEntries()[2]
	if marker.Type != TypeSystem || marker.Message != "logs cleared" {
		t.Fatalf("marker = %+v, want system \"logs cleared\"", marker)
	}
}
