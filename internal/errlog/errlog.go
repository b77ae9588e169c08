package errlog

import (
	"context"
	"log"
	"sync"
	"time"
)

// Entry types. evaluation is a single failed line inside the evaluator, api a
// rejected request, network a transport failure, system a synthetic marker,
// client anything UI-observed but not evaluation-related.
const (
	TypeEvaluation = "evaluation"
	TypeAPI        = "api"
	TypeNetwork    = "network"
	TypeSystem     = "system"
	TypeClient     = "client"
)

// Entry is one captured failure. LineNo is 1-based and only set for
// evaluation entries.
type Entry struct {
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	LineNo    int    `json:"lineNo,omitempty"`
}

// Mirror is the remote store every append is copied to.
type Mirror interface {
	Append(ctx context.Context, e Entry) error
	Fetch(ctx context.Context) ([]Entry, error)
}

const maxEntries = 100

const mirrorTimeout = 5 * time.Second

// Log is the local error buffer: append-only, capped at the 100 most recent
// entries, oldest evicted first. The authoritative copy lives in the remote
// store; Refresh replaces the buffer with it wholesale.
type Log struct {
	mu      sync.Mutex
	entries []Entry
	mirror  Mirror
}

// New creates a log mirroring to the given store. mirror may be nil, in
// which case entries stay local.
func New(mirror Mirror) *Log {
	return &Log{mirror: mirror}
}

// Append records an entry locally and mirrors it fire-and-forget. A failed
// mirror write is traced to the process log only; it never re-enters the
// pipeline.
func (l *Log) Append(e Entry) {
	if e.Timestamp == "" {
		e.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	if e.Type == "" {
		e.Type = TypeClient
	}
	l.mu.Lock()
	l.entries = append(l.entries, e)
	if len(l.entries) > maxEntries {
		l.entries = l.entries[len(l.entries)-maxEntries:]
	}
	l.mu.Unlock()

	l.mirrorEntry(e)
}

func (l *Log) mirrorEntry(e Entry) {
	if l.mirror == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
		defer cancel()
		if err := l.mirror.Append(ctx, e); err != nil {
			log.Printf("errlog: mirror append failed: %v", err)
		}
	}()
}

// Entries returns the buffered entries, oldest first.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Refresh replaces the local buffer with the remote store's authoritative
// list. On error the buffer is left untouched.
func (l *Log) Refresh(ctx context.Context) ([]Entry, error) {
	if l.mirror == nil {
		return l.Entries(), nil
	}
	entries, err := l.mirror.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) > maxEntries {
		entries = entries[len(entries)-maxEntries:]
	}
	l.mu.Lock()
	l.entries = entries
	l.mu.Unlock()
	return l.Entries(), nil
}

// Clear empties the local buffer and sends a single marker entry to the
// remote store. Prior remote entries are not deleted.
func (l *Log) Clear() {
	l.mu.Lock()
	l.entries = nil
	l.mu.Unlock()

	l.mirrorEntry(Entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Type:      TypeSystem,
		Message:   "logs cleared",
	})
}
