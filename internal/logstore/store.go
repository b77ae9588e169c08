// Package logstore is the authoritative error-log store behind the
// /api/log-error and /api/error-logs endpoints. Backends: in-memory,
// postgres, or an S3-compatible object store, selected from the
// environment.
package logstore

import (
	"context"
	"log"
	"strings"
	"time"
)

// MaxEntries is the number of most-recent entries List returns; clients keep
// the same cap locally.
const MaxEntries = 100

// Entry is one stored error-log record. Timestamp is RFC 3339.
type Entry struct {
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	LineNo    int    `json:"lineNo,omitempty"`
}

// Store persists error-log entries. Append never deletes; List returns at
// most the MaxEntries most recent entries, oldest first.
type Store interface {
	Append(ctx context.Context, e Entry) error
	List(ctx context.Context) ([]Entry, error)
}

// Config selects the backend.
type Config struct {
	PostgresDSN string
	S3          S3Config
}

// NewFromConfig picks postgres when a DSN is set, S3 when object-store
// credentials are set, and memory otherwise. Backend init failures fall back
// to memory so the error pipeline itself never takes the gateway down.
func NewFromConfig(cfg Config) Store {
	if dsn := strings.TrimSpace(cfg.PostgresDSN); dsn != "" {
		s, err := NewPostgresStore(dsn)
		if err != nil {
			log.Printf("logstore: postgres unavailable, using memory: %v", err)
			return NewMemoryStore()
		}
		log.Printf("logstore: postgres backend")
		return s
	}
	if cfg.S3.Configured() {
		s, err := NewS3Store(cfg.S3)
		if err != nil {
			log.Printf("logstore: s3 unavailable, using memory: %v", err)
			return NewMemoryStore()
		}
		log.Printf("logstore: s3 backend bucket=%s endpoint=%s", cfg.S3.Bucket, cfg.S3.Endpoint)
		return s
	}
	return NewMemoryStore()
}

func normalizeEntry(e Entry) Entry {
	if strings.TrimSpace(e.Timestamp) == "" {
		e.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	if strings.TrimSpace(e.Type) == "" {
		e.Type = "client"
	}
	if strings.TrimSpace(e.Message) == "" {
		e.Message = "Unknown error"
	}
	return e
}
