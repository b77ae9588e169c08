package logstore

import (
	"context"
	"database/sql"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresStore persists entries in a single error_logs table. The schema is
// ensured lazily on first use.
type PostgresStore struct {
	db *sql.DB

	schemaOnce sync.Once
	schemaErr  error
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS error_logs (
  id SERIAL PRIMARY KEY,
  ts TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  error_type TEXT NOT NULL DEFAULT 'client',
  message TEXT NOT NULL DEFAULT '',
  line_no INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_error_logs_ts ON error_logs (ts);
`)
	})
	return s.schemaErr
}

func (s *PostgresStore) Append(ctx context.Context, e Entry) error {
	if err := s.ensureSchema(ctx); err != nil {
		return err
	}
	e = normalizeEntry(e)
	ts, err := time.Parse(time.RFC3339, e.Timestamp)
	if err != nil {
		ts = time.Now().UTC()
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO error_logs (ts, error_type, message, line_no)
VALUES ($1, $2, $3, $4)`, ts, e.Type, e.Message, e.LineNo)
	return err
}

func (s *PostgresStore) List(ctx context.Context) ([]Entry, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT ts, error_type, message, line_no
FROM error_logs
ORDER BY id DESC
LIMIT $1`, MaxEntries)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var newestFirst []Entry
	for rows.Next() {
		var ts time.Time
		var e Entry
		if err := rows.Scan(&ts, &e.Type, &e.Message, &e.LineNo); err != nil {
			return nil, err
		}
		e.Timestamp = ts.UTC().Format(time.RFC3339)
		newestFirst = append(newestFirst, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// List contract is oldest first.
	out := make([]Entry, 0, len(newestFirst))
	for i := len(newestFirst) - 1; i >= 0; i-- {
		out = append(out, newestFirst[i])
	}
	return out, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
