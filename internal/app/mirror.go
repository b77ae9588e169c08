package app

import (
	"context"

	"mathpad/internal/errlog"
	"mathpad/internal/logstore"
)

// storeMirror lets sessions mirror straight into this gateway's own log
// store without the HTTP hop. Used unless ERROR_LOG_API_URL points at an
// external service.
type storeMirror struct {
	store logstore.Store
}

func (m *storeMirror) Append(ctx context.Context, e errlog.Entry) error {
	return m.store.Append(ctx, logstore.Entry{
		Timestamp: e.Timestamp,
		Type:      e.Type,
		Message:   e.Message,
		LineNo:    e.LineNo,
	})
}

func (m *storeMirror) Fetch(ctx context.Context) ([]errlog.Entry, error) {
	stored, err := m.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]errlog.Entry, 0, len(stored))
	for _, e := range stored {
		out = append(out, errlog.Entry{
			Timestamp: e.Timestamp,
			Type:      e.Type,
			Message:   e.Message,
			LineNo:    e.LineNo,
		})
	}
	return out, nil
}
