package repository

import (
	"opsCommandCenter/internal/db"
	"opsCommandCenter/models"
)

// NewEventRepository builds the security-queue repository. The queue is
// keyed by event_key, ordered newest-raised first, and the only mutable
// field is the lifecycle state.
func NewEventRepository(store *db.Store) *Repository[models.SecurityEvent] {
	return New(store, Descriptor[models.SecurityEvent]{
		Table:        "sec_events",
		KeyColumn:    "event_key",
		OrderColumn:  "raised_at",
		StatusColumn: "state",
		Columns:      []string{"event_key", "event_kind", "impact", "state", "raised_at", "cleared_at", "owner", "notes"},
		Key:          func(e *models.SecurityEvent) string { return e.EventKey },
		Bind: func(e *models.SecurityEvent) []any {
			return []any{e.EventKey, e.EventKind, string(e.Impact), string(e.State), e.RaisedAt, e.ClearedAt, e.Owner, e.Notes}
		},
		Scan: func(s scanner) (*models.SecurityEvent, error) {
			var e models.SecurityEvent
			if err := s.Scan(&e.ID, &e.EventKey, &e.EventKind, &e.Impact, &e.State, &e.RaisedAt, &e.ClearedAt, &e.Owner, &e.Notes); err != nil {
				return nil, err
			}
			return &e, nil
		},
		SetID: func(e *models.SecurityEvent, id int64) { e.ID = id },
	})
}
