package repository

import (
	"opsCommandCenter/internal/db"
	"opsCommandCenter/models"
)

// NewRequestRepository builds the service-desk repository. Requests are
// keyed by req_key, ordered newest-opened first; phase is the mutable field.
func NewRequestRepository(store *db.Store) *Repository[models.ITRequest] {
	return New(store, Descriptor[models.ITRequest]{
		Table:        "it_requests",
		KeyColumn:    "req_key",
		OrderColumn:  "opened_at",
		StatusColumn: "phase",
		Columns:      []string{"req_key", "topic", "urgency", "phase", "opened_at", "closed_at", "assignee"},
		Key:          func(r *models.ITRequest) string { return r.ReqKey },
		Bind: func(r *models.ITRequest) []any {
			return []any{r.ReqKey, r.Topic, string(r.Urgency), string(r.Phase), r.OpenedAt, r.ClosedAt, r.Assignee}
		},
		Scan: func(s scanner) (*models.ITRequest, error) {
			var r models.ITRequest
			if err := s.Scan(&r.ID, &r.ReqKey, &r.Topic, &r.Urgency, &r.Phase, &r.OpenedAt, &r.ClosedAt, &r.Assignee); err != nil {
				return nil, err
			}
			return &r, nil
		},
		SetID: func(r *models.ITRequest, id int64) { r.ID = id },
	})
}
