package models

// Impact represents the severity of a security event.
type Impact string

const (
	ImpactLow      Impact = "Low"
	ImpactMedium   Impact = "Medium"
	ImpactHigh     Impact = "High"
	ImpactCritical Impact = "Critical"
)

// EventState represents the lifecycle status of a security event.
type EventState string

const (
	EventStateOpen       EventState = "Open"
	EventStateInProgress EventState = "In Progress"
	EventStateResolved   EventState = "Resolved"
	EventStateClosed     EventState = "Closed"
)

// SecurityEvent represents one entry in the security queue.
// EventKey is the operator-facing unique identifier (e.g., "SEC-999").
// Timestamps are free-form text; callers supply sortable formats (ISO dates)
// because the queue is ordered lexicographically on RaisedAt.
type SecurityEvent struct {
	ID        int64      `db:"id" json:"id"`
	EventKey  string     `db:"event_key" json:"event_key"`
	EventKind string     `db:"event_kind" json:"event_kind"`
	Impact    Impact     `db:"impact" json:"impact"`
	State     EventState `db:"state" json:"state"`
	RaisedAt  string     `db:"raised_at" json:"raised_at"`
	// ClearedAt is nullable in DB; a pointer distinguishes null from "".
	ClearedAt *string `db:"cleared_at" json:"cleared_at,omitempty"`
	Owner     string  `db:"owner" json:"owner"`
	Notes     string  `db:"notes" json:"notes,omitempty"`
}
