package models

// Urgency represents the priority of an IT service request.
// It shares the severity scale with Impact but is kept as its own type so
// the two queues cannot be mixed up at call sites.
type Urgency string

const (
	UrgencyLow      Urgency = "Low"
	UrgencyMedium   Urgency = "Medium"
	UrgencyHigh     Urgency = "High"
	UrgencyCritical Urgency = "Critical"
)

// RequestPhase represents the lifecycle status of an IT service request.
type RequestPhase string

const (
	RequestPhaseOpen       RequestPhase = "Open"
	RequestPhaseInProgress RequestPhase = "In Progress"
	RequestPhaseResolved   RequestPhase = "Resolved"
	RequestPhaseClosed     RequestPhase = "Closed"
)

// ITRequest represents one ticket in the service desk queue.
type ITRequest struct {
	ID      int64        `db:"id" json:"id"`
	ReqKey  string       `db:"req_key" json:"req_key"`
	Topic   string       `db:"topic" json:"topic"`
	Urgency Urgency      `db:"urgency" json:"urgency"`
	Phase   RequestPhase `db:"phase" json:"phase"`
	// OpenedAt/ClosedAt are free-form text dates; ClosedAt is nullable.
	OpenedAt string  `db:"opened_at" json:"opened_at"`
	ClosedAt *string `db:"closed_at" json:"closed_at,omitempty"`
	Assignee string  `db:"assignee" json:"assignee"`
}
