package domain

import "time"

// TransitionRecord is one row of the append-only lifecycle audit log.
// Every status transition (version approval/activation, planner
// authorization, adjustment status change, admin transfer) appends a record
// in the same transaction as the transition itself, so the log and the
// current-state projection can never disagree.
type TransitionRecord struct {
	ID         int64     `json:"id"`
	EntityKind string    `json:"entity_kind"` // "planner", "schedule_version", "adjustment", "admin"
	EntityKey  string    `json:"entity_key"`  // principal or numeric id rendered as text
	Transition string    `json:"transition"`  // e.g. "draft->approved"
	Actor      Principal `json:"actor"`
	RecordedAt time.Time `json:"recorded_at"`
}
