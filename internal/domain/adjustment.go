package domain

import "time"

// AdjustmentType classifies a schedule adjustment.
type AdjustmentType string

const (
	AdjustmentFrequencyChange AdjustmentType = "frequency-change"
	AdjustmentDetour          AdjustmentType = "detour"
	AdjustmentSuspension      AdjustmentType = "suspension"
	AdjustmentExtraService    AdjustmentType = "extra-service"
	AdjustmentOther           AdjustmentType = "other"
)

// Valid reports whether t is one of the defined adjustment types.
func (t AdjustmentType) Valid() bool {
	switch t {
	case AdjustmentFrequencyChange, AdjustmentDetour, AdjustmentSuspension,
		AdjustmentExtraService, AdjustmentOther:
		return true
	}
	return false
}

// AdjustmentStatus is the operational state of a schedule adjustment.
// Unlike version statuses there is no transition table: dispatch staff may
// move an adjustment between any two defined statuses in either direction.
type AdjustmentStatus string

const (
	AdjustmentProposed  AdjustmentStatus = "proposed"
	AdjustmentActive    AdjustmentStatus = "active"
	AdjustmentCancelled AdjustmentStatus = "cancelled"
	AdjustmentExpired   AdjustmentStatus = "expired"
)

// Valid reports whether s is one of the defined adjustment statuses.
func (s AdjustmentStatus) Valid() bool {
	switch s {
	case AdjustmentProposed, AdjustmentActive, AdjustmentCancelled, AdjustmentExpired:
		return true
	}
	return false
}

// ScheduleAdjustment is a time-bounded operational override to a route's
// normal schedule (detour, frequency change, …). Adjustments are independent
// of schedule versions: they reference a route only and may overlap any
// number of versions in date range.
//
// Newly created adjustments are immediately operative: Create stores status
// "active", not "proposed". "proposed" remains reachable via UpdateStatus.
type ScheduleAdjustment struct {
	ID           int64            `json:"id"`
	RouteID      int64            `json:"route_id"`
	Type         AdjustmentType   `json:"type"`
	StartDate    int              `json:"start_date"` // YYYYMMDD, strictly before EndDate
	EndDate      int              `json:"end_date"`   // YYYYMMDD
	Reason       string           `json:"reason"`
	Status       AdjustmentStatus `json:"status"`
	CreatedBy    Principal        `json:"created_by"`
	CreationDate int              `json:"creation_date"` // YYYYMMDD
	CreatedAt    time.Time        `json:"created_at"`
}
