package domain

import "time"

// VersionStatus is the lifecycle state of a ScheduleVersion.
// Transitions are monotonic: draft → approved → active → superseded, with
// draft → rejected as the only other exit. There is no path back to draft.
type VersionStatus string

const (
	VersionDraft      VersionStatus = "draft"
	VersionApproved   VersionStatus = "approved"
	VersionActive     VersionStatus = "active"
	VersionRejected   VersionStatus = "rejected"
	VersionSuperseded VersionStatus = "superseded"
)

// Valid reports whether s is one of the defined version statuses.
func (s VersionStatus) Valid() bool {
	switch s {
	case VersionDraft, VersionApproved, VersionActive, VersionRejected, VersionSuperseded:
		return true
	}
	return false
}

// ScheduleVersion is a named, dated edition of route timing data.
// At most one version is active system-wide at any time; activating a new
// version supersedes the previous active one in the same transaction.
type ScheduleVersion struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	EffectiveDate int           `json:"effective_date"` // YYYYMMDD, strictly before ExpiryDate
	ExpiryDate    int           `json:"expiry_date"`    // YYYYMMDD
	Status        VersionStatus `json:"status"`
	CreatedBy     Principal     `json:"created_by"`
	CreationDate  int           `json:"creation_date"`          // YYYYMMDD
	ApprovedBy    *Principal    `json:"approved_by,omitempty"`  // nil until approved
	ApprovalDate  *int          `json:"approval_date,omitempty"` // nil until approved
	CreatedAt     time.Time     `json:"created_at"`
}

// Mutable reports whether timing data (route schedules, departures) attached
// to a version with this status may still be changed. Once a version is
// activated, rejected, or superseded its timing data is frozen.
func (s VersionStatus) Mutable() bool {
	return s == VersionDraft || s == VersionApproved
}
