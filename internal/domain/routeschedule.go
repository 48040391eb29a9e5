package domain

// MinuteOfDayMax is the last valid minute-of-day value (23:59).
const MinuteOfDayMax = 1439

// ValidMinute reports whether m is a valid minute-of-day (0–1439).
func ValidMinute(m int) bool {
	return m >= 0 && m <= MinuteOfDayMax
}

// RouteSchedule holds the timing parameters for one route within one
// schedule version. There is exactly one row per (version, route) pair;
// setting it again overwrites rather than appends.
type RouteSchedule struct {
	VersionID        int64 `json:"version_id"`
	RouteID          int64 `json:"route_id"`
	FirstDeparture   int   `json:"first_departure"` // minute-of-day, strictly before LastDeparture
	LastDeparture    int   `json:"last_departure"`
	PeakFrequency    int   `json:"peak_frequency"` // minutes between departures, > 0
	OffPeakFrequency int   `json:"off_peak_frequency"`
	WeekendFrequency int   `json:"weekend_frequency"`
	PeakStartMorning int   `json:"peak_start_morning"` // each window: start strictly before end
	PeakEndMorning   int   `json:"peak_end_morning"`
	PeakStartEvening int   `json:"peak_start_evening"`
	PeakEndEvening   int   `json:"peak_end_evening"`
}
