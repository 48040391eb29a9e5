package domain

// DayType classifies which service day a scheduled departure runs on.
type DayType string

const (
	DayWeekday  DayType = "weekday"
	DaySaturday DayType = "saturday"
	DaySunday   DayType = "sunday"
	DayHoliday  DayType = "holiday"
)

// Valid reports whether d is one of the defined day types.
func (d DayType) Valid() bool {
	switch d {
	case DayWeekday, DaySaturday, DaySunday, DayHoliday:
		return true
	}
	return false
}

// ScheduledDeparture is a single departure entry for a route within a
// schedule version. Sequence ids are assigned per (version, route) starting
// at 1 and are never reused; the table is append-only.
type ScheduledDeparture struct {
	VersionID     int64   `json:"version_id"`
	RouteID       int64   `json:"route_id"`
	SequenceID    int64   `json:"sequence_id"`
	DepartureTime int     `json:"departure_time"` // minute-of-day
	DayType       DayType `json:"day_type"`
	VehicleID     int64   `json:"vehicle_id"`
	DriverID      int64   `json:"driver_id"`
	IsExpress     bool    `json:"is_express"`
	Notes         string  `json:"notes,omitempty"`
}
