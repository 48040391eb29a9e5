package handler

import (
	"net/http"

	"github.com/citymetro/schedule-registry/internal/domain"
)

// SetRouteScheduleRequest is the body for
// PUT /schedule-versions/{versionID}/routes/{routeID}/schedule.
// All fields are minutes: times of day for departures and windows,
// minutes-between-departures for frequencies.
type SetRouteScheduleRequest struct {
	FirstDeparture   int `json:"first_departure"`
	LastDeparture    int `json:"last_departure"`
	PeakFrequency    int `json:"peak_frequency"`
	OffPeakFrequency int `json:"off_peak_frequency"`
	WeekendFrequency int `json:"weekend_frequency"`
	PeakStartMorning int `json:"peak_start_morning"`
	PeakEndMorning   int `json:"peak_end_morning"`
	PeakStartEvening int `json:"peak_start_evening"`
	PeakEndEvening   int `json:"peak_end_evening"`
}

// AddDepartureRequest is the body for
// POST /schedule-versions/{versionID}/routes/{routeID}/departures.
type AddDepartureRequest struct {
	DepartureTime int    `json:"departure_time"`
	DayType       string `json:"day_type"`
	VehicleID     int64  `json:"vehicle_id"`
	DriverID      int64  `json:"driver_id"`
	IsExpress     bool   `json:"is_express"`
	Notes         string `json:"notes"`
}

// SetRouteSchedule handles PUT /schedule-versions/{versionID}/routes/{routeID}/schedule.
func (s *Server) SetRouteSchedule(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	versionID, routeID, ok := versionRoutePath(w, r)
	if !ok {
		return
	}

	var body SetRouteScheduleRequest
	if err := decodeBody(r, &body); err != nil {
		badRequest(w, "invalid request body: "+err.Error())
		return
	}

	schedule, err := s.schedules.SetRouteSchedule(r.Context(), actor, domain.RouteSchedule{
		VersionID:        versionID,
		RouteID:          routeID,
		FirstDeparture:   body.FirstDeparture,
		LastDeparture:    body.LastDeparture,
		PeakFrequency:    body.PeakFrequency,
		OffPeakFrequency: body.OffPeakFrequency,
		WeekendFrequency: body.WeekendFrequency,
		PeakStartMorning: body.PeakStartMorning,
		PeakEndMorning:   body.PeakEndMorning,
		PeakStartEvening: body.PeakStartEvening,
		PeakEndEvening:   body.PeakEndEvening,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, schedule)
}

// GetRouteSchedule handles GET /schedule-versions/{versionID}/routes/{routeID}/schedule.
func (s *Server) GetRouteSchedule(w http.ResponseWriter, r *http.Request) {
	versionID, routeID, ok := versionRoutePath(w, r)
	if !ok {
		return
	}

	schedule, err := s.schedules.GetRouteSchedule(r.Context(), versionID, routeID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, schedule)
}

// AddDeparture handles POST /schedule-versions/{versionID}/routes/{routeID}/departures.
func (s *Server) AddDeparture(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	versionID, routeID, ok := versionRoutePath(w, r)
	if !ok {
		return
	}

	var body AddDepartureRequest
	if err := decodeBody(r, &body); err != nil {
		badRequest(w, "invalid request body: "+err.Error())
		return
	}

	departure, err := s.schedules.AddDeparture(r.Context(), actor, domain.ScheduledDeparture{
		VersionID:     versionID,
		RouteID:       routeID,
		DepartureTime: body.DepartureTime,
		DayType:       domain.DayType(body.DayType),
		VehicleID:     body.VehicleID,
		DriverID:      body.DriverID,
		IsExpress:     body.IsExpress,
		Notes:         body.Notes,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, departure)
}

// GetDeparture handles GET /schedule-versions/{versionID}/routes/{routeID}/departures/{sequenceID}.
func (s *Server) GetDeparture(w http.ResponseWriter, r *http.Request) {
	versionID, routeID, ok := versionRoutePath(w, r)
	if !ok {
		return
	}
	sequenceID, err := pathInt64(r, "sequenceID")
	if err != nil {
		badRequest(w, "sequence id must be an integer")
		return
	}

	departure, err := s.schedules.GetDeparture(r.Context(), versionID, routeID, sequenceID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, departure)
}

// versionRoutePath parses the {versionID}/{routeID} pair shared by the
// timing-data routes, writing 400 on the first malformed parameter.
func versionRoutePath(w http.ResponseWriter, r *http.Request) (versionID, routeID int64, ok bool) {
	versionID, err := pathInt64(r, "versionID")
	if err != nil {
		badRequest(w, "version id must be an integer")
		return 0, 0, false
	}
	routeID, err = pathInt64(r, "routeID")
	if err != nil {
		badRequest(w, "route id must be an integer")
		return 0, 0, false
	}
	return versionID, routeID, true
}
