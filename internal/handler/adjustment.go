package handler

import (
	"net/http"

	"github.com/citymetro/schedule-registry/internal/domain"
)

// CreateAdjustmentRequest is the body for POST /adjustments.
// Dates are calendar-date integers in YYYYMMDD form.
type CreateAdjustmentRequest struct {
	RouteID   int64  `json:"route_id"`
	Type      string `json:"type"`
	StartDate int    `json:"start_date"`
	EndDate   int    `json:"end_date"`
	Reason    string `json:"reason"`
}

// UpdateAdjustmentStatusRequest is the body for PUT /adjustments/{adjustmentID}/status.
type UpdateAdjustmentStatusRequest struct {
	Status string `json:"status"`
}

// CreateAdjustment handles POST /adjustments.
func (s *Server) CreateAdjustment(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var body CreateAdjustmentRequest
	if err := decodeBody(r, &body); err != nil {
		badRequest(w, "invalid request body: "+err.Error())
		return
	}

	created, err := s.adjustments.Create(r.Context(), actor, domain.ScheduleAdjustment{
		RouteID:   body.RouteID,
		Type:      domain.AdjustmentType(body.Type),
		StartDate: body.StartDate,
		EndDate:   body.EndDate,
		Reason:    body.Reason,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// GetAdjustment handles GET /adjustments/{adjustmentID}.
func (s *Server) GetAdjustment(w http.ResponseWriter, r *http.Request) {
	adjustmentID, err := pathInt64(r, "adjustmentID")
	if err != nil {
		badRequest(w, "adjustment id must be an integer")
		return
	}

	adjustment, err := s.adjustments.Get(r.Context(), adjustmentID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, adjustment)
}

// UpdateAdjustmentStatus handles PUT /adjustments/{adjustmentID}/status.
func (s *Server) UpdateAdjustmentStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	adjustmentID, err := pathInt64(r, "adjustmentID")
	if err != nil {
		badRequest(w, "adjustment id must be an integer")
		return
	}

	var body UpdateAdjustmentStatusRequest
	if err := decodeBody(r, &body); err != nil {
		badRequest(w, "invalid request body: "+err.Error())
		return
	}

	if err := s.adjustments.UpdateStatus(r.Context(), actor, adjustmentID, domain.AdjustmentStatus(body.Status)); err != nil {
		s.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
