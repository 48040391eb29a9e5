package handler

import (
	"context"
	"net/http"

	"github.com/citymetro/schedule-registry/internal/domain"
)

// CreateVersionRequest is the body for POST /schedule-versions.
// Dates are calendar-date integers in YYYYMMDD form.
type CreateVersionRequest struct {
	Name          string `json:"name"`
	EffectiveDate int    `json:"effective_date"`
	ExpiryDate    int    `json:"expiry_date"`
}

// CreateVersion handles POST /schedule-versions.
func (s *Server) CreateVersion(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var body CreateVersionRequest
	if err := decodeBody(r, &body); err != nil {
		badRequest(w, "invalid request body: "+err.Error())
		return
	}

	created, err := s.versions.Create(r.Context(), actor, domain.ScheduleVersion{
		Name:          body.Name,
		EffectiveDate: body.EffectiveDate,
		ExpiryDate:    body.ExpiryDate,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// GetVersion handles GET /schedule-versions/{versionID}.
func (s *Server) GetVersion(w http.ResponseWriter, r *http.Request) {
	versionID, err := pathInt64(r, "versionID")
	if err != nil {
		badRequest(w, "version id must be an integer")
		return
	}

	version, err := s.versions.Get(r.Context(), versionID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, version)
}

// GetActiveVersion handles GET /schedule-versions/active.
// Returns 404 when no version has been activated yet.
func (s *Server) GetActiveVersion(w http.ResponseWriter, r *http.Request) {
	version, err := s.versions.GetActive(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, version)
}

// GetVersionHistory handles GET /schedule-versions/{versionID}/history.
func (s *Server) GetVersionHistory(w http.ResponseWriter, r *http.Request) {
	versionID, err := pathInt64(r, "versionID")
	if err != nil {
		badRequest(w, "version id must be an integer")
		return
	}

	history, err := s.versions.History(r.Context(), versionID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, history)
}

// ApproveVersion handles POST /schedule-versions/{versionID}/approve.
func (s *Server) ApproveVersion(w http.ResponseWriter, r *http.Request) {
	s.versionTransition(w, r, s.versions.Approve)
}

// RejectVersion handles POST /schedule-versions/{versionID}/reject.
func (s *Server) RejectVersion(w http.ResponseWriter, r *http.Request) {
	s.versionTransition(w, r, s.versions.Reject)
}

// ActivateVersion handles POST /schedule-versions/{versionID}/activate.
func (s *Server) ActivateVersion(w http.ResponseWriter, r *http.Request) {
	s.versionTransition(w, r, s.versions.Activate)
}

// versionTransition is the shared shape of the three admin lifecycle
// endpoints: principal, path id, transition call, 204.
func (s *Server) versionTransition(w http.ResponseWriter, r *http.Request, transition func(ctx context.Context, actor domain.Principal, id int64) error) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	versionID, err := pathInt64(r, "versionID")
	if err != nil {
		badRequest(w, "version id must be an integer")
		return
	}

	if err := transition(r.Context(), actor, versionID); err != nil {
		s.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
