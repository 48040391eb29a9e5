package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/citymetro/schedule-registry/internal/domain"
)

// RegisterPlannerRequest is the body for POST /planners. The principal comes
// from the X-Principal header, not the body: callers register themselves.
type RegisterPlannerRequest struct {
	Name       string `json:"name"`
	Department string `json:"department"`
}

// TransferAdminRequest is the body for POST /admin/transfer.
type TransferAdminRequest struct {
	NewAdmin string `json:"new_admin"`
}

// RegisterPlanner handles POST /planners.
func (s *Server) RegisterPlanner(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var body RegisterPlannerRequest
	if err := decodeBody(r, &body); err != nil {
		badRequest(w, "invalid request body: "+err.Error())
		return
	}

	created, err := s.planners.Register(r.Context(), domain.Planner{
		Principal:  actor,
		Name:       body.Name,
		Department: body.Department,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// GetPlanner handles GET /planners/{principal}.
func (s *Server) GetPlanner(w http.ResponseWriter, r *http.Request) {
	principal := domain.Principal(chi.URLParam(r, "principal"))

	planner, err := s.planners.Get(r.Context(), principal)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, planner)
}

// AuthorizePlanner handles POST /planners/{principal}/authorize.
func (s *Server) AuthorizePlanner(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	principal := domain.Principal(chi.URLParam(r, "principal"))

	if err := s.planners.Authorize(r.Context(), actor, principal); err != nil {
		s.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RevokePlanner handles POST /planners/{principal}/revoke.
func (s *Server) RevokePlanner(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	principal := domain.Principal(chi.URLParam(r, "principal"))

	if err := s.planners.Revoke(r.Context(), actor, principal); err != nil {
		s.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// TransferAdmin handles POST /admin/transfer.
func (s *Server) TransferAdmin(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var body TransferAdminRequest
	if err := decodeBody(r, &body); err != nil {
		badRequest(w, "invalid request body: "+err.Error())
		return
	}

	if err := s.planners.TransferAdmin(r.Context(), actor, domain.Principal(body.NewAdmin)); err != nil {
		s.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
