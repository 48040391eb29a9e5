package handler

import (
	"net/http"

	"github.com/citymetro/schedule-registry/internal/domain"
)

// SetRouteDetailsRequest is the body for PUT /routes/{routeID}.
type SetRouteDetailsRequest struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Active bool   `json:"active"`
}

// SetRouteDetails handles PUT /routes/{routeID}.
// The operation is an upsert: a new id creates the route, an existing id
// overwrites its details.
func (s *Server) SetRouteDetails(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	routeID, err := pathInt64(r, "routeID")
	if err != nil {
		badRequest(w, "route id must be an integer")
		return
	}

	var body SetRouteDetailsRequest
	if err := decodeBody(r, &body); err != nil {
		badRequest(w, "invalid request body: "+err.Error())
		return
	}

	route, err := s.routes.SetDetails(r.Context(), actor, domain.Route{
		ID:     routeID,
		Name:   body.Name,
		Type:   body.Type,
		Active: body.Active,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, route)
}

// GetRoute handles GET /routes/{routeID}.
func (s *Server) GetRoute(w http.ResponseWriter, r *http.Request) {
	routeID, err := pathInt64(r, "routeID")
	if err != nil {
		badRequest(w, "route id must be an integer")
		return
	}

	route, err := s.routes.Get(r.Context(), routeID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, route)
}
