package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/citymetro/schedule-registry/internal/domain"
	"github.com/citymetro/schedule-registry/internal/middleware"
)

// ErrorResponse is the JSON envelope returned for every failed request.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine-readable code and a human-readable
// message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON serializes v with the given status. Encoding failures are
// swallowed: the status line is already on the wire by then.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a service error onto an HTTP status and error code, and
// counts the rejection on the metrics collector when one is wired.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status, code := http.StatusInternalServerError, "internal_error"
	switch {
	case errors.Is(err, domain.ErrNotAuthorized):
		status, code = http.StatusForbidden, "not_authorized"
	case errors.Is(err, domain.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrInvalidState):
		status, code = http.StatusConflict, "invalid_state"
	case errors.Is(err, domain.ErrInvalidRange):
		status, code = http.StatusUnprocessableEntity, "invalid_range"
	case errors.Is(err, domain.ErrInvalidArgument):
		status, code = http.StatusUnprocessableEntity, "invalid_argument"
	case errors.Is(err, domain.ErrValidation):
		status, code = http.StatusUnprocessableEntity, "validation_error"
	}

	if s.metrics != nil && status != http.StatusInternalServerError {
		s.metrics.OperationFailures.WithLabelValues(code).Inc()
	}
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: err.Error()}})
}

// badRequest rejects a request whose path or body could not be parsed.
func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: ErrorDetail{Code: "bad_request", Message: message}})
}

// requirePrincipal returns the caller principal set by the middleware, or
// writes 401 and reports false when the X-Principal header was absent.
func requirePrincipal(w http.ResponseWriter, r *http.Request) (domain.Principal, bool) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: ErrorDetail{
			Code:    "missing_principal",
			Message: "the " + middleware.PrincipalHeader + " header is required",
		}})
		return "", false
	}
	return p, true
}

// pathInt64 parses a numeric chi URL parameter.
func pathInt64(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

// decodeBody decodes the JSON request body into v, rejecting unknown fields
// so typos in field names fail loudly instead of zeroing values.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
