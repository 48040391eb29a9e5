package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citymetro/schedule-registry/internal/domain"
	"github.com/citymetro/schedule-registry/internal/handler"
)

// ---- POST /planners ---------------------------------------------------------

func TestRegisterPlanner_Created(t *testing.T) {
	m := &serverMocks{}
	m.planners.register = func(_ context.Context, p domain.Planner) (domain.Planner, error) {
		assert.Equal(t, domain.Principal("planner-1"), p.Principal, "principal must come from the header")
		assert.Equal(t, "Jordan Li", p.Name)
		return p, nil
	}
	h := newTestHandler(m)

	rec := doJSON(t, h, http.MethodPost, "/planners", "planner-1", handler.RegisterPlannerRequest{
		Name:       "Jordan Li",
		Department: "Network Planning",
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var body domain.Planner
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, domain.Principal("planner-1"), body.Principal)
}

func TestRegisterPlanner_MissingPrincipal(t *testing.T) {
	h := newTestHandler(&serverMocks{})

	rec := doJSON(t, h, http.MethodPost, "/planners", "", handler.RegisterPlannerRequest{
		Name:       "Jordan Li",
		Department: "Network Planning",
	})

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "missing_principal", decodeErrorCode(t, rec))
}

func TestRegisterPlanner_Duplicate(t *testing.T) {
	m := &serverMocks{}
	m.planners.register = func(_ context.Context, _ domain.Planner) (domain.Planner, error) {
		return domain.Planner{}, domain.ErrValidation
	}
	h := newTestHandler(m)

	rec := doJSON(t, h, http.MethodPost, "/planners", "planner-1", handler.RegisterPlannerRequest{
		Name:       "Jordan Li",
		Department: "Network Planning",
	})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", decodeErrorCode(t, rec))
}

func TestRegisterPlanner_UnknownBodyField(t *testing.T) {
	h := newTestHandler(&serverMocks{})

	rec := doJSON(t, h, http.MethodPost, "/planners", "planner-1", map[string]string{
		"name":      "Jordan Li",
		"dept_name": "typo'd field",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_request", decodeErrorCode(t, rec))
}

// ---- GET /planners/{principal} ----------------------------------------------

func TestGetPlanner_OK(t *testing.T) {
	m := &serverMocks{}
	m.planners.get = func(_ context.Context, principal domain.Principal) (domain.Planner, error) {
		return domain.Planner{Principal: principal, Name: "Jordan Li", Department: "Operations", Authorized: true}, nil
	}
	h := newTestHandler(m)

	rec := doJSON(t, h, http.MethodGet, "/planners/planner-1", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var body domain.Planner
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.Authorized)
}

func TestGetPlanner_NotFound(t *testing.T) {
	m := &serverMocks{}
	m.planners.get = func(_ context.Context, _ domain.Principal) (domain.Planner, error) {
		return domain.Planner{}, domain.ErrNotFound
	}
	h := newTestHandler(m)

	rec := doJSON(t, h, http.MethodGet, "/planners/nobody", "", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeErrorCode(t, rec))
}

// ---- POST /planners/{principal}/authorize -----------------------------------

func TestAuthorizePlanner_NoContent(t *testing.T) {
	m := &serverMocks{}
	m.planners.authorize = func(_ context.Context, actor, principal domain.Principal) error {
		assert.Equal(t, domain.Principal("admin-1"), actor)
		assert.Equal(t, domain.Principal("planner-1"), principal)
		return nil
	}
	h := newTestHandler(m)

	rec := doJSON(t, h, http.MethodPost, "/planners/planner-1/authorize", "admin-1", nil)

	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuthorizePlanner_Forbidden(t *testing.T) {
	m := &serverMocks{}
	m.planners.authorize = func(_ context.Context, _, _ domain.Principal) error {
		return domain.ErrNotAuthorized
	}
	h := newTestHandler(m)

	rec := doJSON(t, h, http.MethodPost, "/planners/planner-1/authorize", "intruder", nil)

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "not_authorized", decodeErrorCode(t, rec))
}

func TestRevokePlanner_NoContent(t *testing.T) {
	m := &serverMocks{}
	m.planners.revoke = func(_ context.Context, actor, principal domain.Principal) error {
		assert.Equal(t, domain.Principal("admin-1"), actor)
		assert.Equal(t, domain.Principal("planner-1"), principal)
		return nil
	}
	h := newTestHandler(m)

	rec := doJSON(t, h, http.MethodPost, "/planners/planner-1/revoke", "admin-1", nil)

	require.Equal(t, http.StatusNoContent, rec.Code)
}

// ---- POST /admin/transfer ---------------------------------------------------

func TestTransferAdmin_NoContent(t *testing.T) {
	m := &serverMocks{}
	m.planners.transferAdmin = func(_ context.Context, actor, newAdmin domain.Principal) error {
		assert.Equal(t, domain.Principal("admin-1"), actor)
		assert.Equal(t, domain.Principal("admin-2"), newAdmin)
		return nil
	}
	h := newTestHandler(m)

	rec := doJSON(t, h, http.MethodPost, "/admin/transfer", "admin-1", handler.TransferAdminRequest{
		NewAdmin: "admin-2",
	})

	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestTransferAdmin_MissingPrincipal(t *testing.T) {
	h := newTestHandler(&serverMocks{})

	rec := doJSON(t, h, http.MethodPost, "/admin/transfer", "", handler.TransferAdminRequest{
		NewAdmin: "admin-2",
	})

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
