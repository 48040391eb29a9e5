package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/citymetro/schedule-registry/internal/domain"
	"github.com/citymetro/schedule-registry/internal/handler"
	"github.com/citymetro/schedule-registry/internal/middleware"
)

// Hand-written test doubles for the servicer interfaces. A nil function
// field panics when called, so each test wires only the calls it expects.

type mockPlannerServicer struct {
	register      func(ctx context.Context, planner domain.Planner) (domain.Planner, error)
	authorize     func(ctx context.Context, actor, principal domain.Principal) error
	revoke        func(ctx context.Context, actor, principal domain.Principal) error
	transferAdmin func(ctx context.Context, actor, newAdmin domain.Principal) error
	get           func(ctx context.Context, principal domain.Principal) (domain.Planner, error)
}

func (m *mockPlannerServicer) Register(ctx context.Context, planner domain.Planner) (domain.Planner, error) {
	return m.register(ctx, planner)
}
func (m *mockPlannerServicer) Authorize(ctx context.Context, actor, principal domain.Principal) error {
	return m.authorize(ctx, actor, principal)
}
func (m *mockPlannerServicer) Revoke(ctx context.Context, actor, principal domain.Principal) error {
	return m.revoke(ctx, actor, principal)
}
func (m *mockPlannerServicer) TransferAdmin(ctx context.Context, actor, newAdmin domain.Principal) error {
	return m.transferAdmin(ctx, actor, newAdmin)
}
func (m *mockPlannerServicer) Get(ctx context.Context, principal domain.Principal) (domain.Planner, error) {
	return m.get(ctx, principal)
}

var _ handler.PlannerServicer = (*mockPlannerServicer)(nil)

type mockRouteServicer struct {
	setDetails func(ctx context.Context, actor domain.Principal, route domain.Route) (domain.Route, error)
	get        func(ctx context.Context, id int64) (domain.Route, error)
}

func (m *mockRouteServicer) SetDetails(ctx context.Context, actor domain.Principal, route domain.Route) (domain.Route, error) {
	return m.setDetails(ctx, actor, route)
}
func (m *mockRouteServicer) Get(ctx context.Context, id int64) (domain.Route, error) {
	return m.get(ctx, id)
}

var _ handler.RouteServicer = (*mockRouteServicer)(nil)

type mockVersionServicer struct {
	create    func(ctx context.Context, actor domain.Principal, version domain.ScheduleVersion) (domain.ScheduleVersion, error)
	approve   func(ctx context.Context, actor domain.Principal, id int64) error
	reject    func(ctx context.Context, actor domain.Principal, id int64) error
	activate  func(ctx context.Context, actor domain.Principal, id int64) error
	get       func(ctx context.Context, id int64) (domain.ScheduleVersion, error)
	getActive func(ctx context.Context) (domain.ScheduleVersion, error)
	history   func(ctx context.Context, id int64) ([]domain.TransitionRecord, error)
}

func (m *mockVersionServicer) Create(ctx context.Context, actor domain.Principal, version domain.ScheduleVersion) (domain.ScheduleVersion, error) {
	return m.create(ctx, actor, version)
}
func (m *mockVersionServicer) Approve(ctx context.Context, actor domain.Principal, id int64) error {
	return m.approve(ctx, actor, id)
}
func (m *mockVersionServicer) Reject(ctx context.Context, actor domain.Principal, id int64) error {
	return m.reject(ctx, actor, id)
}
func (m *mockVersionServicer) Activate(ctx context.Context, actor domain.Principal, id int64) error {
	return m.activate(ctx, actor, id)
}
func (m *mockVersionServicer) Get(ctx context.Context, id int64) (domain.ScheduleVersion, error) {
	return m.get(ctx, id)
}
func (m *mockVersionServicer) GetActive(ctx context.Context) (domain.ScheduleVersion, error) {
	return m.getActive(ctx)
}
func (m *mockVersionServicer) History(ctx context.Context, id int64) ([]domain.TransitionRecord, error) {
	return m.history(ctx, id)
}

var _ handler.VersionServicer = (*mockVersionServicer)(nil)

type mockScheduleServicer struct {
	setRouteSchedule func(ctx context.Context, actor domain.Principal, schedule domain.RouteSchedule) (domain.RouteSchedule, error)
	getRouteSchedule func(ctx context.Context, versionID, routeID int64) (domain.RouteSchedule, error)
	addDeparture     func(ctx context.Context, actor domain.Principal, departure domain.ScheduledDeparture) (domain.ScheduledDeparture, error)
	getDeparture     func(ctx context.Context, versionID, routeID, sequenceID int64) (domain.ScheduledDeparture, error)
}

func (m *mockScheduleServicer) SetRouteSchedule(ctx context.Context, actor domain.Principal, schedule domain.RouteSchedule) (domain.RouteSchedule, error) {
	return m.setRouteSchedule(ctx, actor, schedule)
}
func (m *mockScheduleServicer) GetRouteSchedule(ctx context.Context, versionID, routeID int64) (domain.RouteSchedule, error) {
	return m.getRouteSchedule(ctx, versionID, routeID)
}
func (m *mockScheduleServicer) AddDeparture(ctx context.Context, actor domain.Principal, departure domain.ScheduledDeparture) (domain.ScheduledDeparture, error) {
	return m.addDeparture(ctx, actor, departure)
}
func (m *mockScheduleServicer) GetDeparture(ctx context.Context, versionID, routeID, sequenceID int64) (domain.ScheduledDeparture, error) {
	return m.getDeparture(ctx, versionID, routeID, sequenceID)
}

var _ handler.ScheduleServicer = (*mockScheduleServicer)(nil)

type mockAdjustmentServicer struct {
	create       func(ctx context.Context, actor domain.Principal, adjustment domain.ScheduleAdjustment) (domain.ScheduleAdjustment, error)
	updateStatus func(ctx context.Context, actor domain.Principal, id int64, status domain.AdjustmentStatus) error
	get          func(ctx context.Context, id int64) (domain.ScheduleAdjustment, error)
}

func (m *mockAdjustmentServicer) Create(ctx context.Context, actor domain.Principal, adjustment domain.ScheduleAdjustment) (domain.ScheduleAdjustment, error) {
	return m.create(ctx, actor, adjustment)
}
func (m *mockAdjustmentServicer) UpdateStatus(ctx context.Context, actor domain.Principal, id int64, status domain.AdjustmentStatus) error {
	return m.updateStatus(ctx, actor, id, status)
}
func (m *mockAdjustmentServicer) Get(ctx context.Context, id int64) (domain.ScheduleAdjustment, error) {
	return m.get(ctx, id)
}

var _ handler.AdjustmentServicer = (*mockAdjustmentServicer)(nil)

// serverMocks bundles one mock per servicer; zero values work for endpoints
// the test never hits.
type serverMocks struct {
	planners    mockPlannerServicer
	routes      mockRouteServicer
	versions    mockVersionServicer
	schedules   mockScheduleServicer
	adjustments mockAdjustmentServicer
}

// newTestHandler builds the full router, wrapped in the principal extractor
// the way cmd/api wires it, so X-Principal headers behave as in production.
// No metrics collector: handlers must tolerate a nil one.
func newTestHandler(m *serverMocks) http.Handler {
	srv := handler.NewServer(&m.planners, &m.routes, &m.versions, &m.schedules, &m.adjustments, nil)
	return middleware.NewPrincipalExtractor()(srv.Routes())
}

// doJSON performs a request with an optional JSON body and principal header.
func doJSON(t *testing.T, h http.Handler, method, path, principal string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if principal != "" {
		req.Header.Set(middleware.PrincipalHeader, principal)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decodeErrorCode extracts the machine-readable error code from a failed
// response body.
func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error.Code
}
