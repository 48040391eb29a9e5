package service_test

import (
	"context"

	"github.com/citymetro/schedule-registry/internal/domain"
	"github.com/citymetro/schedule-registry/internal/repo"
)

// Hand-written test doubles for the repo interfaces, shared by all service
// tests in this package. A nil function field panics when called, so a test
// that wires only the calls it expects also asserts nothing else runs.

// ---- planners ---------------------------------------------------------------

type mockPlannerRepo struct {
	create        func(ctx context.Context, planner domain.Planner) (domain.Planner, error)
	get           func(ctx context.Context, principal domain.Principal) (domain.Planner, error)
	setAuthorized func(ctx context.Context, principal domain.Principal, authorized bool, date int, actor domain.Principal) error
}

func (m *mockPlannerRepo) Create(ctx context.Context, planner domain.Planner) (domain.Planner, error) {
	return m.create(ctx, planner)
}
func (m *mockPlannerRepo) Get(ctx context.Context, principal domain.Principal) (domain.Planner, error) {
	return m.get(ctx, principal)
}
func (m *mockPlannerRepo) SetAuthorized(ctx context.Context, principal domain.Principal, authorized bool, date int, actor domain.Principal) error {
	return m.setAuthorized(ctx, principal, authorized, date, actor)
}

var _ repo.PlannerRepo = (*mockPlannerRepo)(nil)

// ---- admin control ----------------------------------------------------------

type mockAdminRepo struct {
	get      func(ctx context.Context) (domain.AdminControl, error)
	ensure   func(ctx context.Context, principal domain.Principal) error
	transfer func(ctx context.Context, actor, newAdmin domain.Principal) error
}

func (m *mockAdminRepo) Get(ctx context.Context) (domain.AdminControl, error) {
	return m.get(ctx)
}
func (m *mockAdminRepo) Ensure(ctx context.Context, principal domain.Principal) error {
	return m.ensure(ctx, principal)
}
func (m *mockAdminRepo) Transfer(ctx context.Context, actor, newAdmin domain.Principal) error {
	return m.transfer(ctx, actor, newAdmin)
}

var _ repo.AdminRepo = (*mockAdminRepo)(nil)

// ---- routes -----------------------------------------------------------------

type mockRouteRepo struct {
	upsert func(ctx context.Context, route domain.Route) (domain.Route, error)
	get    func(ctx context.Context, id int64) (domain.Route, error)
}

func (m *mockRouteRepo) Upsert(ctx context.Context, route domain.Route) (domain.Route, error) {
	return m.upsert(ctx, route)
}
func (m *mockRouteRepo) Get(ctx context.Context, id int64) (domain.Route, error) {
	return m.get(ctx, id)
}

var _ repo.RouteRepo = (*mockRouteRepo)(nil)

// ---- schedule versions ------------------------------------------------------

type mockVersionRepo struct {
	create    func(ctx context.Context, version domain.ScheduleVersion) (domain.ScheduleVersion, error)
	get       func(ctx context.Context, id int64) (domain.ScheduleVersion, error)
	getActive func(ctx context.Context) (domain.ScheduleVersion, error)
	approve   func(ctx context.Context, id int64, approver domain.Principal, date int) error
	reject    func(ctx context.Context, id int64, actor domain.Principal) error
	activate  func(ctx context.Context, id int64, actor domain.Principal) error
}

func (m *mockVersionRepo) Create(ctx context.Context, version domain.ScheduleVersion) (domain.ScheduleVersion, error) {
	return m.create(ctx, version)
}
func (m *mockVersionRepo) Get(ctx context.Context, id int64) (domain.ScheduleVersion, error) {
	return m.get(ctx, id)
}
func (m *mockVersionRepo) GetActive(ctx context.Context) (domain.ScheduleVersion, error) {
	return m.getActive(ctx)
}
func (m *mockVersionRepo) Approve(ctx context.Context, id int64, approver domain.Principal, date int) error {
	return m.approve(ctx, id, approver, date)
}
func (m *mockVersionRepo) Reject(ctx context.Context, id int64, actor domain.Principal) error {
	return m.reject(ctx, id, actor)
}
func (m *mockVersionRepo) Activate(ctx context.Context, id int64, actor domain.Principal) error {
	return m.activate(ctx, id, actor)
}

var _ repo.VersionRepo = (*mockVersionRepo)(nil)

// ---- transitions ------------------------------------------------------------

type mockTransitionRepo struct {
	listByEntity func(ctx context.Context, kind, key string) ([]domain.TransitionRecord, error)
}

func (m *mockTransitionRepo) ListByEntity(ctx context.Context, kind, key string) ([]domain.TransitionRecord, error) {
	return m.listByEntity(ctx, kind, key)
}

var _ repo.TransitionRepo = (*mockTransitionRepo)(nil)

// ---- route schedules --------------------------------------------------------

type mockRouteScheduleRepo struct {
	set func(ctx context.Context, schedule domain.RouteSchedule) (domain.RouteSchedule, error)
	get func(ctx context.Context, versionID, routeID int64) (domain.RouteSchedule, error)
}

func (m *mockRouteScheduleRepo) Set(ctx context.Context, schedule domain.RouteSchedule) (domain.RouteSchedule, error) {
	return m.set(ctx, schedule)
}
func (m *mockRouteScheduleRepo) Get(ctx context.Context, versionID, routeID int64) (domain.RouteSchedule, error) {
	return m.get(ctx, versionID, routeID)
}

var _ repo.RouteScheduleRepo = (*mockRouteScheduleRepo)(nil)

// ---- departures -------------------------------------------------------------

type mockDepartureRepo struct {
	add func(ctx context.Context, departure domain.ScheduledDeparture) (domain.ScheduledDeparture, error)
	get func(ctx context.Context, versionID, routeID, sequenceID int64) (domain.ScheduledDeparture, error)
}

func (m *mockDepartureRepo) Add(ctx context.Context, departure domain.ScheduledDeparture) (domain.ScheduledDeparture, error) {
	return m.add(ctx, departure)
}
func (m *mockDepartureRepo) Get(ctx context.Context, versionID, routeID, sequenceID int64) (domain.ScheduledDeparture, error) {
	return m.get(ctx, versionID, routeID, sequenceID)
}

var _ repo.DepartureRepo = (*mockDepartureRepo)(nil)

// ---- adjustments ------------------------------------------------------------

type mockAdjustmentRepo struct {
	create       func(ctx context.Context, adjustment domain.ScheduleAdjustment) (domain.ScheduleAdjustment, error)
	get          func(ctx context.Context, id int64) (domain.ScheduleAdjustment, error)
	updateStatus func(ctx context.Context, id int64, status domain.AdjustmentStatus, actor domain.Principal) error
}

func (m *mockAdjustmentRepo) Create(ctx context.Context, adjustment domain.ScheduleAdjustment) (domain.ScheduleAdjustment, error) {
	return m.create(ctx, adjustment)
}
func (m *mockAdjustmentRepo) Get(ctx context.Context, id int64) (domain.ScheduleAdjustment, error) {
	return m.get(ctx, id)
}
func (m *mockAdjustmentRepo) UpdateStatus(ctx context.Context, id int64, status domain.AdjustmentStatus, actor domain.Principal) error {
	return m.updateStatus(ctx, id, status, actor)
}

var _ repo.AdjustmentRepo = (*mockAdjustmentRepo)(nil)

// ---- role fixtures ----------------------------------------------------------

// adminRepoFor returns a mockAdminRepo reporting admin as the current admin.
func adminRepoFor(admin domain.Principal) *mockAdminRepo {
	return &mockAdminRepo{
		get: func(context.Context) (domain.AdminControl, error) {
			return domain.AdminControl{Admin: admin}, nil
		},
	}
}

// plannerRepoWithAuthorized returns a mockPlannerRepo that knows a single
// authorized planner; every other principal is unknown.
func plannerRepoWithAuthorized(p domain.Principal) *mockPlannerRepo {
	return &mockPlannerRepo{
		get: func(_ context.Context, principal domain.Principal) (domain.Planner, error) {
			if principal == p {
				return domain.Planner{Principal: p, Name: "Jordan Li", Department: "Operations", Authorized: true}, nil
			}
			return domain.Planner{}, domain.ErrNotFound
		},
	}
}

// plannerRepoWithRevoked returns a mockPlannerRepo that knows a single
// registered but unauthorized planner.
func plannerRepoWithRevoked(p domain.Principal) *mockPlannerRepo {
	return &mockPlannerRepo{
		get: func(_ context.Context, principal domain.Principal) (domain.Planner, error) {
			if principal == p {
				return domain.Planner{Principal: p, Name: "Jordan Li", Department: "Operations", Authorized: false}, nil
			}
			return domain.Planner{}, domain.ErrNotFound
		},
	}
}
