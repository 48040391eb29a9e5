// Package handler implements the HTTP handlers for the schedule registry API.
// All handlers are methods on Server, split into resource-specific files
// (planner.go, version.go, etc.) but sharing the same Server struct so they
// can access its dependencies.
package handler

import (
	"context"

	"github.com/go-chi/chi/v5"

	"github.com/citymetro/schedule-registry/internal/domain"
	"github.com/citymetro/schedule-registry/internal/metrics"
)

// PlannerServicer defines the business operations the planner handlers
// depend on. Defining the interface here (in the consumer package) follows
// the Go convention: "accept interfaces, return concrete types". It lets
// handler tests inject a mock without touching the database or service layer.
type PlannerServicer interface {
	Register(ctx context.Context, planner domain.Planner) (domain.Planner, error)
	Authorize(ctx context.Context, actor, principal domain.Principal) error
	Revoke(ctx context.Context, actor, principal domain.Principal) error
	TransferAdmin(ctx context.Context, actor, newAdmin domain.Principal) error
	Get(ctx context.Context, principal domain.Principal) (domain.Planner, error)
}

// RouteServicer defines the business operations the route handlers depend on.
type RouteServicer interface {
	SetDetails(ctx context.Context, actor domain.Principal, route domain.Route) (domain.Route, error)
	Get(ctx context.Context, id int64) (domain.Route, error)
}

// VersionServicer defines the business operations the schedule-version
// handlers depend on.
type VersionServicer interface {
	Create(ctx context.Context, actor domain.Principal, version domain.ScheduleVersion) (domain.ScheduleVersion, error)
	Approve(ctx context.Context, actor domain.Principal, id int64) error
	Reject(ctx context.Context, actor domain.Principal, id int64) error
	Activate(ctx context.Context, actor domain.Principal, id int64) error
	Get(ctx context.Context, id int64) (domain.ScheduleVersion, error)
	GetActive(ctx context.Context) (domain.ScheduleVersion, error)
	History(ctx context.Context, id int64) ([]domain.TransitionRecord, error)
}

// ScheduleServicer defines the business operations the timing-data handlers
// depend on.
type ScheduleServicer interface {
	SetRouteSchedule(ctx context.Context, actor domain.Principal, schedule domain.RouteSchedule) (domain.RouteSchedule, error)
	GetRouteSchedule(ctx context.Context, versionID, routeID int64) (domain.RouteSchedule, error)
	AddDeparture(ctx context.Context, actor domain.Principal, departure domain.ScheduledDeparture) (domain.ScheduledDeparture, error)
	GetDeparture(ctx context.Context, versionID, routeID, sequenceID int64) (domain.ScheduledDeparture, error)
}

// AdjustmentServicer defines the business operations the adjustment handlers
// depend on.
type AdjustmentServicer interface {
	Create(ctx context.Context, actor domain.Principal, adjustment domain.ScheduleAdjustment) (domain.ScheduleAdjustment, error)
	UpdateStatus(ctx context.Context, actor domain.Principal, id int64, status domain.AdjustmentStatus) error
	Get(ctx context.Context, id int64) (domain.ScheduleAdjustment, error)
}

// Server holds the dependencies shared by every handler method.
// The metrics collector may be nil (handler tests don't need one).
type Server struct {
	planners    PlannerServicer
	routes      RouteServicer
	versions    VersionServicer
	schedules   ScheduleServicer
	adjustments AdjustmentServicer
	metrics     *metrics.Collector
}

// NewServer constructs the Server with all its dependencies.
func NewServer(planners PlannerServicer, routes RouteServicer, versions VersionServicer, schedules ScheduleServicer, adjustments AdjustmentServicer, collector *metrics.Collector) *Server {
	return &Server{
		planners:    planners,
		routes:      routes,
		versions:    versions,
		schedules:   schedules,
		adjustments: adjustments,
		metrics:     collector,
	}
}

// Routes returns the chi router for the full API surface.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Post("/planners", s.RegisterPlanner)
	r.Get("/planners/{principal}", s.GetPlanner)
	r.Post("/planners/{principal}/authorize", s.AuthorizePlanner)
	r.Post("/planners/{principal}/revoke", s.RevokePlanner)
	r.Post("/admin/transfer", s.TransferAdmin)

	r.Put("/routes/{routeID}", s.SetRouteDetails)
	r.Get("/routes/{routeID}", s.GetRoute)

	r.Post("/schedule-versions", s.CreateVersion)
	r.Get("/schedule-versions/active", s.GetActiveVersion)
	r.Get("/schedule-versions/{versionID}", s.GetVersion)
	r.Get("/schedule-versions/{versionID}/history", s.GetVersionHistory)
	r.Post("/schedule-versions/{versionID}/approve", s.ApproveVersion)
	r.Post("/schedule-versions/{versionID}/reject", s.RejectVersion)
	r.Post("/schedule-versions/{versionID}/activate", s.ActivateVersion)

	r.Put("/schedule-versions/{versionID}/routes/{routeID}/schedule", s.SetRouteSchedule)
	r.Get("/schedule-versions/{versionID}/routes/{routeID}/schedule", s.GetRouteSchedule)
	r.Post("/schedule-versions/{versionID}/routes/{routeID}/departures", s.AddDeparture)
	r.Get("/schedule-versions/{versionID}/routes/{routeID}/departures/{sequenceID}", s.GetDeparture)

	r.Post("/adjustments", s.CreateAdjustment)
	r.Get("/adjustments/{adjustmentID}", s.GetAdjustment)
	r.Put("/adjustments/{adjustmentID}/status", s.UpdateAdjustmentStatus)

	return r
}
