package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/citymetro/schedule-registry/internal/domain"
	"github.com/citymetro/schedule-registry/internal/repo"
)

// AdjustmentService implements business logic for schedule adjustments:
// time-bounded operational overrides to a route's normal schedule,
// independent of the version lifecycle.
type AdjustmentService struct {
	adjustments repo.AdjustmentRepo
	routes      repo.RouteRepo
	planners    repo.PlannerRepo
	admins      repo.AdminRepo

	now func() time.Time
}

// NewAdjustmentService constructs an AdjustmentService backed by the provided repos.
func NewAdjustmentService(adjustments repo.AdjustmentRepo, routes repo.RouteRepo, planners repo.PlannerRepo, admins repo.AdminRepo) *AdjustmentService {
	return &AdjustmentService{
		adjustments: adjustments,
		routes:      routes,
		planners:    planners,
		admins:      admins,
		now:         time.Now,
	}
}

// Create records a new adjustment for a route. Authorized planners only.
// The route must exist (domain.ErrNotFound otherwise) and the date range
// must be strictly ordered (domain.ErrInvalidRange otherwise).
//
// The stored status is "active": a freshly created adjustment is immediately
// operative, with no proposed gate.
func (s *AdjustmentService) Create(ctx context.Context, actor domain.Principal, adjustment domain.ScheduleAdjustment) (domain.ScheduleAdjustment, error) {
	if err := requireAuthorizedPlanner(ctx, s.planners, actor); err != nil {
		return domain.ScheduleAdjustment{}, fmt.Errorf("service.AdjustmentService.Create: %w", err)
	}
	if _, err := s.routes.Get(ctx, adjustment.RouteID); err != nil {
		return domain.ScheduleAdjustment{}, fmt.Errorf("service.AdjustmentService.Create: %w", err)
	}
	if !adjustment.Type.Valid() {
		return domain.ScheduleAdjustment{}, fmt.Errorf("%w: unknown adjustment type %q", domain.ErrInvalidArgument, adjustment.Type)
	}
	if adjustment.StartDate >= adjustment.EndDate {
		return domain.ScheduleAdjustment{}, fmt.Errorf("%w: start date must be before end date", domain.ErrInvalidRange)
	}
	if strings.TrimSpace(adjustment.Reason) == "" {
		return domain.ScheduleAdjustment{}, fmt.Errorf("%w: reason is required", domain.ErrValidation)
	}

	adjustment.Status = domain.AdjustmentActive
	adjustment.CreatedBy = actor
	adjustment.CreationDate = dateInt(s.now())
	result, err := s.adjustments.Create(ctx, adjustment)
	if err != nil {
		return domain.ScheduleAdjustment{}, fmt.Errorf("service.AdjustmentService.Create: %w", err)
	}
	return result, nil
}

// UpdateStatus moves an adjustment to any defined status. Callable by the
// admin or any authorized planner. There is deliberately no transition
// table: dispatch staff toggle adjustments in either direction.
// Returns domain.ErrInvalidArgument for an undefined status and
// domain.ErrNotFound for an unknown id.
func (s *AdjustmentService) UpdateStatus(ctx context.Context, actor domain.Principal, id int64, status domain.AdjustmentStatus) error {
	if err := requireAdminOrAuthorizedPlanner(ctx, s.admins, s.planners, actor); err != nil {
		return fmt.Errorf("service.AdjustmentService.UpdateStatus: %w", err)
	}
	if !status.Valid() {
		return fmt.Errorf("%w: unknown adjustment status %q", domain.ErrInvalidArgument, status)
	}
	if err := s.adjustments.UpdateStatus(ctx, id, status, actor); err != nil {
		return fmt.Errorf("service.AdjustmentService.UpdateStatus: %w", err)
	}
	return nil
}

// Get returns a single adjustment by id.
// Returns domain.ErrNotFound for an unknown id.
func (s *AdjustmentService) Get(ctx context.Context, id int64) (domain.ScheduleAdjustment, error) {
	result, err := s.adjustments.Get(ctx, id)
	if err != nil {
		return domain.ScheduleAdjustment{}, fmt.Errorf("service.AdjustmentService.Get: %w", err)
	}
	return result, nil
}
