package service

import (
	"context"
	"fmt"

	"github.com/citymetro/schedule-registry/internal/domain"
	"github.com/citymetro/schedule-registry/internal/repo"
)

// ScheduleService implements business logic for the timing data attached to
// a schedule version: per-route timing parameters and scheduled departures.
// Both tables are writable only while the owning version is still draft or
// approved; activation freezes them.
type ScheduleService struct {
	versions   repo.VersionRepo
	routes     repo.RouteRepo
	schedules  repo.RouteScheduleRepo
	departures repo.DepartureRepo
	planners   repo.PlannerRepo
	admins     repo.AdminRepo
}

// NewScheduleService constructs a ScheduleService backed by the provided repos.
func NewScheduleService(versions repo.VersionRepo, routes repo.RouteRepo, schedules repo.RouteScheduleRepo, departures repo.DepartureRepo, planners repo.PlannerRepo, admins repo.AdminRepo) *ScheduleService {
	return &ScheduleService{
		versions:   versions,
		routes:     routes,
		schedules:  schedules,
		departures: departures,
		planners:   planners,
		admins:     admins,
	}
}

// SetRouteSchedule creates or overwrites the timing parameters for one route
// within one version. Authorized planners only; the version must exist and
// still be mutable (draft or approved), and the route must exist.
func (s *ScheduleService) SetRouteSchedule(ctx context.Context, actor domain.Principal, schedule domain.RouteSchedule) (domain.RouteSchedule, error) {
	if err := s.requireMutableVersion(ctx, actor, schedule.VersionID, schedule.RouteID); err != nil {
		return domain.RouteSchedule{}, fmt.Errorf("service.ScheduleService.SetRouteSchedule: %w", err)
	}
	if err := validateRouteSchedule(schedule); err != nil {
		return domain.RouteSchedule{}, err
	}
	result, err := s.schedules.Set(ctx, schedule)
	if err != nil {
		return domain.RouteSchedule{}, fmt.Errorf("service.ScheduleService.SetRouteSchedule: %w", err)
	}
	return result, nil
}

// GetRouteSchedule returns the timing parameters for (versionID, routeID).
// Returns domain.ErrNotFound if no row exists for that pair.
func (s *ScheduleService) GetRouteSchedule(ctx context.Context, versionID, routeID int64) (domain.RouteSchedule, error) {
	result, err := s.schedules.Get(ctx, versionID, routeID)
	if err != nil {
		return domain.RouteSchedule{}, fmt.Errorf("service.ScheduleService.GetRouteSchedule: %w", err)
	}
	return result, nil
}

// AddDeparture appends a departure entry for one route within one version,
// assigning the next sequence id for that (version, route) pair. Same
// authorization and version-mutability gating as SetRouteSchedule.
func (s *ScheduleService) AddDeparture(ctx context.Context, actor domain.Principal, departure domain.ScheduledDeparture) (domain.ScheduledDeparture, error) {
	if err := s.requireMutableVersion(ctx, actor, departure.VersionID, departure.RouteID); err != nil {
		return domain.ScheduledDeparture{}, fmt.Errorf("service.ScheduleService.AddDeparture: %w", err)
	}
	if err := validateDeparture(departure); err != nil {
		return domain.ScheduledDeparture{}, err
	}
	result, err := s.departures.Add(ctx, departure)
	if err != nil {
		return domain.ScheduledDeparture{}, fmt.Errorf("service.ScheduleService.AddDeparture: %w", err)
	}
	return result, nil
}

// GetDeparture returns a departure by its (version, route, sequence) key.
// Returns domain.ErrNotFound if no such entry exists.
func (s *ScheduleService) GetDeparture(ctx context.Context, versionID, routeID, sequenceID int64) (domain.ScheduledDeparture, error) {
	result, err := s.departures.Get(ctx, versionID, routeID, sequenceID)
	if err != nil {
		return domain.ScheduledDeparture{}, fmt.Errorf("service.ScheduleService.GetDeparture: %w", err)
	}
	return result, nil
}

// requireMutableVersion runs the shared write gate for timing data, in the
// fixed order: authorization, version existence and mutability, route
// existence.
func (s *ScheduleService) requireMutableVersion(ctx context.Context, actor domain.Principal, versionID, routeID int64) error {
	if err := requireAuthorizedPlanner(ctx, s.planners, actor); err != nil {
		return err
	}
	version, err := s.versions.Get(ctx, versionID)
	if err != nil {
		return err
	}
	if !version.Status.Mutable() {
		return fmt.Errorf("version %d is %s: %w", versionID, version.Status, domain.ErrInvalidState)
	}
	if _, err := s.routes.Get(ctx, routeID); err != nil {
		return err
	}
	return nil
}

// validateRouteSchedule enforces the timing invariants:
// first departure strictly before last, all frequencies positive, both peak
// windows strictly ordered, and every minute field within 0–1439.
func validateRouteSchedule(schedule domain.RouteSchedule) error {
	minutes := map[string]int{
		"first_departure":    schedule.FirstDeparture,
		"last_departure":     schedule.LastDeparture,
		"peak_start_morning": schedule.PeakStartMorning,
		"peak_end_morning":   schedule.PeakEndMorning,
		"peak_start_evening": schedule.PeakStartEvening,
		"peak_end_evening":   schedule.PeakEndEvening,
	}
	for field, m := range minutes {
		if !domain.ValidMinute(m) {
			return fmt.Errorf("%w: %s must be a minute-of-day (0-1439)", domain.ErrInvalidArgument, field)
		}
	}
	if schedule.FirstDeparture >= schedule.LastDeparture {
		return fmt.Errorf("%w: first departure must be before last departure", domain.ErrInvalidRange)
	}
	if schedule.PeakFrequency <= 0 || schedule.OffPeakFrequency <= 0 || schedule.WeekendFrequency <= 0 {
		return fmt.Errorf("%w: frequencies must be positive", domain.ErrInvalidArgument)
	}
	if schedule.PeakStartMorning >= schedule.PeakEndMorning {
		return fmt.Errorf("%w: morning peak window must start before it ends", domain.ErrInvalidRange)
	}
	if schedule.PeakStartEvening >= schedule.PeakEndEvening {
		return fmt.Errorf("%w: evening peak window must start before it ends", domain.ErrInvalidRange)
	}
	return nil
}

// validateDeparture enforces the departure field rules.
func validateDeparture(departure domain.ScheduledDeparture) error {
	if !domain.ValidMinute(departure.DepartureTime) {
		return fmt.Errorf("%w: departure time must be a minute-of-day (0-1439)", domain.ErrInvalidArgument)
	}
	if !departure.DayType.Valid() {
		return fmt.Errorf("%w: unknown day type %q", domain.ErrInvalidArgument, departure.DayType)
	}
	return nil
}
