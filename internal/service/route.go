package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/citymetro/schedule-registry/internal/domain"
	"github.com/citymetro/schedule-registry/internal/repo"
)

// RouteService implements business logic for the route catalog.
type RouteService struct {
	routes   repo.RouteRepo
	planners repo.PlannerRepo
	admins   repo.AdminRepo
}

// NewRouteService constructs a RouteService backed by the provided repos.
func NewRouteService(routes repo.RouteRepo, planners repo.PlannerRepo, admins repo.AdminRepo) *RouteService {
	return &RouteService{routes: routes, planners: planners, admins: admins}
}

// SetDetails creates or overwrites the route with the given id.
// Callable by the admin or any authorized planner.
func (s *RouteService) SetDetails(ctx context.Context, actor domain.Principal, route domain.Route) (domain.Route, error) {
	if err := requireAdminOrAuthorizedPlanner(ctx, s.admins, s.planners, actor); err != nil {
		return domain.Route{}, fmt.Errorf("service.RouteService.SetDetails: %w", err)
	}
	if err := validateRoute(route); err != nil {
		return domain.Route{}, err
	}
	result, err := s.routes.Upsert(ctx, route)
	if err != nil {
		return domain.Route{}, fmt.Errorf("service.RouteService.SetDetails: %w", err)
	}
	return result, nil
}

// Get returns a single route by id.
// Returns domain.ErrNotFound for an unknown id.
func (s *RouteService) Get(ctx context.Context, id int64) (domain.Route, error) {
	result, err := s.routes.Get(ctx, id)
	if err != nil {
		return domain.Route{}, fmt.Errorf("service.RouteService.Get: %w", err)
	}
	return result, nil
}

// validateRoute enforces the catalog's field rules.
func validateRoute(route domain.Route) error {
	if route.ID <= 0 {
		return fmt.Errorf("%w: route id must be positive", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(route.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(route.Type) == "" {
		return fmt.Errorf("%w: type is required", domain.ErrValidation)
	}
	return nil
}
