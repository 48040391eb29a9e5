// Package service implements the business rules of the schedule registry.
//
// Every mutating operation applies its checks in a fixed order so callers can
// diagnose failures deterministically: authorization first, then existence of
// referenced entities, then domain invariants. A failed check returns a
// sentinel-wrapped error before any state is touched.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/citymetro/schedule-registry/internal/domain"
	"github.com/citymetro/schedule-registry/internal/repo"
)

// isAdmin reports whether actor is the current admin principal.
// A registry with no seeded admin row has no admin.
func isAdmin(ctx context.Context, admins repo.AdminRepo, actor domain.Principal) (bool, error) {
	control, err := admins.Get(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return control.Admin == actor, nil
}

// requireAdmin fails with domain.ErrNotAuthorized unless actor is the admin.
func requireAdmin(ctx context.Context, admins repo.AdminRepo, actor domain.Principal) error {
	ok, err := isAdmin(ctx, admins, actor)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("principal %q is not the admin: %w", actor, domain.ErrNotAuthorized)
	}
	return nil
}

// requireAuthorizedPlanner fails with domain.ErrNotAuthorized unless actor is
// a registered planner whose authorized flag is set. An unknown actor is an
// authorization failure, not a lookup failure: authorization is always the
// first check an operation makes.
func requireAuthorizedPlanner(ctx context.Context, planners repo.PlannerRepo, actor domain.Principal) error {
	planner, err := planners.Get(ctx, actor)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("principal %q is not a registered planner: %w", actor, domain.ErrNotAuthorized)
	}
	if err != nil {
		return err
	}
	if !planner.Authorized {
		return fmt.Errorf("planner %q is not authorized: %w", actor, domain.ErrNotAuthorized)
	}
	return nil
}

// requireAdminOrAuthorizedPlanner accepts either role.
func requireAdminOrAuthorizedPlanner(ctx context.Context, admins repo.AdminRepo, planners repo.PlannerRepo, actor domain.Principal) error {
	ok, err := isAdmin(ctx, admins, actor)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	return requireAuthorizedPlanner(ctx, planners, actor)
}

// dateInt renders t as a calendar-date integer in YYYYMMDD form.
func dateInt(t time.Time) int {
	y, m, d := t.UTC().Date()
	return y*10000 + int(m)*100 + d
}
