package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/citymetro/schedule-registry/internal/domain"
	"github.com/citymetro/schedule-registry/internal/repo"
)

// PlannerService implements the role registry and admin control: planner
// self-registration, admin-gated authorization, and admin transfer.
type PlannerService struct {
	planners repo.PlannerRepo
	admins   repo.AdminRepo

	// now is swapped out in tests to pin authorization dates.
	now func() time.Time
}

// NewPlannerService constructs a PlannerService backed by the provided repos.
func NewPlannerService(planners repo.PlannerRepo, admins repo.AdminRepo) *PlannerService {
	return &PlannerService{planners: planners, admins: admins, now: time.Now}
}

// Register creates a planner record for the calling principal with the
// authorized flag off. Any caller may self-register; no role is required.
// Returns domain.ErrValidation for a blank principal, name, or department,
// or when the principal is already registered.
func (s *PlannerService) Register(ctx context.Context, planner domain.Planner) (domain.Planner, error) {
	if strings.TrimSpace(string(planner.Principal)) == "" {
		return domain.Planner{}, fmt.Errorf("%w: principal is required", domain.ErrValidation)
	}
	if strings.TrimSpace(planner.Name) == "" {
		return domain.Planner{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(planner.Department) == "" {
		return domain.Planner{}, fmt.Errorf("%w: department is required", domain.ErrValidation)
	}

	result, err := s.planners.Create(ctx, planner)
	if err != nil {
		return domain.Planner{}, fmt.Errorf("service.PlannerService.Register: %w", err)
	}
	return result, nil
}

// Authorize sets the planner's authorized flag and stamps the authorization
// date. Admin only.
func (s *PlannerService) Authorize(ctx context.Context, actor, principal domain.Principal) error {
	if err := requireAdmin(ctx, s.admins, actor); err != nil {
		return fmt.Errorf("service.PlannerService.Authorize: %w", err)
	}
	if err := s.planners.SetAuthorized(ctx, principal, true, dateInt(s.now()), actor); err != nil {
		return fmt.Errorf("service.PlannerService.Authorize: %w", err)
	}
	return nil
}

// Revoke clears the planner's authorized flag. Admin only.
// The planner record survives; only the flag changes.
func (s *PlannerService) Revoke(ctx context.Context, actor, principal domain.Principal) error {
	if err := requireAdmin(ctx, s.admins, actor); err != nil {
		return fmt.Errorf("service.PlannerService.Revoke: %w", err)
	}
	if err := s.planners.SetAuthorized(ctx, principal, false, 0, actor); err != nil {
		return fmt.Errorf("service.PlannerService.Revoke: %w", err)
	}
	return nil
}

// TransferAdmin replaces the admin principal. Only the current admin may call
// it; the swap is atomic, so there is never a moment with zero or two admins.
func (s *PlannerService) TransferAdmin(ctx context.Context, actor, newAdmin domain.Principal) error {
	if err := requireAdmin(ctx, s.admins, actor); err != nil {
		return fmt.Errorf("service.PlannerService.TransferAdmin: %w", err)
	}
	if strings.TrimSpace(string(newAdmin)) == "" {
		return fmt.Errorf("service.PlannerService.TransferAdmin: %w: new admin principal is required", domain.ErrValidation)
	}
	if err := s.admins.Transfer(ctx, actor, newAdmin); err != nil {
		return fmt.Errorf("service.PlannerService.TransferAdmin: %w", err)
	}
	return nil
}

// Get returns a single planner record by principal.
// Returns domain.ErrNotFound for an unknown principal.
func (s *PlannerService) Get(ctx context.Context, principal domain.Principal) (domain.Planner, error) {
	result, err := s.planners.Get(ctx, principal)
	if err != nil {
		return domain.Planner{}, fmt.Errorf("service.PlannerService.Get: %w", err)
	}
	return result, nil
}
