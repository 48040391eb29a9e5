package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/citymetro/schedule-registry/internal/domain"
	"github.com/citymetro/schedule-registry/internal/repo"
)

// VersionService implements the schedule-version lifecycle: planners draft
// versions, the admin approves and activates them, and activation supersedes
// the previous active version atomically.
type VersionService struct {
	versions    repo.VersionRepo
	transitions repo.TransitionRepo
	planners    repo.PlannerRepo
	admins      repo.AdminRepo

	now func() time.Time
}

// NewVersionService constructs a VersionService backed by the provided repos.
func NewVersionService(versions repo.VersionRepo, transitions repo.TransitionRepo, planners repo.PlannerRepo, admins repo.AdminRepo) *VersionService {
	return &VersionService{
		versions:    versions,
		transitions: transitions,
		planners:    planners,
		admins:      admins,
		now:         time.Now,
	}
}

// Create drafts a new schedule version. Authorized planners only.
// Returns domain.ErrInvalidRange unless effective date < expiry date.
func (s *VersionService) Create(ctx context.Context, actor domain.Principal, version domain.ScheduleVersion) (domain.ScheduleVersion, error) {
	if err := requireAuthorizedPlanner(ctx, s.planners, actor); err != nil {
		return domain.ScheduleVersion{}, fmt.Errorf("service.VersionService.Create: %w", err)
	}
	if strings.TrimSpace(version.Name) == "" {
		return domain.ScheduleVersion{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if version.EffectiveDate >= version.ExpiryDate {
		return domain.ScheduleVersion{}, fmt.Errorf("%w: effective date must be before expiry date", domain.ErrInvalidRange)
	}

	version.CreatedBy = actor
	version.CreationDate = dateInt(s.now())
	result, err := s.versions.Create(ctx, version)
	if err != nil {
		return domain.ScheduleVersion{}, fmt.Errorf("service.VersionService.Create: %w", err)
	}
	return result, nil
}

// Approve transitions a draft version to approved, recording the approver
// and approval date. Admin only; domain.ErrInvalidState from any other status.
func (s *VersionService) Approve(ctx context.Context, actor domain.Principal, id int64) error {
	if err := requireAdmin(ctx, s.admins, actor); err != nil {
		return fmt.Errorf("service.VersionService.Approve: %w", err)
	}
	if err := s.versions.Approve(ctx, id, actor, dateInt(s.now())); err != nil {
		return fmt.Errorf("service.VersionService.Approve: %w", err)
	}
	return nil
}

// Reject transitions a draft version to rejected. Admin only.
func (s *VersionService) Reject(ctx context.Context, actor domain.Principal, id int64) error {
	if err := requireAdmin(ctx, s.admins, actor); err != nil {
		return fmt.Errorf("service.VersionService.Reject: %w", err)
	}
	if err := s.versions.Reject(ctx, id, actor); err != nil {
		return fmt.Errorf("service.VersionService.Reject: %w", err)
	}
	return nil
}

// Activate transitions an approved version to active, superseding any
// previously active version in the same transaction so at most one version
// is active system-wide. Admin only; domain.ErrInvalidState unless the
// target is approved.
func (s *VersionService) Activate(ctx context.Context, actor domain.Principal, id int64) error {
	if err := requireAdmin(ctx, s.admins, actor); err != nil {
		return fmt.Errorf("service.VersionService.Activate: %w", err)
	}
	if err := s.versions.Activate(ctx, id, actor); err != nil {
		return fmt.Errorf("service.VersionService.Activate: %w", err)
	}
	return nil
}

// Get returns a single version by id.
// Returns domain.ErrNotFound for an unknown id.
func (s *VersionService) Get(ctx context.Context, id int64) (domain.ScheduleVersion, error) {
	result, err := s.versions.Get(ctx, id)
	if err != nil {
		return domain.ScheduleVersion{}, fmt.Errorf("service.VersionService.Get: %w", err)
	}
	return result, nil
}

// GetActive returns the currently active version.
// Returns domain.ErrNotFound when no version has been activated yet.
func (s *VersionService) GetActive(ctx context.Context) (domain.ScheduleVersion, error) {
	result, err := s.versions.GetActive(ctx)
	if err != nil {
		return domain.ScheduleVersion{}, fmt.Errorf("service.VersionService.GetActive: %w", err)
	}
	return result, nil
}

// History returns the lifecycle transitions recorded for a version, oldest
// first. Returns domain.ErrNotFound for an unknown id; a version that has
// never left draft yields an empty (non-nil) slice.
func (s *VersionService) History(ctx context.Context, id int64) ([]domain.TransitionRecord, error) {
	if _, err := s.versions.Get(ctx, id); err != nil {
		return nil, fmt.Errorf("service.VersionService.History: %w", err)
	}
	recs, err := s.transitions.ListByEntity(ctx, "schedule_version", strconv.FormatInt(id, 10))
	if err != nil {
		return nil, fmt.Errorf("service.VersionService.History: %w", err)
	}
	if recs == nil {
		return []domain.TransitionRecord{}, nil
	}
	return recs, nil
}
