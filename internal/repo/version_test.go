package repo_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citymetro/schedule-registry/internal/domain"
	"github.com/citymetro/schedule-registry/internal/repo"
	"github.com/citymetro/schedule-registry/testutil"
)

// versionFixture returns a ScheduleVersion ready for insertion.
func versionFixture(createdBy domain.Principal) domain.ScheduleVersion {
	return domain.ScheduleVersion{
		Name:          "Summer 2026",
		EffectiveDate: 20260601,
		ExpiryDate:    20260901,
		CreatedBy:     createdBy,
		CreationDate:  20260115,
	}
}

// mustCreateVersion inserts a version fixture and fails the test on error.
func mustCreateVersion(t *testing.T, versions repo.VersionRepo) domain.ScheduleVersion {
	t.Helper()
	v, err := versions.Create(context.Background(), versionFixture(testutil.NewPrincipal("planner")))
	require.NoError(t, err, "create version fixture")
	return v
}

func TestVersionRepo_Create(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	creator := testutil.NewPrincipal("planner")
	got, err := r.versions.Create(ctx, versionFixture(creator))

	require.NoError(t, err)
	assert.Positive(t, got.ID, "ID should be DB-assigned")
	assert.Equal(t, domain.VersionDraft, got.Status, "new versions start in draft")
	assert.Equal(t, creator, got.CreatedBy)
	assert.Equal(t, 20260601, got.EffectiveDate)
	assert.Nil(t, got.ApprovedBy, "approver must be unset until approval")
	assert.Nil(t, got.ApprovalDate)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestVersionRepo_Create_SequentialIDs(t *testing.T) {
	r := newTestRepos(t)

	first := mustCreateVersion(t, r.versions)
	second := mustCreateVersion(t, r.versions)

	assert.Equal(t, first.ID+1, second.ID, "version ids are assigned sequentially")
}

func TestVersionRepo_Get_NotFound(t *testing.T) {
	r := newTestRepos(t)

	_, err := r.versions.Get(context.Background(), 1<<60)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVersionRepo_Approve(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	v := mustCreateVersion(t, r.versions)
	approver := testutil.NewPrincipal("admin")

	require.NoError(t, r.versions.Approve(ctx, v.ID, approver, 20260120))

	got, err := r.versions.Get(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VersionApproved, got.Status)
	require.NotNil(t, got.ApprovedBy)
	assert.Equal(t, approver, *got.ApprovedBy)
	require.NotNil(t, got.ApprovalDate)
	assert.Equal(t, 20260120, *got.ApprovalDate)

	recs, err := r.transitions.ListByEntity(ctx, "schedule_version", strconv.FormatInt(v.ID, 10))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "draft->approved", recs[0].Transition)
	assert.Equal(t, approver, recs[0].Actor)
}

func TestVersionRepo_Approve_NotDraft(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	v := mustCreateVersion(t, r.versions)
	admin := testutil.NewPrincipal("admin")
	require.NoError(t, r.versions.Approve(ctx, v.ID, admin, 20260120))

	// A second approval finds the version in approved, not draft.
	err := r.versions.Approve(ctx, v.ID, admin, 20260121)

	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestVersionRepo_Approve_NotFound(t *testing.T) {
	r := newTestRepos(t)

	err := r.versions.Approve(context.Background(), 1<<60, testutil.NewPrincipal("admin"), 20260120)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVersionRepo_Reject(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	v := mustCreateVersion(t, r.versions)
	admin := testutil.NewPrincipal("admin")

	require.NoError(t, r.versions.Reject(ctx, v.ID, admin))

	got, err := r.versions.Get(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VersionRejected, got.Status)
	assert.Nil(t, got.ApprovedBy, "rejection records no approver")

	recs, err := r.transitions.ListByEntity(ctx, "schedule_version", strconv.FormatInt(v.ID, 10))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "draft->rejected", recs[0].Transition)
}

func TestVersionRepo_Reject_AlreadyRejected(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	v := mustCreateVersion(t, r.versions)
	admin := testutil.NewPrincipal("admin")
	require.NoError(t, r.versions.Reject(ctx, v.ID, admin))

	err := r.versions.Reject(ctx, v.ID, admin)

	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestVersionRepo_Activate(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	v := mustCreateVersion(t, r.versions)
	admin := testutil.NewPrincipal("admin")
	require.NoError(t, r.versions.Approve(ctx, v.ID, admin, 20260120))

	require.NoError(t, r.versions.Activate(ctx, v.ID, admin))

	got, err := r.versions.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, v.ID, got.ID)
	assert.Equal(t, domain.VersionActive, got.Status)
}

func TestVersionRepo_Activate_SupersedesPrevious(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	admin := testutil.NewPrincipal("admin")

	first := mustCreateVersion(t, r.versions)
	second := mustCreateVersion(t, r.versions)
	require.NoError(t, r.versions.Approve(ctx, first.ID, admin, 20260120))
	require.NoError(t, r.versions.Approve(ctx, second.ID, admin, 20260121))

	require.NoError(t, r.versions.Activate(ctx, first.ID, admin))
	require.NoError(t, r.versions.Activate(ctx, second.ID, admin))

	active, err := r.versions.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID, "only the most recent activation stays active")

	demoted, err := r.versions.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VersionSuperseded, demoted.Status)

	// Both the demotion and the promotion leave audit rows.
	recs, err := r.transitions.ListByEntity(ctx, "schedule_version", strconv.FormatInt(first.ID, 10))
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "active->superseded", recs[2].Transition)

	recs, err = r.transitions.ListByEntity(ctx, "schedule_version", strconv.FormatInt(second.ID, 10))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "approved->active", recs[1].Transition)
}

func TestVersionRepo_Activate_DraftFailsAndKeepsCurrentActive(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	admin := testutil.NewPrincipal("admin")

	active := mustCreateVersion(t, r.versions)
	require.NoError(t, r.versions.Approve(ctx, active.ID, admin, 20260120))
	require.NoError(t, r.versions.Activate(ctx, active.ID, admin))

	draft := mustCreateVersion(t, r.versions)

	err := r.versions.Activate(ctx, draft.ID, admin)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	// The failed activation must not have demoted the current active version.
	got, err := r.versions.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, active.ID, got.ID)
}

func TestVersionRepo_Activate_NotFound(t *testing.T) {
	r := newTestRepos(t)

	err := r.versions.Activate(context.Background(), 1<<60, testutil.NewPrincipal("admin"))

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVersionRepo_GetActive_NoneActive(t *testing.T) {
	r := newTestRepos(t)

	_, err := r.versions.GetActive(context.Background())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransitionRepo_ListByEntity_Empty(t *testing.T) {
	r := newTestRepos(t)

	recs, err := r.transitions.ListByEntity(context.Background(), "schedule_version", "999999999")

	require.NoError(t, err)
	assert.Empty(t, recs)
}
