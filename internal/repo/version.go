package repo

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/citymetro/schedule-registry/internal/domain"
)

// VersionRepo defines the persistence operations for schedule versions.
//
// The lifecycle methods (Approve, Reject, Activate) perform guarded updates:
// the WHERE clause re-checks the expected current status inside the
// transaction, so a concurrent transition can never be applied twice and a
// caller racing an activation observes either the fully-old or fully-new
// state. domain.ErrInvalidState is returned when the guard does not match.
type VersionRepo interface {
	// Create inserts a new version in draft status and returns the persisted
	// record with its database-assigned sequential id.
	Create(ctx context.Context, version domain.ScheduleVersion) (domain.ScheduleVersion, error)

	// Get retrieves a version by id.
	// Returns domain.ErrNotFound if no version with that id exists.
	Get(ctx context.Context, id int64) (domain.ScheduleVersion, error)

	// GetActive returns the currently active version.
	// Returns domain.ErrNotFound when no version is active.
	GetActive(ctx context.Context) (domain.ScheduleVersion, error)

	// Approve transitions a draft version to approved, recording the approver
	// and approval date. Returns domain.ErrNotFound for an unknown id and
	// domain.ErrInvalidState when the version is not in draft.
	Approve(ctx context.Context, id int64, approver domain.Principal, date int) error

	// Reject transitions a draft version to rejected.
	// Same error contract as Approve.
	Reject(ctx context.Context, id int64, actor domain.Principal) error

	// Activate transitions an approved version to active and, in the same
	// transaction, demotes any currently active version to superseded.
	// Returns domain.ErrNotFound for an unknown id and domain.ErrInvalidState
	// when the version is not in approved.
	Activate(ctx context.Context, id int64, actor domain.Principal) error
}

// pgVersionRepo is the Postgres implementation of VersionRepo.
type pgVersionRepo struct {
	db db
}

// NewVersionRepo constructs a VersionRepo backed by the provided db connection.
func NewVersionRepo(db db) VersionRepo {
	return &pgVersionRepo{db: db}
}

const versionColumns = `id, name, effective_date, expiry_date, status, created_by, creation_date, approved_by, approval_date, created_at`

func (r *pgVersionRepo) Create(ctx context.Context, version domain.ScheduleVersion) (domain.ScheduleVersion, error) {
	const q = `
		INSERT INTO schedule_versions (name, effective_date, expiry_date, created_by, creation_date)
		VALUES (@name, @effective_date, @expiry_date, @created_by, @creation_date)
		RETURNING ` + versionColumns

	args := pgx.NamedArgs{
		"name":           version.Name,
		"effective_date": version.EffectiveDate,
		"expiry_date":    version.ExpiryDate,
		"created_by":     version.CreatedBy,
		"creation_date":  version.CreationDate,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanVersion(row)
	if err != nil {
		return domain.ScheduleVersion{}, fmt.Errorf("repo.VersionRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgVersionRepo) Get(ctx context.Context, id int64) (domain.ScheduleVersion, error) {
	const q = `SELECT ` + versionColumns + ` FROM schedule_versions WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanVersion(row)
	if err != nil {
		return domain.ScheduleVersion{}, fmt.Errorf("repo.VersionRepo.Get: %w", err)
	}
	return result, nil
}

func (r *pgVersionRepo) GetActive(ctx context.Context) (domain.ScheduleVersion, error) {
	const q = `SELECT ` + versionColumns + ` FROM schedule_versions WHERE status = 'active'`

	row := r.db.QueryRow(ctx, q)
	result, err := scanVersion(row)
	if err != nil {
		return domain.ScheduleVersion{}, fmt.Errorf("repo.VersionRepo.GetActive: %w", err)
	}
	return result, nil
}

func (r *pgVersionRepo) Approve(ctx context.Context, id int64, approver domain.Principal, date int) error {
	const q = `
		UPDATE schedule_versions
		SET status        = 'approved',
		    approved_by   = @approver,
		    approval_date = @date
		WHERE id = @id AND status = 'draft'`

	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, q, pgx.NamedArgs{"id": id, "approver": approver, "date": date})
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return r.guardFailure(ctx, tx, id)
		}
		return appendTransition(ctx, tx, "schedule_version", strconv.FormatInt(id, 10), "draft->approved", approver)
	})
	if err != nil {
		return fmt.Errorf("repo.VersionRepo.Approve: %w", err)
	}
	return nil
}

func (r *pgVersionRepo) Reject(ctx context.Context, id int64, actor domain.Principal) error {
	const q = `
		UPDATE schedule_versions
		SET status = 'rejected'
		WHERE id = @id AND status = 'draft'`

	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, q, pgx.NamedArgs{"id": id})
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return r.guardFailure(ctx, tx, id)
		}
		return appendTransition(ctx, tx, "schedule_version", strconv.FormatInt(id, 10), "draft->rejected", actor)
	})
	if err != nil {
		return fmt.Errorf("repo.VersionRepo.Reject: %w", err)
	}
	return nil
}

func (r *pgVersionRepo) Activate(ctx context.Context, id int64, actor domain.Principal) error {
	// Demote first so the one-active partial unique index never sees two
	// active rows, even transiently.
	const demote = `
		UPDATE schedule_versions
		SET status = 'superseded'
		WHERE status = 'active' AND id <> @id
		RETURNING id`
	const promote = `
		UPDATE schedule_versions
		SET status = 'active'
		WHERE id = @id AND status = 'approved'`

	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		var demoted []int64
		rows, err := tx.Query(ctx, demote, pgx.NamedArgs{"id": id})
		if err != nil {
			return err
		}
		demoted, err = pgx.CollectRows(rows, pgx.RowTo[int64])
		if err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, promote, pgx.NamedArgs{"id": id})
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			// Nothing promoted: the deferred rollback undoes the demotion.
			return r.guardFailure(ctx, tx, id)
		}

		for _, old := range demoted {
			if err := appendTransition(ctx, tx, "schedule_version", strconv.FormatInt(old, 10), "active->superseded", actor); err != nil {
				return err
			}
		}
		return appendTransition(ctx, tx, "schedule_version", strconv.FormatInt(id, 10), "approved->active", actor)
	})
	if err != nil {
		return fmt.Errorf("repo.VersionRepo.Activate: %w", err)
	}
	return nil
}

// guardFailure distinguishes why a guarded status update matched no rows:
// the version is missing (ErrNotFound) or in the wrong state (ErrInvalidState).
func (r *pgVersionRepo) guardFailure(ctx context.Context, tx pgx.Tx, id int64) error {
	var status string
	err := tx.QueryRow(ctx, `SELECT status FROM schedule_versions WHERE id = @id`, pgx.NamedArgs{"id": id}).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("version %d is %s: %w", id, status, domain.ErrInvalidState)
}

// scanVersion maps a single database row into a domain.ScheduleVersion.
// It handles the nullable approver columns.
func scanVersion(s scanner) (domain.ScheduleVersion, error) {
	var (
		v          domain.ScheduleVersion
		approvedBy *string
	)

	err := s.Scan(&v.ID, &v.Name, &v.EffectiveDate, &v.ExpiryDate, &v.Status,
		&v.CreatedBy, &v.CreationDate, &approvedBy, &v.ApprovalDate, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ScheduleVersion{}, domain.ErrNotFound
		}
		return domain.ScheduleVersion{}, err
	}

	if approvedBy != nil {
		p := domain.Principal(*approvedBy)
		v.ApprovedBy = &p
	}
	return v, nil
}
