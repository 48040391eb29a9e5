package repo

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/citymetro/schedule-registry/internal/domain"
)

// AdjustmentRepo defines the persistence operations for schedule adjustments.
type AdjustmentRepo interface {
	// Create inserts a new adjustment and returns the persisted record with
	// its database-assigned sequential id.
	Create(ctx context.Context, adjustment domain.ScheduleAdjustment) (domain.ScheduleAdjustment, error)

	// Get retrieves an adjustment by id.
	// Returns domain.ErrNotFound if no adjustment with that id exists.
	Get(ctx context.Context, id int64) (domain.ScheduleAdjustment, error)

	// UpdateStatus overwrites the status and appends an audit row recording
	// the old and new status in the same transaction.
	// Returns domain.ErrNotFound for an unknown id.
	UpdateStatus(ctx context.Context, id int64, status domain.AdjustmentStatus, actor domain.Principal) error
}

// pgAdjustmentRepo is the Postgres implementation of AdjustmentRepo.
type pgAdjustmentRepo struct {
	db db
}

// NewAdjustmentRepo constructs an AdjustmentRepo backed by the provided db connection.
func NewAdjustmentRepo(db db) AdjustmentRepo {
	return &pgAdjustmentRepo{db: db}
}

const adjustmentColumns = `id, route_id, adjustment_type, start_date, end_date, reason, status, created_by, creation_date, created_at`

func (r *pgAdjustmentRepo) Create(ctx context.Context, adjustment domain.ScheduleAdjustment) (domain.ScheduleAdjustment, error) {
	const q = `
		INSERT INTO schedule_adjustments (route_id, adjustment_type, start_date, end_date,
		                                  reason, status, created_by, creation_date)
		VALUES (@route_id, @adjustment_type, @start_date, @end_date,
		        @reason, @status, @created_by, @creation_date)
		RETURNING ` + adjustmentColumns

	args := pgx.NamedArgs{
		"route_id":        adjustment.RouteID,
		"adjustment_type": adjustment.Type,
		"start_date":      adjustment.StartDate,
		"end_date":        adjustment.EndDate,
		"reason":          adjustment.Reason,
		"status":          adjustment.Status,
		"created_by":      adjustment.CreatedBy,
		"creation_date":   adjustment.CreationDate,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanAdjustment(row)
	if err != nil {
		return domain.ScheduleAdjustment{}, fmt.Errorf("repo.AdjustmentRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgAdjustmentRepo) Get(ctx context.Context, id int64) (domain.ScheduleAdjustment, error) {
	const q = `SELECT ` + adjustmentColumns + ` FROM schedule_adjustments WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanAdjustment(row)
	if err != nil {
		return domain.ScheduleAdjustment{}, fmt.Errorf("repo.AdjustmentRepo.Get: %w", err)
	}
	return result, nil
}

func (r *pgAdjustmentRepo) UpdateStatus(ctx context.Context, id int64, status domain.AdjustmentStatus, actor domain.Principal) error {
	// The old status is read back in the same statement so the audit row can
	// record the full transition.
	const q = `
		UPDATE schedule_adjustments new
		SET status = @status
		FROM schedule_adjustments old
		WHERE new.id = @id AND old.id = new.id
		RETURNING old.status`

	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		var oldStatus string
		err := tx.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "status": status}).Scan(&oldStatus)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}
		transition := oldStatus + "->" + string(status)
		return appendTransition(ctx, tx, "adjustment", strconv.FormatInt(id, 10), transition, actor)
	})
	if err != nil {
		return fmt.Errorf("repo.AdjustmentRepo.UpdateStatus: %w", err)
	}
	return nil
}

// scanAdjustment maps a single database row into a domain.ScheduleAdjustment.
func scanAdjustment(s scanner) (domain.ScheduleAdjustment, error) {
	var a domain.ScheduleAdjustment
	err := s.Scan(&a.ID, &a.RouteID, &a.Type, &a.StartDate, &a.EndDate,
		&a.Reason, &a.Status, &a.CreatedBy, &a.CreationDate, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ScheduleAdjustment{}, domain.ErrNotFound
		}
		return domain.ScheduleAdjustment{}, err
	}
	return a, nil
}
