package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/citymetro/schedule-registry/internal/domain"
)

// DepartureRepo defines the persistence operations for scheduled departures.
// The table is append-only: there is no update or delete.
type DepartureRepo interface {
	// Add inserts a departure, assigning the next sequence id for its
	// (version, route) pair from an explicit counter that starts at 1 and is
	// never decremented. The counter bump and the insert share a transaction.
	Add(ctx context.Context, departure domain.ScheduledDeparture) (domain.ScheduledDeparture, error)

	// Get retrieves a departure by its (version, route, sequence) key.
	// Returns domain.ErrNotFound if no such entry exists.
	Get(ctx context.Context, versionID, routeID, sequenceID int64) (domain.ScheduledDeparture, error)
}

// pgDepartureRepo is the Postgres implementation of DepartureRepo.
type pgDepartureRepo struct {
	db db
}

// NewDepartureRepo constructs a DepartureRepo backed by the provided db connection.
func NewDepartureRepo(db db) DepartureRepo {
	return &pgDepartureRepo{db: db}
}

const departureColumns = `version_id, route_id, sequence_id, departure_time, day_type, vehicle_id, driver_id, is_express, notes`

func (r *pgDepartureRepo) Add(ctx context.Context, departure domain.ScheduledDeparture) (domain.ScheduledDeparture, error) {
	// The counter row is upserted and its post-increment value returned;
	// the row-level lock taken by the upsert serializes concurrent adds for
	// the same (version, route) pair.
	const bump = `
		INSERT INTO departure_counters (version_id, route_id, next_sequence)
		VALUES (@version_id, @route_id, 1)
		ON CONFLICT (version_id, route_id) DO UPDATE
		SET next_sequence = departure_counters.next_sequence + 1
		RETURNING next_sequence`
	const insert = `
		INSERT INTO scheduled_departures (` + departureColumns + `)
		VALUES (@version_id, @route_id, @sequence_id, @departure_time, @day_type,
		        @vehicle_id, @driver_id, @is_express, @notes)
		RETURNING ` + departureColumns

	var result domain.ScheduledDeparture
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		key := pgx.NamedArgs{"version_id": departure.VersionID, "route_id": departure.RouteID}

		var seq int64
		if err := tx.QueryRow(ctx, bump, key).Scan(&seq); err != nil {
			return err
		}

		args := pgx.NamedArgs{
			"version_id":     departure.VersionID,
			"route_id":       departure.RouteID,
			"sequence_id":    seq,
			"departure_time": departure.DepartureTime,
			"day_type":       departure.DayType,
			"vehicle_id":     departure.VehicleID,
			"driver_id":      departure.DriverID,
			"is_express":     departure.IsExpress,
			"notes":          departure.Notes,
		}

		var err error
		result, err = scanDeparture(tx.QueryRow(ctx, insert, args))
		return err
	})
	if err != nil {
		return domain.ScheduledDeparture{}, fmt.Errorf("repo.DepartureRepo.Add: %w", err)
	}
	return result, nil
}

func (r *pgDepartureRepo) Get(ctx context.Context, versionID, routeID, sequenceID int64) (domain.ScheduledDeparture, error) {
	const q = `
		SELECT ` + departureColumns + `
		FROM scheduled_departures
		WHERE version_id = @version_id AND route_id = @route_id AND sequence_id = @sequence_id`

	args := pgx.NamedArgs{"version_id": versionID, "route_id": routeID, "sequence_id": sequenceID}
	result, err := scanDeparture(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.ScheduledDeparture{}, fmt.Errorf("repo.DepartureRepo.Get: %w", err)
	}
	return result, nil
}

// scanDeparture maps a single database row into a domain.ScheduledDeparture.
func scanDeparture(s scanner) (domain.ScheduledDeparture, error) {
	var d domain.ScheduledDeparture
	err := s.Scan(&d.VersionID, &d.RouteID, &d.SequenceID, &d.DepartureTime,
		&d.DayType, &d.VehicleID, &d.DriverID, &d.IsExpress, &d.Notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ScheduledDeparture{}, domain.ErrNotFound
		}
		return domain.ScheduledDeparture{}, err
	}
	return d, nil
}
