package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/citymetro/schedule-registry/internal/domain"
)

// RouteScheduleRepo defines the persistence operations for per-(version,
// route) timing parameters.
type RouteScheduleRepo interface {
	// Set inserts or overwrites the row for (schedule.VersionID,
	// schedule.RouteID) and returns the persisted record.
	Set(ctx context.Context, schedule domain.RouteSchedule) (domain.RouteSchedule, error)

	// Get retrieves the timing parameters for one route within one version.
	// Returns domain.ErrNotFound if no row exists for that pair.
	Get(ctx context.Context, versionID, routeID int64) (domain.RouteSchedule, error)
}

// pgRouteScheduleRepo is the Postgres implementation of RouteScheduleRepo.
type pgRouteScheduleRepo struct {
	db db
}

// NewRouteScheduleRepo constructs a RouteScheduleRepo backed by the provided db connection.
func NewRouteScheduleRepo(db db) RouteScheduleRepo {
	return &pgRouteScheduleRepo{db: db}
}

const routeScheduleColumns = `version_id, route_id, first_departure, last_departure,
	peak_frequency, off_peak_frequency, weekend_frequency,
	peak_start_morning, peak_end_morning, peak_start_evening, peak_end_evening`

func (r *pgRouteScheduleRepo) Set(ctx context.Context, schedule domain.RouteSchedule) (domain.RouteSchedule, error) {
	const q = `
		INSERT INTO route_schedules (` + routeScheduleColumns + `)
		VALUES (@version_id, @route_id, @first_departure, @last_departure,
		        @peak_frequency, @off_peak_frequency, @weekend_frequency,
		        @peak_start_morning, @peak_end_morning, @peak_start_evening, @peak_end_evening)
		ON CONFLICT (version_id, route_id) DO UPDATE
		SET first_departure    = EXCLUDED.first_departure,
		    last_departure     = EXCLUDED.last_departure,
		    peak_frequency     = EXCLUDED.peak_frequency,
		    off_peak_frequency = EXCLUDED.off_peak_frequency,
		    weekend_frequency  = EXCLUDED.weekend_frequency,
		    peak_start_morning = EXCLUDED.peak_start_morning,
		    peak_end_morning   = EXCLUDED.peak_end_morning,
		    peak_start_evening = EXCLUDED.peak_start_evening,
		    peak_end_evening   = EXCLUDED.peak_end_evening
		RETURNING ` + routeScheduleColumns

	args := pgx.NamedArgs{
		"version_id":         schedule.VersionID,
		"route_id":           schedule.RouteID,
		"first_departure":    schedule.FirstDeparture,
		"last_departure":     schedule.LastDeparture,
		"peak_frequency":     schedule.PeakFrequency,
		"off_peak_frequency": schedule.OffPeakFrequency,
		"weekend_frequency":  schedule.WeekendFrequency,
		"peak_start_morning": schedule.PeakStartMorning,
		"peak_end_morning":   schedule.PeakEndMorning,
		"peak_start_evening": schedule.PeakStartEvening,
		"peak_end_evening":   schedule.PeakEndEvening,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanRouteSchedule(row)
	if err != nil {
		return domain.RouteSchedule{}, fmt.Errorf("repo.RouteScheduleRepo.Set: %w", err)
	}
	return result, nil
}

func (r *pgRouteScheduleRepo) Get(ctx context.Context, versionID, routeID int64) (domain.RouteSchedule, error) {
	const q = `
		SELECT ` + routeScheduleColumns + `
		FROM route_schedules
		WHERE version_id = @version_id AND route_id = @route_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"version_id": versionID, "route_id": routeID})
	result, err := scanRouteSchedule(row)
	if err != nil {
		return domain.RouteSchedule{}, fmt.Errorf("repo.RouteScheduleRepo.Get: %w", err)
	}
	return result, nil
}

// scanRouteSchedule maps a single database row into a domain.RouteSchedule.
func scanRouteSchedule(s scanner) (domain.RouteSchedule, error) {
	var rs domain.RouteSchedule
	err := s.Scan(&rs.VersionID, &rs.RouteID, &rs.FirstDeparture, &rs.LastDeparture,
		&rs.PeakFrequency, &rs.OffPeakFrequency, &rs.WeekendFrequency,
		&rs.PeakStartMorning, &rs.PeakEndMorning, &rs.PeakStartEvening, &rs.PeakEndEvening)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.RouteSchedule{}, domain.ErrNotFound
		}
		return domain.RouteSchedule{}, err
	}
	return rs, nil
}
