package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/citymetro/schedule-registry/internal/domain"
)

// RouteRepo defines the persistence operations for the route catalog.
type RouteRepo interface {
	// Upsert inserts or overwrites the route with the given id and returns
	// the persisted record. Route rows are never deleted.
	Upsert(ctx context.Context, route domain.Route) (domain.Route, error)

	// Get retrieves a route by id.
	// Returns domain.ErrNotFound if no route with that id exists.
	Get(ctx context.Context, id int64) (domain.Route, error)
}

// pgRouteRepo is the Postgres implementation of RouteRepo.
type pgRouteRepo struct {
	db db
}

// NewRouteRepo constructs a RouteRepo backed by the provided db connection.
func NewRouteRepo(db db) RouteRepo {
	return &pgRouteRepo{db: db}
}

func (r *pgRouteRepo) Upsert(ctx context.Context, route domain.Route) (domain.Route, error) {
	const q = `
		INSERT INTO routes (id, name, route_type, active)
		VALUES (@id, @name, @route_type, @active)
		ON CONFLICT (id) DO UPDATE
		SET name       = EXCLUDED.name,
		    route_type = EXCLUDED.route_type,
		    active     = EXCLUDED.active,
		    updated_at = now()
		RETURNING id, name, route_type, active, updated_at`

	args := pgx.NamedArgs{
		"id":         route.ID,
		"name":       route.Name,
		"route_type": route.Type,
		"active":     route.Active,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanRoute(row)
	if err != nil {
		return domain.Route{}, fmt.Errorf("repo.RouteRepo.Upsert: %w", err)
	}
	return result, nil
}

func (r *pgRouteRepo) Get(ctx context.Context, id int64) (domain.Route, error) {
	const q = `
		SELECT id, name, route_type, active, updated_at
		FROM routes
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanRoute(row)
	if err != nil {
		return domain.Route{}, fmt.Errorf("repo.RouteRepo.Get: %w", err)
	}
	return result, nil
}

// scanRoute maps a single database row into a domain.Route.
func scanRoute(s scanner) (domain.Route, error) {
	var rt domain.Route
	err := s.Scan(&rt.ID, &rt.Name, &rt.Type, &rt.Active, &rt.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Route{}, domain.ErrNotFound
		}
		return domain.Route{}, err
	}
	return rt, nil
}
