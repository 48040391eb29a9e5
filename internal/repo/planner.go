package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/citymetro/schedule-registry/internal/domain"
)

// PlannerRepo defines the persistence operations for Planners.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type PlannerRepo interface {
	// Create inserts a new planner and returns the persisted record.
	// Returns domain.ErrValidation if the principal is already registered.
	Create(ctx context.Context, planner domain.Planner) (domain.Planner, error)

	// Get retrieves a planner by principal.
	// Returns domain.ErrNotFound if no planner with that principal exists.
	Get(ctx context.Context, principal domain.Principal) (domain.Planner, error)

	// SetAuthorized flips the authorized flag and, when granting, stamps the
	// authorization date. An audit row naming actor is appended in the same
	// transaction. Returns domain.ErrNotFound for an unknown principal.
	SetAuthorized(ctx context.Context, principal domain.Principal, authorized bool, date int, actor domain.Principal) error
}

// pgPlannerRepo is the Postgres implementation of PlannerRepo.
type pgPlannerRepo struct {
	db db
}

// NewPlannerRepo constructs a PlannerRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPlannerRepo(db db) PlannerRepo {
	return &pgPlannerRepo{db: db}
}

func (r *pgPlannerRepo) Create(ctx context.Context, planner domain.Planner) (domain.Planner, error) {
	const q = `
		INSERT INTO planners (principal, name, department)
		VALUES (@principal, @name, @department)
		RETURNING principal, name, department, authorized, authorization_date, created_at`

	args := pgx.NamedArgs{
		"principal":  planner.Principal,
		"name":       planner.Name,
		"department": planner.Department,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanPlanner(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return domain.Planner{}, fmt.Errorf("repo.PlannerRepo.Create: principal already registered: %w", domain.ErrValidation)
		}
		return domain.Planner{}, fmt.Errorf("repo.PlannerRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgPlannerRepo) Get(ctx context.Context, principal domain.Principal) (domain.Planner, error) {
	const q = `
		SELECT principal, name, department, authorized, authorization_date, created_at
		FROM planners
		WHERE principal = @principal`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"principal": principal})
	result, err := scanPlanner(row)
	if err != nil {
		return domain.Planner{}, fmt.Errorf("repo.PlannerRepo.Get: %w", err)
	}
	return result, nil
}

func (r *pgPlannerRepo) SetAuthorized(ctx context.Context, principal domain.Principal, authorized bool, date int, actor domain.Principal) error {
	// Revoking keeps the old authorization_date so the record still shows
	// when the planner was last authorized.
	const q = `
		UPDATE planners
		SET authorized         = @authorized,
		    authorization_date = CASE WHEN @authorized THEN @date ELSE authorization_date END
		WHERE principal = @principal`

	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, q, pgx.NamedArgs{
			"principal":  principal,
			"authorized": authorized,
			"date":       date,
		})
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNotFound
		}

		transition := "authorized"
		if !authorized {
			transition = "revoked"
		}
		return appendTransition(ctx, tx, "planner", string(principal), transition, actor)
	})
	if err != nil {
		return fmt.Errorf("repo.PlannerRepo.SetAuthorized: %w", err)
	}
	return nil
}

// scanPlanner maps a single database row into a domain.Planner.
func scanPlanner(s scanner) (domain.Planner, error) {
	var p domain.Planner
	err := s.Scan(&p.Principal, &p.Name, &p.Department, &p.Authorized, &p.AuthorizationDate, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Planner{}, domain.ErrNotFound
		}
		return domain.Planner{}, err
	}
	return p, nil
}
