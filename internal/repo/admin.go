package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/citymetro/schedule-registry/internal/domain"
)

// AdminRepo defines the persistence operations for the single admin row.
type AdminRepo interface {
	// Get returns the current admin control record.
	// Returns domain.ErrNotFound when the row has never been seeded.
	Get(ctx context.Context) (domain.AdminControl, error)

	// Ensure seeds the admin row with principal if no admin exists yet.
	// Called once at startup; a no-op when the row is already present.
	Ensure(ctx context.Context, principal domain.Principal) error

	// Transfer replaces the admin principal atomically and appends an audit
	// row naming the outgoing admin as actor.
	Transfer(ctx context.Context, actor, newAdmin domain.Principal) error
}

// pgAdminRepo is the Postgres implementation of AdminRepo.
type pgAdminRepo struct {
	db db
}

// NewAdminRepo constructs an AdminRepo backed by the provided db connection.
func NewAdminRepo(db db) AdminRepo {
	return &pgAdminRepo{db: db}
}

func (r *pgAdminRepo) Get(ctx context.Context) (domain.AdminControl, error) {
	const q = `SELECT admin_principal, updated_at FROM admin_control WHERE id = 1`

	var a domain.AdminControl
	err := r.db.QueryRow(ctx, q).Scan(&a.Admin, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.AdminControl{}, fmt.Errorf("repo.AdminRepo.Get: %w", domain.ErrNotFound)
		}
		return domain.AdminControl{}, fmt.Errorf("repo.AdminRepo.Get: %w", err)
	}
	return a, nil
}

func (r *pgAdminRepo) Ensure(ctx context.Context, principal domain.Principal) error {
	const q = `
		INSERT INTO admin_control (id, admin_principal)
		VALUES (1, @principal)
		ON CONFLICT (id) DO NOTHING`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"principal": principal}); err != nil {
		return fmt.Errorf("repo.AdminRepo.Ensure: %w", err)
	}
	return nil
}

func (r *pgAdminRepo) Transfer(ctx context.Context, actor, newAdmin domain.Principal) error {
	const q = `
		UPDATE admin_control
		SET admin_principal = @new_admin,
		    updated_at      = now()
		WHERE id = 1`

	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, q, pgx.NamedArgs{"new_admin": newAdmin})
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return appendTransition(ctx, tx, "admin", "1", fmt.Sprintf("%s->%s", actor, newAdmin), actor)
	})
	if err != nil {
		return fmt.Errorf("repo.AdminRepo.Transfer: %w", err)
	}
	return nil
}
