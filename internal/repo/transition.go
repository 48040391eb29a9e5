package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/citymetro/schedule-registry/internal/domain"
)

// TransitionRepo reads the append-only lifecycle audit log.
// Writing happens through appendTransition inside the transaction of the
// repo method that performs the transition, never through this interface.
type TransitionRepo interface {
	// ListByEntity returns all transitions recorded for one entity, oldest
	// first. An entity with no recorded transitions yields an empty slice.
	ListByEntity(ctx context.Context, kind, key string) ([]domain.TransitionRecord, error)
}

// pgTransitionRepo is the Postgres implementation of TransitionRepo.
type pgTransitionRepo struct {
	db db
}

// NewTransitionRepo constructs a TransitionRepo backed by the provided db connection.
func NewTransitionRepo(db db) TransitionRepo {
	return &pgTransitionRepo{db: db}
}

func (r *pgTransitionRepo) ListByEntity(ctx context.Context, kind, key string) ([]domain.TransitionRecord, error) {
	const q = `
		SELECT id, entity_kind, entity_key, transition, actor, recorded_at
		FROM transition_log
		WHERE entity_kind = @kind AND entity_key = @key
		ORDER BY id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"kind": kind, "key": key})
	if err != nil {
		return nil, fmt.Errorf("repo.TransitionRepo.ListByEntity: %w", err)
	}
	defer rows.Close()

	var recs []domain.TransitionRecord
	for rows.Next() {
		var rec domain.TransitionRecord
		if err := rows.Scan(&rec.ID, &rec.EntityKind, &rec.EntityKey, &rec.Transition, &rec.Actor, &rec.RecordedAt); err != nil {
			return nil, fmt.Errorf("repo.TransitionRepo.ListByEntity: scan: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TransitionRepo.ListByEntity: rows: %w", err)
	}
	return recs, nil
}

// appendTransition writes one audit row using the caller's transaction so the
// log commits or rolls back together with the transition it describes.
func appendTransition(ctx context.Context, tx pgx.Tx, kind, key, transition string, actor domain.Principal) error {
	const q = `
		INSERT INTO transition_log (entity_kind, entity_key, transition, actor)
		VALUES (@kind, @key, @transition, @actor)`

	_, err := tx.Exec(ctx, q, pgx.NamedArgs{
		"kind":       kind,
		"key":        key,
		"transition": transition,
		"actor":      actor,
	})
	return err
}
