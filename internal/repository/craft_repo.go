package repository

import (
	"context"
	"time"

	"covenfield_backend/internal/catalog"
	"covenfield_backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CraftRepository struct {
	db *pgxpool.Pool
}

func NewCraftRepository(db *pgxpool.Pool) *CraftRepository {
	return &CraftRepository{db: db}
}

func (r *CraftRepository) ListJobs(ctx context.Context, playerID int64, producer catalog.ProducerKind) ([]*domain.CraftJob, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, player_id, producer, slot, recipe_id, started_at, finishes_at
		 FROM craft_jobs WHERE player_id = $1 AND producer = $2 ORDER BY slot`,
		playerID, producer,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.CraftJob
	for rows.Next() {
		var j domain.CraftJob
		if err := rows.Scan(&j.ID, &j.PlayerID, &j.Producer, &j.Slot, &j.RecipeID, &j.StartedAt, &j.FinishesAt); err != nil {
			return nil, err
		}
		out = append(out, &j)
	}
	return out, rows.Err()
}

// Insert enqueues a job into a specific slot. The unique index on
// (player_id, producer, slot) makes a concurrent start of the same slot fail.
func (r *CraftRepository) Insert(ctx context.Context, q Querier, j *domain.CraftJob) error {
	return q.QueryRow(ctx,
		`INSERT INTO craft_jobs (player_id, producer, slot, recipe_id, started_at, finishes_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		j.PlayerID, j.Producer, j.Slot, j.RecipeID, j.StartedAt, j.FinishesAt,
	).Scan(&j.ID)
}

func (r *CraftRepository) CountActive(ctx context.Context, q Querier, playerID int64, producer catalog.ProducerKind) (int, error) {
	var n int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM craft_jobs WHERE player_id = $1 AND producer = $2`,
		playerID, producer,
	).Scan(&n)
	return n, err
}

// OccupiedSlots returns which queue slots are taken.
func (r *CraftRepository) OccupiedSlots(ctx context.Context, q Querier, playerID int64, producer catalog.ProducerKind) (map[int]bool, error) {
	rows, err := q.Query(ctx,
		`SELECT slot FROM craft_jobs WHERE player_id = $1 AND producer = $2`,
		playerID, producer,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int]bool)
	for rows.Next() {
		var slot int
		if err := rows.Scan(&slot); err != nil {
			return nil, err
		}
		out[slot] = true
	}
	return out, rows.Err()
}

// Collect deletes a finished job and returns its recipe. The conditional
// DELETE is the double-collect guard.
func (r *CraftRepository) Collect(ctx context.Context, q Querier, playerID int64, producer catalog.ProducerKind, slot int, now time.Time) (int64, bool, error) {
	var recipeID int64
	err := q.QueryRow(ctx,
		`DELETE FROM craft_jobs
		 WHERE player_id = $1 AND producer = $2 AND slot = $3 AND finishes_at <= $4
		 RETURNING recipe_id`,
		playerID, producer, slot, now,
	).Scan(&recipeID)
	if IsNoRows(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return recipeID, true, nil
}

// Job returns a slot's job, if any, for error classification and speed-ups.
func (r *CraftRepository) Job(ctx context.Context, q Querier, playerID int64, producer catalog.ProducerKind, slot int) (*domain.CraftJob, error) {
	var j domain.CraftJob
	err := q.QueryRow(ctx,
		`SELECT id, player_id, producer, slot, recipe_id, started_at, finishes_at
		 FROM craft_jobs WHERE player_id = $1 AND producer = $2 AND slot = $3`,
		playerID, producer, slot,
	).Scan(&j.ID, &j.PlayerID, &j.Producer, &j.Slot, &j.RecipeID, &j.StartedAt, &j.FinishesAt)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// SetFinishesAt shortens a job's timer; used by ad speed-ups and instant
// finish.
func (r *CraftRepository) SetFinishesAt(ctx context.Context, q Querier, jobID int64, finishesAt time.Time) error {
	_, err := q.Exec(ctx, `UPDATE craft_jobs SET finishes_at = $1 WHERE id = $2`, finishesAt, jobID)
	return err
}
