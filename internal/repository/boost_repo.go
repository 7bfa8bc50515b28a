package repository

import (
	"context"
	"time"

	"covenfield_backend/internal/catalog"
	"covenfield_backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type BoostRepository struct {
	db *pgxpool.Pool
}

func NewBoostRepository(db *pgxpool.Pool) *BoostRepository {
	return &BoostRepository{db: db}
}

// Activate upserts the one row per (player, boost type). Buying while a
// boost is running extends from the later of now and the current expiry.
func (r *BoostRepository) Activate(ctx context.Context, q Querier, playerID int64, boostType catalog.BoostType, mult float64, duration time.Duration, now time.Time) (*domain.ActiveBoost, error) {
	var b domain.ActiveBoost
	err := q.QueryRow(ctx,
		`INSERT INTO active_boosts (player_id, boost_type, mult, expires_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (player_id, boost_type) DO UPDATE SET
			mult = EXCLUDED.mult,
			expires_at = GREATEST(active_boosts.expires_at, $5) + ($4::timestamptz - $5::timestamptz)
		 RETURNING player_id, boost_type, mult, expires_at`,
		playerID, boostType, mult, now.Add(duration), now,
	).Scan(&b.PlayerID, &b.BoostType, &b.Mult, &b.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Get returns the boost row for one type, expired or not; callers use
// Multiplier(now) so a stale row reads as 1x.
func (r *BoostRepository) Get(ctx context.Context, q Querier, playerID int64, boostType catalog.BoostType) (*domain.ActiveBoost, error) {
	var b domain.ActiveBoost
	err := q.QueryRow(ctx,
		`SELECT player_id, boost_type, mult, expires_at
		 FROM active_boosts WHERE player_id = $1 AND boost_type = $2`,
		playerID, boostType,
	).Scan(&b.PlayerID, &b.BoostType, &b.Mult, &b.ExpiresAt)
	if IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BoostRepository) ListActive(ctx context.Context, playerID int64, now time.Time) ([]*domain.ActiveBoost, error) {
	rows, err := r.db.Query(ctx,
		`SELECT player_id, boost_type, mult, expires_at
		 FROM active_boosts WHERE player_id = $1 AND expires_at > $2`,
		playerID, now,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.ActiveBoost
	for rows.Next() {
		var b domain.ActiveBoost
		if err := rows.Scan(&b.PlayerID, &b.BoostType, &b.Mult, &b.ExpiresAt); err != nil {
			return nil, err
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}

// PruneExpired deletes long-dead boost rows; called from the background sweep.
func (r *BoostRepository) PruneExpired(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM active_boosts WHERE expires_at <= $1`, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
