package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AdsRepository struct {
	db *pgxpool.Pool
}

func NewAdsRepository(db *pgxpool.Pool) *AdsRepository {
	return &AdsRepository{db: db}
}

func (r *AdsRepository) RecordWatch(ctx context.Context, q Querier, playerID int64, category string, now time.Time) error {
	_, err := q.Exec(ctx,
		`INSERT INTO ad_watches (player_id, category, watched_at) VALUES ($1, $2, $3)`,
		playerID, category, now,
	)
	return err
}

// CountSince counts watches in one category inside the rolling window.
func (r *AdsRepository) CountSince(ctx context.Context, q Querier, playerID int64, category string, since time.Time) (int, error) {
	var n int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM ad_watches
		 WHERE player_id = $1 AND category = $2 AND watched_at > $3`,
		playerID, category, since,
	).Scan(&n)
	return n, err
}

// Prune drops watch rows older than the accounting window; called from the
// background sweep.
func (r *AdsRepository) Prune(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM ad_watches WHERE watched_at <= $1`, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
