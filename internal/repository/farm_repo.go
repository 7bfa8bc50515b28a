package repository

import (
	"context"
	"time"

	"covenfield_backend/internal/catalog"
	"covenfield_backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type FarmRepository struct {
	db *pgxpool.Pool
}

func NewFarmRepository(db *pgxpool.Pool) *FarmRepository {
	return &FarmRepository{db: db}
}

// SeedPlots creates the six empty plots for a new player.
func (r *FarmRepository) SeedPlots(ctx context.Context, q Querier, playerID int64) error {
	for plot := 1; plot <= domain.FarmPlots; plot++ {
		if _, err := q.Exec(ctx,
			`INSERT INTO farm_plots (player_id, plot) VALUES ($1, $2)`,
			playerID, plot,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *FarmRepository) GetPlots(ctx context.Context, playerID int64) ([]*domain.FarmPlot, error) {
	rows, err := r.db.Query(ctx,
		`SELECT player_id, plot, crop_id, planted_at, ready_at
		 FROM farm_plots WHERE player_id = $1 ORDER BY plot`,
		playerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.FarmPlot
	for rows.Next() {
		var p domain.FarmPlot
		if err := rows.Scan(&p.PlayerID, &p.Plot, &p.CropID, &p.PlantedAt, &p.ReadyAt); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// Plant occupies a plot only if it is currently empty; RowsAffected 0 means
// the plot was missing or already planted.
func (r *FarmRepository) Plant(ctx context.Context, q Querier, playerID int64, plot int, crop catalog.ItemID, readyAt time.Time) (bool, error) {
	tag, err := q.Exec(ctx,
		`UPDATE farm_plots SET crop_id = $3, planted_at = now(), ready_at = $4
		 WHERE player_id = $1 AND plot = $2 AND crop_id IS NULL`,
		playerID, plot, crop, readyAt,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Harvest clears a ready plot and returns its crop. The single conditional
// UPDATE is the double-collect guard: a concurrent harvest of the same plot
// sees zero rows.
func (r *FarmRepository) Harvest(ctx context.Context, q Querier, playerID int64, plot int, now time.Time) (catalog.ItemID, bool, error) {
	var crop catalog.ItemID
	// Self-join so RETURNING yields the pre-update crop_id.
	err := q.QueryRow(ctx,
		`UPDATE farm_plots f SET crop_id = NULL, planted_at = NULL, ready_at = NULL
		 FROM farm_plots old
		 WHERE old.player_id = f.player_id AND old.plot = f.plot
		   AND f.player_id = $1 AND f.plot = $2
		   AND f.crop_id IS NOT NULL AND f.ready_at <= $3
		 RETURNING old.crop_id`,
		playerID, plot, now,
	).Scan(&crop)
	if IsNoRows(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return crop, true, nil
}

// PlotState returns one plot without clearing it, for not-ready error
// classification.
func (r *FarmRepository) PlotState(ctx context.Context, q Querier, playerID int64, plot int) (*domain.FarmPlot, error) {
	var p domain.FarmPlot
	err := q.QueryRow(ctx,
		`SELECT player_id, plot, crop_id, planted_at, ready_at
		 FROM farm_plots WHERE player_id = $1 AND plot = $2`,
		playerID, plot,
	).Scan(&p.PlayerID, &p.Plot, &p.CropID, &p.PlantedAt, &p.ReadyAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
