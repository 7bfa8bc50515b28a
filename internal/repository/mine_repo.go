package repository

import (
	"context"
	"time"

	"covenfield_backend/internal/catalog"
	"covenfield_backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type MineRepository struct {
	db *pgxpool.Pool
}

func NewMineRepository(db *pgxpool.Pool) *MineRepository {
	return &MineRepository{db: db}
}

// Seed creates the player's mine with a full energy budget and the basic
// pickaxe equipped.
func (r *MineRepository) Seed(ctx context.Context, q Querier, playerID int64, energy int) error {
	_, err := q.Exec(ctx,
		`INSERT INTO mine_state (player_id, depth, energy, energy_reset_at, tool)
		 VALUES ($1, 0, $2, now(), $3)`,
		playerID, energy, catalog.ItemBasicPickaxe,
	)
	return err
}

func (r *MineRepository) Get(ctx context.Context, q Querier, playerID int64) (*domain.MineState, error) {
	var m domain.MineState
	err := q.QueryRow(ctx,
		`SELECT player_id, depth, energy, energy_reset_at, tool
		 FROM mine_state WHERE player_id = $1`,
		playerID,
	).Scan(&m.PlayerID, &m.Depth, &m.Energy, &m.EnergyResetAt, &m.Tool)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// LockForUpdate reads the mine row under a row lock; dig is a
// read-modify-write of depth and energy.
func (r *MineRepository) LockForUpdate(ctx context.Context, q Querier, playerID int64) (*domain.MineState, error) {
	var m domain.MineState
	err := q.QueryRow(ctx,
		`SELECT player_id, depth, energy, energy_reset_at, tool
		 FROM mine_state WHERE player_id = $1 FOR UPDATE`,
		playerID,
	).Scan(&m.PlayerID, &m.Depth, &m.Energy, &m.EnergyResetAt, &m.Tool)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MineRepository) SetDepthEnergy(ctx context.Context, q Querier, playerID int64, depth, energy int) error {
	_, err := q.Exec(ctx,
		`UPDATE mine_state SET depth = $1, energy = $2 WHERE player_id = $3`,
		depth, energy, playerID,
	)
	return err
}

// ResetEnergy restores the full daily budget and stamps the reset time.
func (r *MineRepository) ResetEnergy(ctx context.Context, q Querier, playerID int64, energy int, at time.Time) error {
	_, err := q.Exec(ctx,
		`UPDATE mine_state SET energy = $1, energy_reset_at = $2 WHERE player_id = $3`,
		energy, at, playerID,
	)
	return err
}

// SetTool equips a pickaxe the player owns; ownership is checked by the
// caller against inventory.
func (r *MineRepository) SetTool(ctx context.Context, q Querier, playerID int64, tool catalog.ItemID) error {
	_, err := q.Exec(ctx, `UPDATE mine_state SET tool = $1 WHERE player_id = $2`, tool, playerID)
	return err
}
