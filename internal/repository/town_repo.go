package repository

import (
	"context"

	"covenfield_backend/internal/catalog"
	"covenfield_backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TownRepository struct {
	db *pgxpool.Pool
}

func NewTownRepository(db *pgxpool.Pool) *TownRepository {
	return &TownRepository{db: db}
}

func (r *TownRepository) List(ctx context.Context, q Querier, playerID int64) ([]*domain.Placement, error) {
	rows, err := q.Query(ctx,
		`SELECT id, player_id, kind, type_key, x, y, level, created_at
		 FROM town_placements WHERE player_id = $1 ORDER BY id`,
		playerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Placement
	for rows.Next() {
		var p domain.Placement
		if err := rows.Scan(&p.ID, &p.PlayerID, &p.Kind, &p.TypeKey, &p.X, &p.Y, &p.Level, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (r *TownRepository) Insert(ctx context.Context, q Querier, p *domain.Placement) error {
	return q.QueryRow(ctx,
		`INSERT INTO town_placements (player_id, kind, type_key, x, y, level)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		p.PlayerID, p.Kind, p.TypeKey, p.X, p.Y, p.Level,
	).Scan(&p.ID, &p.CreatedAt)
}

func (r *TownRepository) Get(ctx context.Context, q Querier, playerID, placementID int64) (*domain.Placement, error) {
	var p domain.Placement
	err := q.QueryRow(ctx,
		`SELECT id, player_id, kind, type_key, x, y, level, created_at
		 FROM town_placements WHERE id = $1 AND player_id = $2`,
		placementID, playerID,
	).Scan(&p.ID, &p.PlayerID, &p.Kind, &p.TypeKey, &p.X, &p.Y, &p.Level, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *TownRepository) Move(ctx context.Context, q Querier, playerID, placementID int64, x, y int) (bool, error) {
	tag, err := q.Exec(ctx,
		`UPDATE town_placements SET x = $1, y = $2 WHERE id = $3 AND player_id = $4`,
		x, y, placementID, playerID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *TownRepository) Delete(ctx context.Context, q Querier, playerID, placementID int64) (bool, error) {
	tag, err := q.Exec(ctx,
		`DELETE FROM town_placements WHERE id = $1 AND player_id = $2`,
		placementID, playerID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *TownRepository) SetLevel(ctx context.Context, q Querier, placementID int64, level int) error {
	_, err := q.Exec(ctx, `UPDATE town_placements SET level = $1 WHERE id = $2`, level, placementID)
	return err
}

// CountBuildings counts placed buildings of one type, for the school XP
// bonus and achievement progress.
func (r *TownRepository) CountBuildings(ctx context.Context, q Querier, playerID int64, typeKey string) (int, error) {
	var n int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM town_placements WHERE player_id = $1 AND kind = $2 AND type_key = $3`,
		playerID, catalog.KindBuilding, typeKey,
	).Scan(&n)
	return n, err
}

// Population recomputes total population as sum(population x level) over
// the player's population-granting buildings.
func (r *TownRepository) Population(ctx context.Context, q Querier, playerID int64, popByType map[string]int) (int, error) {
	rows, err := q.Query(ctx,
		`SELECT type_key, level FROM town_placements WHERE player_id = $1 AND kind = $2`,
		playerID, catalog.KindBuilding,
	)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	total := 0
	for rows.Next() {
		var typeKey string
		var level int
		if err := rows.Scan(&typeKey, &level); err != nil {
			return 0, err
		}
		total += popByType[typeKey] * level
	}
	return total, rows.Err()
}
