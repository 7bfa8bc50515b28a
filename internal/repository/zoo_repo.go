package repository

import (
	"context"
	"time"

	"covenfield_backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ZooRepository struct {
	db *pgxpool.Pool
}

func NewZooRepository(db *pgxpool.Pool) *ZooRepository {
	return &ZooRepository{db: db}
}

func (r *ZooRepository) CreateEnclosure(ctx context.Context, q Querier, playerID int64) (int64, error) {
	var id int64
	err := q.QueryRow(ctx,
		`INSERT INTO zoo_enclosures (player_id) VALUES ($1) RETURNING id`,
		playerID,
	).Scan(&id)
	return id, err
}

func (r *ZooRepository) ListEnclosures(ctx context.Context, playerID int64) ([]*domain.Enclosure, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, player_id FROM zoo_enclosures WHERE player_id = $1 ORDER BY id`,
		playerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Enclosure
	for rows.Next() {
		var e domain.Enclosure
		if err := rows.Scan(&e.ID, &e.PlayerID); err != nil {
			return nil, err
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

func (r *ZooRepository) EnclosureOwned(ctx context.Context, q Querier, playerID, enclosureID int64) (bool, error) {
	var ok bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM zoo_enclosures WHERE id = $1 AND player_id = $2)`,
		enclosureID, playerID,
	).Scan(&ok)
	return ok, err
}

func (r *ZooRepository) CountAnimalsIn(ctx context.Context, q Querier, enclosureID int64) (int, error) {
	var n int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM zoo_animals WHERE enclosure_id = $1`, enclosureID,
	).Scan(&n)
	return n, err
}

func (r *ZooRepository) InsertAnimal(ctx context.Context, q Querier, a *domain.Animal) error {
	return q.QueryRow(ctx,
		`INSERT INTO zoo_animals (enclosure_id, player_id, type_key, tier, last_collected_at, breed_ready_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		a.EnclosureID, a.PlayerID, a.TypeKey, a.Tier, a.LastCollectedAt, a.BreedReadyAt,
	).Scan(&a.ID)
}

func (r *ZooRepository) ListAnimals(ctx context.Context, q Querier, playerID int64) ([]*domain.Animal, error) {
	rows, err := q.Query(ctx,
		`SELECT id, enclosure_id, player_id, type_key, tier, last_collected_at, breed_ready_at
		 FROM zoo_animals WHERE player_id = $1 ORDER BY enclosure_id, id`,
		playerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Animal
	for rows.Next() {
		var a domain.Animal
		if err := rows.Scan(&a.ID, &a.EnclosureID, &a.PlayerID, &a.TypeKey, &a.Tier, &a.LastCollectedAt, &a.BreedReadyAt); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

func (r *ZooRepository) GetAnimal(ctx context.Context, q Querier, playerID, animalID int64) (*domain.Animal, error) {
	var a domain.Animal
	err := q.QueryRow(ctx,
		`SELECT id, enclosure_id, player_id, type_key, tier, last_collected_at, breed_ready_at
		 FROM zoo_animals WHERE id = $1 AND player_id = $2`,
		animalID, playerID,
	).Scan(&a.ID, &a.EnclosureID, &a.PlayerID, &a.TypeKey, &a.Tier, &a.LastCollectedAt, &a.BreedReadyAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// AdvanceCollection moves last_collected_at forward by the collected whole
// cycles only; partial progress toward the next cycle is preserved. The
// guard keeps a concurrent collect from crediting the same cycles twice.
func (r *ZooRepository) AdvanceCollection(ctx context.Context, q Querier, animalID int64, from, to time.Time) (bool, error) {
	tag, err := q.Exec(ctx,
		`UPDATE zoo_animals SET last_collected_at = $1
		 WHERE id = $2 AND last_collected_at = $3`,
		to, animalID, from,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteBreedingPair consumes both parents; returns false when either is
// already gone (concurrent breed).
func (r *ZooRepository) DeleteBreedingPair(ctx context.Context, q Querier, playerID, a, b int64) (bool, error) {
	tag, err := q.Exec(ctx,
		`DELETE FROM zoo_animals WHERE player_id = $1 AND id = ANY($2::bigint[])`,
		playerID, []int64{a, b},
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 2, nil
}
