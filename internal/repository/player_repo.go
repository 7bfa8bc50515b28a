package repository

import (
	"context"
	"errors"
	"time"

	"covenfield_backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrInsufficientFunds = errors.New("insufficient funds")

type PlayerRepository struct {
	db *pgxpool.Pool
}

func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{db: db}
}

const playerColumns = `id, username, crystals, aether, xp, level, population,
	storage_capacity, town_size, daily_streak, last_claimed_date, COALESCE(title, ''), created_at`

func scanPlayer(row interface{ Scan(dest ...any) error }) (*domain.Player, error) {
	var p domain.Player
	err := row.Scan(
		&p.ID, &p.Username, &p.Crystals, &p.Aether, &p.XP, &p.Level,
		&p.Population, &p.StorageCapacity, &p.TownSize, &p.DailyStreak,
		&p.LastClaimedDate, &p.Title, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new player with the starting balances. Runs inside the
// registration transaction so the starter kit seeds atomically with it.
func (r *PlayerRepository) Create(ctx context.Context, q Querier, username, secretHash string) (*domain.Player, error) {
	row := q.QueryRow(ctx,
		`INSERT INTO players (username, secret_hash, crystals, aether, level, xp, town_size, storage_capacity)
		 VALUES ($1, $2, 500, 10, 1, 0, 20, 1000)
		 RETURNING `+playerColumns,
		username, secretHash,
	)
	return scanPlayer(row)
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (*domain.Player, error) {
	return scanPlayer(r.db.QueryRow(ctx, `SELECT `+playerColumns+` FROM players WHERE id = $1`, id))
}

func (r *PlayerRepository) GetByUsername(ctx context.Context, username string) (*domain.Player, string, error) {
	var p domain.Player
	var hash string
	err := r.db.QueryRow(ctx,
		`SELECT `+playerColumns+`, secret_hash FROM players WHERE username = $1`, username,
	).Scan(
		&p.ID, &p.Username, &p.Crystals, &p.Aether, &p.XP, &p.Level,
		&p.Population, &p.StorageCapacity, &p.TownSize, &p.DailyStreak,
		&p.LastClaimedDate, &p.Title, &p.CreatedAt, &hash,
	)
	if err != nil {
		return nil, "", err
	}
	return &p, hash, nil
}

// LockForUpdate takes the player's row lock inside tx and returns the
// current row. Every read-then-write currency or XP mutation goes through
// this to close concurrent-spend races.
func (r *PlayerRepository) LockForUpdate(ctx context.Context, q Querier, id int64) (*domain.Player, error) {
	return scanPlayer(q.QueryRow(ctx, `SELECT `+playerColumns+` FROM players WHERE id = $1 FOR UPDATE`, id))
}

// AddCrystals applies a signed delta, guarded so the balance never goes
// negative. Returns the new balance; ErrInsufficientFunds when the guard
// rejects the debit.
func (r *PlayerRepository) AddCrystals(ctx context.Context, q Querier, id int64, delta int64) (int64, error) {
	var balance int64
	err := q.QueryRow(ctx,
		`UPDATE players SET crystals = crystals + $1 WHERE id = $2 AND crystals + $1 >= 0 RETURNING crystals`,
		delta, id,
	).Scan(&balance)
	if IsNoRows(err) {
		return 0, ErrInsufficientFunds
	}
	return balance, err
}

// AddAether is AddCrystals for the premium currency.
func (r *PlayerRepository) AddAether(ctx context.Context, q Querier, id int64, delta int64) (int64, error) {
	var balance int64
	err := q.QueryRow(ctx,
		`UPDATE players SET aether = aether + $1 WHERE id = $2 AND aether + $1 >= 0 RETURNING aether`,
		delta, id,
	).Scan(&balance)
	if IsNoRows(err) {
		return 0, ErrInsufficientFunds
	}
	return balance, err
}

// SetLevelXP persists the result of a GrantXP level loop.
func (r *PlayerRepository) SetLevelXP(ctx context.Context, q Querier, id int64, level int, xp int64) error {
	_, err := q.Exec(ctx, `UPDATE players SET level = $1, xp = $2 WHERE id = $3`, level, xp, id)
	return err
}

func (r *PlayerRepository) SetPopulation(ctx context.Context, q Querier, id int64, population int) error {
	_, err := q.Exec(ctx, `UPDATE players SET population = $1 WHERE id = $2`, population, id)
	return err
}

func (r *PlayerRepository) SetTitle(ctx context.Context, q Querier, id int64, title string) error {
	_, err := q.Exec(ctx, `UPDATE players SET title = $1 WHERE id = $2`, title, id)
	return err
}

// SetDailyClaim advances the streak and stamps today's claim date. Guarded
// against a second claim on the same day.
func (r *PlayerRepository) SetDailyClaim(ctx context.Context, q Querier, id int64, streak int, day time.Time) (bool, error) {
	tag, err := q.Exec(ctx,
		`UPDATE players SET daily_streak = $1, last_claimed_date = $2
		 WHERE id = $3 AND (last_claimed_date IS NULL OR last_claimed_date < $2)`,
		streak, day, id,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
