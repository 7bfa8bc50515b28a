package repository

import (
	"context"
	"errors"

	"covenfield_backend/internal/catalog"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrInsufficientItems = errors.New("insufficient items")

type InventoryRepository struct {
	db *pgxpool.Pool
}

func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) Quantity(ctx context.Context, q Querier, playerID int64, item catalog.ItemID) (int64, error) {
	var qty int64
	err := q.QueryRow(ctx,
		`SELECT COALESCE(quantity, 0) FROM inventory WHERE player_id = $1 AND item_id = $2`,
		playerID, item,
	).Scan(&qty)
	if IsNoRows(err) {
		return 0, nil
	}
	return qty, err
}

// List returns all non-zero stacks for a player.
func (r *InventoryRepository) List(ctx context.Context, playerID int64) (map[catalog.ItemID]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT item_id, quantity FROM inventory WHERE player_id = $1 AND quantity > 0 ORDER BY item_id`,
		playerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[catalog.ItemID]int64)
	for rows.Next() {
		var item catalog.ItemID
		var qty int64
		if err := rows.Scan(&item, &qty); err != nil {
			return nil, err
		}
		out[item] = qty
	}
	return out, rows.Err()
}

// Add credits a stack, creating it if needed.
func (r *InventoryRepository) Add(ctx context.Context, q Querier, playerID int64, item catalog.ItemID, qty int64) error {
	_, err := q.Exec(ctx,
		`INSERT INTO inventory (player_id, item_id, quantity) VALUES ($1, $2, $3)
		 ON CONFLICT (player_id, item_id) DO UPDATE SET quantity = inventory.quantity + $3`,
		playerID, item, qty,
	)
	return err
}

// Remove debits a stack with a single conditional UPDATE; the WHERE clause
// re-verifies the precondition so concurrent debits cannot overdraw.
func (r *InventoryRepository) Remove(ctx context.Context, q Querier, playerID int64, item catalog.ItemID, qty int64) error {
	tag, err := q.Exec(ctx,
		`UPDATE inventory SET quantity = quantity - $3
		 WHERE player_id = $1 AND item_id = $2 AND quantity >= $3`,
		playerID, item, qty,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientItems
	}
	return nil
}

// RemoveAll debits a set of stacks inside one transaction; the first
// shortfall aborts and the tx rollback undoes any partial debit.
func (r *InventoryRepository) RemoveAll(ctx context.Context, q Querier, playerID int64, items map[catalog.ItemID]int64) error {
	for item, qty := range items {
		if err := r.Remove(ctx, q, playerID, item, qty); err != nil {
			return err
		}
	}
	return nil
}
