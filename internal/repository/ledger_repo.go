package repository

import (
	"context"
	"encoding/json"

	"covenfield_backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type LedgerRepository struct {
	db *pgxpool.Pool
}

func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Create writes one ledger row; callers pass the surrounding transaction so
// the entry commits or rolls back with the balance change it records.
func (r *LedgerRepository) Create(ctx context.Context, q Querier, e *domain.LedgerEntry) error {
	meta := e.Meta
	if meta == nil {
		meta = map[string]interface{}{}
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	return q.QueryRow(ctx,
		`INSERT INTO currency_ledger (player_id, currency, type, amount, meta)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		e.PlayerID, e.Currency, e.Type, e.Amount, metaJSON,
	).Scan(&e.ID, &e.CreatedAt)
}

func (r *LedgerRepository) GetByPlayer(ctx context.Context, playerID int64, limit int) ([]*domain.LedgerEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, player_id, currency, type, amount, meta, created_at
		 FROM currency_ledger
		 WHERE player_id = $1
		 ORDER BY id DESC
		 LIMIT $2`,
		playerID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		var metaJSON []byte
		if err := rows.Scan(&e.ID, &e.PlayerID, &e.Currency, &e.Type, &e.Amount, &metaJSON, &e.CreatedAt); err != nil {
			return nil, err
		}
		if len(metaJSON) > 0 {
			_ = json.Unmarshal(metaJSON, &e.Meta)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}
