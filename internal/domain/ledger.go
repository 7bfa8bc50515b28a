package domain

import "time"

// LedgerEntry records every currency mutation. Amount is signed; Currency
// is "crystals" or "aether".
type LedgerEntry struct {
	ID        int64                  `db:"id" json:"id"`
	PlayerID  int64                  `db:"player_id" json:"-"`
	Currency  string                 `db:"currency" json:"currency"`
	Type      string                 `db:"type" json:"type"`
	Amount    int64                  `db:"amount" json:"amount"`
	Meta      map[string]interface{} `db:"meta" json:"meta,omitempty"`
	CreatedAt time.Time              `db:"created_at" json:"created_at"`
}

const (
	CurrencyCrystals = "crystals"
	CurrencyAether   = "aether"
)
