package domain

import (
	"time"

	"covenfield_backend/internal/catalog"
)

// ActiveBoost is at most one row per (player, boost type). Expired rows are
// ignored at read time, not eagerly deleted.
type ActiveBoost struct {
	PlayerID  int64             `db:"player_id" json:"-"`
	BoostType catalog.BoostType `db:"boost_type" json:"boost_type"`
	Mult      float64           `db:"mult" json:"mult"`
	ExpiresAt time.Time         `db:"expires_at" json:"expires_at"`
}

func (b *ActiveBoost) Active(now time.Time) bool { return now.Before(b.ExpiresAt) }

// Multiplier returns the effective multiplier, 1 when expired or absent.
func (b *ActiveBoost) Multiplier(now time.Time) float64 {
	if b == nil || !b.Active(now) {
		return 1
	}
	return b.Mult
}
