package domain

import (
	"time"

	"covenfield_backend/internal/catalog"
)

// FarmPlot is one of the player's six fixed plots. CropID nil = empty.
type FarmPlot struct {
	PlayerID  int64           `db:"player_id" json:"-"`
	Plot      int             `db:"plot" json:"plot"`
	CropID    *catalog.ItemID `db:"crop_id" json:"crop_id,omitempty"`
	PlantedAt *time.Time      `db:"planted_at" json:"planted_at,omitempty"`
	ReadyAt   *time.Time      `db:"ready_at" json:"ready_at,omitempty"`
}

func (p *FarmPlot) Empty() bool { return p.CropID == nil }

func (p *FarmPlot) Ready(now time.Time) bool {
	return p.ReadyAt != nil && !now.Before(*p.ReadyAt)
}

// FarmPlots is the fixed plot count per player.
const FarmPlots = 6

// CraftJob occupies a factory or armory queue slot. RecipeID 0 = empty slot
// (slots are materialized lazily, an absent row is also empty).
type CraftJob struct {
	ID         int64                `db:"id" json:"id"`
	PlayerID   int64                `db:"player_id" json:"-"`
	Producer   catalog.ProducerKind `db:"producer" json:"producer"`
	Slot       int                  `db:"slot" json:"slot"`
	RecipeID   int64                `db:"recipe_id" json:"recipe_id"`
	StartedAt  time.Time            `db:"started_at" json:"started_at"`
	FinishesAt time.Time            `db:"finishes_at" json:"finishes_at"`
}

func (j *CraftJob) Ready(now time.Time) bool { return !now.Before(j.FinishesAt) }

// MineState is the player's single mine: a depth counter plus a lazily
// reset daily energy budget instead of discrete slots.
type MineState struct {
	PlayerID      int64          `db:"player_id" json:"-"`
	Depth         int            `db:"depth" json:"depth"`
	Energy        int            `db:"energy" json:"energy"`
	EnergyResetAt time.Time      `db:"energy_reset_at" json:"energy_reset_at"`
	Tool          catalog.ItemID `db:"tool" json:"tool"`
}

// EnergyStale reports whether the 24h lazy reset is due.
func (m *MineState) EnergyStale(now time.Time) bool {
	return now.Sub(m.EnergyResetAt) >= 24*time.Hour
}

// Enclosure holds up to two zoo animals.
type Enclosure struct {
	ID       int64 `db:"id" json:"id"`
	PlayerID int64 `db:"player_id" json:"-"`
}

type Animal struct {
	ID              int64      `db:"id" json:"id"`
	EnclosureID     int64      `db:"enclosure_id" json:"enclosure_id"`
	PlayerID        int64      `db:"player_id" json:"-"`
	TypeKey         string     `db:"type_key" json:"type"`
	Tier            int        `db:"tier" json:"tier"`
	LastCollectedAt time.Time  `db:"last_collected_at" json:"last_collected_at"`
	BreedReadyAt    *time.Time `db:"breed_ready_at" json:"breed_ready_at,omitempty"`
}

// AccruedCycles counts full production intervals since the last collection.
func (a *Animal) AccruedCycles(interval time.Duration, now time.Time) int64 {
	if interval <= 0 {
		return 0
	}
	return int64(now.Sub(a.LastCollectedAt) / interval)
}
