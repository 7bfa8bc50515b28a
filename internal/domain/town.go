package domain

import (
	"time"

	"covenfield_backend/internal/catalog"
)

// Placement is one placeable on the player's town grid, anchored at its
// top-left cell. Multi-cell buildings occupy a rectangle from the anchor.
type Placement struct {
	ID        int64                 `db:"id" json:"id"`
	PlayerID  int64                 `db:"player_id" json:"-"`
	Kind      catalog.PlaceableKind `db:"kind" json:"kind"`
	TypeKey   string                `db:"type_key" json:"type"`
	X         int                   `db:"x" json:"x"`
	Y         int                   `db:"y" json:"y"`
	Level     int                   `db:"level" json:"level"`
	CreatedAt time.Time             `db:"created_at" json:"created_at"`
}

// Footprint returns the rectangle of cells the placement covers.
func (p *Placement) Footprint() (w, h int) {
	if p.Kind == catalog.KindBuilding {
		if b, ok := catalog.GetBuildingType(p.TypeKey); ok {
			return b.Width, b.Height
		}
	}
	return 1, 1
}

// Covers reports whether the placement occupies cell (x, y).
func (p *Placement) Covers(x, y int) bool {
	w, h := p.Footprint()
	return x >= p.X && x < p.X+w && y >= p.Y && y < p.Y+h
}
