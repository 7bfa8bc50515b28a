package domain

import "time"

type Player struct {
	ID              int64      `db:"id" json:"id"`
	Username        string     `db:"username" json:"username"`
	Crystals        int64      `db:"crystals" json:"crystals"`
	Aether          int64      `db:"aether" json:"aether"`
	XP              int64      `db:"xp" json:"xp"`
	Level           int        `db:"level" json:"level"`
	Population      int        `db:"population" json:"population"`
	StorageCapacity int64      `db:"storage_capacity" json:"storage_capacity"`
	TownSize        int        `db:"town_size" json:"town_size"`
	DailyStreak     int        `db:"daily_streak" json:"daily_streak"`
	LastClaimedDate *time.Time `db:"last_claimed_date" json:"last_claimed_date,omitempty"`
	Title           string     `db:"title" json:"title,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

// XPForLevel is the XP needed to advance from the given level.
func XPForLevel(level int) int64 { return int64(level) * 1000 }

// ApplyXP adds earned XP and advances the level while the threshold for the
// current level is met, carrying leftover XP forward.
func ApplyXP(level int, xp, amount int64) (int, int64) {
	xp += amount
	for xp >= XPForLevel(level) {
		xp -= XPForLevel(level)
		level++
	}
	return level, xp
}

// PublicProfile is the view other players may see.
type PublicProfile struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Level      int    `json:"level"`
	Population int    `json:"population"`
	Title      string `json:"title,omitempty"`
}

func (p *Player) Public() PublicProfile {
	return PublicProfile{
		ID:         p.ID,
		Username:   p.Username,
		Level:      p.Level,
		Population: p.Population,
		Title:      p.Title,
	}
}
