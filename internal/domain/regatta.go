package domain

import "time"

const (
	RegattaUpcoming  = "upcoming"
	RegattaActive    = "active"
	RegattaCompleted = "completed"
)

// Regatta is a time-windowed competitive event. The active→completed
// transition happens in the background sweep, never in a player call.
type Regatta struct {
	ID       int64     `db:"id" json:"id"`
	Name     string    `db:"name" json:"name"`
	Status   string    `db:"status" json:"status"`
	StartsAt time.Time `db:"starts_at" json:"starts_at"`
	EndsAt   time.Time `db:"ends_at" json:"ends_at"`
	// TaskPoints is the flat score per submitted task index.
	TaskPoints int64 `db:"task_points" json:"task_points"`
	TaskCount  int   `db:"task_count" json:"task_count"`
}

type RegattaParticipant struct {
	RegattaID int64     `db:"regatta_id" json:"regatta_id"`
	PlayerID  int64     `db:"player_id" json:"player_id"`
	Points    int64     `db:"points" json:"points"`
	Claimed   bool      `db:"claimed" json:"claimed"`
	JoinedAt  time.Time `db:"joined_at" json:"joined_at"`
}

// RegattaRankReward maps a final rank to its crystal reward tier.
func RegattaRankReward(rank int) int64 {
	switch {
	case rank == 1:
		return 1000
	case rank <= 3:
		return 500
	case rank <= 10:
		return 250
	default:
		return 100
	}
}
