package domain

import "time"

// Achievement condition kinds. Counter conditions advance by increments;
// stat conditions take the current profile value as absolute progress.
const (
	CondHarvestCount    = "harvest_count"
	CondCraftCount      = "craft_count"
	CondMineCount       = "mine_count"
	CondSellCount       = "sell_count"
	CondBreedCount      = "animals_bred"
	CondBuildingsPlaced = "buildings_placed"
	CondLevelReached    = "level_reached" // absolute: player level
)

// Achievement is a reference-table definition. Rewards are granted
// automatically the moment the threshold is first crossed; the claim step
// only assigns the title.
type Achievement struct {
	ID             int64  `db:"id" json:"id"`
	Name           string `db:"name" json:"name"`
	Description    string `db:"description" json:"description"`
	ConditionType  string `db:"condition_type" json:"condition_type"`
	Threshold      int64  `db:"threshold" json:"threshold"`
	RewardCrystals int64  `db:"reward_crystals" json:"reward_crystals"`
	RewardXP       int64  `db:"reward_xp" json:"reward_xp"`
	Title          string `db:"title" json:"title,omitempty"`
}

type PlayerAchievement struct {
	PlayerID      int64      `db:"player_id" json:"-"`
	AchievementID int64      `db:"achievement_id" json:"achievement_id"`
	Progress      int64      `db:"progress" json:"progress"`
	Completed     bool       `db:"completed" json:"completed"`
	Claimed       bool       `db:"claimed" json:"claimed"`
	CompletedAt   *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	ClaimedAt     *time.Time `db:"claimed_at" json:"claimed_at,omitempty"`
}

// IsAbsoluteCondition reports whether progress tracks a profile stat rather
// than an incrementing counter.
func IsAbsoluteCondition(conditionType string) bool {
	return conditionType == CondLevelReached
}
