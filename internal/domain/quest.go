package domain

import (
	"encoding/json"
	"time"
)

// Objective action types shared by quests, coven tasks and achievement
// condition tracking.
const (
	ActionHarvest    = "harvest"
	ActionCraft      = "craft"
	ActionMine       = "mine"
	ActionSell       = "sell"
	ActionPlace      = "place_building"
	ActionBreed      = "breed"
	ActionCollectZoo = "collect_zoo"
)

// Objective is one entry of a quest's JSON objective array.
type Objective struct {
	Type    string `json:"type"`
	Target  int64  `json:"target"`
	Current int64  `json:"current"`
}

// Objectives is the stored jsonb blob.
type Objectives []Objective

// Advance increments matching-type objectives, capped at their target.
// Returns true if anything changed.
func (objs Objectives) Advance(actionType string, increment int64) bool {
	changed := false
	for i := range objs {
		if objs[i].Type != actionType || objs[i].Current >= objs[i].Target {
			continue
		}
		objs[i].Current += increment
		if objs[i].Current > objs[i].Target {
			objs[i].Current = objs[i].Target
		}
		changed = true
	}
	return changed
}

// Complete reports whether every objective has met its target.
func (objs Objectives) Complete() bool {
	for _, o := range objs {
		if o.Current < o.Target {
			return false
		}
	}
	return len(objs) > 0
}

func (objs Objectives) Marshal() ([]byte, error) { return json.Marshal(objs) }

func UnmarshalObjectives(b []byte) (Objectives, error) {
	var objs Objectives
	if err := json.Unmarshal(b, &objs); err != nil {
		return nil, err
	}
	return objs, nil
}

// Quest is a reference-table quest definition. Objectives carry target
// values; per-player current counts live in PlayerQuest.
type Quest struct {
	ID             int64      `db:"id" json:"id"`
	Title          string     `db:"title" json:"title"`
	Description    string     `db:"description" json:"description"`
	Objectives     Objectives `db:"objectives" json:"objectives"`
	RewardCrystals int64      `db:"reward_crystals" json:"reward_crystals"`
	RewardXP       int64      `db:"reward_xp" json:"reward_xp"`
	MinLevel       int        `db:"min_level" json:"min_level"`
	IsActive       bool       `db:"is_active" json:"is_active"`
	SortOrder      int        `db:"sort_order" json:"sort_order"`
}

// PlayerQuest is a player's progress row. Progress is monotonic, completion
// one-way, claim one-way and reward-granting.
type PlayerQuest struct {
	ID          int64      `db:"id" json:"id"`
	PlayerID    int64      `db:"player_id" json:"-"`
	QuestID     int64      `db:"quest_id" json:"quest_id"`
	Objectives  Objectives `db:"objectives" json:"objectives"`
	Completed   bool       `db:"completed" json:"completed"`
	Claimed     bool       `db:"claimed" json:"claimed"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	ClaimedAt   *time.Time `db:"claimed_at" json:"claimed_at,omitempty"`
}

func (pq *PlayerQuest) CanClaim() bool { return pq.Completed && !pq.Claimed }
