package domain

import "time"

// Coven roles. Leaders promote/demote, elders may start tasks, everyone
// contributes.
const (
	CovenRoleMember = "member"
	CovenRoleElder  = "elder"
	CovenRoleLeader = "leader"
)

type Coven struct {
	ID             int64     `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Description    string    `db:"description" json:"description"`
	LeaderID       int64     `db:"leader_id" json:"leader_id"`
	MemberCount    int       `db:"member_count" json:"member_count"` // denormalized
	SharedCrystals int64     `db:"shared_crystals" json:"shared_crystals"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

type CovenMember struct {
	CovenID  int64     `db:"coven_id" json:"coven_id"`
	PlayerID int64     `db:"player_id" json:"player_id"`
	Role     string    `db:"role" json:"role"`
	JoinedAt time.Time `db:"joined_at" json:"joined_at"`
}

// CovenTask is a cooperative task. Objectives hold incrementally updated
// aggregate totals summed across all members; no per-contribution rescan.
type CovenTask struct {
	ID             int64      `db:"id" json:"id"`
	CovenID        int64      `db:"coven_id" json:"coven_id"`
	Title          string     `db:"title" json:"title"`
	Objectives     Objectives `db:"objectives" json:"objectives"`
	RewardCrystals int64      `db:"reward_crystals" json:"reward_crystals"` // added to shared pool, split on completion
	Completed      bool       `db:"completed" json:"completed"`
	CompletedAt    *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}

// CovenContribution records one member's lifetime contribution to a task,
// kept for display; totals live on the task itself.
type CovenContribution struct {
	TaskID   int64  `db:"task_id" json:"task_id"`
	PlayerID int64  `db:"player_id" json:"player_id"`
	Type     string `db:"type" json:"type"`
	Amount   int64  `db:"amount" json:"amount"`
}

// RoleRank orders roles for permission checks.
func RoleRank(role string) int {
	switch role {
	case CovenRoleLeader:
		return 3
	case CovenRoleElder:
		return 2
	case CovenRoleMember:
		return 1
	default:
		return 0
	}
}
