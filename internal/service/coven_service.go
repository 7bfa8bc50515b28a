package service

import (
	"context"
	"strings"
	"time"

	"covenfield_backend/internal/catalog"
	"covenfield_backend/internal/domain"
	"covenfield_backend/internal/logger"
	"covenfield_backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CovenFoundingCost is the crystal price of creating a coven.
const CovenFoundingCost int64 = 1000

// CovenService manages guild membership, roles, cooperative tasks and the
// shared crystal pool.
type CovenService struct {
	db        *pgxpool.Pool
	covenRepo *repository.CovenRepository
	invRepo   *repository.InventoryRepository
	balance   *BalanceService
	publisher Publisher
}

func NewCovenService(db *pgxpool.Pool, balance *BalanceService, publisher Publisher) *CovenService {
	return &CovenService{
		db:        db,
		covenRepo: repository.NewCovenRepository(db),
		invRepo:   repository.NewInventoryRepository(db),
		balance:   balance,
		publisher: publisher,
	}
}

// Create founds a coven with the caller as leader.
func (s *CovenService) Create(ctx context.Context, playerID int64, name, description string) (*domain.Coven, error) {
	name = strings.TrimSpace(name)
	if len(name) < 3 || len(name) > 48 {
		return nil, invalidState("coven name length")
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := s.covenRepo.MemberOf(ctx, tx, playerID); err == nil {
		return nil, invalidState("already in a coven")
	} else if !repository.IsNoRows(err) {
		return nil, err
	}

	meta := map[string]interface{}{"coven": name}
	if _, err := s.balance.DebitTx(ctx, tx, playerID, domain.CurrencyCrystals, CovenFoundingCost, "coven_founding", meta); err != nil {
		return nil, err
	}

	coven, err := s.covenRepo.Create(ctx, tx, name, description, playerID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, alreadyDone("coven name taken")
		}
		return nil, err
	}
	if err := s.covenRepo.AddMember(ctx, tx, coven.ID, playerID, domain.CovenRoleLeader); err != nil {
		return nil, err
	}
	coven.MemberCount = 1
	logger.Info("coven founded", "coven_id", coven.ID, "leader_id", playerID)
	return coven, tx.Commit(ctx)
}

// CovenView is a coven with its member list.
type CovenView struct {
	Coven   *domain.Coven         `json:"coven"`
	Members []*domain.CovenMember `json:"members"`
}

func (s *CovenService) Get(ctx context.Context, covenID int64) (*CovenView, error) {
	coven, err := s.covenRepo.Get(ctx, s.db, covenID)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, notFound("coven")
		}
		return nil, err
	}
	members, err := s.covenRepo.Members(ctx, s.db, covenID)
	if err != nil {
		return nil, err
	}
	return &CovenView{Coven: coven, Members: members}, nil
}

// Mine returns the caller's coven view, or nil when covenless.
func (s *CovenService) Mine(ctx context.Context, playerID int64) (*CovenView, error) {
	member, err := s.covenRepo.MemberOf(ctx, s.db, playerID)
	if repository.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, member.CovenID)
}

func (s *CovenService) Join(ctx context.Context, playerID, covenID int64) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := s.covenRepo.Get(ctx, tx, covenID); err != nil {
		if repository.IsNoRows(err) {
			return notFound("coven")
		}
		return err
	}
	if err := s.covenRepo.AddMember(ctx, tx, covenID, playerID, domain.CovenRoleMember); err != nil {
		if isUniqueViolation(err) {
			return invalidState("already in a coven")
		}
		return err
	}
	return tx.Commit(ctx)
}

// Leave removes the caller. A departing leader hands leadership to the
// longest-serving remaining member; the last member leaving deletes the
// coven.
func (s *CovenService) Leave(ctx context.Context, playerID int64) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	member, err := s.covenRepo.MemberOf(ctx, tx, playerID)
	if err != nil {
		if repository.IsNoRows(err) {
			return invalidState("not in a coven")
		}
		return err
	}

	remaining, err := s.covenRepo.RemoveMember(ctx, tx, member.CovenID, playerID)
	if err != nil {
		return err
	}
	if remaining == 0 {
		if err := s.covenRepo.Delete(ctx, tx, member.CovenID); err != nil {
			return err
		}
		return tx.Commit(ctx)
	}

	if member.Role == domain.CovenRoleLeader {
		members, err := s.covenRepo.Members(ctx, tx, member.CovenID)
		if err != nil {
			return err
		}
		heir := members[0]
		if _, err := s.covenRepo.SetRole(ctx, tx, member.CovenID, heir.PlayerID, domain.CovenRoleLeader); err != nil {
			return err
		}
		if err := s.covenRepo.SetLeader(ctx, tx, member.CovenID, heir.PlayerID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// SetRole promotes or demotes a member; leader only.
func (s *CovenService) SetRole(ctx context.Context, actorID, targetID int64, role string) error {
	if role != domain.CovenRoleMember && role != domain.CovenRoleElder {
		return invalidState("role %q", role)
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	actor, err := s.covenRepo.MemberOf(ctx, tx, actorID)
	if err != nil {
		if repository.IsNoRows(err) {
			return invalidState("not in a coven")
		}
		return err
	}
	if actor.Role != domain.CovenRoleLeader {
		return unauthorized("leader only")
	}
	target, err := s.covenRepo.MemberOf(ctx, tx, targetID)
	if err != nil || target.CovenID != actor.CovenID {
		return notFound("member")
	}
	if target.Role == domain.CovenRoleLeader {
		return invalidState("cannot change the leader's role")
	}
	if _, err := s.covenRepo.SetRole(ctx, tx, actor.CovenID, targetID, role); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Kick removes a lower-ranked member; elder and above.
func (s *CovenService) Kick(ctx context.Context, actorID, targetID int64) error {
	if actorID == targetID {
		return invalidState("use leave")
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	actor, err := s.covenRepo.MemberOf(ctx, tx, actorID)
	if err != nil {
		if repository.IsNoRows(err) {
			return invalidState("not in a coven")
		}
		return err
	}
	target, err := s.covenRepo.MemberOf(ctx, tx, targetID)
	if err != nil || target.CovenID != actor.CovenID {
		return notFound("member")
	}
	if domain.RoleRank(actor.Role) <= domain.RoleRank(target.Role) {
		return unauthorized("insufficient rank")
	}
	if _, err := s.covenRepo.RemoveMember(ctx, tx, actor.CovenID, targetID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// CreateTask opens a cooperative task; elder and above.
func (s *CovenService) CreateTask(ctx context.Context, actorID int64, title string, objectives domain.Objectives, rewardCrystals int64) (*domain.CovenTask, error) {
	if len(objectives) == 0 {
		return nil, invalidState("task needs objectives")
	}
	for _, o := range objectives {
		if o.Target <= 0 {
			return nil, invalidState("objective target %d", o.Target)
		}
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	actor, err := s.covenRepo.MemberOf(ctx, tx, actorID)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, invalidState("not in a coven")
		}
		return nil, err
	}
	if domain.RoleRank(actor.Role) < domain.RoleRank(domain.CovenRoleElder) {
		return nil, unauthorized("elder only")
	}

	task := &domain.CovenTask{
		CovenID:        actor.CovenID,
		Title:          strings.TrimSpace(title),
		Objectives:     objectives,
		RewardCrystals: rewardCrystals,
	}
	if err := s.covenRepo.CreateTask(ctx, tx, task); err != nil {
		return nil, err
	}
	return task, tx.Commit(ctx)
}

func (s *CovenService) Tasks(ctx context.Context, playerID int64) ([]*domain.CovenTask, error) {
	member, err := s.covenRepo.MemberOf(ctx, s.db, playerID)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, invalidState("not in a coven")
		}
		return nil, err
	}
	return s.covenRepo.Tasks(ctx, s.db, member.CovenID)
}

// taskRewardShare is the even split of a completed task's reward across the
// member count. The indivisible remainder stays in the shared pool.
func taskRewardShare(reward int64, members int) (share, remainder int64) {
	if members <= 0 {
		return 0, reward
	}
	share = reward / int64(members)
	return share, reward - share*int64(members)
}

// payTaskReward credits every current member their even share of a completed
// task's reward and banks the remainder in the shared pool. Runs inside the
// caller's transaction so the payout commits with the completion.
func payTaskReward(ctx context.Context, q repository.Querier, covenRepo *repository.CovenRepository, balance *BalanceService, covenID, taskID, reward int64) error {
	members, err := covenRepo.Members(ctx, q, covenID)
	if err != nil {
		return err
	}
	share, remainder := taskRewardShare(reward, len(members))
	meta := map[string]interface{}{"coven_id": covenID, "task_id": taskID}
	if share > 0 {
		for _, m := range members {
			if _, err := balance.CreditTx(ctx, q, m.PlayerID, domain.CurrencyCrystals, share, "coven_task_reward", meta); err != nil {
				return err
			}
		}
	}
	if remainder > 0 {
		if _, err := covenRepo.AddSharedCrystals(ctx, q, covenID, remainder); err != nil {
			return err
		}
	}
	return nil
}

// contributionAction maps a donated item onto the objective type it
// advances. Only produced goods count; equipment and seeds do not.
func contributionAction(item catalog.ItemID) (string, error) {
	def, ok := catalog.GetItem(item)
	if !ok {
		return "", notFound("item")
	}
	switch def.Kind {
	case catalog.KindCrop:
		return domain.ActionHarvest, nil
	case catalog.KindCrafted:
		return domain.ActionCraft, nil
	case catalog.KindOre:
		return domain.ActionMine, nil
	default:
		return "", invalidState("item cannot be contributed")
	}
}

// Contribute donates items toward one task. The donation advances the
// objective matching the item's kind; production collects also feed tasks
// automatically, this is the direct hand-in path.
func (s *CovenService) Contribute(ctx context.Context, playerID, taskID int64, item catalog.ItemID, qty int64) (*domain.CovenTask, error) {
	if qty <= 0 {
		return nil, invalidState("quantity %d", qty)
	}
	action, err := contributionAction(item)
	if err != nil {
		return nil, err
	}
	now := time.Now()

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	member, err := s.covenRepo.MemberOf(ctx, tx, playerID)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, invalidState("not in a coven")
		}
		return nil, err
	}

	task, err := s.covenRepo.LockTask(ctx, tx, member.CovenID, taskID)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, notFound("task")
		}
		return nil, err
	}
	if task.Completed {
		return nil, alreadyDone("task completed")
	}

	if err := s.invRepo.Remove(ctx, tx, playerID, item, qty); err != nil {
		if err == repository.ErrInsufficientItems {
			return nil, insufficient("items")
		}
		return nil, err
	}

	if !task.Objectives.Advance(action, qty) {
		return nil, invalidState("task does not need this item")
	}
	if err := s.covenRepo.RecordContribution(ctx, tx, task.ID, playerID, action, qty); err != nil {
		return nil, err
	}
	if task.Objectives.Complete() {
		task.Completed = true
		ts := now
		task.CompletedAt = &ts
		if task.RewardCrystals > 0 {
			if err := payTaskReward(ctx, tx, s.covenRepo, s.balance, member.CovenID, task.ID, task.RewardCrystals); err != nil {
				return nil, err
			}
		}
		s.publisher.Publish(playerID, EventCovenTaskCompleted, map[string]any{
			"coven_id": member.CovenID,
			"task_id":  task.ID,
		})
		logger.Info("coven task completed", "coven_id", member.CovenID, "task_id", task.ID)
	}
	if err := s.covenRepo.UpdateTask(ctx, tx, task); err != nil {
		return nil, err
	}
	return task, tx.Commit(ctx)
}

// DistributeShared splits the accumulated shared pool (payout remainders,
// founding-era balances) evenly among members; leader only. The indivisible
// remainder stays in the pool.
func (s *CovenService) DistributeShared(ctx context.Context, actorID int64) (int64, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	actor, err := s.covenRepo.MemberOf(ctx, tx, actorID)
	if err != nil {
		if repository.IsNoRows(err) {
			return 0, invalidState("not in a coven")
		}
		return 0, err
	}
	if actor.Role != domain.CovenRoleLeader {
		return 0, unauthorized("leader only")
	}

	coven, err := s.covenRepo.Get(ctx, tx, actor.CovenID)
	if err != nil {
		return 0, err
	}
	members, err := s.covenRepo.Members(ctx, tx, actor.CovenID)
	if err != nil {
		return 0, err
	}
	share := coven.SharedCrystals / int64(len(members))
	if share == 0 {
		return 0, insufficient("shared pool")
	}

	if _, err := s.covenRepo.AddSharedCrystals(ctx, tx, actor.CovenID, -share*int64(len(members))); err != nil {
		return 0, err
	}
	meta := map[string]interface{}{"coven_id": actor.CovenID}
	for _, m := range members {
		if _, err := s.balance.CreditTx(ctx, tx, m.PlayerID, domain.CurrencyCrystals, share, "coven_share", meta); err != nil {
			return 0, err
		}
	}
	return share, tx.Commit(ctx)
}
