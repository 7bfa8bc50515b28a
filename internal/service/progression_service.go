package service

import (
	"context"
	"time"

	"covenfield_backend/internal/catalog"
	"covenfield_backend/internal/domain"
	"covenfield_backend/internal/logger"
	"covenfield_backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SchoolBonusCapPct caps the per-school reward bonus at +10%.
const SchoolBonusCapPct = 10

// schoolBonusPct converts a school building count into the reward bonus
// percentage. Shared by XP grants and the daily reward.
func schoolBonusPct(schools int) int {
	if schools > SchoolBonusCapPct {
		return SchoolBonusCapPct
	}
	return schools
}

// ProgressionService owns XP, levels, quests, achievements and the quest /
// achievement / coven-task fan-out that every rewarded action runs through.
type ProgressionService struct {
	db              *pgxpool.Pool
	playerRepo      *repository.PlayerRepository
	questRepo       *repository.QuestRepository
	achievementRepo *repository.AchievementRepository
	covenRepo       *repository.CovenRepository
	townRepo        *repository.TownRepository
	boostRepo       *repository.BoostRepository
	balance         *BalanceService
	publisher       Publisher
}

func NewProgressionService(db *pgxpool.Pool, balance *BalanceService, publisher Publisher) *ProgressionService {
	return &ProgressionService{
		db:              db,
		playerRepo:      repository.NewPlayerRepository(db),
		questRepo:       repository.NewQuestRepository(db),
		achievementRepo: repository.NewAchievementRepository(db),
		covenRepo:       repository.NewCovenRepository(db),
		townRepo:        repository.NewTownRepository(db),
		boostRepo:       repository.NewBoostRepository(db),
		balance:         balance,
		publisher:       publisher,
	}
}

// LevelResult reports the outcome of an XP grant.
type LevelResult struct {
	XPGranted int64 `json:"xp_granted"`
	Level     int   `json:"level"`
	XP        int64 `json:"xp"`
	LeveledUp bool  `json:"leveled_up"`
}

// GrantXP applies base XP scaled by the active XP boost and the school
// bonus, then runs the level loop. Must run inside a transaction; takes the
// player row lock. Level-reached achievements that complete during the loop
// feed their XP rewards back in, so the loop runs until no XP is pending.
func (s *ProgressionService) GrantXP(ctx context.Context, q repository.Querier, playerID int64, base int64, now time.Time) (*LevelResult, error) {
	if base <= 0 {
		return nil, invalidState("xp grant %d", base)
	}

	boost, err := s.boostRepo.Get(ctx, q, playerID, catalog.BoostXP)
	if err != nil {
		return nil, err
	}
	amount := int64(float64(base) * boost.Multiplier(now))

	schools, err := s.townRepo.CountBuildings(ctx, q, playerID, "school")
	if err != nil {
		return nil, err
	}
	amount += base * int64(schoolBonusPct(schools)) / 100

	p, err := s.playerRepo.LockForUpdate(ctx, q, playerID)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, notFound("player")
		}
		return nil, err
	}

	xp, level := p.XP, p.Level
	granted := int64(0)
	pending := amount
	for pending > 0 {
		granted += pending
		level, xp = domain.ApplyXP(level, xp, pending)
		pending = 0
		if level > p.Level {
			extra, err := s.advanceLevelAchievements(ctx, q, playerID, level, now)
			if err != nil {
				return nil, err
			}
			pending = extra
		}
	}

	if err := s.playerRepo.SetLevelXP(ctx, q, playerID, level, xp); err != nil {
		return nil, err
	}

	res := &LevelResult{XPGranted: granted, Level: level, XP: xp, LeveledUp: level > p.Level}
	if res.LeveledUp {
		s.publisher.Publish(playerID, EventLevelUp, map[string]any{"level": level})
	}
	return res, nil
}

// advanceLevelAchievements updates level_reached achievements and returns
// the XP rewards of any that just completed.
func (s *ProgressionService) advanceLevelAchievements(ctx context.Context, q repository.Querier, playerID int64, level int, now time.Time) (int64, error) {
	defs, err := s.achievementRepo.ByCondition(ctx, q, domain.CondLevelReached)
	if err != nil {
		return 0, err
	}
	var extraXP int64
	for _, a := range defs {
		crossed, err := s.achievementRepo.Advance(ctx, q, playerID, a, int64(level), true, now)
		if err != nil {
			return 0, err
		}
		if !crossed {
			continue
		}
		if a.RewardCrystals > 0 {
			meta := map[string]interface{}{"achievement_id": a.ID}
			if _, err := s.balance.CreditTx(ctx, q, playerID, domain.CurrencyCrystals, a.RewardCrystals, "achievement_reward", meta); err != nil {
				return 0, err
			}
		}
		extraXP += a.RewardXP
	}
	return extraXP, nil
}

// actionConditions maps quest-style actions onto achievement condition kinds.
var actionConditions = map[string]string{
	domain.ActionHarvest: domain.CondHarvestCount,
	domain.ActionCraft:   domain.CondCraftCount,
	domain.ActionMine:    domain.CondMineCount,
	domain.ActionSell:    domain.CondSellCount,
	domain.ActionBreed:   domain.CondBreedCount,
	domain.ActionPlace:   domain.CondBuildingsPlaced,
}

// TrackAction fans one gameplay action out to quest progress, counting
// achievements, and the player's coven task (when a matching one is open).
// Runs inside the caller's transaction so progress commits with the action.
func (s *ProgressionService) TrackAction(ctx context.Context, q repository.Querier, playerID int64, action string, amount int64, now time.Time) error {
	if amount <= 0 {
		return nil
	}
	if err := s.advanceQuests(ctx, q, playerID, action, amount, now); err != nil {
		return err
	}
	if err := s.advanceCountAchievements(ctx, q, playerID, action, amount, now); err != nil {
		return err
	}
	return s.contributeToCoven(ctx, q, playerID, action, amount, now)
}

func (s *ProgressionService) advanceQuests(ctx context.Context, q repository.Querier, playerID int64, action string, amount int64, now time.Time) error {
	p, err := s.playerRepo.LockForUpdate(ctx, q, playerID)
	if err != nil {
		return err
	}
	quests, err := s.questRepo.GetActiveQuests(ctx, q, p.Level)
	if err != nil {
		return err
	}
	for _, quest := range quests {
		if !questTracksAction(quest, action) {
			continue
		}
		pq, err := s.questRepo.GetOrCreateProgress(ctx, q, playerID, quest)
		if err != nil {
			return err
		}
		if pq.Completed {
			continue
		}
		if !pq.Objectives.Advance(action, amount) {
			continue
		}
		if pq.Objectives.Complete() {
			pq.Completed = true
			t := now
			pq.CompletedAt = &t
		}
		if err := s.questRepo.UpdateProgress(ctx, q, pq); err != nil {
			return err
		}
	}
	return nil
}

func questTracksAction(quest *domain.Quest, action string) bool {
	for _, o := range quest.Objectives {
		if o.Type == action {
			return true
		}
	}
	return false
}

func (s *ProgressionService) advanceCountAchievements(ctx context.Context, q repository.Querier, playerID int64, action string, amount int64, now time.Time) error {
	cond, ok := actionConditions[action]
	if !ok {
		return nil
	}
	defs, err := s.achievementRepo.ByCondition(ctx, q, cond)
	if err != nil {
		return err
	}
	for _, a := range defs {
		crossed, err := s.achievementRepo.Advance(ctx, q, playerID, a, amount, false, now)
		if err != nil {
			return err
		}
		if !crossed {
			continue
		}
		meta := map[string]interface{}{"achievement_id": a.ID}
		if a.RewardCrystals > 0 {
			if _, err := s.balance.CreditTx(ctx, q, playerID, domain.CurrencyCrystals, a.RewardCrystals, "achievement_reward", meta); err != nil {
				return err
			}
		}
		if a.RewardXP > 0 {
			if _, err := s.GrantXP(ctx, q, playerID, a.RewardXP, now); err != nil {
				return err
			}
		}
	}
	return nil
}

// contributeToCoven silently advances the open coven task matching this
// action. Players without a coven, or covens without a matching task, are a
// no-op by design of the call sites: gameplay never fails on coven state.
func (s *ProgressionService) contributeToCoven(ctx context.Context, q repository.Querier, playerID int64, action string, amount int64, now time.Time) error {
	member, err := s.covenRepo.MemberOf(ctx, q, playerID)
	if repository.IsNoRows(err) {
		return nil
	}
	if err != nil {
		return err
	}

	tasks, err := s.covenRepo.Tasks(ctx, q, member.CovenID)
	if err != nil {
		return err
	}
	for _, t := range tasks {
		if t.Completed || !taskTracksAction(t, action) {
			continue
		}
		locked, err := s.covenRepo.LockTask(ctx, q, member.CovenID, t.ID)
		if err != nil {
			if repository.IsNoRows(err) {
				continue
			}
			return err
		}
		if locked.Completed || !locked.Objectives.Advance(action, amount) {
			continue
		}
		if err := s.covenRepo.RecordContribution(ctx, q, locked.ID, playerID, action, amount); err != nil {
			return err
		}
		if locked.Objectives.Complete() {
			locked.Completed = true
			ts := now
			locked.CompletedAt = &ts
			if locked.RewardCrystals > 0 {
				if err := payTaskReward(ctx, q, s.covenRepo, s.balance, member.CovenID, locked.ID, locked.RewardCrystals); err != nil {
					return err
				}
			}
			s.publisher.Publish(playerID, EventCovenTaskCompleted, map[string]any{
				"coven_id": member.CovenID,
				"task_id":  locked.ID,
			})
			logger.Info("coven task completed", "coven_id", member.CovenID, "task_id", locked.ID)
		}
		if err := s.covenRepo.UpdateTask(ctx, q, locked); err != nil {
			return err
		}
	}
	return nil
}

func taskTracksAction(t *domain.CovenTask, action string) bool {
	for _, o := range t.Objectives {
		if o.Type == action {
			return true
		}
	}
	return false
}

// QuestView pairs a quest definition with the player's progress.
type QuestView struct {
	Quest    *domain.Quest       `json:"quest"`
	Progress *domain.PlayerQuest `json:"progress,omitempty"`
}

func (s *ProgressionService) Quests(ctx context.Context, playerID int64) ([]QuestView, error) {
	p, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, notFound("player")
		}
		return nil, err
	}
	quests, err := s.questRepo.GetActiveQuests(ctx, s.db, p.Level)
	if err != nil {
		return nil, err
	}
	progress, err := s.questRepo.ListProgress(ctx, playerID)
	if err != nil {
		return nil, err
	}
	out := make([]QuestView, 0, len(quests))
	for _, quest := range quests {
		out = append(out, QuestView{Quest: quest, Progress: progress[quest.ID]})
	}
	return out, nil
}

// ClaimQuest grants a completed quest's rewards exactly once.
func (s *ProgressionService) ClaimQuest(ctx context.Context, playerID, questID int64) (*LevelResult, error) {
	now := time.Now()

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	crystals, xp, ok, err := s.questRepo.Claim(ctx, tx, playerID, questID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.classifyQuestClaim(ctx, playerID, questID)
	}

	if crystals > 0 {
		meta := map[string]interface{}{"quest_id": questID}
		if _, err := s.balance.CreditTx(ctx, tx, playerID, domain.CurrencyCrystals, crystals, "quest_reward", meta); err != nil {
			return nil, err
		}
	}
	res := &LevelResult{}
	if xp > 0 {
		res, err = s.GrantXP(ctx, tx, playerID, xp, now)
		if err != nil {
			return nil, err
		}
	}
	return res, tx.Commit(ctx)
}

func (s *ProgressionService) classifyQuestClaim(ctx context.Context, playerID, questID int64) error {
	progress, err := s.questRepo.ListProgress(ctx, playerID)
	if err != nil {
		return err
	}
	pq, ok := progress[questID]
	if !ok {
		return notFound("quest progress")
	}
	if pq.Claimed {
		return alreadyDone("quest claimed")
	}
	return invalidState("quest not completed")
}

// AchievementView pairs an achievement with the player's progress row.
type AchievementView struct {
	Achievement *domain.Achievement       `json:"achievement"`
	Progress    *domain.PlayerAchievement `json:"progress,omitempty"`
}

func (s *ProgressionService) Achievements(ctx context.Context, playerID int64) ([]AchievementView, error) {
	defs, err := s.achievementRepo.All(ctx)
	if err != nil {
		return nil, err
	}
	progress, err := s.achievementRepo.ListProgress(ctx, playerID)
	if err != nil {
		return nil, err
	}
	out := make([]AchievementView, 0, len(defs))
	for _, a := range defs {
		out = append(out, AchievementView{Achievement: a, Progress: progress[a.ID]})
	}
	return out, nil
}

// ClaimAchievement assigns the achievement's title. Rewards were already
// granted when the threshold was crossed.
func (s *ProgressionService) ClaimAchievement(ctx context.Context, playerID, achievementID int64) error {
	now := time.Now()

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ok, err := s.achievementRepo.Claim(ctx, tx, playerID, achievementID, now)
	if err != nil {
		return err
	}
	if !ok {
		pa, err := s.achievementRepo.Progress(ctx, tx, playerID, achievementID)
		if err != nil {
			if repository.IsNoRows(err) {
				return notFound("achievement progress")
			}
			return err
		}
		if pa.Claimed {
			return alreadyDone("achievement claimed")
		}
		return invalidState("achievement not completed")
	}

	defs, err := s.achievementRepo.All(ctx)
	if err != nil {
		return err
	}
	for _, a := range defs {
		if a.ID == achievementID && a.Title != "" {
			if err := s.playerRepo.SetTitle(ctx, tx, playerID, a.Title); err != nil {
				return err
			}
		}
	}
	return tx.Commit(ctx)
}
