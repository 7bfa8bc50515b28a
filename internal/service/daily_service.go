package service

import (
	"context"
	"time"

	"covenfield_backend/internal/catalog"
	"covenfield_backend/internal/domain"
	"covenfield_backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Daily reward tuning: 50 crystals plus 25 per streak day, streak bonus
// capped at a week, scaled by the school bonus, plus a handful of wheat
// seeds.
const (
	dailyBaseCrystals   int64 = 50
	dailyStreakCrystals int64 = 25
	dailyStreakCap            = 7
	dailySeedQty        int64 = 5
)

// DailyService hands out the once-per-day login reward with streak
// tracking. Days are UTC calendar days.
type DailyService struct {
	db         *pgxpool.Pool
	playerRepo *repository.PlayerRepository
	invRepo    *repository.InventoryRepository
	townRepo   *repository.TownRepository
	balance    *BalanceService
}

func NewDailyService(db *pgxpool.Pool, balance *BalanceService) *DailyService {
	return &DailyService{
		db:         db,
		playerRepo: repository.NewPlayerRepository(db),
		invRepo:    repository.NewInventoryRepository(db),
		townRepo:   repository.NewTownRepository(db),
		balance:    balance,
	}
}

// DailyReward is one claimed reward.
type DailyReward struct {
	Crystals int64          `json:"crystals"`
	SeedItem catalog.ItemID `json:"seed_item"`
	SeedQty  int64          `json:"seed_qty"`
	Streak   int            `json:"streak"`
}

func dailyCrystals(streak, bonusPct int) int64 {
	capped := streak
	if capped > dailyStreakCap {
		capped = dailyStreakCap
	}
	base := dailyBaseCrystals + dailyStreakCrystals*int64(capped)
	return base * int64(100+bonusPct) / 100
}

// nextStreak continues the streak when the last claim was yesterday,
// restarts it otherwise.
func nextStreak(last *time.Time, current int, today time.Time) int {
	if last == nil {
		return 1
	}
	yesterday := today.AddDate(0, 0, -1)
	if last.Year() == yesterday.Year() && last.YearDay() == yesterday.YearDay() {
		return current + 1
	}
	return 1
}

// Claim grants today's reward once. The guarded claim-date update closes
// the double-claim race.
func (s *DailyService) Claim(ctx context.Context, playerID int64) (*DailyReward, error) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	p, err := s.playerRepo.LockForUpdate(ctx, tx, playerID)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, notFound("player")
		}
		return nil, err
	}

	streak := nextStreak(p.LastClaimedDate, p.DailyStreak, today)

	ok, err := s.playerRepo.SetDailyClaim(ctx, tx, playerID, streak, today)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, alreadyDone("daily reward claimed")
	}

	schools, err := s.townRepo.CountBuildings(ctx, tx, playerID, "school")
	if err != nil {
		return nil, err
	}
	crystals := dailyCrystals(streak, schoolBonusPct(schools))
	meta := map[string]interface{}{"streak": streak}
	if _, err := s.balance.CreditTx(ctx, tx, playerID, domain.CurrencyCrystals, crystals, "daily_reward", meta); err != nil {
		return nil, err
	}
	seed := catalog.SeedFor(catalog.ItemWheat)
	if err := s.invRepo.Add(ctx, tx, playerID, seed, dailySeedQty); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &DailyReward{Crystals: crystals, SeedItem: seed, SeedQty: dailySeedQty, Streak: streak}, nil
}
