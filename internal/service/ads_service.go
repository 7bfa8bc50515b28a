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

// AdsService records ad watches and pays their rewards. Watches are rate
// limited per rolling hour per category; the ad network's callback is
// trusted as-is.
type AdsService struct {
	db        *pgxpool.Pool
	adsRepo   *repository.AdsRepository
	craftRepo *repository.CraftRepository
	balance   *BalanceService
	mine      *MineService
}

func NewAdsService(db *pgxpool.Pool, balance *BalanceService, mine *MineService) *AdsService {
	return &AdsService{
		db:        db,
		adsRepo:   repository.NewAdsRepository(db),
		craftRepo: repository.NewCraftRepository(db),
		balance:   balance,
		mine:      mine,
	}
}

func hourlyLimit(category string) int {
	if category == catalog.AdCategoryEnergy {
		return catalog.AdEnergyHourlyLimit
	}
	return catalog.AdHourlyLimit
}

func (s *AdsService) checkAndRecord(ctx context.Context, q repository.Querier, playerID int64, category string, now time.Time) error {
	count, err := s.adsRepo.CountSince(ctx, q, playerID, category, now.Add(-time.Hour))
	if err != nil {
		return err
	}
	if count >= hourlyLimit(category) {
		return invalidState("hourly ad limit reached")
	}
	return s.adsRepo.RecordWatch(ctx, q, playerID, category, now)
}

// WatchGeneric pays the flat crystal reward for a generic ad view.
func (s *AdsService) WatchGeneric(ctx context.Context, playerID int64) (int64, error) {
	now := time.Now()

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := s.checkAndRecord(ctx, tx, playerID, catalog.AdCategoryGeneric, now); err != nil {
		return 0, err
	}
	balance, err := s.balance.CreditTx(ctx, tx, playerID, domain.CurrencyCrystals, catalog.AdGenericReward, "ad_reward", nil)
	if err != nil {
		return 0, err
	}
	return balance, tx.Commit(ctx)
}

// WatchSpeedup halves the remaining time of a running craft job.
func (s *AdsService) WatchSpeedup(ctx context.Context, playerID int64, producer catalog.ProducerKind, slot int) (time.Time, error) {
	now := time.Now()

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return time.Time{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	job, err := s.craftRepo.Job(ctx, tx, playerID, producer, slot)
	if err != nil {
		if repository.IsNoRows(err) {
			return time.Time{}, notFound("craft job")
		}
		return time.Time{}, err
	}
	if job.Ready(now) {
		return time.Time{}, alreadyDone("craft finished")
	}

	if err := s.checkAndRecord(ctx, tx, playerID, catalog.AdCategorySpeedup, now); err != nil {
		return time.Time{}, err
	}

	remaining := job.FinishesAt.Sub(now)
	finishesAt := now.Add(remaining / 2)
	if err := s.craftRepo.SetFinishesAt(ctx, tx, job.ID, finishesAt); err != nil {
		return time.Time{}, err
	}
	return finishesAt, tx.Commit(ctx)
}

// WatchEnergy restores the full mining energy budget.
func (s *AdsService) WatchEnergy(ctx context.Context, playerID int64) error {
	now := time.Now()

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := s.checkAndRecord(ctx, tx, playerID, catalog.AdCategoryEnergy, now); err != nil {
		return err
	}
	if err := s.mine.RestoreEnergyTx(ctx, tx, playerID, now); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// PruneWatches drops stale watch rows; called from the background sweep.
func (s *AdsService) PruneWatches(ctx context.Context) (int64, error) {
	return s.adsRepo.Prune(ctx, time.Now().Add(-24*time.Hour))
}
