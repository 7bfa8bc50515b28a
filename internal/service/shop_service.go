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

// ShopService sells the aether-priced premium items: crystal packs, boosts
// and instant craft finishes.
type ShopService struct {
	db        *pgxpool.Pool
	boostRepo *repository.BoostRepository
	craftRepo *repository.CraftRepository
	balance   *BalanceService
}

func NewShopService(db *pgxpool.Pool, balance *BalanceService) *ShopService {
	return &ShopService{
		db:        db,
		boostRepo: repository.NewBoostRepository(db),
		craftRepo: repository.NewCraftRepository(db),
		balance:   balance,
	}
}

func (s *ShopService) Catalog() map[string]catalog.PremiumItem {
	return catalog.AllPremiumItems()
}

// PurchaseResult reports what an aether purchase yielded.
type PurchaseResult struct {
	Item     string              `json:"item"`
	Crystals int64               `json:"crystals,omitempty"`
	Boost    *domain.ActiveBoost `json:"boost,omitempty"`
}

// Buy spends aether on a premium item. Crystal packs credit crystals in the
// same transaction; boost items activate or extend the boost.
func (s *ShopService) Buy(ctx context.Context, playerID int64, key string) (*PurchaseResult, error) {
	item, ok := catalog.GetPremiumItem(key)
	if !ok {
		return nil, notFound("premium item")
	}
	if item.Key == "instant_finish" {
		return nil, invalidState("instant finish needs a producer slot")
	}
	now := time.Now()

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	meta := map[string]interface{}{"item": key}
	if _, err := s.balance.DebitTx(ctx, tx, playerID, domain.CurrencyAether, item.Cost, "premium_purchase", meta); err != nil {
		return nil, err
	}

	res := &PurchaseResult{Item: key}
	if item.Crystals > 0 {
		if _, err := s.balance.CreditTx(ctx, tx, playerID, domain.CurrencyCrystals, item.Crystals, "crystal_pack", meta); err != nil {
			return nil, err
		}
		res.Crystals = item.Crystals
	}
	if item.Boost != "" {
		boost, err := s.boostRepo.Activate(ctx, tx, playerID, item.Boost, item.Mult, item.Duration, now)
		if err != nil {
			return nil, err
		}
		res.Boost = boost
	}
	return res, tx.Commit(ctx)
}

// InstantFinish completes a running craft job immediately for aether.
func (s *ShopService) InstantFinish(ctx context.Context, playerID int64, producer catalog.ProducerKind, slot int) error {
	item, ok := catalog.GetPremiumItem("instant_finish")
	if !ok {
		return notFound("premium item")
	}
	now := time.Now()

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	job, err := s.craftRepo.Job(ctx, tx, playerID, producer, slot)
	if err != nil {
		if repository.IsNoRows(err) {
			return notFound("craft job")
		}
		return err
	}
	if job.Ready(now) {
		return alreadyDone("craft finished")
	}

	meta := map[string]interface{}{"producer": producer, "slot": slot}
	if _, err := s.balance.DebitTx(ctx, tx, playerID, domain.CurrencyAether, item.Cost, "instant_finish", meta); err != nil {
		return err
	}
	if err := s.craftRepo.SetFinishesAt(ctx, tx, job.ID, now); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
