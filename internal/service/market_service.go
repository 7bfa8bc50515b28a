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

// MarketService covers the NPC marketplace, the seed shop and the
// player-to-player listing board.
type MarketService struct {
	db          *pgxpool.Pool
	marketRepo  *repository.MarketRepository
	invRepo     *repository.InventoryRepository
	playerRepo  *repository.PlayerRepository
	balance     *BalanceService
	progression *ProgressionService
	publisher   Publisher
}

func NewMarketService(db *pgxpool.Pool, balance *BalanceService, progression *ProgressionService, publisher Publisher) *MarketService {
	return &MarketService{
		db:          db,
		marketRepo:  repository.NewMarketRepository(db),
		invRepo:     repository.NewInventoryRepository(db),
		playerRepo:  repository.NewPlayerRepository(db),
		balance:     balance,
		progression: progression,
		publisher:   publisher,
	}
}

// SellResult is one NPC sale.
type SellResult struct {
	Crystals int64        `json:"crystals"`
	Levels   *LevelResult `json:"levels"`
}

// SellToNPC converts items to crystals at catalog price. Pays half the
// usual item XP: selling is the low-effort path.
func (s *MarketService) SellToNPC(ctx context.Context, playerID int64, item catalog.ItemID, qty int64) (*SellResult, error) {
	if qty <= 0 {
		return nil, invalidState("quantity %d", qty)
	}
	price := catalog.SellPrice(item)
	if price == 0 {
		return nil, invalidState("item not sellable")
	}
	now := time.Now()

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := s.invRepo.Remove(ctx, tx, playerID, item, qty); err != nil {
		if err == repository.ErrInsufficientItems {
			return nil, insufficient("items")
		}
		return nil, err
	}

	total := price * qty
	meta := map[string]interface{}{"item_id": item, "quantity": qty}
	if _, err := s.balance.CreditTx(ctx, tx, playerID, domain.CurrencyCrystals, total, "npc_sale", meta); err != nil {
		return nil, err
	}

	xp := catalog.ItemXP(item, qty) / 2
	if xp < 1 {
		xp = 1
	}
	levels, err := s.progression.GrantXP(ctx, tx, playerID, xp, now)
	if err != nil {
		return nil, err
	}
	if err := s.progression.TrackAction(ctx, tx, playerID, domain.ActionSell, qty, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &SellResult{Crystals: total, Levels: levels}, nil
}

// BuySeeds buys seeds from the seed shop at catalog seed cost.
func (s *MarketService) BuySeeds(ctx context.Context, playerID int64, cropID catalog.ItemID, qty int64) error {
	if qty <= 0 {
		return invalidState("quantity %d", qty)
	}
	crop, ok := catalog.GetCrop(cropID)
	if !ok {
		return notFound("crop")
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	p, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return err
	}
	if p.Level < crop.MinLevel {
		return invalidState("crop locked until level %d", crop.MinLevel)
	}

	meta := map[string]interface{}{"crop_id": cropID, "quantity": qty}
	if _, err := s.balance.DebitTx(ctx, tx, playerID, domain.CurrencyCrystals, crop.SeedCost*qty, "seed_purchase", meta); err != nil {
		return err
	}
	if err := s.invRepo.Add(ctx, tx, playerID, catalog.SeedFor(cropID), qty); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// CreateListing escrows the items and opens a listing.
func (s *MarketService) CreateListing(ctx context.Context, playerID int64, item catalog.ItemID, qty, price int64) (*domain.Listing, error) {
	if qty <= 0 || price <= 0 {
		return nil, invalidState("quantity and price must be positive")
	}
	if _, ok := catalog.GetItem(item); !ok {
		return nil, notFound("item")
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	open, err := s.marketRepo.CountOpen(ctx, tx, playerID)
	if err != nil {
		return nil, err
	}
	if open >= domain.MaxOpenListings {
		return nil, invalidState("listing limit %d reached", domain.MaxOpenListings)
	}

	if err := s.invRepo.Remove(ctx, tx, playerID, item, qty); err != nil {
		if err == repository.ErrInsufficientItems {
			return nil, insufficient("items")
		}
		return nil, err
	}

	listing := &domain.Listing{
		SellerID:  playerID,
		ItemID:    item,
		Quantity:  qty,
		Price:     price,
		ExpiresAt: time.Now().Add(domain.ListingDuration),
	}
	if err := s.marketRepo.Create(ctx, tx, listing); err != nil {
		return nil, err
	}
	listing.Status = domain.ListingOpen
	return listing, tx.Commit(ctx)
}

func (s *MarketService) Listings(ctx context.Context, item *catalog.ItemID, limit int) ([]*domain.Listing, error) {
	return s.marketRepo.ListOpen(ctx, item, limit)
}

// Buy purchases a listing: debit the buyer, pay the seller minus
// commission, hand over the escrowed items. The conditional status flip
// means exactly one concurrent buyer wins.
func (s *MarketService) Buy(ctx context.Context, buyerID, listingID int64) (*domain.Listing, error) {
	now := time.Now()

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	listing, ok, err := s.marketRepo.MarkSold(ctx, tx, listingID, buyerID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.classifyBuy(ctx, listingID)
	}
	if listing.SellerID == buyerID {
		return nil, invalidState("cannot buy own listing")
	}

	meta := map[string]interface{}{"listing_id": listingID}
	if _, err := s.balance.DebitTx(ctx, tx, buyerID, domain.CurrencyCrystals, listing.Price, "market_purchase", meta); err != nil {
		return nil, err
	}
	proceeds := domain.SellerProceeds(listing.Price)
	if _, err := s.balance.CreditTx(ctx, tx, listing.SellerID, domain.CurrencyCrystals, proceeds, "market_sale", meta); err != nil {
		return nil, err
	}
	if err := s.invRepo.Add(ctx, tx, buyerID, listing.ItemID, listing.Quantity); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	s.publisher.Publish(listing.SellerID, EventMarketSold, map[string]any{
		"listing_id": listingID,
		"proceeds":   proceeds,
	})
	return listing, nil
}

func (s *MarketService) classifyBuy(ctx context.Context, listingID int64) error {
	listing, err := s.marketRepo.Get(ctx, listingID)
	if err != nil {
		if repository.IsNoRows(err) {
			return notFound("listing")
		}
		return err
	}
	if listing.Status == domain.ListingSold {
		return alreadyDone("listing sold")
	}
	return invalidState("listing %s", listing.Status)
}

// CancelListing returns the escrowed items to the seller.
func (s *MarketService) CancelListing(ctx context.Context, playerID, listingID int64) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	listing, ok, err := s.marketRepo.Cancel(ctx, tx, listingID, playerID)
	if err != nil {
		return err
	}
	if !ok {
		existing, err := s.marketRepo.Get(ctx, listingID)
		if err != nil {
			if repository.IsNoRows(err) {
				return notFound("listing")
			}
			return err
		}
		if existing.SellerID != playerID {
			return unauthorized("not your listing")
		}
		return invalidState("listing %s", existing.Status)
	}

	if err := s.invRepo.Add(ctx, tx, playerID, listing.ItemID, listing.Quantity); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ExpireListings flips timed-out listings and refunds their escrow; called
// from the background sweep.
func (s *MarketService) ExpireListings(ctx context.Context) (int, error) {
	now := time.Now()

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	expired, err := s.marketRepo.ExpireDue(ctx, tx, now, 500)
	if err != nil {
		return 0, err
	}
	for _, l := range expired {
		if err := s.invRepo.Add(ctx, tx, l.SellerID, l.ItemID, l.Quantity); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	if len(expired) > 0 {
		logger.Info("expired listings refunded", "count", len(expired))
	}
	return len(expired), nil
}
