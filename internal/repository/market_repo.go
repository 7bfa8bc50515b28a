package repository

import (
	"context"
	"strconv"
	"time"

	"covenfield_backend/internal/catalog"
	"covenfield_backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type MarketRepository struct {
	db *pgxpool.Pool
}

func NewMarketRepository(db *pgxpool.Pool) *MarketRepository {
	return &MarketRepository{db: db}
}

func (r *MarketRepository) Create(ctx context.Context, q Querier, l *domain.Listing) error {
	return q.QueryRow(ctx,
		`INSERT INTO market_listings (seller_id, item_id, quantity, price, status, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		l.SellerID, l.ItemID, l.Quantity, l.Price, domain.ListingOpen, l.ExpiresAt,
	).Scan(&l.ID, &l.CreatedAt)
}

func (r *MarketRepository) CountOpen(ctx context.Context, q Querier, sellerID int64) (int, error) {
	var n int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM market_listings WHERE seller_id = $1 AND status = $2`,
		sellerID, domain.ListingOpen,
	).Scan(&n)
	return n, err
}

func (r *MarketRepository) ListOpen(ctx context.Context, item *catalog.ItemID, limit int) ([]*domain.Listing, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	query := `SELECT id, seller_id, item_id, quantity, price, buyer_id, status, created_at, expires_at
		 FROM market_listings
		 WHERE status = $1 AND expires_at > now()`
	args := []any{domain.ListingOpen}
	if item != nil {
		query += ` AND item_id = $2`
		args = append(args, *item)
	}
	query += ` ORDER BY price / quantity, id LIMIT ` + strconv.Itoa(limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Listing
	for rows.Next() {
		var l domain.Listing
		if err := rows.Scan(&l.ID, &l.SellerID, &l.ItemID, &l.Quantity, &l.Price,
			&l.BuyerID, &l.Status, &l.CreatedAt, &l.ExpiresAt); err != nil {
			return nil, err
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

// MarkSold is the single-buyer atomic swap gate: only one concurrent
// purchase can flip open -> sold.
func (r *MarketRepository) MarkSold(ctx context.Context, q Querier, listingID, buyerID int64, now time.Time) (*domain.Listing, bool, error) {
	var l domain.Listing
	err := q.QueryRow(ctx,
		`UPDATE market_listings SET status = $1, buyer_id = $2
		 WHERE id = $3 AND status = $4 AND expires_at > $5
		 RETURNING id, seller_id, item_id, quantity, price, buyer_id, status, created_at, expires_at`,
		domain.ListingSold, buyerID, listingID, domain.ListingOpen, now,
	).Scan(&l.ID, &l.SellerID, &l.ItemID, &l.Quantity, &l.Price,
		&l.BuyerID, &l.Status, &l.CreatedAt, &l.ExpiresAt)
	if IsNoRows(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &l, true, nil
}

// Cancel flips open -> cancelled for the owner and returns the listing for
// the escrow refund.
func (r *MarketRepository) Cancel(ctx context.Context, q Querier, listingID, sellerID int64) (*domain.Listing, bool, error) {
	var l domain.Listing
	err := q.QueryRow(ctx,
		`UPDATE market_listings SET status = $1
		 WHERE id = $2 AND seller_id = $3 AND status = $4
		 RETURNING id, seller_id, item_id, quantity, price, buyer_id, status, created_at, expires_at`,
		domain.ListingCancelled, listingID, sellerID, domain.ListingOpen,
	).Scan(&l.ID, &l.SellerID, &l.ItemID, &l.Quantity, &l.Price,
		&l.BuyerID, &l.Status, &l.CreatedAt, &l.ExpiresAt)
	if IsNoRows(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &l, true, nil
}

func (r *MarketRepository) Get(ctx context.Context, listingID int64) (*domain.Listing, error) {
	var l domain.Listing
	err := r.db.QueryRow(ctx,
		`SELECT id, seller_id, item_id, quantity, price, buyer_id, status, created_at, expires_at
		 FROM market_listings WHERE id = $1`,
		listingID,
	).Scan(&l.ID, &l.SellerID, &l.ItemID, &l.Quantity, &l.Price,
		&l.BuyerID, &l.Status, &l.CreatedAt, &l.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// ExpireDue flips timed-out open listings and returns them for refunds.
// Called from the background sweep.
func (r *MarketRepository) ExpireDue(ctx context.Context, q Querier, now time.Time, limit int) ([]*domain.Listing, error) {
	rows, err := q.Query(ctx,
		`UPDATE market_listings SET status = $1
		 WHERE id IN (
			SELECT id FROM market_listings
			WHERE status = $2 AND expires_at <= $3
			ORDER BY expires_at LIMIT $4
		 )
		 RETURNING id, seller_id, item_id, quantity, price, buyer_id, status, created_at, expires_at`,
		domain.ListingExpired, domain.ListingOpen, now, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Listing
	for rows.Next() {
		var l domain.Listing
		if err := rows.Scan(&l.ID, &l.SellerID, &l.ItemID, &l.Quantity, &l.Price,
			&l.BuyerID, &l.Status, &l.CreatedAt, &l.ExpiresAt); err != nil {
			return nil, err
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}
