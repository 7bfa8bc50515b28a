package domain

import (
	"time"

	"covenfield_backend/internal/catalog"
)

// MarketCommissionBP is the marketplace commission in basis points (5%).
const MarketCommissionBP = 500

// ListingDuration is how long a listing stays live before the expiry sweep
// refunds it.
const ListingDuration = 48 * time.Hour

// MaxOpenListings caps concurrent open listings per seller.
const MaxOpenListings = 10

// Listing is a player-to-player market offer. Creating a listing escrows
// the items out of the seller's inventory immediately.
type Listing struct {
	ID        int64          `db:"id" json:"id"`
	SellerID  int64          `db:"seller_id" json:"seller_id"`
	ItemID    catalog.ItemID `db:"item_id" json:"item_id"`
	Quantity  int64          `db:"quantity" json:"quantity"`
	Price     int64          `db:"price" json:"price"` // total, in crystals
	BuyerID   *int64         `db:"buyer_id" json:"buyer_id,omitempty"`
	Status    string         `db:"status" json:"status"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	ExpiresAt time.Time      `db:"expires_at" json:"expires_at"`
}

const (
	ListingOpen      = "open"
	ListingSold      = "sold"
	ListingCancelled = "cancelled"
	ListingExpired   = "expired"
)

// Commission is the marketplace's cut of a sale: floor(price * 5%).
func Commission(price int64) int64 {
	return price * MarketCommissionBP / 10000
}

// SellerProceeds is what the seller receives for a sold listing.
func SellerProceeds(price int64) int64 { return price - Commission(price) }
