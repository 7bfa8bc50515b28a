package catalog

import "time"

// BoostType names a purchasable multiplier. At most one active boost row
// exists per (player, type); expired rows are ignored, not eagerly deleted.
type BoostType string

const (
	BoostCrystal BoostType = "crystal_boost" // multiplies production output
	BoostXP      BoostType = "xp_boost"      // multiplies granted XP
)

// PremiumItem is an aether shop entry.
type PremiumItem struct {
	Key      string
	Name     string
	Cost     int64 // aether
	Crystals int64 // crystals credited, for exchange packs
	Boost    BoostType
	Mult     float64
	Duration time.Duration
}

var premiumItems = map[string]PremiumItem{
	"crystal_pack_small": {Key: "crystal_pack_small", Name: "Small Crystal Pack", Cost: 5, Crystals: 500},
	"crystal_pack_large": {Key: "crystal_pack_large", Name: "Large Crystal Pack", Cost: 20, Crystals: 2500},
	"crystal_boost":      {Key: "crystal_boost", Name: "Crystal Boost (24h)", Cost: 8, Boost: BoostCrystal, Mult: 2, Duration: 24 * time.Hour},
	"xp_boost":           {Key: "xp_boost", Name: "XP Boost (24h)", Cost: 8, Boost: BoostXP, Mult: 2, Duration: 24 * time.Hour},
	"instant_finish":     {Key: "instant_finish", Name: "Instant Finish", Cost: 3},
}

func GetPremiumItem(key string) (PremiumItem, bool) {
	p, ok := premiumItems[key]
	return p, ok
}

func AllPremiumItems() map[string]PremiumItem { return premiumItems }

// Ad watch categories and payoffs. Watch events are rate limited per hour
// per category; verification is the ad network's problem, not ours.
const (
	AdCategoryGeneric = "generic" // flat crystal payout
	AdCategorySpeedup = "speedup" // halves a production slot's remaining time
	AdCategoryEnergy  = "energy"  // full mining energy restore

	AdGenericReward int64 = 25

	AdHourlyLimit       = 5 // generic + speedup
	AdEnergyHourlyLimit = 3
)
