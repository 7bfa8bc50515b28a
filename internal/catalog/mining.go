package catalog

// OreTier gates ore drops by mine depth: deeper tiers are rarer and only
// reachable past MinDepth.
type OreTier struct {
	Item     ItemID
	MinDepth int
	Weight   int // relative drop weight among unlocked tiers
}

var oreTiers = []OreTier{
	{ItemStone, 0, 50},
	{ItemCoal, 10, 30},
	{ItemIronOre, 25, 20},
	{ItemSilverOre, 50, 10},
	{ItemGoldOre, 100, 4},
	{ItemAetherite, 200, 1},
}

// OreTiers returns all tiers in ascending depth order.
func OreTiers() []OreTier { return oreTiers }

// UnlockedOreTiers returns the tiers reachable at the given depth.
func UnlockedOreTiers(depth int) []OreTier {
	var out []OreTier
	for _, t := range oreTiers {
		if depth >= t.MinDepth {
			out = append(out, t)
		}
	}
	return out
}

// PickOre selects an ore tier for a dig at the given depth. roll is a
// uniform value in [0, total weight); callers pass rand output so the
// selection itself stays deterministic and testable. Returns the deepest
// unlocked tier when roll is out of range.
func PickOre(depth int, roll int) ItemID {
	tiers := UnlockedOreTiers(depth)
	for _, t := range tiers {
		if roll < t.Weight {
			return t.Item
		}
		roll -= t.Weight
	}
	return tiers[len(tiers)-1].Item
}

// OreWeightTotal is the weight sum for the unlocked tiers at depth.
func OreWeightTotal(depth int) int {
	total := 0
	for _, t := range UnlockedOreTiers(depth) {
		total += t.Weight
	}
	return total
}

// Pickaxe tiers. Better tools cost more energy per dig but dig deeper per
// dig and (rune only) get a top-tier ore bonus chance.
type PickaxeTier struct {
	Item       ItemID
	Tier       int
	EnergyCost int // base cost per dig
	DepthGain  int // depth advanced per dig
	TopBonus   int // percent chance to upgrade the drop to the deepest unlocked tier
}

var pickaxes = map[ItemID]PickaxeTier{
	ItemBasicPickaxe: {ItemBasicPickaxe, 1, 5, 1, 0},
	ItemIronPickaxe:  {ItemIronPickaxe, 2, 8, 2, 0},
	ItemSteelPickaxe: {ItemSteelPickaxe, 3, 12, 3, 0},
	ItemRunePickaxe:  {ItemRunePickaxe, 4, 16, 5, 5},
}

func GetPickaxe(item ItemID) (PickaxeTier, bool) {
	p, ok := pickaxes[item]
	return p, ok
}

// DigEnergyCost scales the tool's base cost with depth: +1% per depth level.
func DigEnergyCost(tool PickaxeTier, depth int) int {
	cost := tool.EnergyCost + tool.EnergyCost*depth/100
	if cost < 1 {
		cost = 1
	}
	return cost
}

// DailyEnergy is the mining energy budget: base 100 plus 2 per player level.
func DailyEnergy(level int) int { return 100 + 2*level }

// EnergyRestoreCost is the flat crystal price for a full energy restore.
const EnergyRestoreCost int64 = 50
