package catalog

import "time"

// MaxAnimalTier is the highest rarity tier.
const MaxAnimalTier = 4

// EnclosureSlots is the fixed animal capacity per zoo enclosure.
const EnclosureSlots = 2

// EnclosureCost is the crystal price of a new enclosure.
const EnclosureCost int64 = 400

// AnimalType describes a zoo animal. Each animal accrues Produce on a fixed
// ProduceEvery interval since its last collection.
type AnimalType struct {
	Key          string
	Name         string
	Tier         int
	Produce      ItemID
	ProduceQty   int64
	ProduceEvery time.Duration
	BreedTime    time.Duration
	Cost         int64 // crystal price in the zoo shop, 0 = breeding only
	MinLevel     int
}

var animalTypes = map[string]AnimalType{
	"chicken":   {"chicken", "Chicken", 1, ItemEgg, 2, 30 * time.Minute, time.Hour, 150, 1},
	"sheep":     {"sheep", "Sheep", 1, ItemWool, 1, 45 * time.Minute, 90 * time.Minute, 200, 2},
	"rabbit":    {"rabbit", "Rabbit", 2, ItemBerries, 2, 20 * time.Minute, 45 * time.Minute, 350, 4},
	"cow":       {"cow", "Cow", 2, ItemMilk, 2, time.Hour, 2 * time.Hour, 500, 5},
	"stag":      {"stag", "Stag", 3, ItemHerbs, 3, 90 * time.Minute, 4 * time.Hour, 0, 8},
	"moon_wolf": {"moon_wolf", "Moon Wolf", 4, ItemAetherite, 1, 4 * time.Hour, 12 * time.Hour, 0, 12},
}

func GetAnimalType(key string) (AnimalType, bool) {
	a, ok := animalTypes[key]
	return a, ok
}

func AllAnimalTypes() map[string]AnimalType { return animalTypes }

// AnimalsOfTier lists types at exactly the given tier.
func AnimalsOfTier(tier int) []AnimalType {
	var out []AnimalType
	for _, key := range []string{"chicken", "sheep", "rabbit", "cow", "stag", "moon_wolf"} {
		if a := animalTypes[key]; a.Tier == tier {
			out = append(out, a)
		}
	}
	return out
}

// OffspringTierChances returns percent chances per offspring tier for a
// breeding pair. The rarer parent dominates, with a chance to roll one tier
// above it (unless already at the cap, where the excess folds into the top
// tier). Chances always sum to 100.
func OffspringTierChances(tierA, tierB int) map[int]int {
	lo, hi := tierA, tierB
	if lo > hi {
		lo, hi = hi, lo
	}
	ch := make(map[int]int)
	if lo == hi {
		ch[hi] = 80
	} else {
		ch[lo] = 30
		ch[hi] = 50
	}
	if hi < MaxAnimalTier {
		ch[hi+1] = 100 - (ch[lo] + ch[hi])
		if lo == hi {
			ch[hi+1] = 20
		}
	} else {
		ch[hi] += 100 - sumChances(ch)
	}
	return ch
}

func sumChances(ch map[int]int) int {
	s := 0
	for _, v := range ch {
		s += v
	}
	return s
}

// PickOffspringTier resolves a breeding roll (uniform in [0,100)) against
// the pair's tier chances.
func PickOffspringTier(tierA, tierB, roll int) int {
	ch := OffspringTierChances(tierA, tierB)
	for tier := 1; tier <= MaxAnimalTier; tier++ {
		if w, ok := ch[tier]; ok {
			if roll < w {
				return tier
			}
			roll -= w
		}
	}
	hi := tierA
	if tierB > hi {
		hi = tierB
	}
	return hi
}

// BreedCooldown is the pair's breeding time: the slower parent wins.
func BreedCooldown(a, b AnimalType) time.Duration {
	if a.BreedTime > b.BreedTime {
		return a.BreedTime
	}
	return b.BreedTime
}
