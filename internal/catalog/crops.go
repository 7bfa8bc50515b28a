package catalog

import "time"

// Crop describes a plantable crop. Planting consumes one seed item
// (SeedFor(ID)); harvesting yields Yield units of the crop item.
type Crop struct {
	ID       ItemID
	Name     string
	SeedCost int64 // seed shop price in crystals, per seed
	GrowTime time.Duration
	Yield    int64
	MinLevel int
}

var crops = map[ItemID]Crop{
	ItemWheat:      {ItemWheat, "Wheat", 3, 2 * time.Minute, 3, 1},
	ItemCorn:       {ItemCorn, "Corn", 5, 5 * time.Minute, 3, 1},
	ItemCarrot:     {ItemCarrot, "Carrot", 6, 10 * time.Minute, 3, 2},
	ItemPotato:     {ItemPotato, "Potato", 7, 20 * time.Minute, 4, 3},
	ItemTomato:     {ItemTomato, "Tomato", 9, 30 * time.Minute, 4, 4},
	ItemStrawberry: {ItemStrawberry, "Strawberry", 12, 45 * time.Minute, 4, 5},
	ItemPumpkin:    {ItemPumpkin, "Pumpkin", 15, 2 * time.Hour, 5, 7},
	ItemBerries:    {ItemBerries, "Berries", 11, 40 * time.Minute, 4, 6},
	ItemHerbs:      {ItemHerbs, "Herbs", 13, time.Hour, 4, 8},
	ItemFlax:       {ItemFlax, "Flax", 10, 50 * time.Minute, 4, 6},
}

func GetCrop(id ItemID) (Crop, bool) {
	c, ok := crops[id]
	return c, ok
}

func AllCrops() []Crop {
	out := make([]Crop, 0, len(crops))
	for id := ItemWheat; id <= ItemFlax; id++ {
		if c, ok := crops[id]; ok {
			out = append(out, c)
		}
	}
	return out
}
