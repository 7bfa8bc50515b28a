package catalog

import "time"

// ProducerKind identifies which building runs a recipe.
type ProducerKind string

const (
	ProducerFactory ProducerKind = "factory"
	ProducerArmory  ProducerKind = "armory"
)

// Recipe is a craft order for a factory or armory queue slot.
type Recipe struct {
	ID          int64
	Name        string
	Producer    ProducerKind
	MinBuilding int // minimum building level
	Inputs      map[ItemID]int64
	Output      ItemID
	OutputQty   int64
	Duration    time.Duration
}

var recipes = map[int64]Recipe{
	// Rune Bakery (factory)
	1: {1, "Bread", ProducerFactory, 1, map[ItemID]int64{ItemWheat: 3}, ItemBread, 1, 5 * time.Minute},
	2: {2, "Rune Loaf", ProducerFactory, 1, map[ItemID]int64{ItemWheat: 5, ItemHerbs: 1}, ItemRuneLoaf, 1, 15 * time.Minute},
	3: {3, "Berry Pie", ProducerFactory, 1, map[ItemID]int64{ItemBerries: 4, ItemWheat: 2, ItemEgg: 1}, ItemBerryPie, 1, 20 * time.Minute},
	4: {4, "Herb Tonic", ProducerFactory, 2, map[ItemID]int64{ItemHerbs: 3, ItemStrawberry: 1}, ItemHerbTonic, 1, 30 * time.Minute},
	5: {5, "Linen Cloth", ProducerFactory, 2, map[ItemID]int64{ItemFlax: 4}, ItemLinenCloth, 1, 25 * time.Minute},
	6: {6, "Vegetable Stew", ProducerFactory, 3, map[ItemID]int64{ItemCarrot: 2, ItemPotato: 2, ItemTomato: 1}, ItemVegetableStew, 1, 35 * time.Minute},

	// Basic Forge (armory)
	10: {10, "Iron Sword", ProducerArmory, 1, map[ItemID]int64{ItemIronOre: 4, ItemCoal: 2}, ItemIronSword, 1, 30 * time.Minute},
	11: {11, "Oak Shield", ProducerArmory, 1, map[ItemID]int64{ItemIronOre: 2, ItemLinenCloth: 1}, ItemOakShield, 1, 45 * time.Minute},
	12: {12, "Steel Sword", ProducerArmory, 2, map[ItemID]int64{ItemIronOre: 6, ItemCoal: 4}, ItemSteelSword, 1, time.Hour},
	13: {13, "Iron Pickaxe", ProducerArmory, 1, map[ItemID]int64{ItemIronOre: 5, ItemCoal: 3}, ItemIronPickaxe, 1, 40 * time.Minute},
	14: {14, "Steel Pickaxe", ProducerArmory, 2, map[ItemID]int64{ItemIronOre: 8, ItemCoal: 6, ItemSilverOre: 2}, ItemSteelPickaxe, 1, 90 * time.Minute},
	15: {15, "Rune Blade", ProducerArmory, 3, map[ItemID]int64{ItemSilverOre: 4, ItemGoldOre: 2, ItemAetherite: 1}, ItemRuneBlade, 1, 4 * time.Hour},
	16: {16, "Rune Pickaxe", ProducerArmory, 3, map[ItemID]int64{ItemSilverOre: 6, ItemGoldOre: 3, ItemAetherite: 2}, ItemRunePickaxe, 1, 6 * time.Hour},
}

func GetRecipe(id int64) (Recipe, bool) {
	r, ok := recipes[id]
	return r, ok
}

func RecipesFor(kind ProducerKind) []Recipe {
	var out []Recipe
	for id := int64(1); id <= 16; id++ {
		if r, ok := recipes[id]; ok && r.Producer == kind {
			out = append(out, r)
		}
	}
	return out
}

// CraftSlots is the fixed queue size per factory/armory.
const CraftSlots = 2
