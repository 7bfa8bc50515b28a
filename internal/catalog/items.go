package catalog

// ItemID is the flat global item namespace. Ranges are fixed by convention:
// crops 1-10, crafted goods 11-19, ore 20-29, equipment 30-39, seeds 101+
// (seed id = 100 + crop id). Every table and function references items
// through this catalog; there are no per-function name/id mappings.
type ItemID int64

const (
	ItemWheat      ItemID = 1
	ItemCorn       ItemID = 2
	ItemCarrot     ItemID = 3
	ItemPotato     ItemID = 4
	ItemTomato     ItemID = 5
	ItemStrawberry ItemID = 6
	ItemPumpkin    ItemID = 7
	ItemBerries    ItemID = 8
	ItemHerbs      ItemID = 9
	ItemFlax       ItemID = 10

	ItemBread         ItemID = 11
	ItemRuneLoaf      ItemID = 12
	ItemBerryPie      ItemID = 13
	ItemHerbTonic     ItemID = 14
	ItemLinenCloth    ItemID = 15
	ItemVegetableStew ItemID = 16
	ItemEgg           ItemID = 17
	ItemMilk          ItemID = 18
	ItemWool          ItemID = 19

	ItemStone     ItemID = 20
	ItemCoal      ItemID = 21
	ItemIronOre   ItemID = 22
	ItemSilverOre ItemID = 23
	ItemGoldOre   ItemID = 24
	ItemAetherite ItemID = 25

	ItemIronSword    ItemID = 30
	ItemSteelSword   ItemID = 31
	ItemRuneBlade    ItemID = 32
	ItemOakShield    ItemID = 33
	ItemBasicPickaxe ItemID = 34
	ItemIronPickaxe  ItemID = 35
	ItemSteelPickaxe ItemID = 36
	ItemRunePickaxe  ItemID = 37
)

// ItemKind groups items by namespace range.
type ItemKind string

const (
	KindCrop      ItemKind = "crop"
	KindCrafted   ItemKind = "crafted"
	KindOre       ItemKind = "ore"
	KindEquipment ItemKind = "equipment"
	KindSeed      ItemKind = "seed"
)

type Item struct {
	ID        ItemID
	Name      string
	Kind      ItemKind
	SellPrice int64 // NPC marketplace price in crystals, 0 = not sellable
}

var items = map[ItemID]Item{
	ItemWheat:      {ItemWheat, "Wheat", KindCrop, 5},
	ItemCorn:       {ItemCorn, "Corn", KindCrop, 8},
	ItemCarrot:     {ItemCarrot, "Carrot", KindCrop, 10},
	ItemPotato:     {ItemPotato, "Potato", KindCrop, 12},
	ItemTomato:     {ItemTomato, "Tomato", KindCrop, 15},
	ItemStrawberry: {ItemStrawberry, "Strawberry", KindCrop, 20},
	ItemPumpkin:    {ItemPumpkin, "Pumpkin", KindCrop, 25},
	ItemBerries:    {ItemBerries, "Berries", KindCrop, 18},
	ItemHerbs:      {ItemHerbs, "Herbs", KindCrop, 22},
	ItemFlax:       {ItemFlax, "Flax", KindCrop, 16},

	ItemBread:         {ItemBread, "Bread", KindCrafted, 30},
	ItemRuneLoaf:      {ItemRuneLoaf, "Rune Loaf", KindCrafted, 60},
	ItemBerryPie:      {ItemBerryPie, "Berry Pie", KindCrafted, 75},
	ItemHerbTonic:     {ItemHerbTonic, "Herb Tonic", KindCrafted, 90},
	ItemLinenCloth:    {ItemLinenCloth, "Linen Cloth", KindCrafted, 50},
	ItemVegetableStew: {ItemVegetableStew, "Vegetable Stew", KindCrafted, 80},
	ItemEgg:           {ItemEgg, "Egg", KindCrafted, 6},
	ItemMilk:          {ItemMilk, "Milk", KindCrafted, 12},
	ItemWool:          {ItemWool, "Wool", KindCrafted, 15},

	ItemStone:     {ItemStone, "Stone", KindOre, 4},
	ItemCoal:      {ItemCoal, "Coal", KindOre, 10},
	ItemIronOre:   {ItemIronOre, "Iron Ore", KindOre, 25},
	ItemSilverOre: {ItemSilverOre, "Silver Ore", KindOre, 60},
	ItemGoldOre:   {ItemGoldOre, "Gold Ore", KindOre, 150},
	ItemAetherite: {ItemAetherite, "Aetherite", KindOre, 400},

	ItemIronSword:    {ItemIronSword, "Iron Sword", KindEquipment, 120},
	ItemSteelSword:   {ItemSteelSword, "Steel Sword", KindEquipment, 260},
	ItemRuneBlade:    {ItemRuneBlade, "Rune Blade", KindEquipment, 600},
	ItemOakShield:    {ItemOakShield, "Oak Shield", KindEquipment, 150},
	ItemBasicPickaxe: {ItemBasicPickaxe, "Basic Pickaxe", KindEquipment, 80},
	ItemIronPickaxe:  {ItemIronPickaxe, "Iron Pickaxe", KindEquipment, 200},
	ItemSteelPickaxe: {ItemSteelPickaxe, "Steel Pickaxe", KindEquipment, 450},
	ItemRunePickaxe:  {ItemRunePickaxe, "Rune Pickaxe", KindEquipment, 1000},
}

// GetItem looks up an item; seed ids resolve to a synthetic seed entry.
func GetItem(id ItemID) (Item, bool) {
	if it, ok := items[id]; ok {
		return it, true
	}
	if cropID, ok := CropForSeed(id); ok {
		crop := items[cropID]
		return Item{ID: id, Name: crop.Name + " Seeds", Kind: KindSeed, SellPrice: 0}, true
	}
	return Item{}, false
}

// SeedFor returns the seed item id for a crop.
func SeedFor(crop ItemID) ItemID { return crop + 100 }

// CropForSeed maps a seed item id back to its crop, if the crop exists.
func CropForSeed(seed ItemID) (ItemID, bool) {
	if seed <= 100 {
		return 0, false
	}
	crop := seed - 100
	if it, ok := items[crop]; ok && it.Kind == KindCrop {
		return crop, true
	}
	return 0, false
}

// SellPrice returns the NPC marketplace price for an item, 0 if unknown or
// not sellable.
func SellPrice(id ItemID) int64 {
	it, ok := items[id]
	if !ok {
		return 0
	}
	return it.SellPrice
}

// ItemXP is the shared valuation used by every reward-paying path:
// one tenth of NPC value per unit, at least 1 XP per unit.
func ItemXP(id ItemID, qty int64) int64 {
	if qty <= 0 {
		return 0
	}
	per := SellPrice(id) / 10
	if per < 1 {
		per = 1
	}
	return per * qty
}

// AllItems returns the catalog in id order for seeding and listings.
func AllItems() []Item {
	out := make([]Item, 0, len(items))
	for id := ItemID(1); id <= ItemRunePickaxe; id++ {
		if it, ok := items[id]; ok {
			out = append(out, it)
		}
	}
	return out
}
