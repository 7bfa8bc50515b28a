package catalog

// PlaceableKind is what occupies a town grid cell.
type PlaceableKind string

const (
	KindBuilding   PlaceableKind = "building"
	KindRoad       PlaceableKind = "road"
	KindDecoration PlaceableKind = "decoration"
)

// BuildingCategory drives side effects of placement.
type BuildingCategory string

const (
	CategoryHouse    BuildingCategory = "house"    // grants population
	CategorySchool   BuildingCategory = "school"   // XP bonus, +1%/building capped 10%
	CategoryProducer BuildingCategory = "producer" // hosts craft queues
	CategoryCivic    BuildingCategory = "civic"
)

// BuildingType describes a placeable building. Footprint is a rectangle
// anchored at the top-left cell.
type BuildingType struct {
	Key        string
	Name       string
	Category   BuildingCategory
	Producer   ProducerKind // only for CategoryProducer
	Cost       int64
	Width      int
	Height     int
	Population int // per level
	MinLevel   int
	PopNeeded  int // population required to place
}

var buildingTypes = map[string]BuildingType{
	"cottage":     {Key: "cottage", Name: "Cottage", Category: CategoryHouse, Cost: 200, Width: 1, Height: 1, Population: 4, MinLevel: 1},
	"farmhouse":   {Key: "farmhouse", Name: "Farmhouse", Category: CategoryHouse, Cost: 500, Width: 2, Height: 2, Population: 8, MinLevel: 3},
	"manor":       {Key: "manor", Name: "Manor", Category: CategoryHouse, Cost: 2000, Width: 2, Height: 2, Population: 20, MinLevel: 8},
	"school":      {Key: "school", Name: "School", Category: CategorySchool, Cost: 800, Width: 2, Height: 2, MinLevel: 5, PopNeeded: 12},
	"rune_bakery": {Key: "rune_bakery", Name: "Rune Bakery", Category: CategoryProducer, Producer: ProducerFactory, Cost: 600, Width: 2, Height: 2, MinLevel: 1},
	"basic_forge": {Key: "basic_forge", Name: "Basic Forge", Category: CategoryProducer, Producer: ProducerArmory, Cost: 600, Width: 2, Height: 2, MinLevel: 1},
	"watchtower":  {Key: "watchtower", Name: "Watchtower", Category: CategoryCivic, Cost: 1500, Width: 1, Height: 1, MinLevel: 6, PopNeeded: 20},
	"market_hall": {Key: "market_hall", Name: "Market Hall", Category: CategoryCivic, Cost: 1200, Width: 2, Height: 1, MinLevel: 4, PopNeeded: 10},
}

// Decoration and road catalogs; all 1x1.
type DecorationType struct {
	Key      string
	Name     string
	Cost     int64
	MinLevel int
}

var decorationTypes = map[string]DecorationType{
	"flower_bed": {"flower_bed", "Flower Bed", 25, 1},
	"lantern":    {"lantern", "Lantern", 40, 2},
	"statue":     {"statue", "Statue", 300, 5},
	"fountain":   {"fountain", "Fountain", 750, 7},
}

// RoadCost is the flat price for one road cell.
const RoadCost int64 = 10

func GetBuildingType(key string) (BuildingType, bool) {
	b, ok := buildingTypes[key]
	return b, ok
}

func GetDecorationType(key string) (DecorationType, bool) {
	d, ok := decorationTypes[key]
	return d, ok
}

func AllBuildingTypes() map[string]BuildingType { return buildingTypes }

func AllDecorationTypes() map[string]DecorationType { return decorationTypes }

// RoadType is the cosmetic shape of a road cell, derived at read time from
// the occupancy of its four cardinal neighbors. Never persisted.
type RoadType string

const (
	RoadStraight     RoadType = "straight"
	RoadCorner       RoadType = "corner"
	RoadTJunction    RoadType = "t_junction"
	RoadIntersection RoadType = "intersection"
)

// InferRoadType derives the road shape from neighbor road occupancy.
func InferRoadType(north, east, south, west bool) RoadType {
	n := 0
	for _, b := range [4]bool{north, east, south, west} {
		if b {
			n++
		}
	}
	switch n {
	case 4:
		return RoadIntersection
	case 3:
		return RoadTJunction
	case 2:
		if (north && south) || (east && west) {
			return RoadStraight
		}
		return RoadCorner
	default:
		return RoadStraight
	}
}

// PlacementDiscount is the level-based price discount: 0.5% per level,
// capped at 25%.
func PlacementDiscount(cost int64, level int) int64 {
	pct := float64(level) * 0.5
	if pct > 25 {
		pct = 25
	}
	discounted := float64(cost) * (1 - pct/100)
	return int64(discounted)
}
