package catalog

import "testing"

func TestInferRoadType(t *testing.T) {
	cases := []struct {
		name                     string
		north, east, south, west bool
		want                     RoadType
	}{
		{"isolated", false, false, false, false, RoadStraight},
		{"dead end", true, false, false, false, RoadStraight},
		{"vertical", true, false, true, false, RoadStraight},
		{"horizontal", false, true, false, true, RoadStraight},
		{"corner ne", true, true, false, false, RoadCorner},
		{"corner sw", false, false, true, true, RoadCorner},
		{"t junction", true, true, true, false, RoadTJunction},
		{"crossroads", true, true, true, true, RoadIntersection},
	}
	for _, tc := range cases {
		if got := InferRoadType(tc.north, tc.east, tc.south, tc.west); got != tc.want {
			t.Errorf("%s: InferRoadType = %s; want %s", tc.name, got, tc.want)
		}
	}
}

func TestPlacementDiscount(t *testing.T) {
	cases := []struct {
		cost  int64
		level int
		want  int64
	}{
		{1000, 0, 1000},
		{1000, 1, 995},  // 0.5%
		{1000, 10, 950}, // 5%
		{1000, 50, 750}, // capped at 25%
		{1000, 99, 750},
		{200, 4, 196},
	}
	for _, tc := range cases {
		if got := PlacementDiscount(tc.cost, tc.level); got != tc.want {
			t.Errorf("PlacementDiscount(%d, %d) = %d; want %d", tc.cost, tc.level, got, tc.want)
		}
	}
}

func TestBuildingFootprints(t *testing.T) {
	for key, b := range AllBuildingTypes() {
		if b.Width < 1 || b.Height < 1 {
			t.Errorf("building %s has invalid footprint %dx%d", key, b.Width, b.Height)
		}
		if b.Category == CategoryProducer && b.Producer == "" {
			t.Errorf("producer building %s missing producer kind", key)
		}
	}
}
