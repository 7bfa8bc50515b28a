package domain

import (
	"testing"

	"covenfield_backend/internal/catalog"
)

func TestPlacementCovers(t *testing.T) {
	// farmhouse is 2x2
	p := Placement{Kind: catalog.KindBuilding, TypeKey: "farmhouse", X: 3, Y: 4}

	covered := [][2]int{{3, 4}, {4, 4}, {3, 5}, {4, 5}}
	for _, c := range covered {
		if !p.Covers(c[0], c[1]) {
			t.Errorf("farmhouse at (3,4) should cover (%d,%d)", c[0], c[1])
		}
	}
	outside := [][2]int{{2, 4}, {5, 4}, {3, 3}, {3, 6}, {5, 6}}
	for _, c := range outside {
		if p.Covers(c[0], c[1]) {
			t.Errorf("farmhouse at (3,4) should not cover (%d,%d)", c[0], c[1])
		}
	}
}

func TestRoadFootprintIsSingleCell(t *testing.T) {
	p := Placement{Kind: catalog.KindRoad, TypeKey: "road", X: 0, Y: 0}
	w, h := p.Footprint()
	if w != 1 || h != 1 {
		t.Fatalf("road footprint = %dx%d; want 1x1", w, h)
	}
}
