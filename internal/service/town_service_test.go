package service

import (
	"errors"
	"testing"

	"covenfield_backend/internal/catalog"
	"covenfield_backend/internal/domain"
)

func placement(id int64, kind catalog.PlaceableKind, typeKey string, x, y int) *domain.Placement {
	return &domain.Placement{ID: id, Kind: kind, TypeKey: typeKey, X: x, Y: y, Level: 1}
}

func TestFitsBounds(t *testing.T) {
	tests := []struct {
		name    string
		p       *domain.Placement
		size    int
		wantErr bool
	}{
		{"inside", placement(0, catalog.KindRoad, "road", 5, 5), 20, false},
		{"at origin", placement(0, catalog.KindRoad, "road", 0, 0), 20, false},
		{"negative x", placement(0, catalog.KindRoad, "road", -1, 0), 20, true},
		{"footprint crosses edge", placement(0, catalog.KindBuilding, "farmhouse", 19, 5), 20, true},
		{"footprint at edge", placement(0, catalog.KindBuilding, "farmhouse", 18, 18), 20, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fits(tt.p, tt.size, nil, 0)
			if (err != nil) != tt.wantErr {
				t.Errorf("fits() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFitsOverlap(t *testing.T) {
	existing := []*domain.Placement{
		placement(1, catalog.KindBuilding, "farmhouse", 4, 4), // covers 4..5 x 4..5
		placement(2, catalog.KindRoad, "road", 0, 0),
	}

	if err := fits(placement(0, catalog.KindRoad, "road", 5, 5), 20, existing, 0); err == nil {
		t.Error("expected overlap with the farmhouse footprint")
	}
	if err := fits(placement(0, catalog.KindRoad, "road", 6, 4), 20, existing, 0); err != nil {
		t.Errorf("adjacent cell should fit: %v", err)
	}
	// Moving the farmhouse onto its own cells is allowed.
	if err := fits(placement(1, catalog.KindBuilding, "farmhouse", 5, 4), 20, existing, 1); err != nil {
		t.Errorf("move over own footprint should fit: %v", err)
	}
}

func TestPlaceableCostGates(t *testing.T) {
	p := &domain.Player{Level: 1, Population: 0}

	if _, err := placeableCost(catalog.KindBuilding, "manor", p); !errors.Is(err, ErrInvalidState) {
		t.Errorf("low level manor: got %v, want ErrInvalidState", err)
	}
	if _, err := placeableCost(catalog.KindBuilding, "nonsense", p); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown building: got %v, want ErrNotFound", err)
	}

	cost, err := placeableCost(catalog.KindBuilding, "cottage", p)
	if err != nil {
		t.Fatalf("cottage: %v", err)
	}
	if cost != 200 {
		t.Errorf("cottage cost = %d, want 200", cost)
	}

	rich := &domain.Player{Level: 10, Population: 5}
	if _, err := placeableCost(catalog.KindBuilding, "school", rich); !errors.Is(err, ErrInvalidState) {
		t.Errorf("school without population: got %v, want ErrInvalidState", err)
	}

	roadCost, err := placeableCost(catalog.KindRoad, "", p)
	if err != nil || roadCost != catalog.RoadCost {
		t.Errorf("road cost = %d, %v", roadCost, err)
	}
}

func TestErrorTaxonomyWrapping(t *testing.T) {
	if !errors.Is(insufficient("crystals"), ErrInsufficientResource) {
		t.Error("insufficient should wrap ErrInsufficientResource")
	}
	if !errors.Is(alreadyDone("claim"), ErrAlreadyDone) {
		t.Error("alreadyDone should wrap ErrAlreadyDone")
	}
	if !errors.Is(invalidState("bad %d", 1), ErrInvalidState) {
		t.Error("invalidState should wrap ErrInvalidState")
	}
	if !errors.Is(notFound("x"), ErrNotFound) {
		t.Error("notFound should wrap ErrNotFound")
	}
	if !errors.Is(unauthorized("x"), ErrUnauthorized) {
		t.Error("unauthorized should wrap ErrUnauthorized")
	}
}
