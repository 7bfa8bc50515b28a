package catalog

import "testing"

func TestItemRanges(t *testing.T) {
	for _, it := range AllItems() {
		var lo, hi ItemID
		switch it.Kind {
		case KindCrop:
			lo, hi = 1, 10
		case KindCrafted:
			lo, hi = 11, 19
		case KindOre:
			lo, hi = 20, 29
		case KindEquipment:
			lo, hi = 30, 39
		default:
			t.Fatalf("item %d has unexpected kind %q", it.ID, it.Kind)
		}
		if it.ID < lo || it.ID > hi {
			t.Errorf("item %d (%s) outside %s range [%d,%d]", it.ID, it.Name, it.Kind, lo, hi)
		}
	}
}

func TestSeedMapping(t *testing.T) {
	for _, c := range AllCrops() {
		seed := SeedFor(c.ID)
		if seed != c.ID+100 {
			t.Errorf("SeedFor(%d) = %d; want %d", c.ID, seed, c.ID+100)
		}
		crop, ok := CropForSeed(seed)
		if !ok || crop != c.ID {
			t.Errorf("CropForSeed(%d) = %d, %v; want %d, true", seed, crop, ok, c.ID)
		}
		it, ok := GetItem(seed)
		if !ok || it.Kind != KindSeed {
			t.Errorf("GetItem(%d) = %+v, %v; want seed item", seed, it, ok)
		}
	}

	if _, ok := CropForSeed(150); ok {
		t.Error("CropForSeed(150) should not resolve: no crop 50")
	}
	if _, ok := CropForSeed(ItemWheat); ok {
		t.Error("CropForSeed should reject non-seed ids")
	}
}

func TestItemXP(t *testing.T) {
	cases := []struct {
		item ItemID
		qty  int64
		want int64
	}{
		{ItemWheat, 1, 1},      // 5/10 rounds to 0, min 1 per unit
		{ItemWheat, 10, 10},
		{ItemGoldOre, 2, 30},   // 150/10 = 15 per unit
		{ItemAetherite, 1, 40},
		{ItemWheat, 0, 0},
		{ItemWheat, -3, 0},
	}
	for _, tc := range cases {
		if got := ItemXP(tc.item, tc.qty); got != tc.want {
			t.Errorf("ItemXP(%d, %d) = %d; want %d", tc.item, tc.qty, got, tc.want)
		}
	}
}

func TestRecipeIntegrity(t *testing.T) {
	for _, kind := range []ProducerKind{ProducerFactory, ProducerArmory} {
		for _, r := range RecipesFor(kind) {
			if _, ok := GetItem(r.Output); !ok {
				t.Errorf("recipe %d outputs unknown item %d", r.ID, r.Output)
			}
			if r.OutputQty <= 0 || r.Duration <= 0 {
				t.Errorf("recipe %d has non-positive output or duration", r.ID)
			}
			for in, qty := range r.Inputs {
				if _, ok := GetItem(in); !ok {
					t.Errorf("recipe %d consumes unknown item %d", r.ID, in)
				}
				if qty <= 0 {
					t.Errorf("recipe %d input %d has qty %d", r.ID, in, qty)
				}
			}
		}
	}
}
