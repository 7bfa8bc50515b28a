package catalog

import "testing"

func TestUnlockedOreTiers(t *testing.T) {
	cases := []struct {
		depth int
		want  int // number of unlocked tiers
	}{
		{0, 1},
		{9, 1},
		{10, 2},
		{25, 3},
		{50, 4},
		{100, 5},
		{200, 6},
		{999, 6},
	}
	for _, tc := range cases {
		if got := len(UnlockedOreTiers(tc.depth)); got != tc.want {
			t.Errorf("UnlockedOreTiers(%d): %d tiers; want %d", tc.depth, got, tc.want)
		}
	}
}

func TestPickOreCoversWeightRange(t *testing.T) {
	depth := 200 // all tiers unlocked
	seen := map[ItemID]bool{}
	for roll := 0; roll < OreWeightTotal(depth); roll++ {
		seen[PickOre(depth, roll)] = true
	}
	for _, tier := range OreTiers() {
		if !seen[tier.Item] {
			t.Errorf("ore %d never drops at depth %d", tier.Item, depth)
		}
	}

	// At the surface only stone can drop.
	for roll := 0; roll < OreWeightTotal(0); roll++ {
		if got := PickOre(0, roll); got != ItemStone {
			t.Fatalf("PickOre(0, %d) = %d; want stone", roll, got)
		}
	}
}

func TestDigEnergyCost(t *testing.T) {
	basic, _ := GetPickaxe(ItemBasicPickaxe)
	rune_, _ := GetPickaxe(ItemRunePickaxe)

	cases := []struct {
		tool  PickaxeTier
		depth int
		want  int
	}{
		{basic, 0, 5},
		{basic, 100, 10},  // doubles at depth 100
		{rune_, 0, 16},
		{rune_, 50, 24},
	}
	for _, tc := range cases {
		if got := DigEnergyCost(tc.tool, tc.depth); got != tc.want {
			t.Errorf("DigEnergyCost(tier %d, depth %d) = %d; want %d", tc.tool.Tier, tc.depth, got, tc.want)
		}
	}
}

func TestDailyEnergy(t *testing.T) {
	if got := DailyEnergy(1); got != 102 {
		t.Errorf("DailyEnergy(1) = %d; want 102", got)
	}
	if got := DailyEnergy(25); got != 150 {
		t.Errorf("DailyEnergy(25) = %d; want 150", got)
	}
}
