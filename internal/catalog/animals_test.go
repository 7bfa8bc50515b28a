package catalog

import (
	"testing"
	"time"
)

func TestOffspringTierChancesSumTo100(t *testing.T) {
	for a := 1; a <= MaxAnimalTier; a++ {
		for b := 1; b <= MaxAnimalTier; b++ {
			ch := OffspringTierChances(a, b)
			if got := sumChances(ch); got != 100 {
				t.Errorf("chances(%d,%d) sum to %d: %v", a, b, got, ch)
			}
		}
	}
}

func TestOffspringRarerParentDominates(t *testing.T) {
	ch := OffspringTierChances(1, 3)
	if ch[3] <= ch[1] {
		t.Errorf("rarer parent tier should dominate: %v", ch)
	}
	if ch[4] == 0 {
		t.Errorf("pair below cap should have an upgrade chance: %v", ch)
	}

	// Tier cap: no tier 5 ever.
	ch = OffspringTierChances(4, 4)
	if _, ok := ch[5]; ok {
		t.Errorf("offspring above tier cap: %v", ch)
	}
}

func TestPickOffspringTierCoversRolls(t *testing.T) {
	seen := map[int]bool{}
	for roll := 0; roll < 100; roll++ {
		tier := PickOffspringTier(2, 3, roll)
		if tier < 2 || tier > 4 {
			t.Fatalf("PickOffspringTier(2,3,%d) = %d; out of expected range", roll, tier)
		}
		seen[tier] = true
	}
	for _, want := range []int{2, 3, 4} {
		if !seen[want] {
			t.Errorf("tier %d never rolled for pair (2,3)", want)
		}
	}
}

func TestBreedCooldownSlowerParentWins(t *testing.T) {
	chicken, _ := GetAnimalType("chicken")
	cow, _ := GetAnimalType("cow")
	if got := BreedCooldown(chicken, cow); got != 2*time.Hour {
		t.Errorf("BreedCooldown(chicken, cow) = %s; want 2h", got)
	}
	if got := BreedCooldown(cow, chicken); got != 2*time.Hour {
		t.Errorf("BreedCooldown should be symmetric, got %s", got)
	}
}

func TestAnimalProduceItemsExist(t *testing.T) {
	for _, key := range []string{"chicken", "sheep", "rabbit", "cow", "stag", "moon_wolf"} {
		a, ok := GetAnimalType(key)
		if !ok {
			t.Fatalf("animal %s missing", key)
		}
		if _, ok := GetItem(a.Produce); !ok {
			t.Errorf("animal %s produces unknown item %d", key, a.Produce)
		}
		if a.ProduceEvery <= 0 || a.BreedTime <= 0 {
			t.Errorf("animal %s has non-positive intervals", key)
		}
	}
}
