package domain

import "testing"

func TestObjectivesAdvance(t *testing.T) {
	objs := Objectives{
		{Type: ActionHarvest, Target: 10},
		{Type: ActionCraft, Target: 5},
	}

	if objs.Complete() {
		t.Fatal("fresh objectives should not be complete")
	}

	if !objs.Advance(ActionHarvest, 4) {
		t.Fatal("expected harvest objective to advance")
	}
	if objs[0].Current != 4 {
		t.Fatalf("harvest current = %d; want 4", objs[0].Current)
	}
	if objs[1].Current != 0 {
		t.Fatalf("craft objective advanced by harvest action")
	}

	// Cap at target even with a large increment.
	objs.Advance(ActionHarvest, 100)
	if objs[0].Current != 10 {
		t.Fatalf("harvest current = %d; want capped at 10", objs[0].Current)
	}

	// Completed objective no longer advances.
	if objs.Advance(ActionHarvest, 1) {
		t.Fatal("capped objective should not report change")
	}

	if objs.Complete() {
		t.Fatal("one met objective must not complete the set")
	}
	objs.Advance(ActionCraft, 5)
	if !objs.Complete() {
		t.Fatal("all objectives met, expected complete")
	}
}

func TestObjectivesRoundTrip(t *testing.T) {
	objs := Objectives{{Type: ActionMine, Target: 50, Current: 7}}
	b, err := objs.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	got, err := UnmarshalObjectives(b)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != objs[0] {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestEmptyObjectivesNeverComplete(t *testing.T) {
	if (Objectives{}).Complete() {
		t.Fatal("empty objective set must not count as complete")
	}
}
