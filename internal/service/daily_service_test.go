package service

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextStreak(t *testing.T) {
	today := day(2025, time.March, 10)
	yesterday := day(2025, time.March, 9)
	lastWeek := day(2025, time.March, 3)

	tests := []struct {
		name    string
		last    *time.Time
		current int
		want    int
	}{
		{"first claim ever", nil, 0, 1},
		{"claimed yesterday continues", &yesterday, 4, 5},
		{"gap resets", &lastWeek, 12, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nextStreak(tt.last, tt.current, today); got != tt.want {
				t.Errorf("nextStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNextStreakAcrossYearBoundary(t *testing.T) {
	today := day(2025, time.January, 1)
	lastDay := day(2024, time.December, 31)
	if got := nextStreak(&lastDay, 6, today); got != 7 {
		t.Errorf("nextStreak() = %d, want 7", got)
	}
}

func TestDailyCrystals(t *testing.T) {
	tests := []struct {
		streak   int
		bonusPct int
		want     int64
	}{
		{1, 0, 75},
		{3, 0, 125},
		{7, 0, 225},
		{20, 0, 225}, // capped at a week
		{1, 10, 82},  // one school per percent, capped at 10
		{7, 5, 236},
		{20, 10, 247},
	}
	for _, tt := range tests {
		if got := dailyCrystals(tt.streak, tt.bonusPct); got != tt.want {
			t.Errorf("dailyCrystals(%d, %d) = %d, want %d", tt.streak, tt.bonusPct, got, tt.want)
		}
	}
}

func TestSchoolBonusPct(t *testing.T) {
	tests := []struct {
		schools int
		want    int
	}{
		{0, 0},
		{4, 4},
		{10, 10},
		{25, 10}, // capped
	}
	for _, tt := range tests {
		if got := schoolBonusPct(tt.schools); got != tt.want {
			t.Errorf("schoolBonusPct(%d) = %d, want %d", tt.schools, got, tt.want)
		}
	}
}
