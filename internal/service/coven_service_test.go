package service

import "testing"

func TestTaskRewardShare(t *testing.T) {
	tests := []struct {
		name          string
		reward        int64
		members       int
		wantShare     int64
		wantRemainder int64
	}{
		{"even split", 900, 3, 300, 0},
		{"remainder stays pooled", 1000, 3, 333, 1},
		{"single member takes all", 500, 1, 500, 0},
		{"reward smaller than member count", 2, 5, 0, 2},
		{"no members", 400, 0, 0, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			share, remainder := taskRewardShare(tt.reward, tt.members)
			if share != tt.wantShare || remainder != tt.wantRemainder {
				t.Errorf("taskRewardShare(%d, %d) = (%d, %d), want (%d, %d)",
					tt.reward, tt.members, share, remainder, tt.wantShare, tt.wantRemainder)
			}
		})
	}
}
