package domain

import "testing"

func TestApplyXP(t *testing.T) {
	tests := []struct {
		name      string
		level     int
		xp        int64
		amount    int64
		wantLevel int
		wantXP    int64
	}{
		{"no level up", 1, 0, 500, 1, 500},
		{"exact threshold", 1, 0, 1000, 2, 0},
		{"rollover with leftover", 1, 0, 2500, 2, 1500},
		{"double level up", 1, 0, 3000, 3, 0},
		{"existing partial xp", 2, 1500, 500, 3, 0},
		{"large grant spans several levels", 1, 0, 10000, 4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, xp := ApplyXP(tt.level, tt.xp, tt.amount)
			if level != tt.wantLevel || xp != tt.wantXP {
				t.Errorf("ApplyXP(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.level, tt.xp, tt.amount, level, xp, tt.wantLevel, tt.wantXP)
			}
		})
	}
}
