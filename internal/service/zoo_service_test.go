package service

import (
	"testing"
	"time"

	"covenfield_backend/internal/domain"
)

func TestBreedReady(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	soon := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name    string
		readyAt *time.Time
		want    bool
	}{
		{"bought animal has no cooldown", nil, true},
		{"offspring inside cooldown", &soon, false},
		{"offspring past cooldown", &past, true},
		{"exactly at the ready time", &now, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &domain.Animal{BreedReadyAt: tt.readyAt}
			if got := breedReady(a, now); got != tt.want {
				t.Errorf("breedReady() = %v, want %v", got, tt.want)
			}
		})
	}
}
