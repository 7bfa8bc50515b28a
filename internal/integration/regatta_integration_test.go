package integration

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"covenfield_backend/internal/service"
)

func TestRegattaJoinOnce(t *testing.T) {
	db := testPool(t)
	ctx := context.Background()

	balance := service.NewBalanceService(db)
	players := service.NewPlayerService(db, balance)
	regatta := service.NewRegattaService(db, balance)

	// Open a window around now so Current resolves this event.
	var regattaID int64
	err := db.QueryRow(ctx,
		`INSERT INTO regattas (name, status, starts_at, ends_at, task_points, task_count)
		 VALUES ($1, 'active', now() - interval '1 hour', now() + interval '1 hour', 10, 5)
		 RETURNING id`,
		fmt.Sprintf("itest regatta %d", time.Now().UnixNano()),
	).Scan(&regattaID)
	if err != nil {
		t.Fatalf("seed regatta: %v", err)
	}
	t.Cleanup(func() {
		_, _ = db.Exec(context.Background(), `DELETE FROM regattas WHERE id = $1`, regattaID)
	})

	username := fmt.Sprintf("itest_regatta_%d", time.Now().UnixNano())
	player, _, err := players.Register(ctx, username, "itest-secret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	ev, err := regatta.Join(ctx, player.ID)
	if err != nil {
		t.Fatalf("first join: %v", err)
	}
	if ev.ID != regattaID {
		t.Fatalf("joined regatta %d, want %d", ev.ID, regattaID)
	}

	if _, err := regatta.Join(ctx, player.ID); !errors.Is(err, service.ErrAlreadyDone) {
		t.Fatalf("expected ErrAlreadyDone on repeat join, got %v", err)
	}
}
