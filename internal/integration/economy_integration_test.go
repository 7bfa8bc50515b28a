package integration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"covenfield_backend/internal/catalog"
	"covenfield_backend/internal/repository"
	"covenfield_backend/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	if os.Getenv("JWT_SECRET") == "" {
		t.Setenv("JWT_SECRET", "integration-test-secret")
	}
	service.InitJWT()

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)
	applyMigrations(t, db)
	return db
}

func TestRegisterHarvestSell(t *testing.T) {
	db := testPool(t)
	ctx := context.Background()

	balance := service.NewBalanceService(db)
	progression := service.NewProgressionService(db, balance, service.NopPublisher{})
	players := service.NewPlayerService(db, balance)
	farm := service.NewFarmService(db, progression)
	market := service.NewMarketService(db, balance, progression, service.NopPublisher{})

	username := fmt.Sprintf("itest_%d", time.Now().UnixNano())
	player, token, err := players.Register(ctx, username, "itest-secret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if player.Crystals == 0 {
		t.Fatal("expected starting crystals")
	}

	plots, err := farm.Plots(ctx, player.ID)
	if err != nil {
		t.Fatalf("plots: %v", err)
	}
	if len(plots) != 6 {
		t.Fatalf("expected 6 starter plots, got %d", len(plots))
	}

	// Backdate a planted crop so harvest is immediately ready.
	farmRepo := repository.NewFarmRepository(db)
	ok, err := farmRepo.Plant(ctx, db, player.ID, 1, catalog.ItemWheat, time.Now().Add(-time.Second))
	if err != nil || !ok {
		t.Fatalf("plant: ok=%v err=%v", ok, err)
	}

	harvest, err := farm.Harvest(ctx, player.ID, 1)
	if err != nil {
		t.Fatalf("harvest: %v", err)
	}
	if harvest.Quantity <= 0 {
		t.Fatalf("expected harvested wheat, got %d", harvest.Quantity)
	}

	// Double harvest on the cleared plot must classify, not pay twice.
	if _, err := farm.Harvest(ctx, player.ID, 1); !errors.Is(err, service.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState on empty plot, got %v", err)
	}

	sale, err := market.SellToNPC(ctx, player.ID, catalog.ItemWheat, 2)
	if err != nil {
		t.Fatalf("npc sell: %v", err)
	}
	if want := catalog.SellPrice(catalog.ItemWheat) * 2; sale.Crystals != want {
		t.Fatalf("expected %d crystals from sale, got %d", want, sale.Crystals)
	}
}

func TestDailyClaimOncePerDay(t *testing.T) {
	db := testPool(t)
	ctx := context.Background()

	balance := service.NewBalanceService(db)
	players := service.NewPlayerService(db, balance)
	daily := service.NewDailyService(db, balance)

	username := fmt.Sprintf("itest_daily_%d", time.Now().UnixNano())
	player, _, err := players.Register(ctx, username, "itest-secret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	reward, err := daily.Claim(ctx, player.ID)
	if err != nil {
		t.Fatalf("first claim: %v", err)
	}
	if reward.Streak != 1 {
		t.Fatalf("expected streak 1, got %d", reward.Streak)
	}

	if _, err := daily.Claim(ctx, player.ID); !errors.Is(err, service.ErrAlreadyDone) {
		t.Fatalf("expected ErrAlreadyDone on second claim, got %v", err)
	}
}
