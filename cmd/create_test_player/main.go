// Dev helper: creates (or reuses) a local test player with a generous
// balance and prints a token for manual API poking.
package main

import (
	"context"
	"log"
	"os"

	"covenfield_backend/internal/db"
	"covenfield_backend/internal/domain"
	"covenfield_backend/internal/service"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	service.InitJWT()
	ctx := context.Background()

	balance := service.NewBalanceService(pool)
	players := service.NewPlayerService(pool, balance)

	const username = "testplayer"
	const secret = "test-secret-123"

	player, token, err := players.Register(ctx, username, secret)
	if err != nil {
		player, token, err = players.Login(ctx, username, secret)
		if err != nil {
			log.Fatalf("register/login test player: %v", err)
		}
		log.Printf("player already exists id=%d", player.ID)
	} else {
		log.Printf("player created id=%d", player.ID)
		// Top up so every feature is reachable without grinding.
		if _, err := balance.Credit(ctx, player.ID, domain.CurrencyCrystals, 100000, "dev_grant", nil); err != nil {
			log.Fatalf("grant crystals: %v", err)
		}
		if _, err := balance.Credit(ctx, player.ID, domain.CurrencyAether, 1000, "dev_grant", nil); err != nil {
			log.Fatalf("grant aether: %v", err)
		}
	}

	log.Printf("username=%s level=%d", player.Username, player.Level)
	log.Printf("token: %s", token)
}
