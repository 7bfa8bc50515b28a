// Manual smoke test for the event socket. Run the server, then this tool:
// it registers (or reuses) a smoke player, opens /ws and waits for a
// level_up frame while the operator plays a few actions against the API.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"covenfield_backend/internal/db"
	"covenfield_backend/internal/service"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}
	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	service.InitJWT()

	ctx := context.Background()
	balance := service.NewBalanceService(pool)
	players := service.NewPlayerService(pool, balance)

	player, token, err := players.Register(ctx, "ws_smoke", "smoke-secret-1")
	if err != nil {
		if !errors.Is(err, service.ErrAlreadyDone) {
			log.Fatalf("register: %v", err)
		}
		player, token, err = players.Login(ctx, "ws_smoke", "smoke-secret-1")
		if err != nil {
			log.Fatalf("login: %v", err)
		}
	}
	log.Printf("smoke player id=%d level=%d", player.ID, player.Level)

	// 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	wsURL := fmt.Sprintf("ws://127.0.0.1:%s/ws?token=%s", port, token)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		log.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	log.Println("connected; trigger a level up via the API now (harvest or craft)")
	log.Println("waiting up to 60s for a level_up frame")

	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			log.Fatalf("read: %v", err)
		}
		var envelope struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(msg, &envelope); err != nil {
			log.Printf("skipping non-JSON frame: %s", msg)
			continue
		}
		log.Printf("event %s: %s", envelope.Type, envelope.Data)
		if envelope.Type == service.EventLevelUp {
			log.Println("ws smoke OK")
			return
		}
	}
}
