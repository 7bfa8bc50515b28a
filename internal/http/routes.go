package http

import (
	"time"

	"covenfield_backend/internal/config"
	"covenfield_backend/internal/http/handlers"
	"covenfield_backend/internal/http/middleware"
	"covenfield_backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes wires every API route. The returned handler carries the
// service graph so background jobs can reuse the same instances.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, hub *ws.Hub, cfg *config.Config, version string) *handlers.Handler {
	h := handlers.NewHandler(db, hub)
	healthHandler := handlers.NewHealthHandler(db, version)

	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	actionWindow := time.Duration(cfg.ActionRateWindow) * time.Second

	v1 := r.Group("/api/v1")
	v1.Use(middleware.SimpleRateLimit(600, time.Minute))

	// Auth, unauthenticated and tightly limited per IP
	auth := v1.Group("/auth")
	auth.Use(middleware.RedisRateLimit(10, time.Minute))
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)

	// Static game catalog, unauthenticated
	ref := v1.Group("/catalog")
	ref.GET("/items", h.RefItems)
	ref.GET("/crops", h.RefCrops)
	ref.GET("/recipes/:producer", h.RefRecipes)
	ref.GET("/buildings", h.RefBuildings)
	ref.GET("/animals", h.RefAnimals)
	ref.GET("/ores", h.RefOres)

	v1.GET("/players/:id", h.PublicProfile)
	v1.GET("/market/listings", h.Listings)

	// Everything below requires a player token.
	api := v1.Group("")
	api.Use(middleware.JWT())

	api.GET("/me", h.Me)
	api.GET("/me/ledger", h.Ledger)
	api.GET("/quests", h.Quests)
	api.POST("/quests/:id/claim", h.ClaimQuest)
	api.GET("/achievements", h.Achievements)
	api.POST("/achievements/:id/claim", h.ClaimAchievement)
	api.POST("/daily/claim", h.DailyClaim)

	// Gameplay actions share one per-player budget.
	game := api.Group("")
	game.Use(middleware.ActionRateLimit("game", cfg.ActionRateLimit, actionWindow))

	game.GET("/farm", h.FarmPlots)
	game.POST("/farm/plant", h.FarmPlant)
	game.POST("/farm/harvest", h.FarmHarvest)

	game.GET("/craft/:producer", h.CraftQueue)
	game.POST("/craft/:producer/start", h.CraftStart)
	game.POST("/craft/:producer/collect", h.CraftCollect)

	game.GET("/mine", h.MineView)
	game.POST("/mine/dig", h.MineDig)
	game.POST("/mine/restore", h.MineRestore)
	game.POST("/mine/equip", h.MineEquip)

	game.GET("/zoo", h.ZooView)
	game.POST("/zoo/enclosures", h.ZooBuyEnclosure)
	game.POST("/zoo/animals", h.ZooBuyAnimal)
	game.POST("/zoo/animals/:id/collect", h.ZooCollect)
	game.POST("/zoo/breed", h.ZooBreed)

	game.GET("/town", h.TownGrid)
	game.POST("/town/place", h.TownPlace)
	game.POST("/town/placements/:id/move", h.TownMove)
	game.DELETE("/town/placements/:id", h.TownRemove)
	game.POST("/town/placements/:id/upgrade", h.TownUpgrade)

	game.POST("/market/npc-sell", h.MarketSellNPC)
	game.POST("/market/seeds", h.MarketBuySeeds)
	game.POST("/market/listings", h.CreateListing)
	game.POST("/market/listings/:id/buy", h.BuyListing)
	game.DELETE("/market/listings/:id", h.CancelListing)

	api.POST("/covens", h.CovenCreate)
	api.GET("/covens/:id", h.CovenGet)
	api.POST("/covens/:id/join", h.CovenJoin)
	api.GET("/coven", h.CovenMine)
	api.POST("/coven/leave", h.CovenLeave)
	api.POST("/coven/role", h.CovenSetRole)
	api.POST("/coven/kick", h.CovenKick)
	api.GET("/coven/tasks", h.CovenTasks)
	api.POST("/coven/tasks", h.CovenCreateTask)
	api.POST("/coven/tasks/:id/contribute", h.CovenContribute)
	api.POST("/coven/distribute", h.CovenDistribute)

	api.GET("/regatta", h.RegattaCurrent)
	api.GET("/regatta/leaderboard", h.RegattaLeaderboard)
	api.POST("/regatta/join", h.RegattaJoin)
	api.POST("/regatta/submit", h.RegattaSubmit)
	api.POST("/regatta/claim", h.RegattaClaim)

	api.GET("/shop", h.ShopCatalog)
	api.POST("/shop/buy", h.ShopBuy)
	api.POST("/shop/finish/:producer", h.ShopInstantFinish)

	// Ad watches have their own hourly caps in the service; this limiter
	// just blunts request floods.
	ads := api.Group("/ads")
	ads.Use(middleware.ActionRateLimit("ads", 30, time.Hour))
	ads.POST("/generic", h.AdWatchGeneric)
	ads.POST("/speedup/:producer", h.AdWatchSpeedup)
	ads.POST("/energy", h.AdWatchEnergy)

	api.POST("/notifications/subscribe", h.NotifySubscribe)
	api.POST("/notifications/unsubscribe", h.NotifyUnsubscribe)
	api.GET("/notifications/prefs", h.NotifyPrefs)
	api.PUT("/notifications/prefs", h.NotifySetPrefs)

	r.GET("/ws", ws.HandleWS(hub))

	return h
}
