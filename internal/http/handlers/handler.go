package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"covenfield_backend/internal/service"
	"covenfield_backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB *pgxpool.Pool

	Players       *service.PlayerService
	Balance       *service.BalanceService
	Progression   *service.ProgressionService
	Farm          *service.FarmService
	Craft         *service.CraftService
	Mine          *service.MineService
	Zoo           *service.ZooService
	Town          *service.TownService
	Market        *service.MarketService
	Coven         *service.CovenService
	Regatta       *service.RegattaService
	Shop          *service.ShopService
	Daily         *service.DailyService
	Ads           *service.AdsService
	Notifications *service.NotificationService
}

func NewHandler(db *pgxpool.Pool, hub *ws.Hub) *Handler {
	var publisher service.Publisher = service.NopPublisher{}
	if hub != nil {
		publisher = hub
	}

	balance := service.NewBalanceService(db)
	progression := service.NewProgressionService(db, balance, publisher)
	mine := service.NewMineService(db, balance, progression)

	return &Handler{
		DB:            db,
		Players:       service.NewPlayerService(db, balance),
		Balance:       balance,
		Progression:   progression,
		Farm:          service.NewFarmService(db, progression),
		Craft:         service.NewCraftService(db, progression),
		Mine:          mine,
		Zoo:           service.NewZooService(db, balance, progression),
		Town:          service.NewTownService(db, balance, progression),
		Market:        service.NewMarketService(db, balance, progression, publisher),
		Coven:         service.NewCovenService(db, balance, publisher),
		Regatta:       service.NewRegattaService(db, balance),
		Shop:          service.NewShopService(db, balance),
		Daily:         service.NewDailyService(db, balance),
		Ads:           service.NewAdsService(db, balance, mine),
		Notifications: service.NewNotificationService(db),
	}
}

// respondErr translates service errors into HTTP statuses. Anything not in
// the known set is a 500 with a generic message so internals never leak.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyDone):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInsufficientResource):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
