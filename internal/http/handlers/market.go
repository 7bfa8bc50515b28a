package handlers

import (
	"net/http"
	"strconv"

	"covenfield_backend/internal/catalog"

	"github.com/gin-gonic/gin"
)

type npcSellRequest struct {
	ItemID   int64 `json:"item_id" binding:"required"`
	Quantity int64 `json:"quantity" binding:"required"`
}

func (h *Handler) MarketSellNPC(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	var req npcSellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item_id and quantity required"})
		return
	}

	result, err := h.Market.SellToNPC(c.Request.Context(), pid, catalog.ItemID(req.ItemID), req.Quantity)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type buySeedsRequest struct {
	CropID   int64 `json:"crop_id" binding:"required"`
	Quantity int64 `json:"quantity" binding:"required"`
}

func (h *Handler) MarketBuySeeds(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	var req buySeedsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "crop_id and quantity required"})
		return
	}

	if err := h.Market.BuySeeds(c.Request.Context(), pid, catalog.ItemID(req.CropID), req.Quantity); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "bought"})
}

// Listings returns open player listings, optionally filtered by item.
func (h *Handler) Listings(c *gin.Context) {
	var item *catalog.ItemID
	if v := c.Query("item_id"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item_id"})
			return
		}
		id := catalog.ItemID(n)
		item = &id
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	listings, err := h.Market.Listings(c.Request.Context(), item, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"listings": listings})
}

type createListingRequest struct {
	ItemID   int64 `json:"item_id" binding:"required"`
	Quantity int64 `json:"quantity" binding:"required"`
	Price    int64 `json:"price" binding:"required"`
}

func (h *Handler) CreateListing(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	var req createListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item_id, quantity and price required"})
		return
	}

	listing, err := h.Market.CreateListing(c.Request.Context(), pid, catalog.ItemID(req.ItemID), req.Quantity, req.Price)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, listing)
}

func (h *Handler) BuyListing(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	listing, err := h.Market.Buy(c.Request.Context(), pid, id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (h *Handler) CancelListing(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.Market.CancelListing(c.Request.Context(), pid, id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
