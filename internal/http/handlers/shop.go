package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ShopCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.Shop.Catalog()})
}

type shopBuyRequest struct {
	Key string `json:"key" binding:"required"`
}

func (h *Handler) ShopBuy(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	var req shopBuyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "key required"})
		return
	}

	result, err := h.Shop.Buy(c.Request.Context(), pid, req.Key)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type instantFinishRequest struct {
	Slot int `json:"slot" binding:"required"`
}

func (h *Handler) ShopInstantFinish(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}
	kind, ok := parseProducer(c)
	if !ok {
		return
	}

	var req instantFinishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slot required"})
		return
	}

	if err := h.Shop.InstantFinish(c.Request.Context(), pid, kind, req.Slot); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "finished"})
}

func (h *Handler) DailyClaim(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	reward, err := h.Daily.Claim(c.Request.Context(), pid)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, reward)
}
