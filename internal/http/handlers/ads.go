package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) AdWatchGeneric(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	crystals, err := h.Ads.WatchGeneric(c.Request.Context(), pid)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"crystals": crystals})
}

type adSpeedupRequest struct {
	Slot int `json:"slot" binding:"required"`
}

func (h *Handler) AdWatchSpeedup(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}
	kind, ok := parseProducer(c)
	if !ok {
		return
	}

	var req adSpeedupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slot required"})
		return
	}

	finishesAt, err := h.Ads.WatchSpeedup(c.Request.Context(), pid, kind, req.Slot)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"finishes_at": finishesAt})
}

func (h *Handler) AdWatchEnergy(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	if err := h.Ads.WatchEnergy(c.Request.Context(), pid); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "restored"})
}
