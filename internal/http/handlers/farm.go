package handlers

import (
	"net/http"

	"covenfield_backend/internal/catalog"

	"github.com/gin-gonic/gin"
)

func (h *Handler) FarmPlots(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	plots, err := h.Farm.Plots(c.Request.Context(), pid)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plots": plots})
}

type plantRequest struct {
	Plot   int   `json:"plot" binding:"required"`
	CropID int64 `json:"crop_id" binding:"required"`
}

func (h *Handler) FarmPlant(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	var req plantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "plot and crop_id required"})
		return
	}

	view, err := h.Farm.Plant(c.Request.Context(), pid, req.Plot, catalog.ItemID(req.CropID))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type harvestRequest struct {
	Plot int `json:"plot" binding:"required"`
}

func (h *Handler) FarmHarvest(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	var req harvestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "plot required"})
		return
	}

	result, err := h.Farm.Harvest(c.Request.Context(), pid, req.Plot)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
