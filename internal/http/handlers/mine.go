package handlers

import (
	"net/http"

	"covenfield_backend/internal/catalog"

	"github.com/gin-gonic/gin"
)

func (h *Handler) MineView(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	view, err := h.Mine.View(c.Request.Context(), pid)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) MineDig(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	result, err := h.Mine.Dig(c.Request.Context(), pid)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) MineRestore(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	view, err := h.Mine.RestoreEnergy(c.Request.Context(), pid)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type equipToolRequest struct {
	ItemID int64 `json:"item_id" binding:"required"`
}

func (h *Handler) MineEquip(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	var req equipToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item_id required"})
		return
	}

	if err := h.Mine.EquipTool(c.Request.Context(), pid, catalog.ItemID(req.ItemID)); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "equipped"})
}
