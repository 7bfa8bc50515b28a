package handlers

import (
	"net/http"

	"covenfield_backend/internal/catalog"

	"github.com/gin-gonic/gin"
)

func (h *Handler) TownGrid(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	grid, err := h.Town.Grid(c.Request.Context(), pid)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, grid)
}

type placeRequest struct {
	Kind string `json:"kind" binding:"required"`
	Type string `json:"type" binding:"required"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (h *Handler) TownPlace(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	var req placeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind and type required"})
		return
	}

	kind := catalog.PlaceableKind(req.Kind)
	switch kind {
	case catalog.KindBuilding, catalog.KindRoad, catalog.KindDecoration:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown kind"})
		return
	}

	placement, err := h.Town.Place(c.Request.Context(), pid, kind, req.Type, req.X, req.Y)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, placement)
}

type moveRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (h *Handler) TownMove(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "x and y required"})
		return
	}

	if err := h.Town.Move(c.Request.Context(), pid, id, req.X, req.Y); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "moved"})
}

func (h *Handler) TownRemove(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.Town.Remove(c.Request.Context(), pid, id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

func (h *Handler) TownUpgrade(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	placement, err := h.Town.Upgrade(c.Request.Context(), pid, id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, placement)
}
