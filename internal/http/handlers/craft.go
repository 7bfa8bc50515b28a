package handlers

import (
	"net/http"

	"covenfield_backend/internal/catalog"

	"github.com/gin-gonic/gin"
)

func parseProducer(c *gin.Context) (catalog.ProducerKind, bool) {
	switch kind := catalog.ProducerKind(c.Param("producer")); kind {
	case catalog.ProducerFactory, catalog.ProducerArmory:
		return kind, true
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown producer"})
		return "", false
	}
}

func (h *Handler) CraftQueue(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}
	kind, ok := parseProducer(c)
	if !ok {
		return
	}

	queue, err := h.Craft.Queue(c.Request.Context(), pid, kind)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, queue)
}

type craftStartRequest struct {
	RecipeID int64 `json:"recipe_id" binding:"required"`
}

func (h *Handler) CraftStart(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}
	kind, ok := parseProducer(c)
	if !ok {
		return
	}

	var req craftStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe_id required"})
		return
	}

	job, err := h.Craft.Start(c.Request.Context(), pid, kind, req.RecipeID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

type craftCollectRequest struct {
	Slot int `json:"slot" binding:"required"`
}

func (h *Handler) CraftCollect(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}
	kind, ok := parseProducer(c)
	if !ok {
		return
	}

	var req craftCollectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slot required"})
		return
	}

	result, err := h.Craft.Collect(c.Request.Context(), pid, kind, req.Slot)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
