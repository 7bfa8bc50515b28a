package handlers

import (
	"net/http"

	"covenfield_backend/internal/catalog"
	"covenfield_backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type createCovenRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *Handler) CovenCreate(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	var req createCovenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}

	coven, err := h.Coven.Create(c.Request.Context(), pid, req.Name, req.Description)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, coven)
}

func (h *Handler) CovenGet(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	view, err := h.Coven.Get(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// CovenMine returns the caller's coven, or an empty body when covenless.
func (h *Handler) CovenMine(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	view, err := h.Coven.Mine(c.Request.Context(), pid)
	if err != nil {
		respondErr(c, err)
		return
	}
	if view == nil {
		c.JSON(http.StatusOK, gin.H{"coven": nil})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) CovenJoin(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}
	covenID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.Coven.Join(c.Request.Context(), pid, covenID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "joined"})
}

func (h *Handler) CovenLeave(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	if err := h.Coven.Leave(c.Request.Context(), pid); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "left"})
}

type setRoleRequest struct {
	PlayerID int64  `json:"player_id" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

func (h *Handler) CovenSetRole(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	var req setRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "player_id and role required"})
		return
	}

	if err := h.Coven.SetRole(c.Request.Context(), pid, req.PlayerID, req.Role); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "role set"})
}

type kickRequest struct {
	PlayerID int64 `json:"player_id" binding:"required"`
}

func (h *Handler) CovenKick(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	var req kickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "player_id required"})
		return
	}

	if err := h.Coven.Kick(c.Request.Context(), pid, req.PlayerID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "kicked"})
}

type createTaskRequest struct {
	Title          string            `json:"title" binding:"required"`
	Objectives     domain.Objectives `json:"objectives" binding:"required"`
	RewardCrystals int64             `json:"reward_crystals"`
}

func (h *Handler) CovenCreateTask(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and objectives required"})
		return
	}

	task, err := h.Coven.CreateTask(c.Request.Context(), pid, req.Title, req.Objectives, req.RewardCrystals)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

type contributeRequest struct {
	ItemID   int64 `json:"item_id" binding:"required"`
	Quantity int64 `json:"quantity" binding:"required"`
}

func (h *Handler) CovenContribute(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}
	taskID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req contributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item_id and quantity required"})
		return
	}

	task, err := h.Coven.Contribute(c.Request.Context(), pid, taskID, catalog.ItemID(req.ItemID), req.Quantity)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *Handler) CovenTasks(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	tasks, err := h.Coven.Tasks(c.Request.Context(), pid)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func (h *Handler) CovenDistribute(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	share, err := h.Coven.DistributeShared(c.Request.Context(), pid)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"share": share})
}
