package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h *Handler) RegattaCurrent(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	view, err := h.Regatta.Current(c.Request.Context(), pid)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) RegattaLeaderboard(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	board, err := h.Regatta.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": board})
}

func (h *Handler) RegattaJoin(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	regatta, err := h.Regatta.Join(c.Request.Context(), pid)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, regatta)
}

type submitTaskRequest struct {
	TaskIndex int `json:"task_index" binding:"required"`
}

func (h *Handler) RegattaSubmit(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	var req submitTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "task_index required"})
		return
	}

	points, err := h.Regatta.SubmitTask(c.Request.Context(), pid, req.TaskIndex)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"points": points})
}

func (h *Handler) RegattaClaim(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	result, err := h.Regatta.ClaimReward(c.Request.Context(), pid)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
