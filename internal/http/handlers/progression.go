package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Quests(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	quests, err := h.Progression.Quests(c.Request.Context(), pid)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quests": quests})
}

func (h *Handler) ClaimQuest(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}
	questID, ok := paramID(c, "id")
	if !ok {
		return
	}

	result, err := h.Progression.ClaimQuest(c.Request.Context(), pid, questID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) Achievements(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	achievements, err := h.Progression.Achievements(c.Request.Context(), pid)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"achievements": achievements})
}

func (h *Handler) ClaimAchievement(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}
	achievementID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.Progression.ClaimAchievement(c.Request.Context(), pid, achievementID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "claimed"})
}
