package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Me returns the full private profile: player row, inventory, active boosts.
func (h *Handler) Me(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	profile, err := h.Players.Profile(c.Request.Context(), pid)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// PublicProfile returns what other players may see.
func (h *Handler) PublicProfile(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	profile, err := h.Players.PublicProfile(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Ledger returns the most recent currency movements.
func (h *Handler) Ledger(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	entries, err := h.Balance.History(c.Request.Context(), pid, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
