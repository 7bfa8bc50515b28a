package handlers

import (
	"net/http"

	"covenfield_backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type subscribeRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
	P256DH   string `json:"p256dh" binding:"required"`
	AuthKey  string `json:"auth_key" binding:"required"`
}

func (h *Handler) NotifySubscribe(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endpoint, p256dh and auth_key required"})
		return
	}

	sub, err := h.Notifications.Subscribe(c.Request.Context(), pid, req.Endpoint, req.P256DH, req.AuthKey)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

type unsubscribeRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}

func (h *Handler) NotifyUnsubscribe(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	var req unsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endpoint required"})
		return
	}

	if err := h.Notifications.Unsubscribe(c.Request.Context(), pid, req.Endpoint); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "unsubscribed"})
}

func (h *Handler) NotifyPrefs(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	prefs, err := h.Notifications.Prefs(c.Request.Context(), pid)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (h *Handler) NotifySetPrefs(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	var prefs domain.NotificationPrefs
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid preferences"})
		return
	}
	prefs.PlayerID = pid

	if err := h.Notifications.SetPrefs(c.Request.Context(), &prefs); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}
