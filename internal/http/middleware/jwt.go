package middleware

import (
	"net/http"
	"strings"

	"covenfield_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// PlayerIDKey is the gin context key carrying the authenticated player.
const PlayerIDKey = "player_id"

// JWT authenticates the request from the Authorization bearer token and
// stores the player id in the context. Every handler below it reads the
// principal from the context; nothing trusts ids from the request body.
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")
		if token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "bearer token required"})
			return
		}

		playerID, err := service.ParseJWT(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(PlayerIDKey, playerID)
		c.Next()
	}
}

// PlayerID returns the authenticated player id set by JWT.
func PlayerID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(PlayerIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
