package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harukimz/taskboard-app/utils"
)

// WebSocketAuthMiddleware authenticates the ws upgrade request. Browsers
// cannot set headers on websocket connects, so the token rides in the query.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set("user_id", claims.UserID)
		c.Next()
	}
}
