package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/harukimz/taskboard-app/realtime"
	"github.com/harukimz/taskboard-app/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler -> subscribes the session to all broadcast events
func WSHandler(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	sessionID := realtime.Default().Register(ws)
	utils.InfoLogger.Printf("ws session %s opened by user %d", sessionID, userID)

	// Drain inbound frames; the hub only pushes, clients never send.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	realtime.Default().Unregister(sessionID)
	utils.InfoLogger.Printf("ws session %s closed", sessionID)
}
