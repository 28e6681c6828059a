package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/ikkim/catalog-admin/internal/middleware"
	ws "github.com/ikkim/catalog-admin/internal/websocket"
	"github.com/ikkim/catalog-admin/pkg/backend"
	"github.com/ikkim/catalog-admin/pkg/logger"
)

type LiveController struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

func NewLiveController(hub *ws.Hub, allowedOrigins []string) *LiveController {
	allowed := make(map[string]bool, len(allowedOrigins))
	wildcard := false
	for _, o := range allowedOrigins {
		if o == "*" {
			wildcard = true
		}
		allowed[o] = true
	}

	return &LiveController{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return wildcard || origin == "" || allowed[origin]
			},
		},
	}
}

// Connect upgrades to the live session websocket
// GET /live?token=...
// The token is forwarded on searches and never logged.
func (ctrl *LiveController) Connect(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	token, _ := middleware.GetToken(c)

	conn, err := ctrl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("Failed to upgrade to WebSocket", err)
		return
	}

	// the session outlives the request, so it gets its own context
	ctx := logger.NewContext(backend.WithToken(context.Background(), token), log)
	client := ctrl.hub.Serve(ctx, conn)

	log.Info("WebSocket connection established", logger.Fields{
		"client_id": client.ID,
	})
}
