package handlers

import (
	"net/http"

	"messaging-service/internal/api/middleware"
	"messaging-service/internal/websocket"
	"messaging-service/pkg/logger"
	"messaging-service/pkg/response"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"
)

type WSHandler struct {
	hub      *websocket.Hub
	upgrader *gorilla.Upgrader
}

func NewWSHandler(hub *websocket.Hub, upgrader *gorilla.Upgrader) *WSHandler {
	return &WSHandler{
		hub:      hub,
		upgrader: upgrader,
	}
}

// HandleWebSocket godoc
// @Summary WebSocket connection
// @Description Upgrade to a websocket in the handler's namespace (chats or group-chats). Browsers pass the JWT as the token query parameter.
// @Tags websocket
// @Security BearerAuth
// @Param token query string false "JWT, when no Authorization header can be sent"
// @Success 101 "Switching Protocols"
// @Failure 401 {object} response.Envelope "Unauthorized"
// @Router /ws/chats [get]
// @Router /ws/group-chats [get]
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == "" {
		response.Fail(c, http.StatusUnauthorized, response.CodeUnauthorized, "Unauthorized", "")
		return
	}

	lg := logger.Ctx(c.Request.Context())
	lg.Debug().
		Str(logger.FieldNamespace, h.hub.Namespace()).
		Msg("websocket connection requested")

	websocket.ServeWS(h.hub, h.upgrader, c.Writer, c.Request, userID)
}
