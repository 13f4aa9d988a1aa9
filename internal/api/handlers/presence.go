package handlers

import (
	"context"
	"net/http"
	"sort"

	"messaging-service/internal/websocket"
	"messaging-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// OnlineLister is satisfied by services.RedisService.
type OnlineLister interface {
	GetOnlineUsers(ctx context.Context) ([]string, error)
}

type PresenceHandler struct {
	presence OnlineLister
	hubs     []*websocket.Hub
}

func NewPresenceHandler(presence OnlineLister, hubs ...*websocket.Hub) *PresenceHandler {
	return &PresenceHandler{
		presence: presence,
		hubs:     hubs,
	}
}

// NamespaceStats describes the live connections of one websocket namespace.
type NamespaceStats struct {
	Namespace   string                    `json:"namespace"`
	Connections int                       `json:"connections"`
	Users       []string                  `json:"users"`
	Metrics     websocket.MetricsSnapshot `json:"metrics"`
}

// GetOnlineUsers godoc
// @Summary Online users
// @Description User ids with at least one live websocket connection.
// @Tags presence
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=OnlineUsersResponse}
// @Failure 503 {object} response.Envelope "Presence store not configured"
// @Router /presence/online [get]
func (h *PresenceHandler) GetOnlineUsers(c *gin.Context) {
	if h.presence == nil {
		response.Fail(c, http.StatusServiceUnavailable, response.CodeUnavailable, "presence store is not configured", "")
		return
	}

	users, err := h.presence.GetOnlineUsers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if users == nil {
		users = []string{}
	}
	sort.Strings(users)

	response.OK(c, OnlineUsersResponse{Users: users, Count: len(users)})
}

// GetConnections godoc
// @Summary Connections held by this instance
// @Tags presence
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=[]NamespaceStats}
// @Router /presence/connections [get]
func (h *PresenceHandler) GetConnections(c *gin.Context) {
	stats := make([]NamespaceStats, 0, len(h.hubs))
	for _, hub := range h.hubs {
		stats = append(stats, NamespaceStats{
			Namespace:   hub.Namespace(),
			Connections: hub.Registry().Len(),
			Users:       hub.Registry().ActiveUserIDs(),
			Metrics:     hub.Metrics.Snapshot(),
		})
	}

	response.OK(c, stats)
}
