package handlers

import (
	"messaging-service/internal/services"
	"messaging-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	rooms *services.RoomService
}

func NewRoomHandler(rooms *services.RoomService) *RoomHandler {
	return &RoomHandler{rooms: rooms}
}

// ResolveRoom godoc
// @Summary Find or create the chat room of two users
// @Description Idempotent. The pair is unordered, so {a,b} and {b,a} resolve to the same room.
// @Tags chat-rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ResolveRoomRequest true "Participants"
// @Success 200 {object} response.Envelope{data=models.ChatRoom}
// @Failure 400 {object} response.Envelope "Validation error"
// @Router /chat-rooms [post]
func (h *RoomHandler) ResolveRoom(c *gin.Context) {
	var req ResolveRoomRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	room, err := h.rooms.ResolveRoom(c.Request.Context(), req.UserID, req.PeerUserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, room)
}
