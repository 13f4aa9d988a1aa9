package handlers

import (
	"messaging-service/internal/models"
	"messaging-service/pkg/pagination"

	"github.com/gin-gonic/gin"
)

type ResolveRoomRequest struct {
	UserID     string `json:"userId"`
	PeerUserID string `json:"peerUserId"`
}

type MediaResponse struct {
	URL string `json:"url"`
}

type OnlineUsersResponse struct {
	Users []string `json:"users"`
	Count int      `json:"count"`
}

// bindJSON decodes the body; a malformed body is reported against "body".
func bindJSON(c *gin.Context, dest interface{}) error {
	if err := c.ShouldBindJSON(dest); err != nil {
		return &models.ValidationError{Field: "body", Reason: "must be a valid JSON object"}
	}
	return nil
}

// pageQuery reads pageNumber/pageSize. Absent parameters leave the request
// unpaginated.
func pageQuery(c *gin.Context) (*pagination.Request, error) {
	var page pagination.Request
	if err := c.ShouldBindQuery(&page); err != nil {
		return nil, &models.ValidationError{Field: "pageNumber", Reason: "pageNumber and pageSize must be integers"}
	}
	return &page, nil
}
