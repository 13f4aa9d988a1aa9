package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"messaging-service/internal/models"
	"messaging-service/pkg/logger"
	"messaging-service/pkg/response"

	"github.com/gin-gonic/gin"
)

const maxUploadSize = 10 << 20

// Uploader stores an object and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error)
}

type MediaHandler struct {
	uploader Uploader
}

// NewMediaHandler accepts a nil uploader when object storage is not
// configured; uploads then answer 503.
func NewMediaHandler(uploader Uploader) *MediaHandler {
	return &MediaHandler{uploader: uploader}
}

// Upload godoc
// @Summary Upload a media file
// @Description Stores the file in object storage and returns the URL to send as IMAGE or LINK content.
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File to upload"
// @Success 201 {object} response.Envelope{data=MediaResponse}
// @Failure 400 {object} response.Envelope "Missing or oversized file"
// @Failure 503 {object} response.Envelope "Storage not configured"
// @Router /media [post]
func (h *MediaHandler) Upload(c *gin.Context) {
	if h.uploader == nil {
		response.Fail(c, http.StatusServiceUnavailable, response.CodeUnavailable, "media storage is not configured", "")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize+1<<20)
	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, models.NewRequiredFieldError("file"))
		return
	}
	if header.Size > maxUploadSize {
		response.Error(c, &models.ValidationError{Field: "file", Reason: fmt.Sprintf("must not exceed %d bytes", maxUploadSize)})
		return
	}

	file, err := header.Open()
	if err != nil {
		response.Error(c, fmt.Errorf("open upload: %w", err))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.uploader.Upload(c.Request.Context(), header.Filename, contentType, file, header.Size)
	if err != nil {
		response.Error(c, err)
		return
	}

	lg := logger.Ctx(c.Request.Context())
	lg.Info().
		Str("filename", header.Filename).
		Int64("size", header.Size).
		Msg("media uploaded")

	response.Created(c, MediaResponse{URL: url})
}
