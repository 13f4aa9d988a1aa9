// Package response writes the JSON envelope shared by every REST endpoint:
// {success, code, message, data, paginationControl?, error?}.
package response

import (
	"net/http"

	"messaging-service/internal/models"
	"messaging-service/pkg/logger"
	"messaging-service/pkg/pagination"

	"github.com/gin-gonic/gin"
)

type Envelope struct {
	Success           bool                `json:"success"`
	Code              int                 `json:"code"`
	Message           string              `json:"message"`
	Data              interface{}         `json:"data,omitempty"`
	PaginationControl *pagination.Control `json:"paginationControl,omitempty"`
	Error             *ErrorBody          `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	Write(c, http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	Write(c, http.StatusCreated, data)
}

func Write(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Envelope{
		Success: true,
		Code:    status,
		Message: Msg(status),
		Data:    data,
	})
}

// Page writes a thread result; paginationControl appears only on the
// paginated path.
func Page[T any](c *gin.Context, res *pagination.Result[T]) {
	c.JSON(http.StatusOK, Envelope{
		Success:           true,
		Code:              http.StatusOK,
		Message:           Msg(http.StatusOK),
		Data:              res.Data,
		PaginationControl: res.PaginationControl,
	})
}

// Fail writes an error envelope with an explicit status and code.
func Fail(c *gin.Context, status int, code, message, field string) {
	c.AbortWithStatusJSON(status, Envelope{
		Success: false,
		Code:    status,
		Message: Msg(status),
		Error:   &ErrorBody{Code: code, Message: message, Field: field},
	})
}

// Error maps a domain error to its HTTP status. Anything unrecognised is a
// 500 whose cause is logged but not exposed.
func Error(c *gin.Context, err error) {
	if ve, ok := models.AsValidationError(err); ok {
		Fail(c, http.StatusBadRequest, CodeValidation, ve.Error(), ve.Field)
		return
	}
	if models.IsNotFound(err) {
		Fail(c, http.StatusNotFound, CodeNotFound, err.Error(), "")
		return
	}
	if models.IsForbidden(err) {
		Fail(c, http.StatusForbidden, CodeForbidden, err.Error(), "")
		return
	}

	_ = c.Error(err)
	lg := logger.Ctx(c.Request.Context())
	lg.Error().Err(err).Msg("request failed")
	Fail(c, http.StatusInternalServerError, CodeInternal, "Internal server error", "")
}
