package response

import "net/http"

// Machine-readable error codes carried in ErrorBody.Code.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeForbidden    = "FORBIDDEN"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeRateLimited  = "RATE_LIMITED"
	CodeUnavailable  = "SERVICE_UNAVAILABLE"
	CodeInternal     = "INTERNAL_ERROR"
)

// message
var msg = map[int]string{
	http.StatusOK:                  "success",
	http.StatusCreated:             "created",
	http.StatusBadRequest:          "validation failed",
	http.StatusUnauthorized:        "unauthorized",
	http.StatusForbidden:           "forbidden",
	http.StatusNotFound:            "not found",
	http.StatusTooManyRequests:     "too many requests",
	http.StatusInternalServerError: "internal server error",
	http.StatusServiceUnavailable:  "service unavailable",
}

// Msg returns the envelope message for an HTTP status.
func Msg(status int) string {
	if m, ok := msg[status]; ok {
		return m
	}
	return http.StatusText(status)
}
