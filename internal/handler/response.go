package handler

import (
	"errors"
	"net/http"

	"linktrack/internal/service"

	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope for all management API responses
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// respondData writes a success envelope with a payload
func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{Success: true, Data: data})
}

// respondMessage writes a success envelope with only a message
func respondMessage(c *gin.Context, status int, msg string) {
	c.JSON(status, Response{Success: true, Message: msg})
}

// respondError maps a service error to its HTTP status and writes a
// failure envelope. Internal errors are masked with a generic message.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	c.JSON(status, Response{Success: false, Error: msg})
}

// statusFor maps the service error taxonomy to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidSlug),
		errors.Is(err, service.ErrInvalidURL):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrLinkNotFound),
		errors.Is(err, service.ErrSettingNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrSlugTaken):
		return http.StatusConflict
	case errors.Is(err, service.ErrLinkExpired),
		errors.Is(err, service.ErrLinkDisabled):
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}
