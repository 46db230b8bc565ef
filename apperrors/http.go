package apperrors

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    any    `json:"message"`
	Timestamp  string `json:"timestamp"`
	Path       string `json:"path"`
}

// Write renders err and aborts the request. Internal causes are logged, never
// sent to the caller.
func Write(c *gin.Context, err error) {
	status := StatusCode(err)

	var message any = "Internal server error"
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch {
		case appErr.Kind == KindValidation:
			message = appErr.Details
		case appErr.Kind != KindInternal:
			message = appErr.Message
		}
	}

	if status >= 500 {
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		StatusCode: status,
		Message:    message,
		Timestamp:  time.Now().UTC().Format(time.RFC3339Nano),
		Path:       c.Request.URL.Path,
	})
}
