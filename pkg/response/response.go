package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"inkpress/internal/domain/apperr"
)

type APIResponse[T any] struct {
	Status    int         `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id"`
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      T           `json:"data,omitempty"`
	Meta      interface{} `json:"meta,omitempty"`
	Error     interface{} `json:"error,omitempty"`
}

// Pagination is the meta payload attached to list responses.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

func Success[T any](ctx *gin.Context, status int, data T, message string, meta interface{}) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
		Meta:      meta,
	})
}

func Error[T any](ctx *gin.Context, status int, message string, details interface{}) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.JSON(status, APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   message,
		Error:     details,
	})
}

// AbortError writes the error response and aborts the handler chain.
func AbortError(ctx *gin.Context, status int, message string, details interface{}) {
	Error[any](ctx, status, message, details)
	ctx.Abort()
}

// StatusOf maps a domain failure kind to an HTTP status code. The core never
// picks status codes itself; this is the single place where the mapping lives.
func StatusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindPolicy:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// FromError writes the standard envelope for a use-case or guard failure.
func FromError(ctx *gin.Context, err error) {
	status := StatusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		// don't leak storage internals
		msg = "internal server error"
	}
	Error[any](ctx, status, msg, nil)
}

// AbortFromError is FromError plus chain abort, for middleware.
func AbortFromError(ctx *gin.Context, err error) {
	FromError(ctx, err)
	ctx.Abort()
}
