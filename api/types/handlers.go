package types

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/pulsegrow-api/internal/services/channels"
	"github.com/killallgit/pulsegrow-api/internal/services/videos"
	"github.com/killallgit/pulsegrow-api/internal/services/youtube"
	apperrors "github.com/killallgit/pulsegrow-api/pkg/errors"
)

// Handler utility functions to reduce duplication across handlers

// ParseOptionalIntQuery reads a non-negative integer query parameter.
// A missing parameter yields fallback.
func ParseOptionalIntQuery(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		SendError(c, apperrors.ValidationError(name, "must be a non-negative integer"))
		return 0, false
	}
	return value, true
}

// ToAppError maps service errors onto API error codes
func ToAppError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, channels.ErrChannelNotFound):
		return apperrors.Wrap(err, apperrors.ErrCodeNotFound, "channel not found")
	case errors.Is(err, videos.ErrVideoNotFound):
		return apperrors.Wrap(err, apperrors.ErrCodeNotFound, "video not found")
	case errors.Is(err, channels.ErrInvalidReference):
		return apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "invalid channel reference")
	case errors.Is(err, youtube.ErrUnavailable):
		return apperrors.ExternalServiceError("youtube", err)
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.Wrap(err, apperrors.ErrCodeAPITimeout, "request timed out")
	default:
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "internal error")
	}
}

// SendError writes err as a JSON error body with its mapped status
func SendError(c *gin.Context, err error) {
	appErr := ToAppError(err)

	var details interface{}
	if appErr.Cause != nil {
		details = appErr.Cause.Error()
	} else if len(appErr.Details) > 0 {
		details = appErr.Details
	}

	c.AbortWithStatusJSON(appErr.GetHTTPCode(), ErrorResponse{
		Status:  StatusError,
		Error:   appErr.Message,
		Code:    string(appErr.Code),
		Details: details,
	})
}

// SendSuccess sends a standardized success response with data
func SendSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}
