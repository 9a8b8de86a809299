package http

import (
	"errors"
	"net/http"

	"kindness-wall/internal/media"
	"kindness-wall/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// HandleServiceError 把 Service 层的业务错误统一映射到 HTTP 状态码
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAuthenticationFailed):
		ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden):
		ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNoteNotFound), errors.Is(err, service.ErrPromptNotReady):
		ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrEmptyText), errors.Is(err, service.ErrInvalidMood):
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, media.ErrUnsupportedMediaType):
		ErrorResponse(c, http.StatusUnsupportedMediaType, err.Error())
	default:
		// Log the internal error for debugging
		logrus.WithError(err).Error("Unhandled internal server error")
		ErrorResponse(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
