package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edusphere/backend/internal/app/models/dto"
	"github.com/edusphere/backend/internal/pkg/apperrors"
)

// HandleAPIError is the terminal error handler: every service error is
// mapped here to a status code and the {success:false, message}
// envelope.
func HandleAPIError(c *gin.Context, err error) {
	var status int

	switch {
	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrBadRequest, apperrors.ErrCourseExists):
		status = http.StatusBadRequest
	case apperrors.Is(err, apperrors.ErrCourseNotFound, apperrors.ErrLectureNotFound, apperrors.ErrUserNotFound):
		status = http.StatusNotFound
	case apperrors.Is(err, apperrors.ErrInvalidCredentials, apperrors.ErrTokenExpired, apperrors.ErrTokenInvalid, apperrors.ErrTokenNotFound):
		status = http.StatusUnauthorized
	case apperrors.Is(err, apperrors.ErrPermissionDenied, apperrors.ErrSubscriptionRequired):
		status = http.StatusForbidden
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrUpstream):
		// Upstream failures surface as plain 500s with the underlying
		// message; clients never distinguish a gateway error.
		status = http.StatusInternalServerError
	default:
		status = http.StatusInternalServerError
	}

	c.JSON(status, dto.NewErrorResponse(err.Error()))
}
