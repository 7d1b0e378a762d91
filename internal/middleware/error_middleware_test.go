package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/edusphere/backend/internal/pkg/apperrors"
)

func statusFor(err error) int {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	HandleAPIError(c, err)
	return rec.Code
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", apperrors.ErrValidationFailed, http.StatusBadRequest},
		{"duplicate title", apperrors.ErrCourseExists, http.StatusBadRequest},
		{"bad request with context", apperrors.NewBadRequestError("subscription is already active"), http.StatusBadRequest},
		{"course not found", apperrors.ErrCourseNotFound, http.StatusNotFound},
		{"lecture not found", apperrors.ErrLectureNotFound, http.StatusNotFound},
		{"bad credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unknown refresh token", apperrors.ErrTokenNotFound, http.StatusUnauthorized},
		{"no permission", apperrors.ErrPermissionDenied, http.StatusForbidden},
		{"no subscription", apperrors.ErrSubscriptionRequired, http.StatusForbidden},
		{"email taken", apperrors.ErrEmailAlreadyExists, http.StatusConflict},
		{"upstream failure", apperrors.NewUpstreamError(errors.New("asset host down")), http.StatusInternalServerError},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := statusFor(tc.err); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}
