package httpapi

import (
	"errors"
	"net/http"

	"fitness-platform/internal/activity"
	"fitness-platform/internal/exercise"
	"fitness-platform/internal/plan"
	"fitness-platform/internal/session"
	"fitness-platform/pkg/logger"

	"github.com/gin-gonic/gin"
)

// statusFor is the single place service error kinds become HTTP statuses.
// Handlers never pick status codes themselves.
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrInvalidArgument),
		errors.Is(err, activity.ErrInvalidArgument),
		errors.Is(err, plan.ErrInvalidArgument),
		errors.Is(err, exercise.ErrInvalidArgument),
		errors.Is(err, session.ErrSignupRejected):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrInvalidCredentials),
		errors.Is(err, session.ErrRefreshRejected):
		return http.StatusUnauthorized
	case errors.Is(err, activity.ErrNotFound),
		errors.Is(err, plan.ErrNotFound),
		errors.Is(err, exercise.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, activity.ErrAlreadyLinked):
		return http.StatusConflict
	case errors.Is(err, session.ErrUpstreamTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, session.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the uniform error body. Client-caused kinds expose
// their sentinel text as details under a stable per-endpoint summary;
// unknown and upstream failures get a generic message so provider
// internals never leak.
func respondError(c *gin.Context, summary string, err error) {
	status := statusFor(err)
	switch status {
	case http.StatusInternalServerError:
		logger.FromGin(c).Error("request failed", "err", err)
		c.AbortWithStatusJSON(status, gin.H{"error": "internal error"})
	case http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		logger.FromGin(c).Error("upstream failed", "err", err)
		c.AbortWithStatusJSON(status, gin.H{"error": summary, "details": "temporarily unavailable"})
	default:
		c.AbortWithStatusJSON(status, gin.H{"error": summary, "details": err.Error()})
	}
}
