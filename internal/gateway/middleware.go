package gateway

import (
	"errors"
	"time"

	"github.com/GoPolymarket/go-clob-client/internal/pkg/apperrors"
	"github.com/GoPolymarket/go-clob-client/internal/pkg/logger"
	"github.com/GoPolymarket/go-clob-client/internal/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	headerRequestID = "X-Request-Id"
	ctxRequestIDKey = "request_id"
)

// RequestIDMiddleware tags every request with an id for the audit trail,
// honoring one supplied by the caller.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestIDKey, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

// RequestID returns the id assigned by RequestIDMiddleware.
func RequestID(c *gin.Context) string {
	return c.GetString(ctxRequestIDKey)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start).Seconds()

		metrics.LatencyBucket.WithLabelValues(c.FullPath()).Observe(duration)
	}
}

// AuthMiddleware enforces the gateway's own API key when configured.
func AuthMiddleware(requireKey bool, apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireKey {
			c.Next()
			return
		}
		if c.GetHeader("X-Api-Key") != apiKey || apiKey == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": "invalid api key"})
			return
		}
		c.Next()
	}
}

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			appErr = apperrors.New(apperrors.ErrInternal, err.Error(), err)
		}

		logFields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"code", appErr.Type,
			"request_id", RequestID(c),
		}

		if appErr.HTTPStatus >= 500 {
			logger.LogError(c.Request.Context(), appErr, "request failed", logFields...)
		} else {
			logger.Warn(appErr.Message, logFields...)
		}

		c.JSON(appErr.HTTPStatus, appErr)
	}
}
