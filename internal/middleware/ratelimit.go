package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/dayplanner-backend/internal/clients/redis"
	"github.com/yungbote/dayplanner-backend/internal/logger"
)

type RateLimitMiddleware struct {
	log     *logger.Logger
	limiter redis.RateLimiter
}

func NewRateLimitMiddleware(log *logger.Logger, limiter redis.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		log:     log.With("Middleware", "RateLimitMiddleware"),
		limiter: limiter,
	}
}

// Limit caps requests per caller over the window. The key prefers the user id
// set by RequireUser so authenticated callers cannot rotate IPs around the
// limit; anonymous callers fall back to client IP. If the limiter itself
// fails the request is allowed through.
func (rm *RateLimitMiddleware) Limit(limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if userID, ok := UserIDFromContext(c); ok {
			key = "user:" + userID.String()
		}

		allowed, err := rm.limiter.Allow(c.Request.Context(), key, limit, window)
		if err != nil {
			rm.log.Warn("Rate limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
