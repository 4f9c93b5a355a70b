package ratelimit

import (
	"net/http"
	"strconv"

	"gatekeeper/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

// Middleware enforces the limit for one request type. Redis failures fail
// open: the door must keep admitting people when the cache is down.
func (r *RateLimiter) Middleware(limitType RateLimitType) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := r.IsAllowed(c.Request.Context(), c.ClientIP(), limitType)
		if err != nil {
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetTime, 10))

		if !result.Allowed {
			response.RespondJSON(c, "error", http.StatusTooManyRequests, "Rate limit exceeded", nil, gin.H{
				"limit":      result.Limit,
				"reset_time": result.ResetTime,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
