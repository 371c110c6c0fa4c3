package middleware

import (
	"net/http"
	"strconv"

	"ofiz/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

// RateLimit throttles per authenticated user, falling back to the
// client IP for anonymous requests.
func RateLimit(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if userID := c.GetInt64("user_id"); userID != 0 {
			key = "user:" + strconv.FormatInt(userID, 10)
		}

		ok, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			// fail open when the backend is unreachable
			c.Next()
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
