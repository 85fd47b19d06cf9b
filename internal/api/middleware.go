package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gramflow/gramflow/internal/cache"
)

// callerIDKey is the gin context key holding the authenticated caller's
// account ID.
const callerIDKey = "callerID"

// CallerIdentity extracts the caller's account ID from the X-Account-ID
// header. The upstream auth proxy resolves credentials and sets the
// header; this service trusts it and never inspects credentials itself.
func CallerIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-Account-ID")
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing caller identity"})
			return
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "malformed caller identity"})
			return
		}
		c.Set(callerIDKey, id)
		c.Next()
	}
}

// callerID returns the authenticated caller's account ID set by
// CallerIdentity
func callerID(c *gin.Context) int64 {
	return c.GetInt64(callerIDKey)
}

// RateLimit enforces `limit` requests per `window` per caller on write
// routes, counting in Redis. Fails open when Redis is unavailable.
func RateLimit(redisCache *cache.Cache, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("rl:%s:%d", c.FullPath(), callerID(c))
		count, err := redisCache.Incr(c.Request.Context(), key, window)
		if err != nil {
			c.Next()
			return
		}
		if count > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
