package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"messaging-service/pkg/logger"
	"messaging-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// RateLimiter is satisfied by services.RedisService.
type RateLimiter interface {
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type RateLimitMiddleware struct {
	limiter RateLimiter
}

// NewRateLimitMiddleware returns a middleware set; a nil limiter lets every
// request through, which is how the server runs without Redis.
func NewRateLimitMiddleware(limiter RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
	}
}

// RateLimit limits authenticated callers per user and path.
func (rm *RateLimitMiddleware) RateLimit(requests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserID(c)
		if userID == "" {
			response.Fail(c, http.StatusUnauthorized, response.CodeUnauthorized, "Unauthorized", "")
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", userID, c.FullPath())
		rm.check(c, key, requests, window, fmt.Sprintf("Too many requests. Limit: %d per %v", requests, window))
	}
}

// WebSocketRateLimit limits how often one user may open connections.
func (rm *RateLimitMiddleware) WebSocketRateLimit(requests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserID(c)
		if userID == "" {
			response.Fail(c, http.StatusUnauthorized, response.CodeUnauthorized, "Unauthorized", "")
			return
		}

		key := fmt.Sprintf("rate_limit:websocket:%s", userID)
		rm.check(c, key, requests, window, "WebSocket connection rate limit exceeded")
	}
}

// RateLimitIP is for routes without authentication.
func (rm *RateLimitMiddleware) RateLimitIP(requests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("rate_limit_ip:%s:%s", c.ClientIP(), c.FullPath())
		rm.check(c, key, requests, window, fmt.Sprintf("Too many requests. Limit: %d per %v", requests, window))
	}
}

func (rm *RateLimitMiddleware) check(c *gin.Context, key string, requests int, window time.Duration, deny string) {
	if rm.limiter == nil {
		c.Next()
		return
	}

	allowed, err := rm.limiter.CheckRateLimit(c.Request.Context(), key, requests, window)
	if err != nil {
		lg := logger.Ctx(c.Request.Context())
		lg.Error().Err(err).Str("key", key).Msg("rate limit check failed")
		response.Fail(c, http.StatusInternalServerError, response.CodeInternal, "Rate limit check failed", "")
		return
	}
	if !allowed {
		response.Fail(c, http.StatusTooManyRequests, response.CodeRateLimited, deny, "")
		return
	}

	c.Next()
}
