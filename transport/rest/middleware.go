package rest

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/Hives/noughts-and-crosses/internal/pkg"
)

const (
	requestIDHeader = "X-Request-Id"
	requestIDKey    = "request_id"
)

// clientLimiter hands out one token bucket per client IP.
type clientLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      int
	burst    int
}

func newClientLimiter(rps, burst int) *clientLimiter {
	if rps <= 0 {
		rps = 1
	}

	if burst <= 0 {
		burst = 1
	}

	return &clientLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    burst,
	}
}

func (that *clientLimiter) get(key string) *rate.Limiter {
	that.mu.Lock()
	defer that.mu.Unlock()

	if lim, ok := that.limiters[key]; ok {
		return lim
	}

	lim := rate.NewLimiter(rate.Every(time.Second/time.Duration(that.rps)), that.burst)
	that.limiters[key] = lim

	return lim
}

func (that *Server) rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !that.limiter.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorResponse{Error: "too many requests"})
			return
		}

		c.Next()
	}
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" {
			reqID = pkg.GenerateRequestID()
		}

		c.Set(requestIDKey, reqID)
		c.Header(requestIDHeader, reqID)
		c.Next()
	}
}

func (that *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		that.logger.Info("request handled",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"request_id", c.GetString(requestIDKey),
		)
	}
}
