package api

import (
	"fmt"
	"math"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/escartian/FitByte/internal/metrics"
	"github.com/escartian/FitByte/internal/ratelimit"
	"github.com/escartian/FitByte/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// Constants for context keys
const (
	ContextSessionKey   = "session"
	ContextRequestIDKey = "requestID"

	HeaderRequestID = "X-Request-ID"
)

// SessionMiddleware resolves the session cookie, if any, into a *service.SessionUser on the context.
// A missing or invalid cookie leaves the request anonymous; RequireSession decides whether that is fatal.
func SessionMiddleware(sessions *service.SessionCodec, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		session, err := sessions.Parse(token)
		if err != nil {
			log.WithField("request_id", c.GetString(ContextRequestIDKey)).Debug("ignoring invalid session cookie")
			c.Next()
			return
		}
		c.Set(ContextSessionKey, session)
		c.Next()
	}
}

// RequireSession aborts with 401 unless SessionMiddleware found a valid session.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := getSession(c); !ok {
			abortWithError(c, http.StatusUnauthorized, service.ErrUnauthenticated.Error())
			return
		}
		c.Next()
	}
}

// RequestLogger tags each request with an id and logs it once it is handled.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		begin := time.Now()
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, requestID)
		c.Header(HeaderRequestID, requestID)

		c.Next()

		entry := log.WithFields(log.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(begin).String(),
			"client_ip":  c.ClientIP(),
		})
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Error("request failed")
			return
		}
		entry.Info("request handled")
	}
}

// PanicRecovery turns a handler panic into a generic 500 response.
func PanicRecovery(metricsManager *metrics.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Errorf("http: panic serving %s: %v\n%s", c.Request.URL.Path, r, debug.Stack())
				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				abortWithError(c, http.StatusInternalServerError, "internal server error")
			}
		}()

		c.Next()
	}
}

func RequestMetrics(metricsManager *metrics.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		metricsManager.GaugeRequests.Inc()
		defer func(begin time.Time) {
			metricsManager.GaugeRequests.Dec()
			metricsManager.HistogramRequestDuration.WithLabelValues(route).Observe(time.Since(begin).Seconds())
		}(time.Now())

		c.Next()

		status := c.Writer.Status()
		metricsManager.CounterRequests.With(prometheus.Labels{
			"method": c.Request.Method,
			"route":  route,
			"status": strconv.Itoa(status),
		}).Inc()
		if status == http.StatusServiceUnavailable {
			metricsManager.CounterStorageUnavailable.Inc()
		}
	}
}

// RateLimit throttles requests per client IP under the given route name.
func RateLimit(limiter ratelimit.Limiter, routeName string, metricsManager *metrics.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := limiter.Allow(c.Request.Context(), routeName+":"+c.ClientIP())
		if err != nil {
			log.Errorf("rate limiter [%s]: %s", routeName, err)
			abortWithError(c, http.StatusInternalServerError, "rate limit internal error")
			return
		}

		if res.Allowed {
			c.Next()
			return
		}

		if metricsManager != nil {
			metricsManager.CounterRateLimitedRequests.Inc()
		}
		retryAfter := int(math.Ceil(res.RetryAfter.Seconds()))
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		abortWithError(c, http.StatusTooManyRequests, fmt.Sprintf("retry after %d seconds", retryAfter))
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// getSession returns the session set by SessionMiddleware.
func getSession(c *gin.Context) (*service.SessionUser, bool) {
	raw, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil, false
	}
	session, ok := raw.(*service.SessionUser)
	return session, ok && session != nil
}
