package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pavelc4/aether-gateway/internal/stats"
	"github.com/pavelc4/aether-gateway/pkg/logger"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	maxRequestIDLen = 64

	DefaultSlowThreshold = 2 * time.Second
)

// RequestID propagates a caller supplied X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// Recover logs panics with their stack and answers 500 when nothing was
// written yet. http.ErrAbortHandler is re-raised so the server drops the
// connection.
func Recover() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			if r == http.ErrAbortHandler {
				logger.Warn("Response aborted", "path", c.Request.URL.Path, "request_id", GetRequestID(c))
				panic(r)
			}

			logger.Error("Panic recovered",
				"error", r,
				"path", c.Request.URL.Path,
				"request_id", GetRequestID(c),
				"stack", string(debug.Stack()),
			)
			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}()
		c.Next()
	}
}

// Logger writes one access log line per request. Requests slower than slow
// are flagged.
func Logger(slow time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		defer func() {
			duration := time.Since(start)
			status := c.Writer.Status()
			args := []any{
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"status", status,
				"bytes", c.Writer.Size(),
				"duration", duration,
				"request_id", GetRequestID(c),
			}

			switch {
			case status >= http.StatusInternalServerError:
				logger.Error("Request completed", args...)
			case slow > 0 && duration > slow:
				logger.Warn("Request completed (slow)", args...)
			default:
				logger.Info("Request completed", args...)
			}
		}()

		c.Next()
	}
}

// Metrics counts requests per matched route.
func Metrics(st *stats.Stats) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		st.RecordRequest(route)
	}
}
