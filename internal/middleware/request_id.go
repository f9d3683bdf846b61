package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDKey is the gin context key and response header name source.
	RequestIDKey = "request_id"

	requestIDHeader = "X-Request-ID"
)

// RequestID attaches a request id to every request: the client's
// X-Request-ID when present, a fresh uuid otherwise. The id is echoed in
// the response header and picked up by Logger/ErrorHandler.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}
