package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is the header carrying the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// contextRequestID is the gin context key holding the request ID.
const contextRequestID = "requestID"

// RequestID assigns every request a UUID unless the client supplied one,
// and echoes it in the response header for log correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(contextRequestID, id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

// RequestIDFromContext returns the request ID assigned by RequestID.
func RequestIDFromContext(c *gin.Context) string {
	return c.GetString(contextRequestID)
}
