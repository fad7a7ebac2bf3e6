package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CtxRequestIDKey is the Gin context key holding the request id echoed
// in every response envelope.
const CtxRequestIDKey = "request_id"

// RequestIDMiddleware tags each request with an id for log and response
// correlation. An inbound X-Request-ID is reused so ids stay stable
// across proxies; otherwise a fresh uuid is minted. The id is echoed
// back in the X-Request-ID response header.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader("X-Request-ID"))
		if id == "" || len(id) > 128 {
			id = uuid.New().String()
		}
		c.Set(CtxRequestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
