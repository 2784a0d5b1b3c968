package middlewares

import (
	"pos-backend/pkg/resp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(resp.RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
