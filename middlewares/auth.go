package middlewares

import (
	"errors"
	"strings"

	"pos-backend/entity"
	"pos-backend/pkg/resp"
	"pos-backend/services"

	"github.com/gin-gonic/gin"
)

const (
	AuthCookie = "auth_token"
	RoleCookie = "role"
)

// tokenFrom checks the session cookie, then the Authorization header, then ?token= for websockets.
func tokenFrom(c *gin.Context) string {
	if v, err := c.Cookie(AuthCookie); err == nil && v != "" {
		return v
	}
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return c.Query("token")
}

// AuthMiddleware resolves the caller once and, if roles are given, requires one of them.
func AuthMiddleware(auth *services.AuthService, requiredRoles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := tokenFrom(c)
		if tokenStr == "" {
			resp.Unauthorized(c, "missing or invalid token")
			c.Abort()
			return
		}

		id, claims, err := auth.Authenticate(c.Request.Context(), tokenStr)
		if err != nil {
			if errors.Is(err, services.ErrUnauthorized) {
				resp.Unauthorized(c, "invalid token")
			} else {
				resp.ServerError(c, err)
			}
			c.Abort()
			return
		}
		setIdentity(c, id, claims)

		if len(requiredRoles) > 0 {
			allowed := false
			for _, r := range requiredRoles {
				if id.Role == r {
					allowed = true
					break
				}
			}
			if !allowed {
				resp.Forbidden(c, "forbidden")
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
