package middlewares

import (
	"pos-backend/services"
	"pos-backend/utils"

	"github.com/gin-gonic/gin"
)

const (
	identityKey = "identity"
	claimsKey   = "claims"
)

func setIdentity(c *gin.Context, id services.Identity, claims *utils.Claims) {
	c.Set(identityKey, id)
	c.Set(claimsKey, claims)
}

// CurrentIdentity returns the caller resolved by AuthMiddleware.
func CurrentIdentity(c *gin.Context) (services.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return services.Identity{}, false
	}
	id, ok := v.(services.Identity)
	return id, ok && id.UserID != 0
}

// CurrentClaims is needed by logout to revoke the token id.
func CurrentClaims(c *gin.Context) *utils.Claims {
	v, _ := c.Get(claimsKey)
	claims, _ := v.(*utils.Claims)
	return claims
}
