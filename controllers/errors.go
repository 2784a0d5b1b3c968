package controllers

import (
	"errors"
	"strconv"

	"pos-backend/middlewares"
	"pos-backend/pkg/resp"
	"pos-backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// respondError maps service errors onto the response envelope.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		resp.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		resp.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		resp.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		resp.NotFound(c, "not found")
	case errors.Is(err, services.ErrConflict):
		resp.Conflict(c, err.Error())
	default:
		resp.ServerError(c, err)
	}
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		resp.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// identity is set by AuthMiddleware; a missing one means the route was wired without it.
func identity(c *gin.Context) (services.Identity, bool) {
	id, ok := middlewares.CurrentIdentity(c)
	if !ok {
		resp.Unauthorized(c, "unauthorized")
	}
	return id, ok
}
