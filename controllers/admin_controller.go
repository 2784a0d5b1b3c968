package controllers

import (
	"pos-backend/entity"
	"pos-backend/pkg/resp"
	"pos-backend/services"

	"github.com/gin-gonic/gin"
)

type AdminController struct{ Users *services.UserService }

func NewAdminController(users *services.UserService) *AdminController {
	return &AdminController{Users: users}
}

// GET /admin/users
func (ac *AdminController) ListUsers(c *gin.Context) {
	actor, ok := identity(c)
	if !ok { return }

	users, err := ac.Users.List(actor)
	if err != nil { respondError(c, err); return }
	resp.OK(c, users)
}

type updateRoleReq struct {
	Role entity.Role `json:"role" binding:"required"`
}

// PUT /admin/users/:id
func (ac *AdminController) UpdateUserRole(c *gin.Context) {
	actor, ok := identity(c)
	if !ok { return }
	id, ok := paramID(c, "id")
	if !ok { return }

	var req updateRoleReq
	if err := c.ShouldBindJSON(&req); err != nil { resp.BadRequest(c, err.Error()); return }

	u, err := ac.Users.UpdateRole(actor, id, req.Role)
	if err != nil { respondError(c, err); return }
	resp.OK(c, u)
}
