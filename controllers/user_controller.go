package controllers

import (
	"net/http"

	"pos-backend/pkg/resp"
	"pos-backend/services"

	"github.com/gin-gonic/gin"
)

type UserController struct{ Users *services.UserService }

func NewUserController(users *services.UserService) *UserController {
	return &UserController{Users: users}
}

// GET /users/me
func (uc *UserController) Me(c *gin.Context) {
	actor, ok := identity(c)
	if !ok { return }

	u, err := uc.Users.Get(actor.UserID)
	if err != nil { respondError(c, err); return }
	resp.OK(c, u)
}

// PUT /users/me
func (uc *UserController) UpdateMe(c *gin.Context) {
	actor, ok := identity(c)
	if !ok { return }

	var req services.UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil { resp.BadRequest(c, err.Error()); return }

	u, err := uc.Users.UpdateProfile(actor, &req)
	if err != nil { respondError(c, err); return }
	resp.OK(c, u)
}

// POST /users/me/avatar (multipart "file")
func (uc *UserController) UploadAvatar(c *gin.Context) {
	actor, ok := identity(c)
	if !ok { return }

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, services.MaxAvatarSize+1<<20)
	fh, err := c.FormFile("file")
	if err != nil { resp.BadRequest(c, "file is required"); return }
	if fh.Size > services.MaxAvatarSize { resp.BadRequest(c, "file too large"); return }

	f, err := fh.Open()
	if err != nil { resp.ServerError(c, err); return }
	defer f.Close()

	u, err := uc.Users.UploadAvatar(c.Request.Context(), actor, f)
	if err != nil { respondError(c, err); return }
	resp.OK(c, u)
}
