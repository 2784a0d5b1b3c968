package controllers

import (
	"net/http"
	"time"

	"pos-backend/entity"
	"pos-backend/middlewares"
	"pos-backend/pkg/resp"
	"pos-backend/services"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	Auth         *services.AuthService
	CookieSecure bool
}

func NewAuthController(auth *services.AuthService, cookieSecure bool) *AuthController {
	return &AuthController{Auth: auth, CookieSecure: cookieSecure}
}

type userOut struct {
	ID       uint        `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email,omitempty"`
	Role     entity.Role `json:"role"`
}

func toUserOut(u *entity.User) userOut {
	return userOut{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}

func (a *AuthController) setCookies(c *gin.Context, token string, role entity.Role, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middlewares.AuthCookie, token, maxAge, "/", "", a.CookieSecure, true)
	c.SetCookie(middlewares.RoleCookie, string(role), maxAge, "/", "", a.CookieSecure, false)
}

// POST /auth/register
func (a *AuthController) Register(c *gin.Context) {
	var req services.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil { resp.BadRequest(c, err.Error()); return }

	user, err := a.Auth.Register(&req)
	if err != nil { respondError(c, err); return }
	resp.Created(c, gin.H{"user": toUserOut(user)})
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil { resp.BadRequest(c, err.Error()); return }

	sess, err := a.Auth.Login(req.Username, req.Password)
	if err != nil { respondError(c, err); return }

	maxAge := int(time.Until(sess.ExpiresAt).Seconds())
	a.setCookies(c, sess.Token, sess.User.Role, maxAge)
	resp.OK(c, gin.H{"user": toUserOut(sess.User), "expiresAt": sess.ExpiresAt})
}

// POST /auth/logout
func (a *AuthController) Logout(c *gin.Context) {
	if claims := middlewares.CurrentClaims(c); claims != nil {
		if err := a.Auth.Logout(c.Request.Context(), claims); err != nil { resp.ServerError(c, err); return }
	}
	a.setCookies(c, "", "", -1)
	resp.OK(c, gin.H{"message": "logged out"})
}

// POST /auth/change-password
func (a *AuthController) ChangePassword(c *gin.Context) {
	actor, ok := identity(c)
	if !ok { return }

	var req services.ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil { resp.BadRequest(c, err.Error()); return }

	if err := a.Auth.ChangePassword(actor, &req); err != nil { respondError(c, err); return }
	resp.OK(c, gin.H{"message": "password updated"})
}
