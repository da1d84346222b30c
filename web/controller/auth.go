// Package controller provides the HTTP handlers of the storyforge API.
// Authorization is an explicit guard at the top of each handler, driven by
// the session token carried in the request body.
package controller

import (
	"errors"
	"net/http"

	"github.com/moohomor/storyforge/util/common"
	"github.com/moohomor/storyforge/web/entity"
	"github.com/moohomor/storyforge/web/service"

	"github.com/gin-gonic/gin"
)

// AuthController handles registration, login and logout.
type AuthController struct {
	authService *service.AuthService
}

func NewAuthController(g *gin.RouterGroup, authService *service.AuthService) *AuthController {
	a := &AuthController{authService: authService}
	a.initRouter(g)
	return a
}

func (a *AuthController) initRouter(g *gin.RouterGroup) {
	g.POST("/reg", a.reg)
	g.POST("/login", a.login)
	g.POST("/logout", a.logout)
}

func (a *AuthController) reg(c *gin.Context) {
	req := &entity.AuthRequest{}
	if err := c.ShouldBind(req); err != nil {
		jsonBadRequest(c, err)
		return
	}
	if err := a.authService.Register(c.Request.Context(), req.Login, req.Password); err != nil {
		jsonErr(c, "register failed", err)
		return
	}
	jsonOK(c)
}

func (a *AuthController) login(c *gin.Context) {
	req := &entity.AuthRequest{}
	if err := c.ShouldBind(req); err != nil {
		jsonBadRequest(c, err)
		return
	}
	token, err := a.authService.Login(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrNotAuthenticated) {
			c.JSON(http.StatusForbidden, entity.Msg{Result: "Wrong login or password"})
			return
		}
		jsonErr(c, "login failed", err)
		return
	}
	jsonObj(c, entity.LoginResponse{Sid: token})
}

func (a *AuthController) logout(c *gin.Context) {
	req := &entity.LogoutRequest{}
	if err := c.ShouldBind(req); err != nil {
		jsonBadRequest(c, err)
		return
	}
	a.authService.Logout(req.Sid)
	jsonOK(c)
}
