package controller

import (
	"github.com/moohomor/storyforge/web/entity"
	"github.com/moohomor/storyforge/web/service"

	"github.com/gin-gonic/gin"
)

// UserController handles public user profile lookups.
type UserController struct {
	userService *service.UserService
}

func NewUserController(g *gin.RouterGroup, userService *service.UserService) *UserController {
	a := &UserController{userService: userService}
	a.initRouter(g)
	return a
}

func (a *UserController) initRouter(g *gin.RouterGroup) {
	g.PUT("/user_by_id", a.userByID)
}

func (a *UserController) userByID(c *gin.Context) {
	req := &entity.GetByIdRequest{}
	if err := c.ShouldBind(req); err != nil {
		jsonBadRequest(c, err)
		return
	}
	user, err := a.userService.UserByID(c.Request.Context(), req.Id, req.Detailed)
	if err != nil {
		jsonErr(c, "get user failed", err)
		return
	}
	jsonObj(c, user)
}
