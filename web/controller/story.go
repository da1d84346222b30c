package controller

import (
	"net/http"

	"github.com/moohomor/storyforge/web/entity"
	"github.com/moohomor/storyforge/web/service"

	"github.com/gin-gonic/gin"
)

const defaultPageSize = 15

// StoryController handles story metadata, content and listing endpoints.
type StoryController struct {
	storyService *service.StoryService
}

func NewStoryController(g *gin.RouterGroup, storyService *service.StoryService) *StoryController {
	a := &StoryController{storyService: storyService}
	a.initRouter(g)
	return a
}

func (a *StoryController) initRouter(g *gin.RouterGroup) {
	g.GET("/random_story", a.randomStory)
	g.PUT("/story_by_id", a.storyByID)
	g.PUT("/story_content", a.storyContent)
	g.PUT("/list_stories", a.listStories)

	g.POST("/new_story", a.newStory)
	g.POST("/update_story_content", a.updateStoryContent)
	g.POST("/update_story_properties", a.updateStoryProperties)
	g.POST("/increase_param", a.increaseParam)

	g.DELETE("/delete_story", a.deleteStory)
}

func (a *StoryController) randomStory(c *gin.Context) {
	story, err := a.storyService.RandomStory(c.Request.Context())
	if err != nil {
		jsonErr(c, "get random story failed", err)
		return
	}
	jsonObj(c, story)
}

func (a *StoryController) storyByID(c *gin.Context) {
	req := &entity.GetByIdRequest{}
	if err := c.ShouldBind(req); err != nil {
		jsonBadRequest(c, err)
		return
	}
	story, err := a.storyService.StoryByID(c.Request.Context(), req.Id, req.Sid, req.Detailed)
	if err != nil {
		jsonErr(c, "get story failed", err)
		return
	}
	jsonObj(c, story)
}

func (a *StoryController) storyContent(c *gin.Context) {
	req := &entity.GetByIdRequest{}
	if err := c.ShouldBind(req); err != nil {
		jsonBadRequest(c, err)
		return
	}
	content, err := a.storyService.StoryContent(c.Request.Context(), req.Id, req.Sid)
	if err != nil {
		jsonErr(c, "get story content failed", err)
		return
	}
	jsonObj(c, entity.ContentResponse{Content: content, Result: "OK"})
}

func (a *StoryController) listStories(c *gin.Context) {
	req := &entity.ListStoriesRequest{Limit: defaultPageSize}
	if err := c.ShouldBind(req); err != nil {
		jsonBadRequest(c, err)
		return
	}
	if req.ListingType == "" {
		req.ListingType = service.ListingHome
	}
	stories, err := a.storyService.ListStories(c.Request.Context(), req.ListingType, req.Sid, req.Offset, req.Limit)
	if err != nil {
		jsonErr(c, "list stories failed", err)
		return
	}
	jsonObj(c, entity.ListStoriesResponse{Stories: stories})
}

func (a *StoryController) newStory(c *gin.Context) {
	req := &entity.NewStoryRequest{}
	if err := c.ShouldBind(req); err != nil {
		jsonBadRequest(c, err)
		return
	}
	story, err := a.storyService.CreateStory(c.Request.Context(), req.Sid, req.Name, req.Content)
	if err != nil {
		jsonErr(c, "create story failed", err)
		return
	}
	jsonObj(c, story)
}

func (a *StoryController) updateStoryContent(c *gin.Context) {
	req := &entity.UpdateStoryContentRequest{}
	if err := c.ShouldBind(req); err != nil {
		jsonBadRequest(c, err)
		return
	}
	if err := a.storyService.UpdateStoryContent(c.Request.Context(), req.Sid, req.Id, req.Content); err != nil {
		jsonErr(c, "update story content failed", err)
		return
	}
	jsonOK(c)
}

func (a *StoryController) updateStoryProperties(c *gin.Context) {
	req := &entity.UpdateStoryPropertiesRequest{}
	if err := c.ShouldBind(req); err != nil {
		jsonBadRequest(c, err)
		return
	}
	if err := a.storyService.UpdateStoryProperties(c.Request.Context(), req.Sid, req.Id, req.Name, req.Private); err != nil {
		jsonErr(c, "update story properties failed", err)
		return
	}
	jsonOK(c)
}

func (a *StoryController) deleteStory(c *gin.Context) {
	req := &entity.DeleteStoryRequest{}
	if err := c.ShouldBind(req); err != nil {
		jsonBadRequest(c, err)
		return
	}
	if err := a.storyService.DeleteStory(c.Request.Context(), req.Sid, req.Id); err != nil {
		jsonErr(c, "delete story failed", err)
		return
	}
	jsonOK(c)
}

func (a *StoryController) increaseParam(c *gin.Context) {
	req := &entity.IncreaseParamRequest{}
	if err := c.ShouldBind(req); err != nil {
		jsonBadRequest(c, err)
		return
	}
	delta := 1
	if req.UpOrDown != nil {
		delta = *req.UpOrDown
	}
	newValue, err := a.storyService.IncreaseParam(c.Request.Context(), req.Sid, req.Type, req.Param, req.Id, delta)
	if err != nil {
		jsonErr(c, "increase param failed", err)
		return
	}
	c.JSON(http.StatusOK, entity.IncreaseParamResponse{NewValue: newValue})
}
