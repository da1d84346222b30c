package controller

import (
	"io"
	"net/http"
	"strconv"

	"github.com/moohomor/storyforge/web/entity"
	"github.com/moohomor/storyforge/web/service"

	"github.com/gin-gonic/gin"
)

// AssetController handles story asset upload, download, listing and deletion.
type AssetController struct {
	storyService *service.StoryService
}

func NewAssetController(g *gin.RouterGroup, storyService *service.StoryService) *AssetController {
	a := &AssetController{storyService: storyService}
	a.initRouter(g)
	return a
}

func (a *AssetController) initRouter(g *gin.RouterGroup) {
	g.GET("/asset_content/:story_id/:name", a.assetContent)
	g.GET("/list_story_assets/:story_id", a.listStoryAssets)
	g.POST("/new_asset", a.newAsset)
	g.DELETE("/delete_asset", a.deleteAsset)
}

func (a *AssetController) assetContent(c *gin.Context) {
	storyID, err := strconv.Atoi(c.Param("story_id"))
	if err != nil {
		jsonBadRequest(c, err)
		return
	}
	data, err := a.storyService.AssetContent(c.Request.Context(), storyID, c.Param("name"))
	if err != nil {
		jsonErr(c, "get asset content failed", err)
		return
	}
	c.Data(http.StatusOK, "application/octet-stream", data)
}

func (a *AssetController) listStoryAssets(c *gin.Context) {
	storyID, err := strconv.Atoi(c.Param("story_id"))
	if err != nil {
		jsonBadRequest(c, err)
		return
	}
	assets, err := a.storyService.ListAssets(c.Request.Context(), storyID)
	if err != nil {
		jsonErr(c, "list story assets failed", err)
		return
	}
	jsonObj(c, entity.ListStoryAssetsResponse{Assets: assets})
}

// newAsset takes a multipart upload; sid and story_id travel as query
// parameters alongside the file.
func (a *AssetController) newAsset(c *gin.Context) {
	storyID, err := strconv.Atoi(c.Query("story_id"))
	if err != nil {
		jsonBadRequest(c, err)
		return
	}
	sid := c.Query("sid")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		jsonBadRequest(c, err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		jsonErr(c, "open upload failed", err)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		jsonErr(c, "read upload failed", err)
		return
	}

	if err := a.storyService.NewAsset(c.Request.Context(), sid, storyID, fileHeader.Filename, data); err != nil {
		jsonErr(c, "upload asset failed", err)
		return
	}
	jsonOK(c)
}

func (a *AssetController) deleteAsset(c *gin.Context) {
	req := &entity.DeleteAssetRequest{}
	if err := c.ShouldBind(req); err != nil {
		jsonBadRequest(c, err)
		return
	}
	if err := a.storyService.DeleteAsset(c.Request.Context(), req.Sid, req.StoryId, req.Name); err != nil {
		jsonErr(c, "delete asset failed", err)
		return
	}
	jsonOK(c)
}
