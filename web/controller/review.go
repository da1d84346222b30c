package controller

import (
	"github.com/moohomor/storyforge/web/entity"
	"github.com/moohomor/storyforge/web/service"

	"github.com/gin-gonic/gin"
)

// ReviewController handles review endpoints.
type ReviewController struct {
	reviewService *service.ReviewService
}

func NewReviewController(g *gin.RouterGroup, reviewService *service.ReviewService) *ReviewController {
	a := &ReviewController{reviewService: reviewService}
	a.initRouter(g)
	return a
}

func (a *ReviewController) initRouter(g *gin.RouterGroup) {
	g.PUT("/review_by_id", a.reviewByID)
	g.POST("/new_review", a.newReview)
	g.DELETE("/delete_review", a.deleteReview)
}

func (a *ReviewController) reviewByID(c *gin.Context) {
	req := &entity.GetByIdRequest{}
	if err := c.ShouldBind(req); err != nil {
		jsonBadRequest(c, err)
		return
	}
	review, err := a.reviewService.ReviewByID(c.Request.Context(), req.Id)
	if err != nil {
		jsonErr(c, "get review failed", err)
		return
	}
	jsonObj(c, review)
}

func (a *ReviewController) newReview(c *gin.Context) {
	req := &entity.NewReviewRequest{}
	if err := c.ShouldBind(req); err != nil {
		jsonBadRequest(c, err)
		return
	}
	review, err := a.reviewService.NewReview(c.Request.Context(), req.Sid, req.Story, req.Content)
	if err != nil {
		jsonErr(c, "create review failed", err)
		return
	}
	jsonObj(c, review)
}

func (a *ReviewController) deleteReview(c *gin.Context) {
	req := &entity.DeleteReviewRequest{}
	if err := c.ShouldBind(req); err != nil {
		jsonBadRequest(c, err)
		return
	}
	if err := a.reviewService.DeleteReview(c.Request.Context(), req.Sid, req.Id); err != nil {
		jsonErr(c, "delete review failed", err)
		return
	}
	jsonOK(c)
}
