package controller

import (
	"errors"
	"net/http"

	"github.com/moohomor/storyforge/config"
	"github.com/moohomor/storyforge/logger"
	"github.com/moohomor/storyforge/util/common"
	"github.com/moohomor/storyforge/web/entity"

	"github.com/gin-gonic/gin"
)

// jsonOK sends the uniform success envelope.
func jsonOK(c *gin.Context) {
	c.JSON(http.StatusOK, entity.Msg{Result: "OK"})
}

// jsonObj sends a typed payload.
func jsonObj(c *gin.Context, obj any) {
	c.JSON(http.StatusOK, obj)
}

// jsonErr translates a failure into the error envelope. Client-caused
// failures carry a safe message and a 4xx status; everything else is logged
// in full and surfaced generically unless the show-exceptions flag is on.
func jsonErr(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, common.ErrNotAuthenticated), errors.Is(err, common.ErrNotAuthorized):
		c.JSON(http.StatusBadRequest, entity.Msg{Result: "Invalid session"})
	case errors.Is(err, common.ErrValidation):
		c.JSON(http.StatusBadRequest, entity.Msg{Result: err.Error()})
	case errors.Is(err, common.ErrNotFound):
		c.JSON(http.StatusNotFound, entity.Msg{Result: "Not found"})
	default:
		logger.Error(msg+": ", err)
		result := "ERROR"
		if config.ShowExceptions() {
			result = err.Error()
		}
		c.JSON(http.StatusInternalServerError, entity.Msg{Result: result})
	}
}

// jsonBadRequest reports a malformed request body.
func jsonBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, entity.Msg{Result: err.Error()})
}
