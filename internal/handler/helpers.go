package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	appErr "github.com/deckbw/bwbridge/internal/pkg/errcode"
	pkgErr "github.com/deckbw/bwbridge/internal/pkg/errors"
	"github.com/deckbw/bwbridge/internal/pkg/response"
)

func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	logutil.GetLogger(c.Request.Context()).Error("request failed",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	switch {
	case errors.Is(err, pkgErr.ErrInvalid):
		response.Error(c, appErr.ErrInvalid, err.Error())
	case errors.Is(err, pkgErr.ErrNotFound):
		response.Error(c, appErr.ErrNotFound, err.Error())
	case errors.Is(err, pkgErr.ErrCLIUnavailable):
		response.Error(c, appErr.ErrCLIUnavailable, err.Error())
	case errors.Is(err, pkgErr.ErrServeFailed):
		response.Error(c, appErr.ErrServeFailed, err.Error())
	default:
		response.Error(c, appErr.ErrInternal, "internal error")
	}
}

func invalid(c *gin.Context, message string) {
	response.Error(c, appErr.ErrInvalid, message)
}

// bindOptional decodes the JSON body into obj, accepting an absent body:
// most routes have no required fields and the panel omits the body then.
func bindOptional(c *gin.Context, obj interface{}) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(obj); err != nil {
		invalid(c, "invalid request")
		return false
	}
	return true
}
