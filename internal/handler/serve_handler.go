package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/deckbw/bwbridge/internal/pkg/response"
	"github.com/deckbw/bwbridge/internal/service"
)

type ServeHandler struct {
	serve *service.ServeService
}

func NewServeHandler(serve *service.ServeService) *ServeHandler {
	return &ServeHandler{serve: serve}
}

func (h *ServeHandler) Start(c *gin.Context) {
	var req service.ServeStartInput
	if !bindOptional(c, &req) {
		return
	}
	out, err := h.serve.Start(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, out)
}

func (h *ServeHandler) Stop(c *gin.Context) {
	out, err := h.serve.Stop(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, out)
}

func (h *ServeHandler) Status(c *gin.Context) {
	response.Success(c, h.serve.Status())
}

func (h *ServeHandler) Proxy(c *gin.Context) {
	var req service.ProxyInput
	if !bindOptional(c, &req) {
		return
	}
	out, err := h.serve.Proxy(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, out)
}
