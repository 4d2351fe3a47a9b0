package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/deckbw/bwbridge/internal/pkg/response"
	"github.com/deckbw/bwbridge/internal/service"
)

type SendHandler struct {
	sends *service.SendService
}

func NewSendHandler(sends *service.SendService) *SendHandler {
	return &SendHandler{sends: sends}
}

func (h *SendHandler) Send(c *gin.Context) {
	var req service.SendInput
	if !bindOptional(c, &req) {
		return
	}
	out, err := h.sends.Send(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, out)
}

func (h *SendHandler) Receive(c *gin.Context) {
	var req service.ReceiveInput
	if !bindOptional(c, &req) {
		return
	}
	if req.URL == "" {
		invalid(c, "url required")
		return
	}
	out, err := h.sends.Receive(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, out)
}
