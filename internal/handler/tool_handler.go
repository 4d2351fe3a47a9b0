package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/deckbw/bwbridge/internal/bw"
	"github.com/deckbw/bwbridge/internal/pkg/response"
	"github.com/deckbw/bwbridge/internal/service"
)

type ToolHandler struct {
	tools *service.ToolService
}

func NewToolHandler(tools *service.ToolService) *ToolHandler {
	return &ToolHandler{tools: tools}
}

func (h *ToolHandler) Generate(c *gin.Context) {
	var req service.GenerateInput
	if !bindOptional(c, &req) {
		return
	}
	out, err := h.tools.Generate(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, out)
}

type encodeRequest struct {
	Input string `json:"input"`
}

func (h *ToolHandler) Encode(c *gin.Context) {
	var req encodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, "invalid request")
		return
	}
	out, err := h.tools.Encode(c.Request.Context(), req.Input)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, out)
}

func (h *ToolHandler) Export(c *gin.Context) {
	var req service.ExportInput
	if !bindOptional(c, &req) {
		return
	}
	out, err := h.tools.Export(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, out)
}

func (h *ToolHandler) Import(c *gin.Context) {
	var req service.ImportInput
	if !bindOptional(c, &req) {
		return
	}
	if req.Format == "" || req.Path == "" {
		invalid(c, "format and path required")
		return
	}
	out, err := h.tools.Import(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, out)
}

func (h *ToolHandler) Update(c *gin.Context) {
	out, err := h.tools.Update(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, out)
}

func (h *ToolHandler) ConfigServer(c *gin.Context) {
	var req bw.ConfigServerOptions
	if !bindOptional(c, &req) {
		return
	}
	out, err := h.tools.ConfigServer(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, out)
}

func (h *ToolHandler) DeviceApproval(c *gin.Context) {
	var req service.DeviceApprovalInput
	if !bindOptional(c, &req) {
		return
	}
	if req.Action == "" {
		invalid(c, "action required")
		return
	}
	out, err := h.tools.DeviceApproval(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, out)
}
