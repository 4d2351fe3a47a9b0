package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/deckbw/bwbridge/internal/pkg/response"
	"github.com/deckbw/bwbridge/internal/service"
)

type ItemHandler struct {
	items *service.ItemService
}

func NewItemHandler(items *service.ItemService) *ItemHandler {
	return &ItemHandler{items: items}
}

func (h *ItemHandler) List(c *gin.Context) {
	var req service.ListInput
	if !bindOptional(c, &req) {
		return
	}
	if req.Entity == "" {
		invalid(c, "entity required")
		return
	}
	out, err := h.items.List(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, out)
}

func (h *ItemHandler) Get(c *gin.Context) {
	var req service.GetInput
	if !bindOptional(c, &req) {
		return
	}
	if req.Entity == "" || req.ID == "" {
		invalid(c, "entity and id required")
		return
	}
	out, err := h.items.Get(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, out)
}

func (h *ItemHandler) Create(c *gin.Context) {
	var req service.CreateInput
	if !bindOptional(c, &req) {
		return
	}
	if req.Entity == "" {
		invalid(c, "entity required")
		return
	}
	out, err := h.items.Create(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, out)
}

func (h *ItemHandler) Edit(c *gin.Context) {
	var req service.EditInput
	if !bindOptional(c, &req) {
		return
	}
	if req.Entity == "" || req.ID == "" {
		invalid(c, "entity and id required")
		return
	}
	out, err := h.items.Edit(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, out)
}

func (h *ItemHandler) Delete(c *gin.Context) {
	var req service.DeleteInput
	if !bindOptional(c, &req) {
		return
	}
	if req.Entity == "" || req.ID == "" {
		invalid(c, "entity and id required")
		return
	}
	out, err := h.items.Delete(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, out)
}

func (h *ItemHandler) Restore(c *gin.Context) {
	var req service.RestoreInput
	if !bindOptional(c, &req) {
		return
	}
	if req.Entity == "" || req.ID == "" {
		invalid(c, "entity and id required")
		return
	}
	out, err := h.items.Restore(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, out)
}

func (h *ItemHandler) Move(c *gin.Context) {
	var req service.MoveInput
	if !bindOptional(c, &req) {
		return
	}
	if req.ItemID == "" || req.OrganizationID == "" {
		invalid(c, "itemid and organizationid required")
		return
	}
	out, err := h.items.Move(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, out)
}

func (h *ItemHandler) Confirm(c *gin.Context) {
	var req service.ConfirmInput
	if !bindOptional(c, &req) {
		return
	}
	if req.MemberID == "" || req.OrganizationID == "" {
		invalid(c, "member_id and organizationid required")
		return
	}
	out, err := h.items.Confirm(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, out)
}
