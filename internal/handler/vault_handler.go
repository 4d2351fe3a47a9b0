package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/deckbw/bwbridge/internal/pkg/response"
	"github.com/deckbw/bwbridge/internal/service"
)

type VaultHandler struct {
	vault *service.VaultService
}

func NewVaultHandler(vault *service.VaultService) *VaultHandler {
	return &VaultHandler{vault: vault}
}

func (h *VaultHandler) Status(c *gin.Context) {
	var req service.StatusInput
	if !bindOptional(c, &req) {
		return
	}
	out, err := h.vault.Status(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, out)
}

func (h *VaultHandler) Login(c *gin.Context) {
	var req service.LoginInput
	if !bindOptional(c, &req) {
		return
	}
	out, err := h.vault.Login(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, out)
}

func (h *VaultHandler) Unlock(c *gin.Context) {
	var req service.UnlockInput
	if !bindOptional(c, &req) {
		return
	}
	out, err := h.vault.Unlock(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, out)
}

func (h *VaultHandler) Lock(c *gin.Context) {
	out, err := h.vault.Lock(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, out)
}

func (h *VaultHandler) Logout(c *gin.Context) {
	out, err := h.vault.Logout(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, out)
}

func (h *VaultHandler) Sync(c *gin.Context) {
	var req service.SyncInput
	if !bindOptional(c, &req) {
		return
	}
	out, err := h.vault.Sync(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, out)
}

func (h *VaultHandler) Credentials(c *gin.Context) {
	out, err := h.vault.Credentials(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, out)
}

func (h *VaultHandler) ClearCredentials(c *gin.Context) {
	if err := h.vault.ClearCredentials(); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
