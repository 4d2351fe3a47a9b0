package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/deckbw/bwbridge/internal/bw"
	"github.com/deckbw/bwbridge/internal/pkg/response"
)

// SetupHandler exposes CLI provisioning so the panel can trigger the
// download up front instead of paying for it on the first vault call.
type SetupHandler struct {
	locator bw.Locator
}

func NewSetupHandler(locator bw.Locator) *SetupHandler {
	return &SetupHandler{locator: locator}
}

func (h *SetupHandler) InstallCLI(c *gin.Context) {
	path, err := h.locator.EnsureCLI(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"path": path})
}

func (h *SetupHandler) Health(c *gin.Context) {
	response.Success(c, gin.H{"status": "ok"})
}
