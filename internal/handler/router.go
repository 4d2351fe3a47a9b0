package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/deckbw/bwbridge/internal/middleware"
)

type RouterDeps struct {
	Setup *SetupHandler
	Vault *VaultHandler
	Items *ItemHandler
	Sends *SendHandler
	Tools *ToolHandler
	Serve *ServeHandler

	// MutateWindow rate limits the routes that fork a bw process per call.
	MutateWindow time.Duration
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.GET("/health", deps.Setup.Health)
	api.POST("/cli/install", deps.Setup.InstallCLI)

	api.POST("/vault/status", deps.Vault.Status)
	api.POST("/vault/lock", deps.Vault.Lock)
	api.POST("/vault/logout", deps.Vault.Logout)
	api.GET("/vault/credentials", deps.Vault.Credentials)
	api.POST("/vault/credentials/clear", deps.Vault.ClearCredentials)

	api.POST("/items/list", deps.Items.List)
	api.POST("/items/get", deps.Items.Get)

	api.POST("/tools/generate", deps.Tools.Generate)
	api.POST("/tools/encode", deps.Tools.Encode)
	api.POST("/tools/config-server", deps.Tools.ConfigServer)
	api.POST("/tools/device-approval", deps.Tools.DeviceApproval)

	api.POST("/serve/start", deps.Serve.Start)
	api.POST("/serve/stop", deps.Serve.Stop)
	api.GET("/serve/status", deps.Serve.Status)
	api.POST("/serve/proxy", deps.Serve.Proxy)

	mutate := api.Group("")
	mutate.Use(middleware.RateLimit(deps.MutateWindow))
	mutate.POST("/vault/login", deps.Vault.Login)
	mutate.POST("/vault/unlock", deps.Vault.Unlock)
	mutate.POST("/vault/sync", deps.Vault.Sync)
	mutate.POST("/items/create", deps.Items.Create)
	mutate.POST("/items/edit", deps.Items.Edit)
	mutate.POST("/items/delete", deps.Items.Delete)
	mutate.POST("/items/restore", deps.Items.Restore)
	mutate.POST("/items/move", deps.Items.Move)
	mutate.POST("/items/confirm", deps.Items.Confirm)
	mutate.POST("/sends/send", deps.Sends.Send)
	mutate.POST("/sends/receive", deps.Sends.Receive)
	mutate.POST("/tools/export", deps.Tools.Export)
	mutate.POST("/tools/import", deps.Tools.Import)
	mutate.POST("/tools/update", deps.Tools.Update)
}
