package job

import (
	"context"
	"fmt"
	"strings"

	"github.com/deckbw/bwbridge/internal/service"
)

// VaultSyncJob keeps the local vault cache fresh while the panel sits idle.
// Sync fails routinely when the vault is locked or logged out; that is
// reported as an error so the scheduler logs it, nothing more.
type VaultSyncJob struct {
	vault *service.VaultService
}

func NewVaultSyncJob(vault *service.VaultService) *VaultSyncJob {
	return &VaultSyncJob{vault: vault}
}

func (j *VaultSyncJob) Name() string {
	return "vault_sync"
}

func (j *VaultSyncJob) Run(ctx context.Context) error {
	if j.vault == nil {
		return nil
	}
	result, err := j.vault.Sync(ctx, service.SyncInput{})
	if err != nil {
		return err
	}
	if !result.Success {
		detail := strings.TrimSpace(result.Stderr)
		if detail == "" {
			detail = strings.TrimSpace(result.Stdout)
		}
		return fmt.Errorf("bw sync exited %d: %s", result.ReturnCode, detail)
	}
	return nil
}
