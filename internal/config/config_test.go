package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `{"port": 9180, "data_dir": "/tmp/bwbridge"}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 9180, cfg.Port)
	require.Equal(t, ".", cfg.PluginDir)
	require.NotEmpty(t, cfg.DownloadURL)
	require.Equal(t, "info", cfg.LogConfig.Level)
	require.Equal(t, 64, cfg.Cache.Size)
	require.Equal(t, 60, cfg.Cache.TTLSeconds)
	require.Equal(t, 8087, cfg.Serve.Port)
	require.Equal(t, "localhost", cfg.Serve.Hostname)
	require.Equal(t, 200, cfg.MutateRateMS)
	require.Equal(t, "*/30 * * * *", cfg.SyncCron)
}

func TestLoadSyncCronDisable(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{"port": 9180, "data_dir": "/tmp/bwbridge", "sync_cron": "off"}`))
	require.NoError(t, err)
	require.Empty(t, cfg.SyncCron)

	cfg, err = Load(writeConfig(t, `{"port": 9180, "data_dir": "/tmp/bwbridge", "sync_cron": ""}`))
	require.NoError(t, err)
	require.Empty(t, cfg.SyncCron)
}

func TestLoadRequiresPortAndDataDir(t *testing.T) {
	_, err := Load(writeConfig(t, `{"data_dir": "/tmp/bwbridge"}`))
	require.Error(t, err)

	_, err = Load(writeConfig(t, `{"port": 9180}`))
	require.Error(t, err)
}

func TestLoadKeepsExplicitValues(t *testing.T) {
	path := writeConfig(t, `{
		"port": 9180,
		"data_dir": "/tmp/bwbridge",
		"plugin_dir": "/opt/plugin",
		"download_url": "https://example.com/bw.zip",
		"sync_cron": "*/15 * * * *",
		"cache": {"size": 8, "ttl_seconds": 5},
		"serve": {"port": 9087, "hostname": "127.0.0.1", "disable_origin_protection": true}
	}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/opt/plugin", cfg.PluginDir)
	require.Equal(t, "https://example.com/bw.zip", cfg.DownloadURL)
	require.Equal(t, "*/15 * * * *", cfg.SyncCron)
	require.Equal(t, 8, cfg.Cache.Size)
	require.Equal(t, 5, cfg.Cache.TTLSeconds)
	require.Equal(t, 9087, cfg.Serve.Port)
	require.Equal(t, "127.0.0.1", cfg.Serve.Hostname)
	require.True(t, cfg.Serve.DisableOriginProtection)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
