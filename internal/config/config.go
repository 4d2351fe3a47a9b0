package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

// defaultDownloadURL is the oss cli build matching what the plugin bundles.
const defaultDownloadURL = "https://github.com/bitwarden/clients/releases/download/cli-v2025.12.1/bw-oss-linux-2025.12.1.zip"

const defaultSyncCron = "*/30 * * * *"

// syncCronOff disables background sync; an absent sync_cron gets the default.
const syncCronOff = "off"

type Config struct {
	Port         int              `json:"port"`
	PluginDir    string           `json:"plugin_dir"`
	DataDir      string           `json:"data_dir"`
	DownloadURL  string           `json:"download_url"`
	LogConfig    logger.LogConfig `json:"log_config"`
	SyncCron     string           `json:"-"`
	Cache        CacheConfig      `json:"cache"`
	Serve        ServeConfig      `json:"serve"`
	CORSAllow    []string         `json:"cors_allow"`
	MutateRateMS int              `json:"mutate_rate_ms"`
}

type CacheConfig struct {
	Size       int `json:"size"`
	TTLSeconds int `json:"ttl_seconds"`
}

// ServeConfig carries defaults for the `bw serve` local API child process.
type ServeConfig struct {
	Port                    int    `json:"port"`
	Hostname                string `json:"hostname"`
	DisableOriginProtection bool   `json:"disable_origin_protection"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var raw struct {
		Config
		SyncCron *string `json:"sync_cron"`
	}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg := raw.Config
	switch {
	case raw.SyncCron == nil:
		cfg.SyncCron = defaultSyncCron
	case *raw.SyncCron == syncCronOff:
		cfg.SyncCron = ""
	default:
		cfg.SyncCron = *raw.SyncCron
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("data_dir is required")
	}
	if cfg.PluginDir == "" {
		cfg.PluginDir = "."
	}
	if cfg.DownloadURL == "" {
		cfg.DownloadURL = defaultDownloadURL
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.Cache.Size == 0 {
		cfg.Cache.Size = 64
	}
	if cfg.Cache.TTLSeconds == 0 {
		cfg.Cache.TTLSeconds = 60
	}
	if cfg.Serve.Port == 0 {
		cfg.Serve.Port = 8087
	}
	if cfg.Serve.Hostname == "" {
		cfg.Serve.Hostname = "localhost"
	}
	if cfg.MutateRateMS == 0 {
		cfg.MutateRateMS = 200
	}
	return &cfg, nil
}
