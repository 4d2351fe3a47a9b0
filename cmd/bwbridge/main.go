package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/deckbw/bwbridge/internal/bw"
	"github.com/deckbw/bwbridge/internal/config"
	"github.com/deckbw/bwbridge/internal/credstore"
	"github.com/deckbw/bwbridge/internal/handler"
	"github.com/deckbw/bwbridge/internal/installer"
	"github.com/deckbw/bwbridge/internal/job"
	"github.com/deckbw/bwbridge/internal/middleware"
	"github.com/deckbw/bwbridge/internal/schedule"
	"github.com/deckbw/bwbridge/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "bwbridge",
		Short: "bitwarden cli bridge backend",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.json")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the bridge server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))
			return runServer(cfg)
		},
	}

	var remember bool
	unlockCmd := &cobra.Command{
		Use:   "unlock",
		Short: "unlock the vault locally and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			return runUnlock(cfg, remember)
		},
	}
	unlockCmd.Flags().BoolVar(&remember, "remember", false, "also store the master password")

	rootCmd.AddCommand(runCmd, unlockCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		return nil, fmt.Errorf("--config is required")
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger.Init(
		cfg.LogConfig.File,
		cfg.LogConfig.Level,
		int(cfg.LogConfig.FileCount),
		int(cfg.LogConfig.FileSize),
		int(cfg.LogConfig.KeepDays),
		cfg.LogConfig.Console,
	)
	return cfg, nil
}

func runServer(cfg *config.Config) error {
	logutil.GetLogger(context.Background()).Info(
		"starting bridge",
		zap.Int("port", cfg.Port),
		zap.String("plugin_dir", cfg.PluginDir),
		zap.String("data_dir", cfg.DataDir),
	)

	inst := installer.New(cfg.PluginDir, cfg.DataDir, cfg.DownloadURL)
	runner := bw.NewRunner(inst)
	creds := credstore.New(cfg.DataDir)

	vaultService := service.NewVaultService(runner, creds)
	itemService := service.NewItemService(runner, creds, cfg.Cache.Size, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
	vaultService.OnSync(itemService.InvalidateCache)
	sendService := service.NewSendService(runner, creds)
	toolService := service.NewToolService(runner, creds)
	serveService := service.NewServeService(inst, cfg.Serve)

	deps := handler.RouterDeps{
		Setup:        handler.NewSetupHandler(inst),
		Vault:        handler.NewVaultHandler(vaultService),
		Items:        handler.NewItemHandler(itemService),
		Sends:        handler.NewSendHandler(sendService),
		Tools:        handler.NewToolHandler(toolService),
		Serve:        handler.NewServeHandler(serveService),
		MutateWindow: time.Duration(cfg.MutateRateMS) * time.Millisecond,
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("127.0.0.1:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORSAllow),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	if cfg.SyncCron != "" {
		if err := scheduler.AddJob(job.NewVaultSyncJob(vaultService), cfg.SyncCron); err != nil {
			return fmt.Errorf("schedule sync job: %w", err)
		}
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	logutil.GetLogger(ctx).Info("http server listening", zap.Int("port", cfg.Port))
	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	if _, err := serveService.Stop(context.Background()); err != nil {
		logutil.GetLogger(context.Background()).Warn("stop bw serve failed", zap.Error(err))
	}
	return nil
}

// runUnlock drives the same unlock path as the HTTP surface, but prompts
// on the terminal so the session can be seeded before the panel loads.
func runUnlock(cfg *config.Config, remember bool) error {
	ctx := context.Background()
	inst := installer.New(cfg.PluginDir, cfg.DataDir, cfg.DownloadURL)
	runner := bw.NewRunner(inst)
	creds := credstore.New(cfg.DataDir)
	vault := service.NewVaultService(runner, creds)

	fmt.Fprint(os.Stderr, "Master password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	password := string(raw)
	if password == "" {
		return fmt.Errorf("empty password")
	}

	result, err := vault.Unlock(ctx, service.UnlockInput{Password: password, NoInteraction: true})
	if err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("bw unlock exited %d: %s", result.ReturnCode, result.Stderr)
	}
	if remember {
		if err := creds.SavePassword(ctx, password); err != nil {
			return err
		}
	}
	fmt.Println("vault unlocked, session stored")
	return nil
}
