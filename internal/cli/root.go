package cli

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/vietddude/stacksyield/internal/control"
	"github.com/vietddude/stacksyield/internal/core/config"
	"github.com/vietddude/stylelog"
)

var (
	cfgPath string
	isDebug bool
)

var rootCmd = &cobra.Command{
	Use:   "stacksyield",
	Short: "StacksYield dashboard service",
	Long:  `StacksYield compares stablecoin yields on Ethereum and Stacks and bridges USDC between them.`,
	Run:   runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard API",
	Run:   runServe,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "config file (default is config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&isDebug, "debug", false, "enable debug logging")
	rootCmd.AddCommand(serveCmd)
}

// loadConfig reads .env and the config file and sets up logging. A missing
// default config file falls back to built-in defaults.
func loadConfig(cmd *cobra.Command) *config.AppConfig {
	_ = godotenv.Load()

	cfg, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config") {
		cfg, err = config.Default(), nil
	}
	if err != nil {
		stylelog.InitDefault()
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	setupLogging(cfg.Logging, isDebug)
	return cfg
}

// setupLogging installs the default logger. Format "json" writes JSON lines;
// anything else uses the colored stylelog handler.
func setupLogging(cfg config.LoggingConfig, debug bool) {
	level := logLevel(cfg.Level, debug)
	if cfg.Format == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
		return
	}
	stylelog.InitDefault(&tint.Options{
		Level:      level,
		TimeFormat: time.RFC3339,
	})
}

func logLevel(name string, debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// newDashboard builds the dashboard or exits.
func newDashboard(ctx context.Context, cfg *config.AppConfig) *control.Dashboard {
	d, err := control.NewDashboard(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize dashboard", "error", err)
		os.Exit(1)
	}
	return d
}

func runServe(cmd *cobra.Command, args []string) {
	cfg := loadConfig(cmd)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := newDashboard(ctx, cfg)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if err := app.Start(ctx); err != nil {
		slog.Error("Failed to start dashboard", "error", err)
		os.Exit(1)
	}

	slog.Info("Dashboard started", "name", cfg.App.Name, "port", cfg.Server.Port)

	done := make(chan error, 1)
	go func() { done <- app.Wait() }()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
	case err := <-done:
		if err != nil {
			slog.Error("Dashboard stopped", "error", err)
			os.Exit(1)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := app.Stop(shutdownCtx); err != nil {
		slog.Error("Error during shutdown", "error", err)
		os.Exit(1)
	}
}
