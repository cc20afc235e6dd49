package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mbraun/dropdash/internal/config"
	"github.com/mbraun/dropdash/internal/engine"
	"github.com/mbraun/dropdash/internal/feed"
	"github.com/mbraun/dropdash/internal/localtime"
	"github.com/mbraun/dropdash/internal/logger"
	"github.com/mbraun/dropdash/internal/notifications"
	"github.com/mbraun/dropdash/internal/poller"
	"github.com/mbraun/dropdash/internal/store"
	"github.com/mbraun/dropdash/internal/version"
	"github.com/mbraun/dropdash/internal/web"
)

var (
	configFile = flag.String("config", "config.json", "Path to configuration file")
	debug      = flag.Bool("debug", false, "Enable debug logging")
	genConfig  = flag.Bool("generate-config", false, "Generate a sample configuration file")
)

func main() {
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	if *genConfig {
		setupBasicLogger(*debug)
		generateSampleConfig()
		return
	}

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		setupBasicLogger(*debug)
		if os.IsNotExist(err) {
			slog.Error("Configuration file not found. Run with -generate-config to create a sample", "path", *configFile)
		} else {
			slog.Error("Failed to load configuration", "error", err)
		}
		os.Exit(1)
	}

	if cfg.FeedURL == "" {
		setupBasicLogger(*debug)
		slog.Error("feedUrl is required in configuration")
		os.Exit(1)
	}

	logSettings := cfg.Logger
	if *debug {
		logSettings.ConsoleLevel = "DEBUG"
		logSettings.FileLevel = "DEBUG"
	}

	log, err := logger.Setup(logSettings)
	if err != nil {
		setupBasicLogger(*debug)
		slog.Error("Failed to setup logger", "error", err)
		os.Exit(1)
	}
	defer log.Close()

	slog.Info("Drop Dashboard", "version", version.Version, "zone", localtime.ZoneName)

	st, err := store.Open(cfg.DataDir)
	if err != nil {
		slog.Error("Failed to open store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	var notifier *notifications.Manager
	if cfg.Notifications.Enabled {
		provider := notifications.NewDiscordProvider(
			cfg.Notifications.DiscordBotToken,
			cfg.Notifications.DiscordChannelID,
		)
		notifier = notifications.NewManager(provider, cfg.Notifications.GrowthThreshold)
		if err := notifier.Connect(context.Background()); err != nil {
			slog.Warn("Notifications disabled", "error", err)
			notifier = nil
		} else {
			defer notifier.Disconnect()
		}
	}

	client := feed.NewClient(cfg.FeedURL)

	var server *web.Server
	onRefresh := func(state poller.State) {
		now := time.Now().UnixMilli()
		stats := engine.ComputeStats(state.Events, state.UpdatedAt, now)

		if server != nil {
			server.Hub().Broadcast("refreshed", map[string]any{
				"events": len(state.Events),
				"today":  stats.Today,
			})
		}
		if notifier != nil {
			dateKey := localtime.DateKey(now + localtime.OffsetMs(now))
			notifier.CheckGrowth(context.Background(), stats, dateKey)
		}
	}

	p := poller.New(client, st, time.Duration(cfg.PollMinutes)*time.Minute, onRefresh)
	server = web.NewServer(cfg.Server, cfg.PollMinutes, p)

	server.Start()
	p.Start()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down")
	p.Stop()
	server.Stop()
}

func setupBasicLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func generateSampleConfig() {
	cfg := config.DefaultConfig()
	cfg.FeedURL = "https://example.com/drops/feed.json"

	if _, err := os.Stat(*configFile); err == nil {
		slog.Error("Configuration file already exists", "path", *configFile)
		os.Exit(1)
	}

	if err := config.SaveConfig(*configFile, cfg); err != nil {
		slog.Error("Failed to write sample configuration", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Sample configuration written to %s\n", *configFile)
}
