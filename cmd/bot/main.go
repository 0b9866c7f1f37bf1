package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/KirkDiggler/codearena/internal/app"
	"github.com/KirkDiggler/codearena/internal/config"
	"github.com/KirkDiggler/codearena/internal/handlers/discord"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := app.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if cfg.DiscordToken == "" {
		logger.Fatal("DISCORD_TOKEN environment variable is required")
	}

	ctx := context.Background()
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("Error closing connections", zap.Error(err))
		}
	}()

	metricsServer := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           promhttp.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server stopped", zap.Error(err))
		}
	}()

	bot, err := discord.New(&discord.Config{
		Token:         cfg.DiscordToken,
		ApplicationID: cfg.ApplicationID,
		GuildID:       cfg.GuildID,
		ArenaService:  a.ArenaService,
		StatsService:  a.StatsService,
		RoomRepo:      a.RoomRepo,
		SnapshotRepo:  a.SnapshotRepo,
		Logger:        logger,
	})
	if err != nil {
		logger.Fatal("Failed to create Discord bot", zap.Error(err))
	}

	if err := bot.Start(); err != nil {
		logger.Fatal("Failed to start Discord bot", zap.Error(err))
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	if err := bot.Stop(); err != nil {
		logger.Warn("Error stopping bot", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Error stopping metrics server", zap.Error(err))
	}

	logger.Info("Bot has been shut down")
}
