package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nDmitry/ytblog/internal/api/rest"
	"github.com/nDmitry/ytblog/internal/app"
	"github.com/nDmitry/ytblog/internal/blog"
	"github.com/nDmitry/ytblog/internal/cache"
	"github.com/nDmitry/ytblog/internal/config"
	"github.com/nDmitry/ytblog/internal/feed"
	"github.com/nDmitry/ytblog/internal/resolver"
	"github.com/nDmitry/ytblog/internal/youtube"
)

func main() {
	logger := app.Logger()
	slog.SetDefault(logger)

	// Create a cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Received first shutdown signal, starting graceful shutdown...")
		cancel()

		// If we receive a second signal, exit immediately
		<-sigChan
		logger.Info("Received second shutdown signal, exiting immediately...")
		os.Exit(1)
	}()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))

	if err != nil {
		logger.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	app.SetLevel(cfg.LogLevel)

	var c cache.Cache = cache.Nop{}

	if cfg.RedisHost != "" {
		redisClient, err := cache.NewRedisClient(ctx, fmt.Sprintf("%s:6379", cfg.RedisHost))

		if err != nil {
			logger.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}

		c = redisClient
	} else {
		logger.Info("REDIS_HOST is not set, caching is disabled")
	}

	defer c.Close()

	ytClient, err := youtube.NewClient(ctx, cfg)

	if err != nil {
		logger.Error("Failed to create YouTube client", "error", err)
		os.Exit(1)
	}

	api := youtube.NewCachedClient(ytClient, c, cfg.CacheTTL())
	channels := resolver.New(api, cfg.RecentVideosLimit)
	posts := blog.NewClient(cfg.BlogServiceURL)

	// Initialize and run the HTTP server
	server := rest.NewServer(cfg, c, channels, posts, feed.Generator{})

	if err := server.Run(ctx); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}

	logger.Info("Server exited gracefully")
}
