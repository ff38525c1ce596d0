package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Houeta/rival-watch/internal/analyzer"
	"github.com/Houeta/rival-watch/internal/bot"
	"github.com/Houeta/rival-watch/internal/config"
	"github.com/Houeta/rival-watch/internal/fetcher"
	"github.com/Houeta/rival-watch/internal/price"
	"github.com/Houeta/rival-watch/internal/repository/sqlite"
	"github.com/Houeta/rival-watch/internal/services/checker"
	"github.com/Houeta/rival-watch/internal/watchlist"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	// This allows for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	repo, err := sqlite.NewRepository(ctx, logger, cfg.StoragePath)
	if err != nil {
		log.Fatalf("Failed to init storage: %v", err)
	}
	defer repo.Close()

	if cfg.WatchlistPath != "" {
		entries, err := watchlist.Load(cfg.WatchlistPath)
		if err != nil {
			log.Fatalf("Failed to load watchlist: %v", err)
		}
		if err = watchlist.Sync(ctx, repo, entries); err != nil {
			log.Fatalf("Failed to sync watchlist: %v", err)
		}
		logger.InfoContext(ctx, "Watchlist synced", "path", cfg.WatchlistPath, "competitors", len(entries))
	}

	rivalBot, err := bot.NewBot(logger, cfg.Tg.Token, cfg.Tg.Timeout, repo)
	if err != nil {
		log.Fatalf("Failed to init bot: %v", err)
	}

	pipeline := checker.NewChecker(
		logger,
		fetcher.NewFetcher(logger, cfg.Fetch.Timeout, cfg.Fetch.UserAgent),
		price.NewExtractor(cfg.Price.MinValid, cfg.Price.MaxValid),
		repo,
		analyzer.NewClient(logger, cfg.Analyzer.BaseURL, cfg.Analyzer.APIKey, cfg.Analyzer.Model, cfg.Analyzer.Timeout),
		rivalBot,
		checker.Config{
			Retention:       cfg.Retention,
			Thresholds:      price.Thresholds{MinPercent: cfg.Price.MinPercent, MinAmount: cfg.Price.MinAmount},
			AnalyzerTimeout: cfg.Analyzer.Timeout,
			DefaultChatID:   cfg.Tg.AlertChatID,
		},
	)

	// Log that the application has started.
	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.", "check_interval", cfg.CheckInterval)

	// Start the bot in a goroutine to allow main to listen for signals.
	go rivalBot.Start()

	// Run the checks until the context is canceled (e.g., by Ctrl+C).
	runChecks(ctx, logger, pipeline, cfg.CheckInterval)

	// Log that a shutdown signal has been received.
	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	// Stop the bot gracefully.
	rivalBot.Stop()

	// Log graceful shutdown completion.
	logger.InfoContext(ctx, "Application stopped gracefully.")
}

// runChecks checks every page right away and then once per interval.
func runChecks(ctx context.Context, log *slog.Logger, pipeline *checker.Checker, interval time.Duration) {
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		started := time.Now()
		batches, err := pipeline.CheckAll(ctx)
		if err != nil {
			log.WarnContext(ctx, "Check run interrupted", "error", err)
		}

		checked, changes := 0, 0
		for _, b := range batches {
			checked += b.Checked
			changes += b.Changes
		}
		log.InfoContext(ctx, "Check run finished",
			"competitors", len(batches), "pages", checked, "changes", changes, "took", time.Since(started))

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelWarn,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelError,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)

		log.Error(
			"The env parameter was not specified	 or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
