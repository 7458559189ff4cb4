package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/pricetrail/pkg/app"
	"github.com/ghuser/pricetrail/pkg/cache"
	"github.com/ghuser/pricetrail/pkg/config"
	"github.com/ghuser/pricetrail/pkg/database"
	"github.com/ghuser/pricetrail/pkg/events"
	"github.com/ghuser/pricetrail/pkg/logger"
	"github.com/ghuser/pricetrail/pkg/telemetry"
	searchEvents "github.com/ghuser/pricetrail/services/search/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Cfg:      cfg,
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	errCh, err := a.EventBus.Subscribe(ctx, searchEvents.TopicReceiptChanged, handleReceiptChanged(a))
	if err != nil {
		return err
	}

	// Drain subscriber errors in background so the channel never blocks.
	go func() {
		for err := range errCh {
			a.Logger.ErrorContext(ctx, "subscriber error",
				"topic", searchEvents.TopicReceiptChanged,
				"error", err,
			)
		}
	}()

	a.Logger.Info("event subscribers registered", "topics", []string{searchEvents.TopicReceiptChanged})
	return nil
}

// handleReceiptChanged returns a handler for receipt.changed events.
// Handlers must be idempotent: EventBus retries up to 3x on failure.
// Drops the user's cached supermarket suggestions so the next autocomplete
// request rebuilds them from the store.
func handleReceiptChanged(a *app.Application) func(context.Context, *message.Message) error {
	smCache := cache.NewSupermarketCache(a.Redis, a.Cfg.SupermarketCacheTTL)
	return func(ctx context.Context, msg *message.Message) error {
		var evt searchEvents.ReceiptChangedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		if err := smCache.Invalidate(ctx, evt.UserID); err != nil {
			// Invalidation is best-effort; the TTL bounds staleness.
			a.Logger.WarnContext(ctx, "cache invalidation failed for receipt.changed",
				"receipt_id", evt.ReceiptID, "error", err)
		} else {
			a.Logger.InfoContext(ctx, "supermarket cache invalidated",
				"receipt_id", evt.ReceiptID, "user_id", evt.UserID)
		}

		return nil
	}
}
