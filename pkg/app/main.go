package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/pricetrail/pkg/cache"
	"github.com/ghuser/pricetrail/pkg/config"
	"github.com/ghuser/pricetrail/pkg/database"
	"github.com/ghuser/pricetrail/pkg/events"
	"github.com/ghuser/pricetrail/pkg/logger"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to all service route-registration calls during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler — use slog's context methods
// and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "executing search", "user_id", id)
//	app.Logger.ErrorContext(ctx, "store query failed", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Cfg          *config.Config
	Db           *database.Database
	Logger       logger.Logger
	EventBus     *events.EventBus
	Redis        *cache.RedisClient
	SessionStore sessions.Store // Redis-backed session store; nil in worker process
}
