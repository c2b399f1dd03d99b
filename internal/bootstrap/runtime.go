// Package bootstrap connects the runtime dependencies shared by the server
// and the command-line tools.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"feedengine/internal/cache"
	"feedengine/internal/config"
	"feedengine/internal/database"
	"feedengine/internal/middleware"
	"feedengine/internal/observability"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// InitRuntime connects to the database and Redis. A nil Redis client means
// Redis is not configured or unreachable and the caller runs without it.
func InitRuntime(cfg *config.Config) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	if cfg.RedisURL != "" {
		cache.InitRedis(cfg.RedisURL)
	}
	return db, cache.GetClient(), nil
}

// InitTracing starts the tracer provider described by cfg and returns its
// shutdown hook.
func InitTracing(cfg *config.Config, version string) (func(context.Context) error, error) {
	shutdown, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "feedengine-api",
		ServiceVersion: version,
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSampleRatio,
	})
	if err != nil {
		return nil, err
	}
	if cfg.TracingEnabled {
		middleware.Logger.Info("tracing enabled",
			slog.String("exporter", cfg.TracingExporter),
			slog.Float64("sample_ratio", cfg.TracingSampleRatio))
	}
	return shutdown, nil
}
