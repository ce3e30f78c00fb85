// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/novol/internal/ingest/charset"
	"github.com/taibuivan/novol/internal/ingest/importer"
	"github.com/taibuivan/novol/internal/platform/config"
	"github.com/taibuivan/novol/internal/platform/constants"
	"github.com/taibuivan/novol/internal/platform/migration"
	pgstore "github.com/taibuivan/novol/internal/platform/postgres"
	redisstore "github.com/taibuivan/novol/internal/platform/redis"
)

// app holds the process-wide dependencies of one command invocation.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	pool   *pgxpool.Pool
	redis  *goredis.Client
}

// newLogger builds the CLI logger. Logs go to stderr so that stdout only
// carries command output.
func newLogger(format string, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	options := &slog.HandlerOptions{Level: level}

	var handler slog.Handler = slog.NewTextHandler(os.Stderr, options)
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}

	return slog.New(handler).With(slog.String("app", constants.AppName))
}

/*
bootstrap loads configuration and opens the database.

Parameters:
  - ctx: context.Context
  - migrate: bool (apply pending migrations before returning)

Returns:
  - *app: ready dependencies; call Close when done
  - error: configuration, connection or migration failures
*/
func bootstrap(ctx context.Context, migrate bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg.LogFormat, cfg.Debug)
	slog.SetDefault(logger)

	logger.Debug("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.Bool("lock_enabled", cfg.LockEnabled()),
	)

	startupCtx, cancel := context.WithTimeout(ctx, constants.StartupTimeout)
	defer cancel()

	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	a := &app{cfg: cfg, logger: logger, pool: pool}

	if migrate {
		if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, logger); err != nil {
			a.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	if cfg.LockEnabled() {
		client, err := redisstore.NewClient(startupCtx, cfg.RedisURL, logger)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.redis = client
	}

	return a, nil
}

// Close releases the pool and the Redis client.
func (a *app) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("redis_close_failed", slog.Any("error", err))
		}
	}
	a.pool.Close()
}

// newImporter wires the pipeline to the catalogue, with the Redis lock when one
// is configured.
func (a *app) newImporter(options importer.Options) *importer.Importer {
	var opts []importer.Option
	if a.redis != nil {
		opts = append(opts, importer.WithLocker(redisstore.NewBatchLock(a.redis, a.cfg.LockTTL)))
	}

	return importer.New(
		importer.NewPostgresStore(a.pool),
		charset.NewDetector(),
		a.logger,
		options,
		opts...,
	)
}
