package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Raisondetr3/tasklist-service/internal/config"
	"github.com/Raisondetr3/tasklist-service/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

const connectTimeout = 10 * time.Second

// ConnectWithRetry opens a pool and pings it, retrying up to maxRetries
// times. The database container usually starts slower than the service.
func ConnectWithRetry(ctx context.Context, cfg config.DatabaseConfig, maxRetries int, delay time.Duration) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	var err error

	for i := 0; i < maxRetries; i++ {
		slog.Info("Attempting to connect to database",
			slog.Int("attempt", i+1),
			slog.Int("max_attempts", maxRetries))

		pool, err = Connect(ctx, cfg)
		if err == nil {
			return pool, nil
		}

		slog.Warn("Database connection failed, retrying...",
			slog.String("error", err.Error()),
			slog.Duration("retry_in", delay))

		if i < maxRetries-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return nil, err
}

func Connect(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	dsn := cfg.DSN()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.LogDatabaseConnection(ctx, dsn, "connect", err)
		return nil, WrapError("connect", errors.Join(ErrDatabaseConnection, err))
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		logger.LogDatabaseConnection(ctx, dsn, "ping", err)
		return nil, WrapError("ping", errors.Join(ErrDatabaseConnection, err))
	}

	logger.LogDatabaseConnection(ctx, dsn, "connect", nil)

	return pool, nil
}
