package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/Raisondetr3/tasklist-service/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

const healthCheckThreshold = 100 * time.Millisecond

type HealthRepository interface {
	HealthCheck(ctx context.Context) error
}

type healthRepository struct {
	db *pgxpool.Pool
}

func NewHealthRepository(db *pgxpool.Pool) HealthRepository {
	return &healthRepository{
		db: db,
	}
}

// HealthCheck pings the pool and confirms both tables are reachable.
func (r *healthRepository) HealthCheck(ctx context.Context) error {
	start := time.Now()

	var tasks, goals int64
	q := `SELECT (SELECT count(*) FROM task), (SELECT count(*) FROM goal)`
	err := r.db.QueryRow(ctx, q).Scan(&tasks, &goals)

	duration := time.Since(start)

	if err != nil {
		logger.LogDatabaseQuery(ctx, q, []interface{}{}, duration, err)
		slog.ErrorContext(ctx, "Health check failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", duration),
			slog.String("type", "health_check_failure"),
		)
		return HandlePgxError("health_check", err, ErrDatabaseConnection)
	}

	logger.LogSlowOperation(ctx, "health_check", duration, healthCheckThreshold)

	slog.DebugContext(ctx, "Health check successful",
		slog.Duration("duration", duration),
		slog.Int64("tasks", tasks),
		slog.Int64("goals", goals),
	)

	return nil
}
