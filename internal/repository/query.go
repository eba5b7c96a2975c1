package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/Raisondetr3/tasklist-service/internal/model"
	"github.com/Raisondetr3/tasklist-service/pkg/logger"
)

const slowQueryThreshold = 500 * time.Millisecond

type rowScanner interface {
	Scan(dest ...any) error
}

const taskColumns = `id, title, description, completed_at, goal_id`

func scanTask(row rowScanner) (*model.Task, error) {
	var task model.Task
	if err := row.Scan(
		&task.ID, &task.Title, &task.Description,
		&task.CompletedAt, &task.GoalID,
	); err != nil {
		return nil, err
	}
	return &task, nil
}

func logCriticalDBError(ctx context.Context, operation, query string, duration time.Duration, err error) {
	logger.LogDatabaseQuery(ctx, query, []interface{}{}, duration, err)

	slog.ErrorContext(ctx, "Critical database error",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
		slog.Duration("duration", duration),
	)
}

func logSlowQuery(ctx context.Context, operation string, duration time.Duration) {
	logger.LogSlowOperation(ctx, operation, duration, slowQueryThreshold)
}
