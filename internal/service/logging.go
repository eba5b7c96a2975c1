package service

import (
	"context"
	"time"

	"github.com/Raisondetr3/tasklist-service/internal/errors"
	"github.com/Raisondetr3/tasklist-service/pkg/logger"
)

func logOperation(ctx context.Context, entity, operation, entityID string, start time.Time, err error) {
	clientErr := false
	if err != nil {
		clientErr = errors.FromError(err).HTTPStatus() < 500
	}
	logger.LogEntityOperation(ctx, entity, operation, entityID, time.Since(start), err, clientErr)
}
