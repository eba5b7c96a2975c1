package service

import (
	"context"
	"time"

	"github.com/Raisondetr3/tasklist-service/internal/repository"
	"github.com/Raisondetr3/tasklist-service/pkg/dto"
	"github.com/Raisondetr3/tasklist-service/pkg/logger"
)

type HealthService interface {
	Health(ctx context.Context) *dto.HealthStatus
}

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

type healthService struct {
	healthRepo repository.HealthRepository
	now        func() time.Time
}

func NewHealthService(healthRepo repository.HealthRepository) HealthService {
	return &healthService{
		healthRepo: healthRepo,
		now:        time.Now,
	}
}

func (s *healthService) Health(ctx context.Context) *dto.HealthStatus {
	status := &dto.HealthStatus{
		Status:    StatusHealthy,
		Timestamp: s.now().UTC(),
	}

	if err := s.healthRepo.HealthCheck(ctx); err != nil {
		logger.LogError(ctx, err, "database_health_check")
		status.Status = StatusUnhealthy
	}

	return status
}
