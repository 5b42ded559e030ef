package health

import (
	"context"
	"time"

	"foodloss-backend/domain"

	"gorm.io/gorm"
)

const pingTimeout = 2 * time.Second

type (
	HealthService interface {
		Check(ctx context.Context) (domain.HealthResponse, error)
	}

	healthService struct {
		db *gorm.DB
	}
)

func NewHealthService(db *gorm.DB) HealthService {
	return &healthService{db: db}
}

func (s *healthService) Check(ctx context.Context) (domain.HealthResponse, error) {
	res := domain.HealthResponse{Status: "down", Database: "down"}

	sqlDB, err := s.db.DB()
	if err != nil {
		return res, err
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	start := time.Now()
	if err := sqlDB.PingContext(ctx); err != nil {
		return res, err
	}

	res.Status = "up"
	res.Database = "up"
	res.LatencyMS = time.Since(start).Milliseconds()
	return res, nil
}
