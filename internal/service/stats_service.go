package service

import (
	"context"

	"clindex/internal/domain"
	"clindex/internal/port"
)

// StatsOverview bundles corpus totals with the per-type distribution.
type StatsOverview struct {
	Stats  *domain.DocumentStats `json:"stats"`
	ByType []domain.TypeCount    `json:"by_type"`
}

// StatsService provides aggregate statistics.
type StatsService interface {
	GetOverview(ctx context.Context) (*StatsOverview, error)
}

type statsService struct {
	statsRepo port.StatsRepository
}

// NewStatsService creates a new StatsService implementation.
func NewStatsService(statsRepo port.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) GetOverview(ctx context.Context) (*StatsOverview, error) {
	stats, err := s.statsRepo.GetStats(ctx)
	if err != nil {
		return nil, err
	}
	byType, err := s.statsRepo.CountByType(ctx)
	if err != nil {
		return nil, err
	}
	return &StatsOverview{Stats: stats, ByType: byType}, nil
}
