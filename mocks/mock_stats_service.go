package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"clindex/internal/service"
)

// MockStatsService is a mock implementation of service.StatsService.
type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) GetOverview(ctx context.Context) (*service.StatsOverview, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.StatsOverview), args.Error(1)
}
