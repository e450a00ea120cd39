package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"clindex/internal/domain"
	"clindex/internal/service"
	"clindex/mocks"
)

func TestStatsService_GetOverview_Success(t *testing.T) {
	statsRepo := new(mocks.MockStatsRepo)
	svc := service.NewStatsService(statsRepo)

	stats := &domain.DocumentStats{
		TotalDocuments:      10,
		ProcessingCompleted: 7,
		ProcessingFailed:    1,
		ProcessingPending:   2,
		TotalChunks:         120,
		TotalImages:         15,
	}
	byType := []domain.TypeCount{
		{DocumentType: domain.DocTypeCaseReport, Count: 5},
		{DocumentType: domain.DocTypeGuideline, Count: 2},
	}

	statsRepo.On("GetStats", mock.Anything).Return(stats, nil)
	statsRepo.On("CountByType", mock.Anything).Return(byType, nil)

	overview, err := svc.GetOverview(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 10, overview.Stats.TotalDocuments)
	assert.Len(t, overview.ByType, 2)
	statsRepo.AssertExpectations(t)
}

func TestStatsService_GetOverview_StatsError(t *testing.T) {
	statsRepo := new(mocks.MockStatsRepo)
	svc := service.NewStatsService(statsRepo)

	statsRepo.On("GetStats", mock.Anything).Return(nil, errors.New("db down"))

	overview, err := svc.GetOverview(context.Background())

	assert.Nil(t, overview)
	assert.Error(t, err)
}
