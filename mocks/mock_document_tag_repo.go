package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"clindex/internal/domain"
)

// MockDocumentTagRepo is a mock implementation of port.DocumentTagRepository.
type MockDocumentTagRepo struct {
	mock.Mock
}

func (m *MockDocumentTagRepo) Add(ctx context.Context, tags []*domain.DocumentTag) error {
	args := m.Called(ctx, tags)
	return args.Error(0)
}

func (m *MockDocumentTagRepo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]*domain.DocumentTag, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DocumentTag), args.Error(1)
}

func (m *MockDocumentTagRepo) Delete(ctx context.Context, documentID uuid.UUID, key string) error {
	args := m.Called(ctx, documentID, key)
	return args.Error(0)
}

func (m *MockDocumentTagRepo) DeleteBySource(ctx context.Context, documentID uuid.UUID, source string) error {
	args := m.Called(ctx, documentID, source)
	return args.Error(0)
}

// MockDocumentAuditRepo is a mock implementation of port.DocumentAuditRepository.
type MockDocumentAuditRepo struct {
	mock.Mock
}

func (m *MockDocumentAuditRepo) Record(ctx context.Context, entry *domain.DocumentAuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockDocumentAuditRepo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]*domain.DocumentAuditEntry, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DocumentAuditEntry), args.Error(1)
}

// MockStatsRepo is a mock implementation of port.StatsRepository.
type MockStatsRepo struct {
	mock.Mock
}

func (m *MockStatsRepo) GetStats(ctx context.Context) (*domain.DocumentStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentStats), args.Error(1)
}

func (m *MockStatsRepo) CountByType(ctx context.Context) ([]domain.TypeCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TypeCount), args.Error(1)
}
