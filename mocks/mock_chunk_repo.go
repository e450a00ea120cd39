package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"clindex/internal/domain"
)

// MockChunkRepo is a mock implementation of port.ChunkRepository.
type MockChunkRepo struct {
	mock.Mock
}

func (m *MockChunkRepo) CreateBatch(ctx context.Context, chunks []*domain.Chunk) error {
	args := m.Called(ctx, chunks)
	return args.Error(0)
}

func (m *MockChunkRepo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]*domain.Chunk, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Chunk), args.Error(1)
}

func (m *MockChunkRepo) DeleteByDocument(ctx context.Context, documentID uuid.UUID) error {
	args := m.Called(ctx, documentID)
	return args.Error(0)
}

// MockDocumentImageRepo is a mock implementation of port.DocumentImageRepository.
type MockDocumentImageRepo struct {
	mock.Mock
}

func (m *MockDocumentImageRepo) CreateBatch(ctx context.Context, images []*domain.DocumentImage) error {
	args := m.Called(ctx, images)
	return args.Error(0)
}

func (m *MockDocumentImageRepo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]*domain.DocumentImage, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DocumentImage), args.Error(1)
}

func (m *MockDocumentImageRepo) DeleteByDocument(ctx context.Context, documentID uuid.UUID) error {
	args := m.Called(ctx, documentID)
	return args.Error(0)
}
