package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"clindex/internal/domain"
	"clindex/internal/service"
)

// MockDocumentService is a mock implementation of service.DocumentService.
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) CreateAndProcess(ctx context.Context, input *service.CreateDocumentInput) (*domain.Document, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) GetByID(ctx context.Context, docID uuid.UUID) (*domain.Document, error) {
	args := m.Called(ctx, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) GetByFileID(ctx context.Context, fileID uuid.UUID) (*domain.Document, error) {
	args := m.Called(ctx, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) List(ctx context.Context, filter domain.DocumentFilter) ([]*domain.Document, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Document), args.Int(1), args.Error(2)
}

func (m *MockDocumentService) RetryProcess(ctx context.Context, docID, userID uuid.UUID) (*domain.Document, error) {
	args := m.Called(ctx, docID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, docID, userID uuid.UUID) error {
	args := m.Called(ctx, docID, userID)
	return args.Error(0)
}

func (m *MockDocumentService) GetSummary(ctx context.Context, docID uuid.UUID) (string, error) {
	args := m.Called(ctx, docID)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentService) ListChunks(ctx context.Context, docID uuid.UUID) ([]*domain.Chunk, error) {
	args := m.Called(ctx, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Chunk), args.Error(1)
}

func (m *MockDocumentService) ListImages(ctx context.Context, docID uuid.UUID) ([]*domain.DocumentImage, error) {
	args := m.Called(ctx, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DocumentImage), args.Error(1)
}

func (m *MockDocumentService) GetImageURL(ctx context.Context, docID, imageID uuid.UUID) (string, error) {
	args := m.Called(ctx, docID, imageID)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentService) ListTags(ctx context.Context, docID uuid.UUID) ([]*domain.DocumentTag, error) {
	args := m.Called(ctx, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DocumentTag), args.Error(1)
}

func (m *MockDocumentService) AddTags(ctx context.Context, docID, userID uuid.UUID, tags map[string]string) ([]*domain.DocumentTag, error) {
	args := m.Called(ctx, docID, userID, tags)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DocumentTag), args.Error(1)
}

func (m *MockDocumentService) DeleteTag(ctx context.Context, docID, userID uuid.UUID, key string) error {
	args := m.Called(ctx, docID, userID, key)
	return args.Error(0)
}

func (m *MockDocumentService) ListAudit(ctx context.Context, docID uuid.UUID) ([]*domain.DocumentAuditEntry, error) {
	args := m.Called(ctx, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DocumentAuditEntry), args.Error(1)
}

func (m *MockDocumentService) ProcessDocument(ctx context.Context, doc *domain.Document, maxAttempts int) {
	m.Called(ctx, doc, maxAttempts)
}
