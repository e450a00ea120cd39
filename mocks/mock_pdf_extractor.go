package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"clindex/internal/port"
)

// MockPDFExtractor is a mock implementation of port.PDFExtractor.
type MockPDFExtractor struct {
	mock.Mock
}

func (m *MockPDFExtractor) Extract(ctx context.Context, data []byte) (*port.PDFContent, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.PDFContent), args.Error(1)
}

func (m *MockPDFExtractor) Name() string {
	args := m.Called()
	return args.String(0)
}
