package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"clindex/internal/domain"
)

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) MasterReport(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockReportService) DocumentIndex(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockReportService) ExportCSV(ctx context.Context, w io.Writer, filter domain.DocumentFilter) error {
	args := m.Called(ctx, w, filter)
	return args.Error(0)
}

func (m *MockReportService) ExportXLSX(ctx context.Context, w io.Writer, filter domain.DocumentFilter) error {
	args := m.Called(ctx, w, filter)
	return args.Error(0)
}
