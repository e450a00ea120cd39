package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"clindex/internal/domain"
	"clindex/internal/service"
	"clindex/mocks"
)

func reportCorpus() []*domain.Document {
	return []*domain.Document{
		{
			ID:               uuid.New(),
			Name:             "dengue-case.pdf",
			DocumentType:     domain.DocTypeCaseReport,
			TypeConfidence:   0.82,
			PageCount:        4,
			ChunkCount:       12,
			ProcessingStatus: domain.ProcessingStatusCompleted,
			ExtractedData:    json.RawMessage("{}"),
		},
		{
			ID:               uuid.New(),
			Name:             "who-guideline.pdf",
			DocumentType:     domain.DocTypeGuideline,
			TypeConfidence:   0.71,
			PageCount:        40,
			ChunkCount:       80,
			ProcessingStatus: domain.ProcessingStatusCompleted,
			ExtractedData:    json.RawMessage("{}"),
		},
		{
			ID:               uuid.New(),
			Name:             "scanned-notes.pdf",
			ProcessingStatus: domain.ProcessingStatusFailed,
			ProcessingError:  "no extractable text in document",
			ExtractedData:    json.RawMessage("{}"),
		},
	}
}

func TestReportService_MasterReport(t *testing.T) {
	docRepo := new(mocks.MockDocumentRepo)
	svc := service.NewReportService(docRepo)

	docRepo.On("List", mock.Anything, mock.AnythingOfType("domain.DocumentFilter")).
		Return(reportCorpus(), 3, nil)

	md, err := svc.MasterReport(context.Background())

	require.NoError(t, err)
	assert.Contains(t, md, "dengue-case.pdf")
	assert.Contains(t, md, "who-guideline.pdf")
	assert.Contains(t, md, "scanned-notes.pdf")
	assert.Contains(t, md, "no extractable text")
}

func TestReportService_DocumentIndex(t *testing.T) {
	docRepo := new(mocks.MockDocumentRepo)
	svc := service.NewReportService(docRepo)

	docRepo.On("List", mock.Anything, mock.AnythingOfType("domain.DocumentFilter")).
		Return(reportCorpus(), 3, nil)

	raw, err := svc.DocumentIndex(context.Background())

	require.NoError(t, err)

	var idx map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &idx))
	assert.Contains(t, string(raw), "dengue-case.pdf")
}

func TestReportService_ExportCSV(t *testing.T) {
	docRepo := new(mocks.MockDocumentRepo)
	svc := service.NewReportService(docRepo)

	docRepo.On("List", mock.Anything, mock.AnythingOfType("domain.DocumentFilter")).
		Return(reportCorpus(), 3, nil)

	var buf bytes.Buffer
	err := svc.ExportCSV(context.Background(), &buf, domain.DocumentFilter{})

	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4) // header + 3 documents
	assert.Contains(t, lines[0], "Document Name")
	assert.Contains(t, lines[0], "Primary Diagnosis")
	assert.Contains(t, buf.String(), "dengue-case.pdf")
	assert.Contains(t, buf.String(), "case_report")
}

func TestReportService_ExportCSV_DefaultsLimit(t *testing.T) {
	docRepo := new(mocks.MockDocumentRepo)
	svc := service.NewReportService(docRepo)

	docRepo.On("List", mock.Anything, mock.MatchedBy(func(f domain.DocumentFilter) bool {
		return f.Limit == 10000
	})).Return([]*domain.Document{}, 0, nil)

	var buf bytes.Buffer
	err := svc.ExportCSV(context.Background(), &buf, domain.DocumentFilter{})

	require.NoError(t, err)
	docRepo.AssertExpectations(t)
}

func TestReportService_ExportXLSX(t *testing.T) {
	docRepo := new(mocks.MockDocumentRepo)
	svc := service.NewReportService(docRepo)

	docRepo.On("List", mock.Anything, mock.AnythingOfType("domain.DocumentFilter")).
		Return(reportCorpus(), 3, nil)

	var buf bytes.Buffer
	err := svc.ExportXLSX(context.Background(), &buf, domain.DocumentFilter{})

	require.NoError(t, err)
	// xlsx files are zip archives
	assert.Equal(t, []byte{'P', 'K'}, buf.Bytes()[:2])
}

func TestReportService_ListError(t *testing.T) {
	docRepo := new(mocks.MockDocumentRepo)
	svc := service.NewReportService(docRepo)

	docRepo.On("List", mock.Anything, mock.AnythingOfType("domain.DocumentFilter")).
		Return(nil, 0, errors.New("db down"))

	_, err := svc.MasterReport(context.Background())
	assert.Error(t, err)

	var buf bytes.Buffer
	assert.Error(t, svc.ExportCSV(context.Background(), &buf, domain.DocumentFilter{}))
}
