package csvexport

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clindex/internal/clinical"
	"clindex/internal/domain"
)

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, 14)
	assert.Equal(t, "Document Name", row[0])
	assert.Equal(t, "Document Type", row[1])
	assert.Equal(t, "Created At", row[13])
}

func TestWriteDocuments_Completed(t *testing.T) {
	data := clinical.CaseReportData{
		Patient: clinical.Patient{Age: 34, Gender: "man"},
		Diagnostics: clinical.Diagnostics{
			PrimaryDiagnosis: "dengue hemorrhagic fever",
		},
		Outcome: "recovered",
	}
	extracted, err := json.Marshal(&data)
	require.NoError(t, err)

	processedAt := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	createdAt := time.Date(2026, 1, 14, 8, 0, 0, 0, time.UTC)

	doc := domain.Document{
		ID:               uuid.New(),
		Name:             "dengue_case.pdf",
		DocumentType:     domain.DocTypeCaseReport,
		TypeConfidence:   0.65,
		PageCount:        8,
		ExtractedData:    extracted,
		ProcessingStatus: domain.ProcessingStatusCompleted,
		ProcessedAt:      &processedAt,
		ChunkCount:       12,
		ImageCount:       3,
		CreatedAt:        createdAt,
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteDocuments([]domain.Document{doc}))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Equal(t, "dengue_case.pdf", row[0])
	assert.Equal(t, "case_report", row[1])
	assert.Equal(t, "0.65", row[2])
	assert.Equal(t, "completed", row[3])
	assert.Equal(t, "8", row[4])
	assert.Equal(t, "12", row[5])
	assert.Equal(t, "3", row[6])
	assert.Equal(t, "dengue hemorrhagic fever", row[7])
	assert.Equal(t, "34", row[8])
	assert.Equal(t, "man", row[9])
	assert.Equal(t, "recovered", row[10])
	assert.Equal(t, "2026-01-15T10:30:00Z", row[12])
	assert.Equal(t, "2026-01-14T08:00:00Z", row[13])
}

func TestWriteDocuments_PendingLeavesClinicalColumnsEmpty(t *testing.T) {
	doc := domain.Document{
		Name:             "queued.pdf",
		DocumentType:     domain.DocTypeUnknown,
		ProcessingStatus: domain.ProcessingStatusQueued,
		CreatedAt:        time.Date(2026, 1, 14, 8, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteDocuments([]domain.Document{doc}))
	w.Flush()

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Equal(t, "queued.pdf", row[0])
	assert.Empty(t, row[7])
	assert.Empty(t, row[8])
	assert.Empty(t, row[12])
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "dengue_reports_2024", SanitizeFilename("dengue reports (2024)"))
	assert.Equal(t, "a_b", SanitizeFilename("__a___b__"))
	assert.Len(t, SanitizeFilename(strings.Repeat("x", 150)), 100)
}

func TestBuildFilename(t *testing.T) {
	name := BuildFilename("dengue reports")
	assert.True(t, strings.HasPrefix(name, "dengue_reports_"))
	assert.True(t, strings.HasSuffix(name, ".csv"))
}
