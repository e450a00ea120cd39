package summary

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clindex/internal/domain"
)

var reportTime = time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC)

func sampleRun() ([]ProcessedDoc, []FailedDoc) {
	processed := []ProcessedDoc{
		{Filename: "a.pdf", DocumentType: domain.DocTypeCaseReport, Confidence: 0.65, Chunks: 12, Folder: "case_report_a"},
		{Filename: "b.pdf", DocumentType: domain.DocTypeCaseReport, Confidence: 0.4, Chunks: 8, Folder: "case_report_b"},
		{Filename: "c.pdf", DocumentType: domain.DocTypeTextbook, Confidence: 0.6, Chunks: 80, Folder: "textbook_c"},
	}
	failed := []FailedDoc{{Filename: "broken.pdf", Error: "no extractable text"}}
	return processed, failed
}

func TestRenderMasterReport(t *testing.T) {
	processed, failed := sampleRun()

	out := RenderMasterReport(reportTime, "/data/out", processed, failed)

	assert.True(t, strings.HasPrefix(out, "# Intelligent PDF Processing Report\n"))
	assert.Contains(t, out, "**Generated:** 2026-02-03 12:00:00\n")
	assert.Contains(t, out, "- **Total Files Processed:** 3\n")
	assert.Contains(t, out, "- **Failed Files:** 1\n")
	assert.Contains(t, out, "- **Case Report:** 2 files\n")
	assert.Contains(t, out, "- **Textbook:** 1 files\n")
	assert.Contains(t, out, "## Case Report Files\n")
	assert.Contains(t, out, "### a.pdf\n- **Confidence:** 65%\n- **Chunks:** 12\n")
	assert.Contains(t, out, "## Failed Files\n\n- **broken.pdf:** no extractable text\n")

	// Case report section precedes the textbook section.
	assert.Less(t, strings.Index(out, "## Case Report Files"), strings.Index(out, "## Textbook Files"))
}

func TestRenderMasterReport_NoFailures(t *testing.T) {
	processed, _ := sampleRun()

	out := RenderMasterReport(reportTime, "/data/out", processed, nil)

	assert.NotContains(t, out, "## Failed Files")
}

func TestBuildIndex(t *testing.T) {
	processed, failed := sampleRun()

	raw, err := BuildIndex(reportTime, processed, failed)
	require.NoError(t, err)

	var idx Index
	require.NoError(t, json.Unmarshal(raw, &idx))

	assert.Equal(t, 3, idx.Statistics.TotalProcessed)
	assert.Equal(t, 1, idx.Statistics.TotalFailed)
	assert.Equal(t, 2, idx.Statistics.ByType["case_report"])
	assert.Equal(t, 1, idx.Statistics.ByType["textbook"])
	assert.Len(t, idx.Documents, 3)
	assert.Equal(t, "broken.pdf", idx.Failed[0].Filename)
}
