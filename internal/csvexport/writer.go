// Package csvexport renders document listings as CSV for download.
package csvexport

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"clindex/internal/clinical"
	"clindex/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row (14 columns).
var columns = []string{
	"Document Name",
	"Document Type",
	"Type Confidence",
	"Processing Status",
	"Pages",
	"Chunks",
	"Images",
	"Primary Diagnosis",
	"Patient Age",
	"Patient Gender",
	"Outcome",
	"Processing Error",
	"Processed At",
	"Created At",
}

// Columns returns a copy of the export header row. Shared with the
// XLSX export so both formats stay aligned.
func Columns() []string {
	out := make([]string, len(columns))
	copy(out, columns)
	return out
}

// DocumentRow converts a single document to its export row.
func DocumentRow(doc *domain.Document) []string {
	return documentToRow(doc)
}

// Writer wraps csv.Writer for exporting documents as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteDocuments converts a batch of documents to CSV rows and writes them.
func (w *Writer) WriteDocuments(docs []domain.Document) error {
	for i := range docs {
		row := documentToRow(&docs[i])
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// documentToRow converts a single document to a row. Clinical columns
// are only filled for completed documents carrying a case-report style
// payload; other types leave them empty.
func documentToRow(doc *domain.Document) []string {
	row := make([]string, len(columns))

	row[0] = doc.Name
	row[1] = string(doc.DocumentType)
	row[2] = strconv.FormatFloat(doc.TypeConfidence, 'f', 2, 64)
	row[3] = string(doc.ProcessingStatus)
	row[4] = strconv.Itoa(doc.PageCount)
	row[5] = strconv.Itoa(doc.ChunkCount)
	row[6] = strconv.Itoa(doc.ImageCount)
	row[11] = doc.ProcessingError
	row[12] = formatTime(doc.ProcessedAt)
	row[13] = doc.CreatedAt.Format(time.RFC3339)

	if doc.ProcessingStatus != domain.ProcessingStatusCompleted || len(doc.ExtractedData) == 0 {
		return row
	}

	var data clinical.CaseReportData
	if err := json.Unmarshal(doc.ExtractedData, &data); err != nil {
		return row
	}

	row[7] = data.Diagnostics.PrimaryDiagnosis
	if data.Patient.Age > 0 {
		row[8] = strconv.Itoa(data.Patient.Age)
	}
	row[9] = data.Patient.Gender
	row[10] = data.Outcome

	return row
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses
// consecutive underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_name}_{YYYY-MM-DD}.csv
func BuildFilename(name string) string {
	sanitized := SanitizeFilename(name)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.csv", sanitized, date)
}
