package summary

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"clindex/internal/domain"
)

// ProcessedDoc is one successfully processed document in a report run.
type ProcessedDoc struct {
	Filename     string              `json:"file"`
	DocumentType domain.DocumentType `json:"type"`
	Confidence   float64             `json:"confidence"`
	Chunks       int                 `json:"chunks"`
	Folder       string              `json:"folder"`
}

// FailedDoc is one document that could not be processed.
type FailedDoc struct {
	Filename string `json:"file"`
	Error    string `json:"error"`
}

// RenderMasterReport produces the corpus-level Markdown report,
// grouping processed documents by type in the canonical type order.
func RenderMasterReport(generatedAt time.Time, outputDir string, processed []ProcessedDoc, failed []FailedDoc) string {
	byType := groupByType(processed)
	typeOrder := append(append([]domain.DocumentType{}, domain.AllDocumentTypes...), domain.DocTypeUnknown)

	var b strings.Builder
	b.WriteString("# Intelligent PDF Processing Report\n\n")
	fmt.Fprintf(&b, "**Generated:** %s\n", generatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**Output Directory:** `%s`\n\n", outputDir)

	b.WriteString("## Summary Statistics\n\n")
	fmt.Fprintf(&b, "- **Total Files Processed:** %d\n", len(processed))
	fmt.Fprintf(&b, "- **Failed Files:** %d\n\n", len(failed))

	b.WriteString("### Document Type Distribution\n\n")
	for _, docType := range typeOrder {
		if docs := byType[docType]; len(docs) > 0 {
			fmt.Fprintf(&b, "- **%s:** %d files\n", docType.Title(), len(docs))
		}
	}
	b.WriteString("\n")

	for _, docType := range typeOrder {
		docs := byType[docType]
		if len(docs) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s Files\n\n", docType.Title())
		for _, doc := range docs {
			fmt.Fprintf(&b, "### %s\n", doc.Filename)
			fmt.Fprintf(&b, "- **Confidence:** %.0f%%\n", doc.Confidence*100)
			fmt.Fprintf(&b, "- **Chunks:** %d\n", doc.Chunks)
			fmt.Fprintf(&b, "- **Folder:** `%s`\n\n", doc.Folder)
		}
	}

	if len(failed) > 0 {
		b.WriteString("## Failed Files\n\n")
		for _, f := range failed {
			fmt.Fprintf(&b, "- **%s:** %s\n", f.Filename, truncate(f.Error, 100))
		}
	}

	return b.String()
}

// Index is the machine-readable companion of the master report.
type Index struct {
	ProcessingDate time.Time       `json:"processing_date"`
	Statistics     IndexStatistics `json:"statistics"`
	Documents      []ProcessedDoc  `json:"documents"`
	Failed         []FailedDoc     `json:"failed"`
}

// IndexStatistics aggregates counts for the index.
type IndexStatistics struct {
	TotalProcessed int            `json:"total_processed"`
	ByType         map[string]int `json:"by_type"`
	TotalFailed    int            `json:"total_failed"`
}

// BuildIndex marshals the JSON document index for a report run.
func BuildIndex(generatedAt time.Time, processed []ProcessedDoc, failed []FailedDoc) ([]byte, error) {
	byType := make(map[string]int)
	for _, doc := range processed {
		byType[string(doc.DocumentType)]++
	}

	idx := Index{
		ProcessingDate: generatedAt,
		Statistics: IndexStatistics{
			TotalProcessed: len(processed),
			ByType:         byType,
			TotalFailed:    len(failed),
		},
		Documents: processed,
		Failed:    failed,
	}
	return json.MarshalIndent(idx, "", "  ")
}

func groupByType(processed []ProcessedDoc) map[domain.DocumentType][]ProcessedDoc {
	byType := make(map[domain.DocumentType][]ProcessedDoc)
	for _, doc := range processed {
		byType[doc.DocumentType] = append(byType[doc.DocumentType], doc)
	}
	return byType
}
