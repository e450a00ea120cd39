// Package summary renders the Markdown artifacts of the pipeline: the
// per-document summary and the corpus-level master report.
package summary

import (
	"fmt"
	"strings"
	"time"

	"clindex/internal/clinical"
	"clindex/internal/domain"
)

// Limits on list sections so summaries stay readable.
const (
	maxImages          = 10
	maxChapters        = 10
	maxDiseases        = 5
	maxKeyConcepts     = 5
	maxRecommendations = 10
	maxContras         = 5
	maxMedications     = 10
	maxAbnormalValues  = 10
	maxConceptChars    = 200
)

// Meta describes the document a summary is rendered for.
type Meta struct {
	Filename     string
	DocumentType domain.DocumentType
	Confidence   float64
	ProcessedAt  time.Time
}

// Render produces the Markdown summary for one document. The data
// payload must be the typed extraction result matching the document
// type; fallback types carry a CaseReportData.
func Render(meta Meta, data any, images []domain.DocumentImage) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s Summary\n\n", meta.DocumentType.Title())
	fmt.Fprintf(&b, "**Document:** %s\n", meta.Filename)
	fmt.Fprintf(&b, "**Type:** %s (confidence: %.0f%%)\n", meta.DocumentType, meta.Confidence*100)
	fmt.Fprintf(&b, "**Processed:** %s\n\n", meta.ProcessedAt.Format(time.RFC3339))

	switch d := data.(type) {
	case *clinical.CaseReportData:
		writeCaseReport(&b, d)
	case *clinical.TextbookData:
		writeTextbook(&b, d)
	case *clinical.GuidelineData:
		writeGuideline(&b, d)
	case *clinical.DischargeSummaryData:
		writeDischargeSummary(&b, d)
	case *clinical.LabReportData:
		writeLabReport(&b, d)
	}

	writeImages(&b, images)

	return b.String()
}

func writeCaseReport(b *strings.Builder, d *clinical.CaseReportData) {
	if d.Patient.Age > 0 || d.Patient.Gender != "" {
		b.WriteString("## Patient Demographics\n")
		if d.Patient.Age > 0 {
			fmt.Fprintf(b, "- **Age:** %d\n", d.Patient.Age)
		}
		if d.Patient.Gender != "" {
			fmt.Fprintf(b, "- **Gender:** %s\n", d.Patient.Gender)
		}
		b.WriteString("\n")
	}

	if d.Timeline != (clinical.Timeline{}) {
		b.WriteString("## Timeline\n")
		if d.Timeline.OnsetDays > 0 {
			fmt.Fprintf(b, "- **Onset Days:** %d\n", d.Timeline.OnsetDays)
		}
		if d.Timeline.IllnessDay > 0 {
			fmt.Fprintf(b, "- **Illness Day:** %d\n", d.Timeline.IllnessDay)
		}
		if d.Timeline.DurationDays > 0 {
			fmt.Fprintf(b, "- **Duration Days:** %d\n", d.Timeline.DurationDays)
		}
		b.WriteString("\n")
	}

	hasDiagnostics := d.Diagnostics.PrimaryDiagnosis != "" ||
		d.Diagnostics.Platelets != nil || d.Diagnostics.WBC != nil
	if hasDiagnostics {
		b.WriteString("## Diagnostics\n")
		if d.Diagnostics.PrimaryDiagnosis != "" {
			fmt.Fprintf(b, "- **Primary Diagnosis:** %s\n", d.Diagnostics.PrimaryDiagnosis)
		}
		if d.Diagnostics.Platelets != nil {
			fmt.Fprintf(b, "- **Platelets:** %s\n", formatSeries(d.Diagnostics.Platelets))
		}
		if d.Diagnostics.WBC != nil {
			fmt.Fprintf(b, "- **WBC:** %s\n", formatSeries(d.Diagnostics.WBC))
		}
		b.WriteString("\n")
	}

	if d.Outcome != "" {
		b.WriteString("## Outcome\n")
		fmt.Fprintf(b, "- %s\n\n", d.Outcome)
	}
}

func formatSeries(s *clinical.LabSeries) string {
	parts := make([]string, len(s.Values))
	for i, v := range s.Values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	out := strings.Join(parts, ", ")
	if s.Trend != "" {
		out += fmt.Sprintf(" (%s)", s.Trend)
	}
	return out
}

func writeTextbook(b *strings.Builder, d *clinical.TextbookData) {
	if len(d.Chapters) > 0 {
		b.WriteString("## Chapter Structure\n")
		for _, ch := range head(d.Chapters, maxChapters) {
			fmt.Fprintf(b, "- Chapter %d: %s\n", ch.Number, ch.Title)
		}
		b.WriteString("\n")
	}

	if len(d.Diseases) > 0 {
		b.WriteString("## Disease Entities\n")
		for _, dis := range head(d.Diseases, maxDiseases) {
			fmt.Fprintf(b, "### %s\n%s\n\n", dis.Name, dis.Definition)
		}
	}

	if len(d.KeyConcepts) > 0 {
		b.WriteString("## Key Concepts\n")
		for _, kc := range head(d.KeyConcepts, maxKeyConcepts) {
			fmt.Fprintf(b, "- **%s:** %s\n", kc.Type, truncate(kc.Content, maxConceptChars))
		}
		b.WriteString("\n")
	}
}

func writeGuideline(b *strings.Builder, d *clinical.GuidelineData) {
	if len(d.Recommendations) > 0 {
		b.WriteString("## Recommendations\n")
		for _, rec := range head(d.Recommendations, maxRecommendations) {
			if rec.EvidenceLevel != "" {
				fmt.Fprintf(b, "- [%s] %s\n", rec.EvidenceLevel, rec.Text)
			} else {
				fmt.Fprintf(b, "- %s\n", rec.Text)
			}
		}
		b.WriteString("\n")
	}

	if len(d.Contraindications) > 0 {
		b.WriteString("## Contraindications\n")
		for _, contra := range head(d.Contraindications, maxContras) {
			fmt.Fprintf(b, "- %s\n", contra)
		}
		b.WriteString("\n")
	}
}

func writeDischargeSummary(b *strings.Builder, d *clinical.DischargeSummaryData) {
	writeEpisode(b, "Admission", d.Admission)
	writeEpisode(b, "Discharge", d.Discharge)

	if len(d.DischargeMedications) > 0 {
		b.WriteString("## Discharge Medications\n")
		for _, med := range head(d.DischargeMedications, maxMedications) {
			fmt.Fprintf(b, "- %s %s %s\n", med.Name, med.Dose, med.Unit)
		}
		b.WriteString("\n")
	}
}

func writeEpisode(b *strings.Builder, title string, ep clinical.Episode) {
	if ep == (clinical.Episode{}) {
		return
	}
	fmt.Fprintf(b, "## %s\n", title)
	if ep.Date != "" {
		fmt.Fprintf(b, "- **Date:** %s\n", ep.Date)
	}
	if ep.Diagnosis != "" {
		fmt.Fprintf(b, "- **Diagnosis:** %s\n", ep.Diagnosis)
	}
	b.WriteString("\n")
}

func writeLabReport(b *strings.Builder, d *clinical.LabReportData) {
	if len(d.AbnormalValues) > 0 {
		b.WriteString("## Abnormal Values\n")
		for _, test := range head(d.AbnormalValues, maxAbnormalValues) {
			fmt.Fprintf(b, "- **%s:** %s %s\n", test.Name, test.Value, test.Unit)
		}
		b.WriteString("\n")
	}

	if len(d.CriticalValues) > 0 {
		b.WriteString("## Critical Values\n")
		for _, test := range d.CriticalValues {
			fmt.Fprintf(b, "- **%s:** %s %s\n", test.Name, test.Value, test.Unit)
		}
		b.WriteString("\n")
	}
}

func writeImages(b *strings.Builder, images []domain.DocumentImage) {
	if len(images) == 0 {
		return
	}
	b.WriteString("## Extracted Images\n\n")
	for _, img := range head(images, maxImages) {
		caption := img.Caption
		if caption == "" {
			caption = "No caption"
		}
		fmt.Fprintf(b, "- **Image %d** (Page %d): %s [%s]\n",
			img.ImageIndex, img.PageNumber, caption, img.Relevance)
	}
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
