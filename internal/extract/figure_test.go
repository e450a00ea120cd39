package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"clindex/internal/domain"
)

func TestFigureCaption(t *testing.T) {
	tests := []struct {
		name     string
		pageText string
		imgIndex int
		docType  domain.DocumentType
		want     string
	}{
		{
			name:     "case report figure",
			pageText: "Figure 1: Maculopapular rash on the trunk",
			imgIndex: 1,
			docType:  domain.DocTypeCaseReport,
			want:     "Maculopapular rash on the trunk",
		},
		{
			name:     "textbook chapter-numbered figure",
			pageText: "Figure 3.2 Dengue transmission cycle",
			imgIndex: 2,
			docType:  domain.DocTypeTextbook,
			want:     "Dengue transmission cycle",
		},
		{
			name:     "radiology image description",
			pageText: "Image 1: Chest radiograph showing pleural effusion",
			imgIndex: 1,
			docType:  domain.DocTypeRadiologyReport,
			want:     "Chest radiograph showing pleural effusion",
		},
		{
			name:     "generic table caption",
			pageText: "Table 1. Baseline laboratory values",
			imgIndex: 1,
			docType:  domain.DocTypeResearchArticle,
			want:     "Baseline laboratory values",
		},
		{
			name:     "no caption on page",
			pageText: "plain body text without any figure reference",
			imgIndex: 1,
			docType:  domain.DocTypeCaseReport,
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FigureCaption(tt.pageText, tt.imgIndex, tt.docType)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAssessImageRelevance(t *testing.T) {
	tests := []struct {
		caption string
		docType domain.DocumentType
		want    domain.ImageRelevance
	}{
		{"petechial rash on lower limbs", domain.DocTypeCaseReport, domain.RelevanceClinicalFinding},
		{"CT scan of the abdomen", domain.DocTypeCaseReport, domain.RelevanceDiagnosticImaging},
		{"triage algorithm for febrile patients", domain.DocTypeTextbook, domain.RelevanceClinicalAlgorithm},
		{"anatomy of the liver", domain.DocTypeTextbook, domain.RelevanceAnatomicalDiagram},
		{"platelet trend over admission", domain.DocTypeLabReport, domain.RelevanceDataVisualization},
		{"signed consent form", domain.DocTypeDischargeSummary, domain.RelevanceClinicalDocumentation},
		{"", domain.DocTypeCaseReport, domain.RelevanceClinicalDocumentation},
	}

	for _, tt := range tests {
		got := AssessImageRelevance(tt.caption, tt.docType)
		assert.Equal(t, tt.want, got, "caption %q", tt.caption)
	}
}
