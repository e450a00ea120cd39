package extract

import (
	"fmt"
	"regexp"
	"strings"

	"clindex/internal/domain"
)

// FigureCaption finds the caption for the imgIndex-th image (1-based)
// on a page, using the numbering convention of the document type.
func FigureCaption(pageText string, imgIndex int, docType domain.DocumentType) string {
	var pattern string
	switch docType {
	case domain.DocTypeCaseReport:
		pattern = fmt.Sprintf(`(?:Figure|Fig\.?)\s*%d[:\.]?\s*([^\n]{1,200})`, imgIndex)
	case domain.DocTypeTextbook:
		// Textbook figures are numbered chapter.figure.
		pattern = fmt.Sprintf(`(?:Figure|Fig\.?)\s*\d+\.%d[:\.]?\s*([^\n]{1,200})`, imgIndex)
	case domain.DocTypeRadiologyReport:
		pattern = fmt.Sprintf(`(?:Image|View)\s*%d[:\.]?\s*([^\n]{1,200})`, imgIndex)
	default:
		pattern = fmt.Sprintf(`(?:Figure|Fig\.?|Image|Table)\s*%d[:\.]?\s*([^\n]{1,200})`, imgIndex)
	}

	re, err := regexp.Compile(`(?i)` + pattern)
	if err != nil {
		return ""
	}
	if m := re.FindStringSubmatch(pageText); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// AssessImageRelevance tags an image by what its caption suggests it
// shows, with type-specific vocabularies.
func AssessImageRelevance(caption string, docType domain.DocumentType) domain.ImageRelevance {
	c := strings.ToLower(caption)

	switch docType {
	case domain.DocTypeCaseReport:
		if containsAny(c, "rash", "lesion", "eruption") {
			return domain.RelevanceClinicalFinding
		}
		if containsAny(c, "ct", "mri", "xray") {
			return domain.RelevanceDiagnosticImaging
		}
	case domain.DocTypeTextbook:
		if containsAny(c, "algorithm", "flowchart") {
			return domain.RelevanceClinicalAlgorithm
		}
		if containsAny(c, "anatomy", "structure") {
			return domain.RelevanceAnatomicalDiagram
		}
	case domain.DocTypeLabReport:
		if containsAny(c, "graph", "trend", "plot") {
			return domain.RelevanceDataVisualization
		}
	}

	return domain.RelevanceClinicalDocumentation
}

func containsAny(s string, terms ...string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
