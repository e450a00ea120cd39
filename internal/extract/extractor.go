// Package extract implements the document-type-specific extraction
// strategies that turn raw PDF text into typed clinical payloads.
package extract

import (
	"clindex/internal/domain"
)

// Extractor pulls a typed clinical payload out of full document text.
// The concrete return type depends on the document type.
type Extractor interface {
	Extract(text string) (any, error)
	DocumentType() domain.DocumentType
}

// Registry maps document types to their extraction strategy.
type Registry struct {
	extractors map[domain.DocumentType]Extractor
	fallback   Extractor
}

// NewRegistry builds a registry with all built-in extractors. Types
// without a dedicated strategy (research articles, radiology reports,
// unknown) fall back to the case report extractor, which captures the
// generic clinical fields.
func NewRegistry() *Registry {
	caseReport := NewCaseReportExtractor()
	r := &Registry{
		extractors: make(map[domain.DocumentType]Extractor),
		fallback:   caseReport,
	}
	r.register(caseReport)
	r.register(NewTextbookExtractor())
	r.register(NewGuidelineExtractor())
	r.register(NewDischargeSummaryExtractor())
	r.register(NewLabReportExtractor())
	return r
}

func (r *Registry) register(e Extractor) {
	r.extractors[e.DocumentType()] = e
}

// ForType returns the extractor for the given document type, or the
// fallback when no dedicated strategy exists.
func (r *Registry) ForType(docType domain.DocumentType) Extractor {
	if e, ok := r.extractors[docType]; ok {
		return e
	}
	return r.fallback
}
