// Package classifier assigns a document type and confidence score to
// extracted PDF text using keyword and pattern heuristics.
package classifier

import (
	"regexp"
	"strings"

	"clindex/internal/domain"
)

const (
	// Only the opening portion of a document carries the structural
	// markers that distinguish types.
	headLength = 3000

	// Scores below this are treated as no match.
	minConfidence = 0.2

	keywordScore = 1.0
	patternScore = 1.5
)

type profile struct {
	keywords []string
	patterns []*regexp.Regexp
	minPages int
	maxPages int
	weight   float64
}

// Classifier scores text against per-type indicator profiles.
type Classifier struct {
	profiles map[domain.DocumentType]profile
	order    []domain.DocumentType
}

// New builds a classifier with the built-in indicator profiles.
func New() *Classifier {
	return &Classifier{
		profiles: buildProfiles(),
		order: []domain.DocumentType{
			domain.DocTypeCaseReport,
			domain.DocTypeTextbook,
			domain.DocTypeGuideline,
			domain.DocTypeDischargeSummary,
			domain.DocTypeResearchArticle,
			domain.DocTypeLabReport,
			domain.DocTypeRadiologyReport,
		},
	}
}

// Classify returns the best-matching document type and its confidence
// in [0, 1]. Returns DocTypeUnknown with zero confidence when nothing
// scores above the minimum threshold and no structural fallback applies.
func (c *Classifier) Classify(text string, pageCount int) (domain.DocumentType, float64) {
	head := strings.ToLower(text)
	if len(head) > headLength {
		head = head[:headLength]
	}

	bestType := domain.DocTypeUnknown
	bestScore := 0.0

	for _, docType := range c.order {
		p := c.profiles[docType]
		score := 0.0
		matches := 0

		for _, kw := range p.keywords {
			if strings.Contains(head, kw) {
				score += keywordScore
				matches++
			}
		}
		for _, re := range p.patterns {
			if re.MatchString(head) {
				score += patternScore
				matches++
			}
		}

		if p.minPages > 0 && pageCount < p.minPages {
			score *= 0.3
		}
		if p.maxPages > 0 && pageCount > p.maxPages {
			score *= 0.5
		}

		if matches == 0 {
			continue
		}

		indicators := len(p.keywords) + len(p.patterns)
		if indicators < 1 {
			indicators = 1
		}
		score = score / float64(indicators) * p.weight

		if score > bestScore {
			bestScore = score
			bestType = docType
		}
	}

	if bestScore > minConfidence {
		return bestType, bestScore
	}

	// Structural fallbacks when the indicators are inconclusive.
	if pageCount > 50 {
		return domain.DocTypeTextbook, 0.6
	}
	if strings.Contains(head, "patient") && strings.Contains(head, "diagnosis") {
		return domain.DocTypeCaseReport, 0.4
	}
	return domain.DocTypeUnknown, 0.0
}

func buildProfiles() map[domain.DocumentType]profile {
	return map[domain.DocumentType]profile{
		domain.DocTypeCaseReport: {
			keywords: []string{
				"case report", "case presentation", "we report", "we present",
				"a case of", "rare case", "unusual presentation",
			},
			patterns: compile(
				`[Aa]\s+\d{1,3}[\s\-]*year[\s\-]*old`,
				`presented\s+with`,
				`was\s+diagnosed\s+with`,
			),
			maxPages: 15,
			weight:   1.0,
		},
		domain.DocTypeTextbook: {
			keywords: []string{
				"chapter", "section", "learning objectives", "review questions",
				"summary", "key points", "bibliography", "references", "edition",
			},
			patterns: compile(
				`Chapter\s+\d+`,
				`Section\s+\d+\.\d+`,
				`Figure\s+\d+\.\d+`,
			),
			minPages: 30,
			weight:   0.8,
		},
		domain.DocTypeGuideline: {
			keywords: []string{
				"guideline", "recommendation", "protocol", "consensus",
				"algorithm", "evidence level", "grade", "standard of care",
			},
			patterns: compile(
				`Level\s+[A-C]\s+evidence`,
				`Grade\s+\d+[A-C]?\s+recommendation`,
				`should\s+be\s+(?:considered|performed|avoided)`,
			),
			weight: 0.9,
		},
		domain.DocTypeDischargeSummary: {
			keywords: []string{
				"discharge", "admission", "hospital course", "discharge diagnosis",
				"discharge medications", "follow up", "disposition",
			},
			patterns: compile(
				`Date\s+of\s+Admission`,
				`Date\s+of\s+Discharge`,
				`Discharge\s+Diagnosis`,
			),
			maxPages: 10,
			weight:   0.95,
		},
		domain.DocTypeResearchArticle: {
			keywords: []string{
				"abstract", "introduction", "methods", "results", "discussion",
				"conclusion", "participants", "study design", "statistical analysis",
			},
			patterns: compile(
				`[Pp]\s*[<=]\s*0\.\d+`,
				`[Nn]\s*=\s*\d+`,
				`95%\s+CI`,
			),
			weight: 0.85,
		},
		domain.DocTypeLabReport: {
			keywords: []string{
				"laboratory", "specimen", "reference range", "abnormal",
				"test name", "result", "units", "collected",
			},
			patterns: compile(
				`\d+\.\d+\s*-\s*\d+\.\d+`,
				`[HL]\s*$`,
				`mg/dL|mmol/L|IU/mL`,
			),
			maxPages: 5,
			weight:   0.9,
		},
		domain.DocTypeRadiologyReport: {
			keywords: []string{
				"impression", "findings", "technique", "comparison",
				"indication", "ct", "mri", "xray", "ultrasound",
			},
			patterns: compile(
				`IMPRESSION:`,
				`FINDINGS:`,
				`TECHNIQUE:`,
			),
			maxPages: 5,
			weight:   0.95,
		},
	}
}

func compile(exprs ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		res = append(res, regexp.MustCompile(`(?i)`+e))
	}
	return res
}
