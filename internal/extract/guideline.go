package extract

import (
	"regexp"
	"strings"

	"clindex/internal/clinical"
	"clindex/internal/domain"
)

var (
	strengthRecRe = regexp.MustCompile(`(?i)(recommend(?:s|ed)?|should\s+be|must\s+be)\s+([^\.]+)`)
	evidenceRecRe = regexp.MustCompile(`(?i)Level\s+([A-C])\s+(?:evidence|recommendation)[:\s]+([^\.]+)`)

	contraRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)contraindicated\s+in\s+([^\.]+)`),
		regexp.MustCompile(`(?i)should\s+not\s+be\s+(?:used|given)\s+(?:in|to)\s+([^\.]+)`),
		regexp.MustCompile(`(?i)avoid\s+(?:in|for)\s+([^\.]+)`),
	}

	monitorRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)monitor\s+([^\.]+)`),
		regexp.MustCompile(`(?i)check\s+([^\.]+)\s+(?:every|daily|weekly)`),
		regexp.MustCompile(`(?i)follow[\s\-]up\s+([^\.]+)`),
	}
)

// GuidelineExtractor captures recommendations with their evidence
// levels, contraindications and monitoring requirements.
type GuidelineExtractor struct{}

func NewGuidelineExtractor() *GuidelineExtractor {
	return &GuidelineExtractor{}
}

func (e *GuidelineExtractor) DocumentType() domain.DocumentType {
	return domain.DocTypeGuideline
}

func (e *GuidelineExtractor) Extract(text string) (any, error) {
	data := &clinical.GuidelineData{}

	for _, m := range strengthRecRe.FindAllStringSubmatch(text, -1) {
		data.Recommendations = append(data.Recommendations, clinical.Recommendation{
			Text:     strings.TrimSpace(m[2]),
			Strength: m[1],
		})
	}
	for _, m := range evidenceRecRe.FindAllStringSubmatch(text, -1) {
		data.Recommendations = append(data.Recommendations, clinical.Recommendation{
			Text:          strings.TrimSpace(m[2]),
			EvidenceLevel: strings.ToUpper(m[1]),
		})
	}

	for _, re := range contraRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			data.Contraindications = append(data.Contraindications, strings.TrimSpace(m[1]))
		}
	}

	for _, re := range monitorRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			item := strings.TrimSpace(m[1])
			if len(item) < 100 {
				data.Monitoring = append(data.Monitoring, item)
			}
		}
	}

	return data, nil
}
