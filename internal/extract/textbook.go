package extract

import (
	"regexp"
	"strconv"
	"strings"

	"clindex/internal/clinical"
	"clindex/internal/domain"
)

var (
	chapterRe = regexp.MustCompile(`(?i)Chapter\s+(\d+)[:\.]?\s*([^\n]{1,100})`)

	diseaseRes = []*regexp.Regexp{
		regexp.MustCompile(`([A-Z][a-z]+(?:\s+[a-z]+)?)\s+is\s+(?:a|an)\s+([^\.]+disease[^\.]+)`),
		regexp.MustCompile(`([A-Z][a-z]+(?:\s+[a-z]+)?)\s+(?:syndrome|disorder)\s+characterized\s+by\s+([^\.]+)`),
	}

	criteriaRe = regexp.MustCompile(`(?i)diagnostic\s+criteria[:\s]+([^\.]{20,500})`)

	treatmentRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)treatment\s+(?:includes|consists\s+of|involves)\s+([^\.]+)`),
		regexp.MustCompile(`(?i)first[\s\-]line\s+(?:treatment|therapy)\s+(?:is|includes)\s+([^\.]+)`),
	}

	keyPointRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:key\s+points?|summary|important\s+points?)[:\s]+([^\.]{20,500})`),
		regexp.MustCompile(`(?i)(?:remember|note)\s+that\s+([^\.]{20,200})`),
	}
)

// TextbookExtractor captures chapter structure, disease definitions,
// treatment protocols and key concepts from reference texts.
type TextbookExtractor struct{}

func NewTextbookExtractor() *TextbookExtractor {
	return &TextbookExtractor{}
}

func (e *TextbookExtractor) DocumentType() domain.DocumentType {
	return domain.DocTypeTextbook
}

func (e *TextbookExtractor) Extract(text string) (any, error) {
	data := &clinical.TextbookData{}

	for _, m := range chapterRe.FindAllStringSubmatch(text, -1) {
		num, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		data.Chapters = append(data.Chapters, clinical.Chapter{
			Number: num,
			Title:  strings.TrimSpace(m[2]),
		})
	}

	seen := make(map[string]bool)
	for _, re := range diseaseRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			name := m[1]
			if seen[name] {
				continue
			}
			seen[name] = true
			data.Diseases = append(data.Diseases, clinical.Disease{
				Name:       name,
				Definition: strings.TrimSpace(m[2]),
			})
		}
	}

	if m := criteriaRe.FindStringSubmatch(text); m != nil {
		data.KeyConcepts = append(data.KeyConcepts, clinical.KeyConcept{
			Type:    "diagnostic_criteria",
			Content: strings.TrimSpace(m[1]),
		})
	}

	for _, re := range treatmentRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			treatment := strings.TrimSpace(m[1])
			if len(treatment) < 200 {
				data.Treatments = append(data.Treatments, treatment)
			}
		}
	}

	for _, re := range keyPointRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			data.KeyConcepts = append(data.KeyConcepts, clinical.KeyConcept{
				Type:    "key_point",
				Content: strings.TrimSpace(m[1]),
			})
		}
	}

	return data, nil
}
