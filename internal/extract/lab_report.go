package extract

import (
	"regexp"
	"strings"

	"clindex/internal/clinical"
	"clindex/internal/domain"
)

var (
	// Rows shaped like "Test Name: 12.3 mg/dL (10.0 - 14.0)".
	labRowRe    = regexp.MustCompile(`([A-Za-z\s]+):\s*([\d.]+)\s*([a-zA-Z/%]+)?\s*(?:\(|Reference:)?\s*([\d.\-\s]+)?`)
	abnormalRe  = regexp.MustCompile(`(?i)\b[HL]\b|\*|abnormal|critical`)
	criticalStr = "critical"
)

// LabReportExtractor captures individual test rows and flags abnormal
// and critical values.
type LabReportExtractor struct{}

func NewLabReportExtractor() *LabReportExtractor {
	return &LabReportExtractor{}
}

func (e *LabReportExtractor) DocumentType() domain.DocumentType {
	return domain.DocTypeLabReport
}

func (e *LabReportExtractor) Extract(text string) (any, error) {
	data := &clinical.LabReportData{}

	for _, m := range labRowRe.FindAllStringSubmatch(text, -1) {
		test := clinical.LabTest{
			Name:      strings.TrimSpace(m[1]),
			Value:     m[2],
			Unit:      m[3],
			Reference: strings.TrimSpace(m[4]),
		}

		if abnormalRe.MatchString(m[0]) {
			data.AbnormalValues = append(data.AbnormalValues, test)
			if strings.Contains(strings.ToLower(m[0]), criticalStr) {
				data.CriticalValues = append(data.CriticalValues, test)
			}
		}

		data.Tests = append(data.Tests, test)
	}

	return data, nil
}
