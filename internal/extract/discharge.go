package extract

import (
	"regexp"
	"strings"

	"clindex/internal/clinical"
	"clindex/internal/domain"
)

var (
	admitDateRe   = regexp.MustCompile(`(?i)admission\s+date[:\s]+([^\n]+)`)
	dischDateRe   = regexp.MustCompile(`(?i)discharge\s+date[:\s]+([^\n]+)`)
	admitDxRe     = regexp.MustCompile(`(?i)admission\s+diagnosis[:\s]+([^\n]+)`)
	dischDxRe     = regexp.MustCompile(`(?i)discharge\s+diagnosis[:\s]+([^\n]+)`)
	courseRe      = regexp.MustCompile(`(?i)hospital\s+course[:\s]+([^\.]{50,1000})`)
	followUpRe    = regexp.MustCompile(`(?i)follow[\s\-]up[:\s]+([^\.]{20,500})`)
	medSectionRe  = regexp.MustCompile(`(?i)discharge\s+medications?[:\s]+([^\.]{50,1000})`)
	medLineItemRe = regexp.MustCompile(`([A-Z][a-z]+(?:in|ol|ide|ate)?)\s+(\d+)\s*(mg|g)`)
)

// DischargeSummaryExtractor captures admission and discharge episodes,
// hospital course and the discharge medication list.
type DischargeSummaryExtractor struct{}

func NewDischargeSummaryExtractor() *DischargeSummaryExtractor {
	return &DischargeSummaryExtractor{}
}

func (e *DischargeSummaryExtractor) DocumentType() domain.DocumentType {
	return domain.DocTypeDischargeSummary
}

func (e *DischargeSummaryExtractor) Extract(text string) (any, error) {
	data := &clinical.DischargeSummaryData{}

	if m := admitDateRe.FindStringSubmatch(text); m != nil {
		data.Admission.Date = strings.TrimSpace(m[1])
	}
	if m := dischDateRe.FindStringSubmatch(text); m != nil {
		data.Discharge.Date = strings.TrimSpace(m[1])
	}
	if m := admitDxRe.FindStringSubmatch(text); m != nil {
		data.Admission.Diagnosis = strings.TrimSpace(m[1])
	}
	if m := dischDxRe.FindStringSubmatch(text); m != nil {
		data.Discharge.Diagnosis = strings.TrimSpace(m[1])
	}
	if m := courseRe.FindStringSubmatch(text); m != nil {
		data.HospitalCourse = strings.TrimSpace(m[1])
	}

	if section := medSectionRe.FindStringSubmatch(text); section != nil {
		for _, m := range medLineItemRe.FindAllStringSubmatch(section[1], -1) {
			data.DischargeMedications = append(data.DischargeMedications, clinical.Medication{
				Name: m[1],
				Dose: m[2],
				Unit: m[3],
			})
		}
	}

	if m := followUpRe.FindStringSubmatch(text); m != nil {
		data.FollowUp = append(data.FollowUp, strings.TrimSpace(m[1]))
	}

	return data, nil
}
