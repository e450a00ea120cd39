package extract

import (
	"regexp"
	"strconv"
	"strings"

	"clindex/internal/clinical"
	"clindex/internal/domain"
)

var (
	ageRe       = regexp.MustCompile(`(?i)\b(\d{1,3})[\s\-]*year[\s\-]*old`)
	genderRe    = regexp.MustCompile(`(?i)\b(male|female|man|woman)\b`)
	complaintRe = regexp.MustCompile(`(?i)presented\s+with\s+([^\.]{10,100})`)

	onsetRe    = regexp.MustCompile(`(?i)(\d+)\s*days?\s+(?:prior|before|ago)`)
	illnessRe  = regexp.MustCompile(`(?i)day\s+(\d+)\s+of\s+(?:admission|illness)`)
	durationRe = regexp.MustCompile(`(?i)(?:after|following)\s+(\d+)\s*days?`)

	diagnosisRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:final\s+)?diagnosis\s*:?\s*([^\.]+)`),
		regexp.MustCompile(`(?i)diagnosed\s+with\s+([^\.]+)`),
		regexp.MustCompile(`(?i)consistent\s+with\s+([^\.]+)`),
	}

	outcomeRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(recovered|died|discharged|transferred)`),
		regexp.MustCompile(`(?i)(complete\s+recovery|partial\s+recovery|death)`),
		regexp.MustCompile(`(?i)(favorable\s+outcome|poor\s+outcome)`),
	}

	plateletRe = regexp.MustCompile(`(?i)platelets?\s*[:=]?\s*([\d,]+)`)
	wbcRe      = regexp.MustCompile(`(?i)(?:WBC|white\s+blood\s+cells?)\s*[:=]?\s*([\d,]+)`)

	medicationRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)([A-Z][a-z]+(?:in|ol|ide|ate|ine|one|am))\s+(\d+)\s*(mg|g|ml)`),
		regexp.MustCompile(`(?i)(acetaminophen|ibuprofen|aspirin|paracetamol)\s+(\d+)\s*(mg)`),
	}
)

// CaseReportExtractor captures patient demographics, illness timeline,
// diagnosis, lab trends and outcome from single-patient narratives.
type CaseReportExtractor struct{}

func NewCaseReportExtractor() *CaseReportExtractor {
	return &CaseReportExtractor{}
}

func (e *CaseReportExtractor) DocumentType() domain.DocumentType {
	return domain.DocTypeCaseReport
}

func (e *CaseReportExtractor) Extract(text string) (any, error) {
	data := &clinical.CaseReportData{}

	if m := ageRe.FindStringSubmatch(text); m != nil {
		if age, err := strconv.Atoi(m[1]); err == nil {
			data.Patient.Age = age
		}
	}
	if m := genderRe.FindStringSubmatch(text); m != nil {
		data.Patient.Gender = strings.ToLower(m[1])
	}
	if m := complaintRe.FindStringSubmatch(text); m != nil {
		data.ChiefComplaint = strings.TrimSpace(m[1])
	}

	if m := onsetRe.FindStringSubmatch(text); m != nil {
		data.Timeline.OnsetDays, _ = strconv.Atoi(m[1])
	}
	if m := illnessRe.FindStringSubmatch(text); m != nil {
		data.Timeline.IllnessDay, _ = strconv.Atoi(m[1])
	}
	if m := durationRe.FindStringSubmatch(text); m != nil {
		data.Timeline.DurationDays, _ = strconv.Atoi(m[1])
	}

	data.Diagnostics.Platelets = extractLabSeries(plateletRe, text, 1000, 1000000, true)
	data.Diagnostics.WBC = extractLabSeries(wbcRe, text, 100, 100000, false)

	for _, re := range diagnosisRes {
		if m := re.FindStringSubmatch(text); m != nil {
			data.Diagnostics.PrimaryDiagnosis = strings.TrimSpace(m[1])
			break
		}
	}

	data.Medications = extractMedications(text)

	for _, re := range outcomeRes {
		if m := re.FindStringSubmatch(text); m != nil {
			data.Outcome = m[1]
			break
		}
	}

	return data, nil
}

// extractLabSeries collects all in-range values for one analyte. When
// trend tracking is on, a falling last value relative to the first is
// tagged decreasing.
func extractLabSeries(re *regexp.Regexp, text string, min, max int, withTrend bool) *clinical.LabSeries {
	var values []int
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		v, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
		if err != nil {
			continue
		}
		if v >= min && v <= max {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return nil
	}

	series := &clinical.LabSeries{Values: values}
	if withTrend {
		series.Trend = "stable"
		if len(values) > 1 && values[len(values)-1] < values[0] {
			series.Trend = "decreasing"
		}
	}
	return series
}

func extractMedications(text string) []clinical.Medication {
	var meds []clinical.Medication
	for _, re := range medicationRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			meds = append(meds, clinical.Medication{
				Name: m[1],
				Dose: m[2],
				Unit: m[3],
			})
		}
	}
	return meds
}
