// Package clinical defines the typed extraction payloads produced by the
// document-type-specific extractors. A Document's ExtractedData column holds
// exactly one of these, selected by its DocumentType.
package clinical

// Patient holds demographics extracted from a case narrative.
type Patient struct {
	Age    int    `json:"age,omitempty"`
	Gender string `json:"gender,omitempty"`
}

// Timeline holds illness timing in days.
type Timeline struct {
	OnsetDays    int `json:"onset_days,omitempty"`
	IllnessDay   int `json:"illness_day,omitempty"`
	DurationDays int `json:"duration_days,omitempty"`
}

// LabSeries is a sequence of values for a single analyte with a trend tag.
type LabSeries struct {
	Values []int  `json:"values"`
	Trend  string `json:"trend,omitempty"`
}

// Diagnostics holds the primary diagnosis and tracked lab series.
type Diagnostics struct {
	PrimaryDiagnosis string     `json:"primary_diagnosis,omitempty"`
	Platelets        *LabSeries `json:"platelets,omitempty"`
	WBC              *LabSeries `json:"wbc,omitempty"`
}

// Medication is a drug with its dose.
type Medication struct {
	Name string `json:"name"`
	Dose string `json:"dose"`
	Unit string `json:"unit,omitempty"`
}

// CaseReportData is the payload for single-patient clinical accounts.
type CaseReportData struct {
	Patient        Patient      `json:"patient"`
	ChiefComplaint string       `json:"chief_complaint,omitempty"`
	Timeline       Timeline     `json:"timeline"`
	Diagnostics    Diagnostics  `json:"diagnostics"`
	Medications    []Medication `json:"medications,omitempty"`
	Outcome        string       `json:"outcome,omitempty"`
}

// Chapter is one entry in a textbook's chapter structure.
type Chapter struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
}

// Disease is a named disease entity with its extracted definition.
type Disease struct {
	Name       string `json:"name"`
	Definition string `json:"definition"`
}

// KeyConcept is a tagged free-text excerpt (diagnostic criteria, key point).
type KeyConcept struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// TextbookData is the payload for multi-chapter reference documents.
type TextbookData struct {
	Chapters    []Chapter    `json:"chapters,omitempty"`
	Diseases    []Disease    `json:"diseases,omitempty"`
	Treatments  []string     `json:"treatments,omitempty"`
	KeyConcepts []KeyConcept `json:"key_concepts,omitempty"`
}

// Recommendation is a guideline recommendation with its evidence level
// or strength qualifier (exactly one is set).
type Recommendation struct {
	Text          string `json:"text"`
	EvidenceLevel string `json:"evidence_level,omitempty"`
	Strength      string `json:"strength,omitempty"`
}

// GuidelineData is the payload for clinical practice guidelines.
type GuidelineData struct {
	Recommendations   []Recommendation `json:"recommendations,omitempty"`
	Contraindications []string         `json:"contraindications,omitempty"`
	Monitoring        []string         `json:"monitoring,omitempty"`
}

// Episode holds the date and diagnosis for an admission or discharge.
type Episode struct {
	Date      string `json:"date,omitempty"`
	Diagnosis string `json:"diagnosis,omitempty"`
}

// DischargeSummaryData is the payload for hospital discharge summaries.
type DischargeSummaryData struct {
	Admission            Episode      `json:"admission"`
	Discharge            Episode      `json:"discharge"`
	HospitalCourse       string       `json:"hospital_course,omitempty"`
	DischargeMedications []Medication `json:"discharge_medications,omitempty"`
	FollowUp             []string     `json:"follow_up,omitempty"`
}

// LabTest is one row of a laboratory report.
type LabTest struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	Unit      string `json:"unit,omitempty"`
	Reference string `json:"reference,omitempty"`
}

// LabReportData is the payload for laboratory reports.
type LabReportData struct {
	Tests          []LabTest `json:"tests,omitempty"`
	AbnormalValues []LabTest `json:"abnormal_values,omitempty"`
	CriticalValues []LabTest `json:"critical_values,omitempty"`
}
