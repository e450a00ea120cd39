package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clindex/internal/clinical"
	"clindex/internal/domain"
)

func TestRegistry_ForType(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, domain.DocTypeTextbook, r.ForType(domain.DocTypeTextbook).DocumentType())
	assert.Equal(t, domain.DocTypeLabReport, r.ForType(domain.DocTypeLabReport).DocumentType())

	// Types without a dedicated strategy use the generic clinical extractor.
	assert.Equal(t, domain.DocTypeCaseReport, r.ForType(domain.DocTypeResearchArticle).DocumentType())
	assert.Equal(t, domain.DocTypeCaseReport, r.ForType(domain.DocTypeRadiologyReport).DocumentType())
	assert.Equal(t, domain.DocTypeCaseReport, r.ForType(domain.DocTypeUnknown).DocumentType())
}

func TestCaseReportExtractor(t *testing.T) {
	text := "A 34-year-old man presented with fever and severe headache. " +
		"The fever began 5 days prior to admission. " +
		"Platelets: 150,000 on admission, falling to platelets 45,000 by day 5. " +
		"He was diagnosed with dengue hemorrhagic fever. " +
		"Paracetamol 500 mg was given for fever control. " +
		"The patient recovered without sequelae."

	out, err := NewCaseReportExtractor().Extract(text)
	require.NoError(t, err)
	data, ok := out.(*clinical.CaseReportData)
	require.True(t, ok)

	assert.Equal(t, 34, data.Patient.Age)
	assert.Equal(t, "man", data.Patient.Gender)
	assert.Equal(t, "fever and severe headache", data.ChiefComplaint)
	assert.Equal(t, 5, data.Timeline.OnsetDays)
	assert.Equal(t, "dengue hemorrhagic fever", data.Diagnostics.PrimaryDiagnosis)
	assert.Equal(t, "recovered", data.Outcome)

	require.NotNil(t, data.Diagnostics.Platelets)
	assert.Equal(t, []int{150000, 45000}, data.Diagnostics.Platelets.Values)
	assert.Equal(t, "decreasing", data.Diagnostics.Platelets.Trend)

	require.NotEmpty(t, data.Medications)
	assert.Equal(t, "Paracetamol", data.Medications[0].Name)
	assert.Equal(t, "500", data.Medications[0].Dose)
}

func TestCaseReportExtractor_EmptyText(t *testing.T) {
	out, err := NewCaseReportExtractor().Extract("")
	require.NoError(t, err)
	data := out.(*clinical.CaseReportData)

	assert.Zero(t, data.Patient.Age)
	assert.Empty(t, data.Diagnostics.PrimaryDiagnosis)
	assert.Nil(t, data.Diagnostics.Platelets)
	assert.Empty(t, data.Medications)
}

func TestTextbookExtractor(t *testing.T) {
	text := "Chapter 3: Dengue Pathophysiology\n" +
		"Dengue is a mosquito-borne viral disease that affects millions annually. " +
		"Diagnostic criteria: fever plus two of nausea, rash or generalized aches. " +
		"Treatment includes aggressive fluid resuscitation and close monitoring. " +
		"Key points: early recognition of warning signs reduces mortality substantially."

	out, err := NewTextbookExtractor().Extract(text)
	require.NoError(t, err)
	data := out.(*clinical.TextbookData)

	require.Len(t, data.Chapters, 1)
	assert.Equal(t, 3, data.Chapters[0].Number)
	assert.Equal(t, "Dengue Pathophysiology", data.Chapters[0].Title)

	require.NotEmpty(t, data.Diseases)
	assert.Equal(t, "Dengue", data.Diseases[0].Name)
	assert.Contains(t, data.Diseases[0].Definition, "mosquito-borne viral disease")

	require.NotEmpty(t, data.Treatments)
	assert.Contains(t, data.Treatments[0], "fluid resuscitation")

	require.GreaterOrEqual(t, len(data.KeyConcepts), 2)
	assert.Equal(t, "diagnostic_criteria", data.KeyConcepts[0].Type)
	assert.Contains(t, data.KeyConcepts[0].Content, "fever plus two")
}

func TestGuidelineExtractor(t *testing.T) {
	text := "Fluid therapy should be initiated at the first warning sign. " +
		"Aspirin is contraindicated in patients with bleeding tendencies. " +
		"Monitor platelet counts daily during the critical phase. " +
		"Level B evidence: use isotonic crystalloids for initial resuscitation."

	out, err := NewGuidelineExtractor().Extract(text)
	require.NoError(t, err)
	data := out.(*clinical.GuidelineData)

	var strengths, levels int
	for _, rec := range data.Recommendations {
		if rec.Strength != "" {
			strengths++
		}
		if rec.EvidenceLevel != "" {
			levels++
			assert.Equal(t, "B", rec.EvidenceLevel)
		}
	}
	assert.GreaterOrEqual(t, strengths, 1)
	assert.Equal(t, 1, levels)

	require.NotEmpty(t, data.Contraindications)
	assert.Contains(t, data.Contraindications[0], "patients with bleeding")

	require.NotEmpty(t, data.Monitoring)
	assert.Contains(t, data.Monitoring[0], "platelet counts")
}

func TestDischargeSummaryExtractor(t *testing.T) {
	text := "Admission Date: 2024-01-02\n" +
		"Discharge Date: 2024-01-09\n" +
		"Admission Diagnosis: dengue fever with warning signs\n" +
		"Discharge Diagnosis: resolved dengue fever\n" +
		"Hospital Course: The patient was admitted with high fever and " +
		"thrombocytopenia, managed with intravenous fluids and monitored until " +
		"platelet recovery on day six. " +
		"Discharge Medications: Paracetamol 500 mg as needed for fever and " +
		"Omeprazole 20 mg daily until gastritis symptoms resolve fully. " +
		"Follow up: review in the outpatient clinic in one week."

	out, err := NewDischargeSummaryExtractor().Extract(text)
	require.NoError(t, err)
	data := out.(*clinical.DischargeSummaryData)

	assert.Equal(t, "2024-01-02", data.Admission.Date)
	assert.Equal(t, "2024-01-09", data.Discharge.Date)
	assert.Equal(t, "dengue fever with warning signs", data.Admission.Diagnosis)
	assert.Equal(t, "resolved dengue fever", data.Discharge.Diagnosis)
	assert.Contains(t, data.HospitalCourse, "intravenous fluids")

	require.Len(t, data.DischargeMedications, 2)
	assert.Equal(t, "Paracetamol", data.DischargeMedications[0].Name)
	assert.Equal(t, "Omeprazole", data.DischargeMedications[1].Name)

	require.Len(t, data.FollowUp, 1)
	assert.Contains(t, data.FollowUp[0], "outpatient clinic")
}

func TestLabReportExtractor(t *testing.T) {
	text := "Hemoglobin: 12.5 g/dL (12.0 - 16.0)\n" +
		"Glucose: 600 critical high reading repeated twice\n"

	out, err := NewLabReportExtractor().Extract(text)
	require.NoError(t, err)
	data := out.(*clinical.LabReportData)

	require.NotEmpty(t, data.Tests)
	assert.Equal(t, "Hemoglobin", data.Tests[0].Name)
	assert.Equal(t, "12.5", data.Tests[0].Value)
	assert.Equal(t, "g/dL", data.Tests[0].Unit)

	require.NotEmpty(t, data.AbnormalValues)
	assert.Equal(t, "Glucose", data.AbnormalValues[0].Name)
	require.NotEmpty(t, data.CriticalValues)
	assert.Equal(t, "Glucose", data.CriticalValues[0].Name)
}
