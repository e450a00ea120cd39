package summary

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clindex/internal/domain"
)

func payloadFixture() (Meta, []*domain.Chunk, []domain.DocumentImage, json.RawMessage) {
	meta := Meta{
		Filename:     "dengue-case.pdf",
		DocumentType: domain.DocTypeCaseReport,
		Confidence:   0.72,
		ProcessedAt:  time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC),
	}
	chunks := []*domain.Chunk{
		{ID: uuid.New(), ChunkIndex: 0, ChunkType: domain.ChunkTypeText, Text: "fever for 5 days", TokenCount: 5, PageNumber: 1},
		{ID: uuid.New(), ChunkIndex: 1, ChunkType: domain.ChunkTypeText, Text: "platelet count 48,000", TokenCount: 7, PageNumber: 2},
		{ID: uuid.New(), ChunkIndex: 2, ChunkType: domain.ChunkTypeImage, Text: "Image: Petechial rash on admission", TokenCount: 8, PageNumber: 2},
	}
	images := []domain.DocumentImage{
		{
			PageNumber: 2, ImageIndex: 1,
			S3Key:     "documents/x/images/dengue-case_p2_img1_ab12cd34.png",
			Caption:   "Petechial rash on admission",
			Relevance: domain.RelevanceClinicalFinding,
		},
	}
	extracted := json.RawMessage(`{"patient":{"age":34},"diagnostics":{"primary_diagnosis":"dengue fever"},"outcome":"recovered"}`)
	return meta, chunks, images, extracted
}

func TestBuildVectorPayload(t *testing.T) {
	meta, chunks, images, extracted := payloadFixture()

	p := BuildVectorPayload("ab12cd34ef56", meta, 3, extracted, chunks, images)

	assert.Equal(t, "ab12cd34ef56", p.DocumentID)
	assert.Equal(t, domain.DocTypeCaseReport, p.DocumentType)
	assert.Equal(t, 0.72, p.TypeConfidence)
	assert.Equal(t, "dengue-case.pdf", p.Metadata.Filename)
	assert.Equal(t, 3, p.Metadata.Pages)
	assert.True(t, p.Metadata.HasImages)
	assert.Equal(t, 1, p.Metadata.ImageCount)

	require.Len(t, p.TextChunks, 2)
	require.Len(t, p.ImageChunks, 1)
	assert.Equal(t, 3, p.TotalChunks)

	img := p.ImageChunks[0]
	assert.Equal(t, chunks[2].ID.String(), img.ChunkID)
	assert.Equal(t, "Image: Petechial rash on admission", img.Text)
	assert.Equal(t, domain.ChunkTypeImage, img.ChunkType)
	assert.Equal(t, 2, img.Page)
	assert.Equal(t, images[0].S3Key, img.ImageKey)
	assert.Equal(t, domain.RelevanceClinicalFinding, img.Relevance)

	assert.Empty(t, p.TextChunks[0].ImageKey)
}

func TestBuildVectorPayload_NoImages(t *testing.T) {
	meta, chunks, _, extracted := payloadFixture()

	p := BuildVectorPayload("ab12cd34ef56", meta, 3, extracted, chunks[:2], nil)

	assert.False(t, p.Metadata.HasImages)
	assert.Equal(t, 0, p.Metadata.ImageCount)
	assert.Empty(t, p.ImageChunks)
	assert.Equal(t, 2, p.TotalChunks)

	// Round-trips with empty arrays, not nulls
	raw, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"image_chunks":[]`)
}

func TestBuildExtractionReport(t *testing.T) {
	meta, chunks, images, extracted := payloadFixture()
	p := BuildVectorPayload("ab12cd34ef56", meta, 3, extracted, chunks, images)

	r := BuildExtractionReport(p)

	assert.Equal(t, domain.DocTypeCaseReport, r.DocumentType)
	assert.Equal(t, 0.72, r.Confidence)
	assert.Equal(t, 3, r.Stats.TotalPages)
	assert.Equal(t, 2, r.Stats.TextChunks)
	assert.Equal(t, 1, r.Stats.ImageChunks)
	assert.Equal(t, 3, r.Stats.ExtractedFields)
}

func TestBuildExtractionReport_BadExtractedData(t *testing.T) {
	meta, chunks, images, _ := payloadFixture()
	p := BuildVectorPayload("ab12cd34ef56", meta, 3, json.RawMessage(`[]`), chunks, images)

	r := BuildExtractionReport(p)

	assert.Equal(t, 0, r.Stats.ExtractedFields)
}
