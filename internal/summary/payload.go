package summary

import (
	"encoding/json"
	"time"

	"clindex/internal/domain"
)

// PayloadMeta is the document metadata block embedded in the vector payload.
type PayloadMeta struct {
	Filename       string              `json:"filename"`
	DocumentType   domain.DocumentType `json:"document_type"`
	TypeConfidence float64             `json:"type_confidence"`
	Pages          int                 `json:"pages"`
	ProcessedAt    time.Time           `json:"processed_date"`
	HasImages      bool                `json:"has_images"`
	ImageCount     int                 `json:"image_count"`
}

// PayloadChunk is the vector-store-ready form of one chunk. Image
// chunks additionally carry their figure's storage key and relevance.
type PayloadChunk struct {
	ChunkID    string                `json:"chunk_id"`
	Text       string                `json:"text"`
	ChunkType  domain.ChunkType      `json:"chunk_type"`
	TokenCount int                   `json:"token_count"`
	Page       int                   `json:"page"`
	ImageKey   string                `json:"image_key,omitempty"`
	Relevance  domain.ImageRelevance `json:"clinical_relevance,omitempty"`
}

// VectorPayload is the retrieval-ready JSON artifact stored beside the
// rendered summary: document metadata, extracted fields and all chunks.
type VectorPayload struct {
	DocumentID     string              `json:"document_id"`
	DocumentType   domain.DocumentType `json:"document_type"`
	TypeConfidence float64             `json:"type_confidence"`
	Metadata       PayloadMeta         `json:"document_metadata"`
	ExtractedData  json.RawMessage     `json:"extracted_data"`
	TextChunks     []PayloadChunk      `json:"text_chunks"`
	ImageChunks    []PayloadChunk      `json:"image_chunks"`
	TotalChunks    int                 `json:"total_chunks"`
}

// BuildVectorPayload assembles the vector payload from the persisted
// chunk set. Image chunks are matched to images in emission order, so
// the chunks slice must list image chunks in the same order as images.
func BuildVectorPayload(docID string, meta Meta, pageCount int, extracted json.RawMessage, chunks []*domain.Chunk, images []domain.DocumentImage) VectorPayload {
	textChunks := make([]PayloadChunk, 0, len(chunks))
	imageChunks := make([]PayloadChunk, 0, len(images))

	imgIdx := 0
	for _, c := range chunks {
		pc := PayloadChunk{
			ChunkID:    c.ID.String(),
			Text:       c.Text,
			ChunkType:  c.ChunkType,
			TokenCount: c.TokenCount,
			Page:       c.PageNumber,
		}
		if c.ChunkType == domain.ChunkTypeImage {
			if imgIdx < len(images) {
				pc.ImageKey = images[imgIdx].S3Key
				pc.Relevance = images[imgIdx].Relevance
				imgIdx++
			}
			imageChunks = append(imageChunks, pc)
			continue
		}
		textChunks = append(textChunks, pc)
	}

	return VectorPayload{
		DocumentID:     docID,
		DocumentType:   meta.DocumentType,
		TypeConfidence: meta.Confidence,
		Metadata: PayloadMeta{
			Filename:       meta.Filename,
			DocumentType:   meta.DocumentType,
			TypeConfidence: meta.Confidence,
			Pages:          pageCount,
			ProcessedAt:    meta.ProcessedAt,
			HasImages:      len(images) > 0,
			ImageCount:     len(images),
		},
		ExtractedData:  extracted,
		TextChunks:     textChunks,
		ImageChunks:    imageChunks,
		TotalChunks:    len(textChunks) + len(imageChunks),
	}
}

// ExtractionStats counts what the pipeline produced for one document.
type ExtractionStats struct {
	TotalPages      int `json:"total_pages"`
	TextChunks      int `json:"text_chunks"`
	ImageChunks     int `json:"image_chunks"`
	ExtractedFields int `json:"extracted_fields"`
}

// ExtractionReport is the per-document processing report artifact.
type ExtractionReport struct {
	DocumentType domain.DocumentType `json:"document_type"`
	Confidence   float64             `json:"confidence"`
	Stats        ExtractionStats     `json:"extraction_stats"`
}

// BuildExtractionReport derives the report from a built vector payload.
// Extracted fields are counted at the top level of the typed payload.
func BuildExtractionReport(p VectorPayload) ExtractionReport {
	return ExtractionReport{
		DocumentType: p.DocumentType,
		Confidence:   p.TypeConfidence,
		Stats: ExtractionStats{
			TotalPages:      p.Metadata.Pages,
			TextChunks:      len(p.TextChunks),
			ImageChunks:     len(p.ImageChunks),
			ExtractedFields: countTopLevelFields(p.ExtractedData),
		},
	}
}

func countTopLevelFields(extracted json.RawMessage) int {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(extracted, &fields); err != nil {
		return 0
	}
	return len(fields)
}
