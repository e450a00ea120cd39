// Command process runs the document pipeline against a local directory
// of PDFs, without the API server or database. Each document gets its
// own output folder with the Markdown summary, retrieval-ready chunks
// and extracted images, plus a corpus-level master report and index.
//
// Usage: process -in ./pdfs -out ./processed
package main

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"clindex/internal/chunker"
	"clindex/internal/classifier"
	"clindex/internal/domain"
	"clindex/internal/extract"
	"clindex/internal/pdfio"
	"clindex/internal/port"
	"clindex/internal/summary"
)

func main() {
	inDir := flag.String("in", ".", "directory containing PDF files")
	outDir := flag.String("out", "processed", "output directory")
	flag.Parse()

	if err := run(*inDir, *outDir); err != nil {
		log.Fatal(err)
	}
}

type pipeline struct {
	extractor  port.PDFExtractor
	classifier *classifier.Classifier
	extractors *extract.Registry
	chunker    *chunker.Chunker
}

func run(inDir, outDir string) error {
	entries, err := os.ReadDir(inDir)
	if err != nil {
		return fmt.Errorf("reading input directory: %w", err)
	}

	var pdfs []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			pdfs = append(pdfs, e.Name())
		}
	}
	if len(pdfs) == 0 {
		return fmt.Errorf("no PDF files found in %s", inDir)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	textChunker, err := chunker.New()
	if err != nil {
		return fmt.Errorf("initializing chunker: %w", err)
	}

	p := &pipeline{
		extractor:  pdfio.NewChainExtractor(),
		classifier: classifier.New(),
		extractors: extract.NewRegistry(),
		chunker:    textChunker,
	}

	ctx := context.Background()
	var processed []summary.ProcessedDoc
	var failed []summary.FailedDoc

	for _, name := range pdfs {
		log.Printf("processing %s", name)
		result, err := p.processFile(ctx, inDir, outDir, name)
		if err != nil {
			log.Printf("failed: %s: %v", name, err)
			failed = append(failed, summary.FailedDoc{Filename: name, Error: err.Error()})
			continue
		}
		processed = append(processed, *result)
	}

	now := time.Now()
	report := summary.RenderMasterReport(now, outDir, processed, failed)
	if err := os.WriteFile(filepath.Join(outDir, "MASTER_REPORT.md"), []byte(report), 0o644); err != nil {
		return fmt.Errorf("writing master report: %w", err)
	}

	index, err := summary.BuildIndex(now, processed, failed)
	if err != nil {
		return fmt.Errorf("building index: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "document_index.json"), index, 0o644); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}

	log.Printf("done: %d processed, %d failed", len(processed), len(failed))
	return nil
}

func (p *pipeline) processFile(ctx context.Context, inDir, outDir, name string) (*summary.ProcessedDoc, error) {
	data, err := os.ReadFile(filepath.Join(inDir, name))
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	content, err := p.extractor.Extract(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("extracting pdf: %w", err)
	}

	var pageTexts []string
	for _, page := range content.Pages {
		pageTexts = append(pageTexts, page.Text)
	}
	fullText := strings.Join(pageTexts, "\n")
	if strings.TrimSpace(fullText) == "" {
		return nil, domain.ErrNoExtractableText
	}

	docType, confidence := p.classifier.Classify(fullText, content.PageCount)

	payload, err := p.extractors.ForType(docType).Extract(fullText)
	if err != nil {
		return nil, fmt.Errorf("extracting data: %w", err)
	}

	base := strings.TrimSuffix(name, filepath.Ext(name))
	folder := fmt.Sprintf("%s_%s", docType, base)
	docDir := filepath.Join(outDir, folder)
	imgDir := filepath.Join(docDir, "images")
	if err := os.MkdirAll(imgDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating document folder: %w", err)
	}

	pageText := make(map[int]string, len(content.Pages))
	for _, pg := range content.Pages {
		pageText[pg.Page] = pg.Text
	}

	// Write deduplicated images and collect their metadata
	seen := make(map[string]bool)
	var images []domain.DocumentImage
	for _, img := range content.Images {
		sum := md5.Sum(img.PNG)
		hash := hex.EncodeToString(sum[:])
		if seen[hash] {
			continue
		}
		seen[hash] = true

		imgName := fmt.Sprintf("%s_p%d_img%d_%s.png", base, img.Page, img.Index, hash[:8])
		if err := os.WriteFile(filepath.Join(imgDir, imgName), img.PNG, 0o644); err != nil {
			return nil, fmt.Errorf("writing image: %w", err)
		}

		caption := extract.FigureCaption(pageText[img.Page], img.Index, docType)
		images = append(images, domain.DocumentImage{
			PageNumber:  img.Page,
			ImageIndex:  img.Index,
			Width:       img.Width,
			Height:      img.Height,
			ContentHash: hash,
			S3Key:       filepath.Join("images", imgName),
			Caption:     caption,
			Relevance:   extract.AssessImageRelevance(caption, docType),
		})
	}

	// Chunk per page so each chunk keeps its source page, then add one
	// image chunk per captured figure
	var chunks []*domain.Chunk
	for _, pg := range content.Pages {
		for _, piece := range p.chunker.Split(pg.Text, docType) {
			chunks = append(chunks, &domain.Chunk{
				ID:           uuid.New(),
				ChunkIndex:   len(chunks),
				ChunkType:    domain.ChunkTypeText,
				Text:         piece.Text,
				TokenCount:   piece.TokenCount,
				DocumentType: docType,
				PageNumber:   pg.Page,
			})
		}
	}
	for _, img := range images {
		text := fmt.Sprintf("Image: %s", img.Caption)
		chunks = append(chunks, &domain.Chunk{
			ID:           uuid.New(),
			ChunkIndex:   len(chunks),
			ChunkType:    domain.ChunkTypeImage,
			Text:         text,
			TokenCount:   p.chunker.CountTokens(text),
			DocumentType: docType,
			PageNumber:   img.PageNumber,
		})
	}

	meta := summary.Meta{
		Filename:     name,
		DocumentType: docType,
		Confidence:   confidence,
		ProcessedAt:  time.Now(),
	}
	md := summary.Render(meta, payload, images)
	if err := os.WriteFile(filepath.Join(docDir, "summary.md"), []byte(md), 0o644); err != nil {
		return nil, fmt.Errorf("writing summary: %w", err)
	}

	extractedJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding extracted data: %w", err)
	}

	nameSum := md5.Sum([]byte(base))
	docID := hex.EncodeToString(nameSum[:])[:12]
	vector := summary.BuildVectorPayload(docID, meta, content.PageCount, extractedJSON, chunks, images)
	vectorJSON, err := json.MarshalIndent(vector, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding vector payload: %w", err)
	}
	if err := os.WriteFile(filepath.Join(docDir, "vector_db.json"), vectorJSON, 0o644); err != nil {
		return nil, fmt.Errorf("writing vector payload: %w", err)
	}

	reportJSON, err := json.MarshalIndent(summary.BuildExtractionReport(vector), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding extraction report: %w", err)
	}
	if err := os.WriteFile(filepath.Join(docDir, "extraction_report.json"), reportJSON, 0o644); err != nil {
		return nil, fmt.Errorf("writing extraction report: %w", err)
	}

	return &summary.ProcessedDoc{
		Filename:     name,
		DocumentType: docType,
		Confidence:   confidence,
		Chunks:       len(chunks),
		Folder:       folder,
	}, nil
}
