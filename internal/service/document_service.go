package service

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"clindex/internal/chunker"
	"clindex/internal/classifier"
	"clindex/internal/clinical"
	"clindex/internal/domain"
	"clindex/internal/extract"
	"clindex/internal/port"
	"clindex/internal/summary"
)

const defaultMaxProcessAttempts = 5

// CreateDocumentInput is the DTO for creating a document and triggering processing.
type CreateDocumentInput struct {
	FileID    uuid.UUID
	Name      string
	Tags      map[string]string
	CreatedBy uuid.UUID
}

// DocumentService defines the document management contract.
type DocumentService interface {
	CreateAndProcess(ctx context.Context, input *CreateDocumentInput) (*domain.Document, error)
	GetByID(ctx context.Context, docID uuid.UUID) (*domain.Document, error)
	GetByFileID(ctx context.Context, fileID uuid.UUID) (*domain.Document, error)
	List(ctx context.Context, filter domain.DocumentFilter) ([]*domain.Document, int, error)
	RetryProcess(ctx context.Context, docID, userID uuid.UUID) (*domain.Document, error)
	Delete(ctx context.Context, docID, userID uuid.UUID) error

	GetSummary(ctx context.Context, docID uuid.UUID) (string, error)
	ListChunks(ctx context.Context, docID uuid.UUID) ([]*domain.Chunk, error)
	ListImages(ctx context.Context, docID uuid.UUID) ([]*domain.DocumentImage, error)
	GetImageURL(ctx context.Context, docID, imageID uuid.UUID) (string, error)

	ListTags(ctx context.Context, docID uuid.UUID) ([]*domain.DocumentTag, error)
	AddTags(ctx context.Context, docID, userID uuid.UUID, tags map[string]string) ([]*domain.DocumentTag, error)
	DeleteTag(ctx context.Context, docID, userID uuid.UUID, key string) error

	ListAudit(ctx context.Context, docID uuid.UUID) ([]*domain.DocumentAuditEntry, error)

	ProcessDocument(ctx context.Context, doc *domain.Document, maxAttempts int)
}

type documentService struct {
	docRepo       port.DocumentRepository
	fileRepo      port.FileMetaRepository
	userRepo      port.UserRepository
	chunkRepo     port.ChunkRepository
	imageRepo     port.DocumentImageRepository
	tagRepo       port.DocumentTagRepository
	auditRepo     port.DocumentAuditRepository
	storage       port.ObjectStorage
	pdfExtractor  port.PDFExtractor
	classifier    *classifier.Classifier
	extractors    *extract.Registry
	chunker       *chunker.Chunker
	emailSender   port.EmailSender
	imagePresign  int64
	summaryBucket string
}

// NewDocumentService creates a new DocumentService implementation.
func NewDocumentService(
	docRepo port.DocumentRepository,
	fileRepo port.FileMetaRepository,
	userRepo port.UserRepository,
	chunkRepo port.ChunkRepository,
	imageRepo port.DocumentImageRepository,
	tagRepo port.DocumentTagRepository,
	auditRepo port.DocumentAuditRepository,
	storage port.ObjectStorage,
	pdfExtractor port.PDFExtractor,
	docClassifier *classifier.Classifier,
	extractors *extract.Registry,
	textChunker *chunker.Chunker,
	emailSender port.EmailSender,
	bucket string,
	presignExpiry int64,
) DocumentService {
	return &documentService{
		docRepo:       docRepo,
		fileRepo:      fileRepo,
		userRepo:      userRepo,
		chunkRepo:     chunkRepo,
		imageRepo:     imageRepo,
		tagRepo:       tagRepo,
		auditRepo:     auditRepo,
		storage:       storage,
		pdfExtractor:  pdfExtractor,
		classifier:    docClassifier,
		extractors:    extractors,
		chunker:       textChunker,
		emailSender:   emailSender,
		imagePresign:  presignExpiry,
		summaryBucket: bucket,
	}
}

// audit records a document mutation in the audit log. Failures are logged but never block business logic.
func (s *documentService) audit(ctx context.Context, docID uuid.UUID, userID *uuid.UUID, action domain.AuditAction, changes json.RawMessage) {
	if s.auditRepo == nil {
		return
	}
	if changes == nil {
		changes = json.RawMessage("{}")
	}
	entry := &domain.DocumentAuditEntry{
		ID:         uuid.New(),
		DocumentID: docID,
		UserID:     userID,
		Action:     string(action),
		Changes:    changes,
	}
	if err := s.auditRepo.Record(ctx, entry); err != nil {
		log.Printf("documentService.audit: failed to write audit entry for %s/%s: %v", action, docID, err)
	}
}

func (s *documentService) CreateAndProcess(ctx context.Context, input *CreateDocumentInput) (*domain.Document, error) {
	// Verify the file exists and is uploaded
	file, err := s.fileRepo.GetByID(ctx, input.FileID)
	if err != nil {
		return nil, fmt.Errorf("looking up file: %w", err)
	}

	name := input.Name
	if name == "" {
		name = file.OriginalName
	}

	doc := &domain.Document{
		ID:               uuid.New(),
		FileID:           input.FileID,
		Name:             name,
		DocumentType:     domain.DocTypeUnknown,
		ExtractedData:    json.RawMessage("{}"),
		ProcessingStatus: domain.ProcessingStatusPending,
		CreatedBy:        input.CreatedBy,
	}

	log.Printf("documentService.CreateAndProcess: creating document %s for file %s", doc.ID, input.FileID)

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("creating document: %w", err)
	}

	changesJSON, _ := json.Marshal(map[string]interface{}{
		"file_id": input.FileID, "name": name,
	})
	s.audit(ctx, doc.ID, &input.CreatedBy, domain.AuditDocumentCreated, changesJSON)

	// Save user-provided tags
	if len(input.Tags) > 0 && s.tagRepo != nil {
		tags := make([]*domain.DocumentTag, 0, len(input.Tags))
		for k, v := range input.Tags {
			tags = append(tags, &domain.DocumentTag{
				ID:         uuid.New(),
				DocumentID: doc.ID,
				Key:        k,
				Value:      v,
				Source:     "user",
			})
		}
		if tagErr := s.tagRepo.Add(ctx, tags); tagErr != nil {
			log.Printf("documentService.CreateAndProcess: failed to save user tags for %s: %v", doc.ID, tagErr)
		}
	}

	// Copy before launching goroutine so the caller's value is independent of background work
	result := *doc

	go s.processInBackground(doc.ID)

	return &result, nil
}

func (s *documentService) processInBackground(docID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log.Printf("documentService.processInBackground: starting processing for document %s", docID)

	doc, err := s.docRepo.GetByID(ctx, docID)
	if err != nil {
		log.Printf("documentService.processInBackground: failed to get document %s: %v", docID, err)
		return
	}
	doc.ProcessAttempts++
	doc.ProcessingStatus = domain.ProcessingStatusProcessing
	if err := s.docRepo.Update(ctx, doc); err != nil {
		log.Printf("documentService.processInBackground: failed to set processing status for %s: %v", docID, err)
		return
	}

	s.ProcessDocument(ctx, doc, defaultMaxProcessAttempts)
}

// ProcessDocument runs the full pipeline for one document: S3 download,
// PDF text and image extraction, type classification, typed extraction,
// chunking, image capture, summary rendering and persistence. It is
// called by both processInBackground and the queue worker. The doc must
// already be in processing status with ProcessAttempts incremented.
func (s *documentService) ProcessDocument(ctx context.Context, doc *domain.Document, maxAttempts int) {
	file, err := s.fileRepo.GetByID(ctx, doc.FileID)
	if err != nil {
		s.failProcessing(ctx, doc, fmt.Sprintf("looking up file: %v", err))
		return
	}

	fileBytes, err := s.storage.Download(ctx, file.S3Key)
	if err != nil {
		s.handleProcessError(ctx, doc, fmt.Sprintf("downloading file: %v", err), maxAttempts)
		return
	}

	content, err := s.pdfExtractor.Extract(ctx, fileBytes)
	if err != nil {
		s.handleProcessError(ctx, doc, fmt.Sprintf("extracting pdf: %v", err), maxAttempts)
		return
	}

	var pageTexts []string
	for _, p := range content.Pages {
		pageTexts = append(pageTexts, p.Text)
	}
	fullText := strings.Join(pageTexts, "\n")
	if strings.TrimSpace(fullText) == "" {
		s.failProcessing(ctx, doc, domain.ErrNoExtractableText.Error())
		return
	}

	docType, confidence := s.classifier.Classify(fullText, content.PageCount)
	log.Printf("documentService.ProcessDocument: document %s classified as %s (%.2f)", doc.ID, docType, confidence)

	payload, err := s.extractors.ForType(docType).Extract(fullText)
	if err != nil {
		s.failProcessing(ctx, doc, fmt.Sprintf("extracting data: %v", err))
		return
	}
	extractedJSON, err := json.Marshal(payload)
	if err != nil {
		s.failProcessing(ctx, doc, fmt.Sprintf("encoding extracted data: %v", err))
		return
	}

	chunks := s.buildChunks(doc.ID, docType, content.Pages)
	images, err := s.captureImages(ctx, doc, docType, content)
	if err != nil {
		s.handleProcessError(ctx, doc, fmt.Sprintf("storing images: %v", err), maxAttempts)
		return
	}
	chunks = append(chunks, s.imageChunks(doc.ID, docType, images, len(chunks))...)

	now := time.Now().UTC()
	imageValues := make([]domain.DocumentImage, len(images))
	for i, img := range images {
		imageValues[i] = *img
	}
	meta := summary.Meta{
		Filename:     file.OriginalName,
		DocumentType: docType,
		Confidence:   confidence,
		ProcessedAt:  now,
	}
	summaryMD := summary.Render(meta, payload, imageValues)

	summaryKey := fmt.Sprintf("documents/%s/summary.md", doc.ID)
	if err := s.storage.Upload(ctx, summaryKey, strings.NewReader(summaryMD), "text/markdown"); err != nil {
		s.handleProcessError(ctx, doc, fmt.Sprintf("uploading summary: %v", err), maxAttempts)
		return
	}

	vectorJSON, err := json.Marshal(summary.BuildVectorPayload(
		doc.ID.String(), meta, content.PageCount, extractedJSON, chunks, imageValues))
	if err != nil {
		s.failProcessing(ctx, doc, fmt.Sprintf("encoding vector payload: %v", err))
		return
	}
	vectorKey := fmt.Sprintf("documents/%s/vector_db.json", doc.ID)
	if err := s.storage.Upload(ctx, vectorKey, bytes.NewReader(vectorJSON), "application/json"); err != nil {
		s.handleProcessError(ctx, doc, fmt.Sprintf("uploading vector payload: %v", err), maxAttempts)
		return
	}

	// Replace any chunks and images from a previous attempt
	if err := s.chunkRepo.DeleteByDocument(ctx, doc.ID); err != nil {
		log.Printf("documentService.ProcessDocument: failed to clear old chunks for %s: %v", doc.ID, err)
	}
	if len(chunks) > 0 {
		if err := s.chunkRepo.CreateBatch(ctx, chunks); err != nil {
			s.failProcessing(ctx, doc, fmt.Sprintf("saving chunks: %v", err))
			return
		}
	}
	if err := s.imageRepo.DeleteByDocument(ctx, doc.ID); err != nil {
		log.Printf("documentService.ProcessDocument: failed to clear old images for %s: %v", doc.ID, err)
	}
	if len(images) > 0 {
		if err := s.imageRepo.CreateBatch(ctx, images); err != nil {
			s.failProcessing(ctx, doc, fmt.Sprintf("saving images: %v", err))
			return
		}
	}

	doc.DocumentType = docType
	doc.TypeConfidence = confidence
	doc.PageCount = content.PageCount
	doc.ExtractedData = extractedJSON
	doc.ChunkCount = len(chunks)
	doc.ImageCount = len(images)
	doc.SummaryS3Key = summaryKey
	doc.ProcessingStatus = domain.ProcessingStatusCompleted
	doc.ProcessingError = ""
	doc.ProcessedAt = &now
	doc.RetryAfter = nil

	if err := s.docRepo.Update(ctx, doc); err != nil {
		log.Printf("documentService.ProcessDocument: failed to save results for %s: %v", doc.ID, err)
		return
	}

	completedChanges, _ := json.Marshal(map[string]interface{}{
		"document_type": string(docType), "confidence": confidence,
		"chunks": len(chunks), "images": len(images), "attempt": doc.ProcessAttempts,
	})
	s.audit(ctx, doc.ID, nil, domain.AuditDocumentProcessCompleted, completedChanges)

	log.Printf("documentService.ProcessDocument: document %s processed (%d chunks, %d images)",
		doc.ID, len(chunks), len(images))

	if s.tagRepo != nil {
		s.extractAndSaveAutoTags(ctx, doc.ID, docType, extractedJSON)
	}
}

// buildChunks splits each page independently so every chunk carries the
// page it came from. Chunk indexes run document-wide.
func (s *documentService) buildChunks(docID uuid.UUID, docType domain.DocumentType, pages []port.PageText) []*domain.Chunk {
	var chunks []*domain.Chunk
	index := 0
	for _, page := range pages {
		for _, piece := range s.chunker.Split(page.Text, docType) {
			chunks = append(chunks, &domain.Chunk{
				ID:           uuid.New(),
				DocumentID:   docID,
				ChunkIndex:   index,
				ChunkType:    domain.ChunkTypeText,
				Text:         piece.Text,
				TokenCount:   piece.TokenCount,
				DocumentType: docType,
				PageNumber:   page.Page,
			})
			index++
		}
	}
	return chunks
}

// imageChunks emits one placeholder chunk per captured figure so image
// context survives into retrieval alongside the text chunks.
func (s *documentService) imageChunks(docID uuid.UUID, docType domain.DocumentType, images []*domain.DocumentImage, startIndex int) []*domain.Chunk {
	chunks := make([]*domain.Chunk, 0, len(images))
	for i, img := range images {
		text := fmt.Sprintf("Image: %s", img.Caption)
		chunks = append(chunks, &domain.Chunk{
			ID:           uuid.New(),
			DocumentID:   docID,
			ChunkIndex:   startIndex + i,
			ChunkType:    domain.ChunkTypeImage,
			Text:         text,
			TokenCount:   s.chunker.CountTokens(text),
			DocumentType: docType,
			PageNumber:   img.PageNumber,
		})
	}
	return chunks
}

// captureImages uploads each distinct extracted image to object storage
// and builds its metadata. Duplicate images (same content hash) within a
// document are uploaded once.
func (s *documentService) captureImages(ctx context.Context, doc *domain.Document, docType domain.DocumentType, content *port.PDFContent) ([]*domain.DocumentImage, error) {
	pageText := make(map[int]string, len(content.Pages))
	for _, p := range content.Pages {
		pageText[p.Page] = p.Text
	}

	base := strings.TrimSuffix(doc.Name, filepath.Ext(doc.Name))
	seen := make(map[string]bool)

	var images []*domain.DocumentImage
	for _, img := range content.Images {
		sum := md5.Sum(img.PNG)
		hash := hex.EncodeToString(sum[:])
		if seen[hash] {
			continue
		}
		seen[hash] = true

		key := fmt.Sprintf("documents/%s/images/%s_p%d_img%d_%s.png",
			doc.ID, base, img.Page, img.Index, hash[:8])
		if err := s.storage.Upload(ctx, key, bytes.NewReader(img.PNG), "image/png"); err != nil {
			return nil, fmt.Errorf("uploading image %s: %w", key, err)
		}

		caption := extract.FigureCaption(pageText[img.Page], img.Index, docType)
		images = append(images, &domain.DocumentImage{
			ID:          uuid.New(),
			DocumentID:  doc.ID,
			PageNumber:  img.Page,
			ImageIndex:  img.Index,
			Width:       img.Width,
			Height:      img.Height,
			ContentHash: hash,
			S3Bucket:    s.summaryBucket,
			S3Key:       key,
			Caption:     caption,
			Relevance:   extract.AssessImageRelevance(caption, docType),
		})
	}
	return images, nil
}

// handleProcessError queues the document for retry with exponential
// backoff while under the attempt limit, otherwise marks it failed.
func (s *documentService) handleProcessError(ctx context.Context, doc *domain.Document, errMsg string, maxAttempts int) {
	if doc.ProcessAttempts < maxAttempts {
		backoff := 30 * time.Second * time.Duration(1<<uint(doc.ProcessAttempts-1))
		retryAt := time.Now().Add(backoff)
		if err := s.docRepo.UpdateProcessingStatus(ctx, doc.ID, domain.ProcessingStatusQueued, errMsg); err != nil {
			log.Printf("documentService.handleProcessError: failed to queue document %s: %v", doc.ID, err)
			return
		}
		if err := s.docRepo.SetRetryAfter(ctx, doc.ID, retryAt); err != nil {
			log.Printf("documentService.handleProcessError: failed to set retry window for %s: %v", doc.ID, err)
		}
		queueChanges, _ := json.Marshal(map[string]interface{}{
			"retry_after": retryAt.Format(time.RFC3339), "attempt": doc.ProcessAttempts, "error": errMsg,
		})
		s.audit(ctx, doc.ID, nil, domain.AuditDocumentProcessQueued, queueChanges)
		log.Printf("documentService.handleProcessError: document %s queued for retry after %s", doc.ID, retryAt.Format(time.RFC3339))
		return
	}
	s.failProcessing(ctx, doc, errMsg)
}

func (s *documentService) failProcessing(ctx context.Context, doc *domain.Document, errMsg string) {
	log.Printf("documentService.failProcessing: document %s failed: %s", doc.ID, errMsg)
	if err := s.docRepo.UpdateProcessingStatus(ctx, doc.ID, domain.ProcessingStatusFailed, errMsg); err != nil {
		log.Printf("documentService.failProcessing: failed to update status for %s: %v", doc.ID, err)
	}
	failChanges, _ := json.Marshal(map[string]interface{}{"error": errMsg, "attempt": doc.ProcessAttempts})
	s.audit(ctx, doc.ID, nil, domain.AuditDocumentProcessFailed, failChanges)

	s.notifyFailure(ctx, doc, errMsg)
}

// notifyFailure emails the document creator. Delivery errors are logged,
// never surfaced.
func (s *documentService) notifyFailure(ctx context.Context, doc *domain.Document, errMsg string) {
	if s.emailSender == nil {
		return
	}
	user, err := s.userRepo.GetByID(ctx, doc.CreatedBy)
	if err != nil {
		log.Printf("documentService.notifyFailure: failed to look up creator of %s: %v", doc.ID, err)
		return
	}
	subject := fmt.Sprintf("Document processing failed: %s", doc.Name)
	body := fmt.Sprintf(
		"<p>Processing of <strong>%s</strong> failed after %d attempt(s).</p><p>Error: %s</p>",
		doc.Name, doc.ProcessAttempts, errMsg,
	)
	if err := s.emailSender.Send(ctx, user.Email, subject, body); err != nil {
		log.Printf("documentService.notifyFailure: failed to send email for %s: %v", doc.ID, err)
	}
}

func (s *documentService) GetByID(ctx context.Context, docID uuid.UUID) (*domain.Document, error) {
	return s.docRepo.GetByID(ctx, docID)
}

func (s *documentService) GetByFileID(ctx context.Context, fileID uuid.UUID) (*domain.Document, error) {
	return s.docRepo.GetByFileID(ctx, fileID)
}

func (s *documentService) List(ctx context.Context, filter domain.DocumentFilter) ([]*domain.Document, int, error) {
	return s.docRepo.List(ctx, filter)
}

func (s *documentService) RetryProcess(ctx context.Context, docID, userID uuid.UUID) (*domain.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	// Verify the file still exists
	if _, err := s.fileRepo.GetByID(ctx, doc.FileID); err != nil {
		return nil, fmt.Errorf("looking up file for retry: %w", err)
	}

	// Delete auto-tags before re-processing
	if s.tagRepo != nil {
		if tagErr := s.tagRepo.DeleteBySource(ctx, docID, "auto"); tagErr != nil {
			log.Printf("documentService.RetryProcess: failed to delete auto-tags for %s: %v", docID, tagErr)
		}
	}

	doc.ProcessingStatus = domain.ProcessingStatusPending
	doc.ProcessingError = ""
	doc.ProcessAttempts = 0
	doc.ExtractedData = json.RawMessage("{}")
	doc.RetryAfter = nil
	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, fmt.Errorf("resetting document for retry: %w", err)
	}

	s.audit(ctx, docID, &userID, domain.AuditDocumentRetry, nil)

	log.Printf("documentService.RetryProcess: retrying processing for document %s", docID)

	// Copy before launching goroutine so the caller's value is independent of background work
	result := *doc

	go s.processInBackground(doc.ID)

	return &result, nil
}

func (s *documentService) Delete(ctx context.Context, docID, userID uuid.UUID) error {
	doc, err := s.docRepo.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	// Remove stored artifacts before the row cascade
	images, err := s.imageRepo.ListByDocument(ctx, docID)
	if err == nil {
		for _, img := range images {
			if delErr := s.storage.Delete(ctx, img.S3Key); delErr != nil {
				log.Printf("documentService.Delete: failed to delete image %s: %v", img.S3Key, delErr)
			}
		}
	}
	if doc.SummaryS3Key != "" {
		if delErr := s.storage.Delete(ctx, doc.SummaryS3Key); delErr != nil {
			log.Printf("documentService.Delete: failed to delete summary %s: %v", doc.SummaryS3Key, delErr)
		}
	}

	s.audit(ctx, docID, &userID, domain.AuditDocumentDeleted, nil)
	return s.docRepo.Delete(ctx, docID)
}

func (s *documentService) GetSummary(ctx context.Context, docID uuid.UUID) (string, error) {
	doc, err := s.docRepo.GetByID(ctx, docID)
	if err != nil {
		return "", err
	}
	if doc.ProcessingStatus != domain.ProcessingStatusCompleted {
		return "", domain.ErrDocumentNotProcessed
	}
	if doc.SummaryS3Key == "" {
		return "", domain.ErrSummaryNotAvailable
	}
	data, err := s.storage.Download(ctx, doc.SummaryS3Key)
	if err != nil {
		return "", fmt.Errorf("downloading summary: %w", err)
	}
	return string(data), nil
}

func (s *documentService) ListChunks(ctx context.Context, docID uuid.UUID) ([]*domain.Chunk, error) {
	if _, err := s.docRepo.GetByID(ctx, docID); err != nil {
		return nil, err
	}
	return s.chunkRepo.ListByDocument(ctx, docID)
}

func (s *documentService) ListImages(ctx context.Context, docID uuid.UUID) ([]*domain.DocumentImage, error) {
	if _, err := s.docRepo.GetByID(ctx, docID); err != nil {
		return nil, err
	}
	return s.imageRepo.ListByDocument(ctx, docID)
}

func (s *documentService) GetImageURL(ctx context.Context, docID, imageID uuid.UUID) (string, error) {
	images, err := s.imageRepo.ListByDocument(ctx, docID)
	if err != nil {
		return "", err
	}
	for _, img := range images {
		if img.ID == imageID {
			return s.storage.GetPresignedURL(ctx, img.S3Key, s.imagePresign)
		}
	}
	return "", domain.ErrNotFound
}

func (s *documentService) ListTags(ctx context.Context, docID uuid.UUID) ([]*domain.DocumentTag, error) {
	if _, err := s.docRepo.GetByID(ctx, docID); err != nil {
		return nil, err
	}
	return s.tagRepo.ListByDocument(ctx, docID)
}

func (s *documentService) AddTags(ctx context.Context, docID, userID uuid.UUID, tagsMap map[string]string) ([]*domain.DocumentTag, error) {
	if _, err := s.docRepo.GetByID(ctx, docID); err != nil {
		return nil, err
	}

	tags := make([]*domain.DocumentTag, 0, len(tagsMap))
	for k, v := range tagsMap {
		tags = append(tags, &domain.DocumentTag{
			ID:         uuid.New(),
			DocumentID: docID,
			Key:        k,
			Value:      v,
			Source:     "user",
		})
	}

	if err := s.tagRepo.Add(ctx, tags); err != nil {
		return nil, fmt.Errorf("adding tags: %w", err)
	}

	tagChanges, _ := json.Marshal(tagsMap)
	s.audit(ctx, docID, &userID, domain.AuditDocumentTagsAdded, tagChanges)

	return tags, nil
}

func (s *documentService) DeleteTag(ctx context.Context, docID, userID uuid.UUID, key string) error {
	if _, err := s.docRepo.GetByID(ctx, docID); err != nil {
		return err
	}
	if err := s.tagRepo.Delete(ctx, docID, key); err != nil {
		return err
	}
	deleteTagChanges, _ := json.Marshal(map[string]interface{}{"key": key})
	s.audit(ctx, docID, &userID, domain.AuditDocumentTagDeleted, deleteTagChanges)
	return nil
}

func (s *documentService) ListAudit(ctx context.Context, docID uuid.UUID) ([]*domain.DocumentAuditEntry, error) {
	if _, err := s.docRepo.GetByID(ctx, docID); err != nil {
		return nil, err
	}
	return s.auditRepo.ListByDocument(ctx, docID)
}

func (s *documentService) extractAndSaveAutoTags(ctx context.Context, docID uuid.UUID, docType domain.DocumentType, extractedData json.RawMessage) {
	tagMap := map[string]string{
		"document_type": string(docType),
	}

	switch docType {
	case domain.DocTypeCaseReport, domain.DocTypeResearchArticle, domain.DocTypeRadiologyReport, domain.DocTypeUnknown:
		var data clinical.CaseReportData
		if err := json.Unmarshal(extractedData, &data); err == nil {
			if data.Diagnostics.PrimaryDiagnosis != "" {
				tagMap["diagnosis"] = data.Diagnostics.PrimaryDiagnosis
			}
			if data.Outcome != "" {
				tagMap["outcome"] = data.Outcome
			}
		}
	case domain.DocTypeDischargeSummary:
		var data clinical.DischargeSummaryData
		if err := json.Unmarshal(extractedData, &data); err == nil {
			if data.Discharge.Diagnosis != "" {
				tagMap["diagnosis"] = data.Discharge.Diagnosis
			}
		}
	}

	if err := s.tagRepo.DeleteBySource(ctx, docID, "auto"); err != nil {
		log.Printf("documentService.extractAndSaveAutoTags: failed to delete old auto-tags for %s: %v", docID, err)
	}

	tags := make([]*domain.DocumentTag, 0, len(tagMap))
	for k, v := range tagMap {
		tags = append(tags, &domain.DocumentTag{
			ID:         uuid.New(),
			DocumentID: docID,
			Key:        k,
			Value:      v,
			Source:     "auto",
		})
	}

	if err := s.tagRepo.Add(ctx, tags); err != nil {
		log.Printf("documentService.extractAndSaveAutoTags: failed to save auto-tags for %s: %v", docID, err)
	}
}
