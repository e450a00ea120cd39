package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"clindex/internal/domain"
	"clindex/internal/service"
)

// CreateDocumentRequest is the request body for document creation.
type CreateDocumentRequest struct {
	FileID uuid.UUID         `json:"file_id" binding:"required"`
	Name   string            `json:"name"`
	Tags   map[string]string `json:"tags"`
}

// AddTagsRequest is the request body for adding tags.
type AddTagsRequest struct {
	Tags map[string]string `json:"tags" binding:"required"`
}

// DocumentHandler handles document management and processing endpoints.
type DocumentHandler struct {
	docService service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(docService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{docService: docService}
}

// Create handles POST /api/v1/documents
func (h *DocumentHandler) Create(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	doc, err := h.docService.CreateAndProcess(c.Request.Context(), &service.CreateDocumentInput{
		FileID:    req.FileID,
		Name:      req.Name,
		Tags:      req.Tags,
		CreatedBy: userID,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondAccepted(c, doc)
}

// List handles GET /api/v1/documents
func (h *DocumentHandler) List(c *gin.Context) {
	filter := domain.DocumentFilter{
		Tag:    c.Query("tag"),
		Search: c.Query("search"),
	}

	if t := c.Query("type"); t != "" {
		docType := domain.DocumentType(t)
		filter.DocumentType = &docType
	}
	if s := c.Query("status"); s != "" {
		status := domain.ProcessingStatus(s)
		filter.ProcessingStatus = &status
	}

	filter.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	docs, total, err := h.docService.List(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, docs, PagMeta{Total: total, Offset: filter.Offset, Limit: filter.Limit})
}

// GetByID handles GET /api/v1/documents/:id
func (h *DocumentHandler) GetByID(c *gin.Context) {
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	doc, err := h.docService.GetByID(c.Request.Context(), docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// GetByFileID handles GET /api/v1/documents/by-file/:fileId
func (h *DocumentHandler) GetByFileID(c *gin.Context) {
	fileID, err := uuid.Parse(c.Param("fileId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid file ID")
		return
	}

	doc, err := h.docService.GetByFileID(c.Request.Context(), fileID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// Retry handles POST /api/v1/documents/:id/retry
func (h *DocumentHandler) Retry(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	doc, err := h.docService.RetryProcess(c.Request.Context(), docID, userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondAccepted(c, doc)
}

// Delete handles DELETE /api/v1/documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	if err := h.docService.Delete(c.Request.Context(), docID, userID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "document deleted"})
}

// GetSummary handles GET /api/v1/documents/:id/summary
func (h *DocumentHandler) GetSummary(c *gin.Context) {
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	md, err := h.docService.GetSummary(c.Request.Context(), docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(md))
}

// ListChunks handles GET /api/v1/documents/:id/chunks
func (h *DocumentHandler) ListChunks(c *gin.Context) {
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	chunks, err := h.docService.ListChunks(c.Request.Context(), docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, chunks)
}

// ListImages handles GET /api/v1/documents/:id/images
func (h *DocumentHandler) ListImages(c *gin.Context) {
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	images, err := h.docService.ListImages(c.Request.Context(), docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, images)
}

// GetImageURL handles GET /api/v1/documents/:id/images/:imageId/url
func (h *DocumentHandler) GetImageURL(c *gin.Context) {
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}
	imageID, err := uuid.Parse(c.Param("imageId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid image ID")
		return
	}

	url, err := h.docService.GetImageURL(c.Request.Context(), docID, imageID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"url": url})
}

// ListTags handles GET /api/v1/documents/:id/tags
func (h *DocumentHandler) ListTags(c *gin.Context) {
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	tags, err := h.docService.ListTags(c.Request.Context(), docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tags)
}

// AddTags handles POST /api/v1/documents/:id/tags
func (h *DocumentHandler) AddTags(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	var req AddTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	tags, err := h.docService.AddTags(c.Request.Context(), docID, userID, req.Tags)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, tags)
}

// DeleteTag handles DELETE /api/v1/documents/:id/tags/:key
func (h *DocumentHandler) DeleteTag(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	key := c.Param("key")
	if key == "" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "tag key is required")
		return
	}

	if err := h.docService.DeleteTag(c.Request.Context(), docID, userID, key); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "tag deleted"})
}

// ListAudit handles GET /api/v1/documents/:id/audit
func (h *DocumentHandler) ListAudit(c *gin.Context) {
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	entries, err := h.docService.ListAudit(c.Request.Context(), docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, entries)
}
