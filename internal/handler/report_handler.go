package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"clindex/internal/csvexport"
	"clindex/internal/domain"
	"clindex/internal/service"
)

// ReportHandler handles corpus-level report and export endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// MasterReport handles GET /api/v1/reports/master
func (h *ReportHandler) MasterReport(c *gin.Context) {
	md, err := h.reportService.MasterReport(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(md))
}

// DocumentIndex handles GET /api/v1/reports/index
func (h *ReportHandler) DocumentIndex(c *gin.Context) {
	idx, err := h.reportService.DocumentIndex(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", idx)
}

// exportFilter builds the document filter from export query parameters.
func exportFilter(c *gin.Context) domain.DocumentFilter {
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
	return filter
}

// ExportCSV handles GET /api/v1/reports/export/csv
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	filename := csvexport.BuildFilename("documents")
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	// BOM so Excel detects UTF-8
	if _, err := c.Writer.Write(csvexport.BOM); err != nil {
		return
	}

	if err := h.reportService.ExportCSV(c.Request.Context(), c.Writer, exportFilter(c)); err != nil {
		// Headers are already sent; nothing to do but log via HandleError path
		HandleError(c, err)
	}
}

// ExportXLSX handles GET /api/v1/reports/export/xlsx
func (h *ReportHandler) ExportXLSX(c *gin.Context) {
	filename := strings.TrimSuffix(csvexport.BuildFilename("documents"), ".csv") + ".xlsx"
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Last-Modified", time.Now().UTC().Format(http.TimeFormat))

	if err := h.reportService.ExportXLSX(c.Request.Context(), c.Writer, exportFilter(c)); err != nil {
		HandleError(c, err)
	}
}
