package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"clindex/internal/csvexport"
	"clindex/internal/domain"
	"clindex/internal/port"
	"clindex/internal/summary"
)

// reportListLimit caps how many documents a corpus-level export covers.
const reportListLimit = 10000

// ReportService provides corpus-level exports over processed documents.
type ReportService interface {
	MasterReport(ctx context.Context) (string, error)
	DocumentIndex(ctx context.Context) ([]byte, error)
	ExportCSV(ctx context.Context, w io.Writer, filter domain.DocumentFilter) error
	ExportXLSX(ctx context.Context, w io.Writer, filter domain.DocumentFilter) error
}

type reportService struct {
	docRepo port.DocumentRepository
}

// NewReportService creates a new ReportService implementation.
func NewReportService(docRepo port.DocumentRepository) ReportService {
	return &reportService{docRepo: docRepo}
}

// reportDocs loads the corpus and splits it into processed and failed
// sets for the report renderers.
func (s *reportService) reportDocs(ctx context.Context) ([]summary.ProcessedDoc, []summary.FailedDoc, error) {
	docs, _, err := s.docRepo.List(ctx, domain.DocumentFilter{Limit: reportListLimit})
	if err != nil {
		return nil, nil, fmt.Errorf("listing documents: %w", err)
	}

	var processed []summary.ProcessedDoc
	var failed []summary.FailedDoc
	for _, doc := range docs {
		switch doc.ProcessingStatus {
		case domain.ProcessingStatusCompleted:
			processed = append(processed, summary.ProcessedDoc{
				Filename:     doc.Name,
				DocumentType: doc.DocumentType,
				Confidence:   doc.TypeConfidence,
				Chunks:       doc.ChunkCount,
				Folder:       fmt.Sprintf("documents/%s", doc.ID),
			})
		case domain.ProcessingStatusFailed:
			failed = append(failed, summary.FailedDoc{
				Filename: doc.Name,
				Error:    doc.ProcessingError,
			})
		}
	}
	return processed, failed, nil
}

func (s *reportService) MasterReport(ctx context.Context) (string, error) {
	processed, failed, err := s.reportDocs(ctx)
	if err != nil {
		return "", err
	}
	return summary.RenderMasterReport(time.Now().UTC(), "documents", processed, failed), nil
}

func (s *reportService) DocumentIndex(ctx context.Context) ([]byte, error) {
	processed, failed, err := s.reportDocs(ctx)
	if err != nil {
		return nil, err
	}
	return summary.BuildIndex(time.Now().UTC(), processed, failed)
}

func (s *reportService) ExportCSV(ctx context.Context, w io.Writer, filter domain.DocumentFilter) error {
	docs, err := s.listForExport(ctx, filter)
	if err != nil {
		return err
	}

	cw := csvexport.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	if err := cw.WriteDocuments(docs); err != nil {
		return fmt.Errorf("writing csv rows: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

func (s *reportService) ExportXLSX(ctx context.Context, w io.Writer, filter domain.DocumentFilter) error {
	docs, err := s.listForExport(ctx, filter)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := "Documents"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	for col, header := range csvexport.Columns() {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("writing header cell: %w", err)
		}
	}

	for row, doc := range docs {
		for col, value := range csvexport.DocumentRow(&doc) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("writing cell: %w", err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func (s *reportService) listForExport(ctx context.Context, filter domain.DocumentFilter) ([]domain.Document, error) {
	if filter.Limit == 0 {
		filter.Limit = reportListLimit
	}
	docs, _, err := s.docRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	out := make([]domain.Document, len(docs))
	for i, d := range docs {
		out[i] = *d
	}
	return out, nil
}
