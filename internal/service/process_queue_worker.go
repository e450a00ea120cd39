package service

import (
	"context"
	"log"
	"sync"
	"time"

	"clindex/internal/port"
)

// ProcessQueueConfig holds settings for the process queue worker.
type ProcessQueueConfig struct {
	PollInterval time.Duration
	MaxRetries   int
	Concurrency  int
}

// ProcessQueueWorker polls for queued documents and dispatches them for processing.
type ProcessQueueWorker struct {
	docRepo    port.DocumentRepository
	docService DocumentService
	cfg        ProcessQueueConfig
	wg         sync.WaitGroup
}

// NewProcessQueueWorker creates a new ProcessQueueWorker.
func NewProcessQueueWorker(docRepo port.DocumentRepository, docService DocumentService, cfg ProcessQueueConfig) *ProcessQueueWorker {
	return &ProcessQueueWorker{
		docRepo:    docRepo,
		docService: docService,
		cfg:        cfg,
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight processing goroutines have finished.
func (w *ProcessQueueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	log.Printf("processQueueWorker: started (poll=%s, concurrency=%d, maxRetries=%d)",
		w.cfg.PollInterval, w.cfg.Concurrency, w.cfg.MaxRetries)

	for {
		select {
		case <-ctx.Done():
			log.Printf("processQueueWorker: shutting down, waiting for in-flight work...")
			w.wg.Wait()
			log.Printf("processQueueWorker: shutdown complete")
			return
		case <-ticker.C:
			available := w.cfg.Concurrency - len(sem)
			if available <= 0 {
				continue
			}

			// ClaimQueued marks each claimed row processing and bumps
			// its attempt counter in the same statement.
			docs, err := w.docRepo.ClaimQueued(ctx, available)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				log.Printf("processQueueWorker: ClaimQueued error: %v", err)
				continue
			}

			for i := range docs {
				doc := docs[i]

				sem <- struct{}{} // acquire
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }() // release

					// Use a fresh context independent of the poll context
					// so in-flight work completes even during shutdown.
					procCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
					defer cancel()

					log.Printf("processQueueWorker: dispatching document %s (attempt %d)", doc.ID, doc.ProcessAttempts)
					w.docService.ProcessDocument(procCtx, doc, w.cfg.MaxRetries)
				}()
			}
		}
	}
}
