package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"clindex/internal/chunker"
	"clindex/internal/classifier"
	"clindex/internal/config"
	"clindex/internal/email"
	"clindex/internal/extract"
	"clindex/internal/handler"
	"clindex/internal/pdfio"
	"clindex/internal/repository/postgres"
	"clindex/internal/router"
	"clindex/internal/service"
	s3storage "clindex/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	fileRepo := postgres.NewFileMetaRepo(db)
	docRepo := postgres.NewDocumentRepo(db)
	chunkRepo := postgres.NewChunkRepo(db)
	imageRepo := postgres.NewDocumentImageRepo(db)
	tagRepo := postgres.NewDocumentTagRepo(db)
	auditRepo := postgres.NewDocumentAuditRepo(db)
	statsRepo := postgres.NewStatsRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email sender
	emailSender, err := email.NewSender(&cfg.Email)
	if err != nil {
		return fmt.Errorf("failed to initialize email sender: %w", err)
	}

	// Initialize the processing pipeline
	textChunker, err := chunker.New()
	if err != nil {
		return fmt.Errorf("failed to initialize chunker: %w", err)
	}
	pdfExtractor := pdfio.NewChainExtractor()
	docClassifier := classifier.New()
	extractors := extract.NewRegistry()

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	userSvc := service.NewUserService(userRepo)
	fileSvc := service.NewFileService(fileRepo, s3Client, &cfg.S3)
	docSvc := service.NewDocumentService(
		docRepo, fileRepo, userRepo, chunkRepo, imageRepo, tagRepo, auditRepo,
		s3Client, pdfExtractor, docClassifier, extractors, textChunker,
		emailSender, cfg.S3.Bucket, cfg.S3.PresignExpiry,
	)
	reportSvc := service.NewReportService(docRepo)
	statsSvc := service.NewStatsService(statsRepo)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	userH := handler.NewUserHandler(userSvc)
	fileH := handler.NewFileHandler(fileSvc)
	docH := handler.NewDocumentHandler(docSvc)
	reportH := handler.NewReportHandler(reportSvc)
	statsH := handler.NewStatsHandler(statsSvc)
	healthH := handler.NewHealthHandler(db)

	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, authH, userH, fileH, docH, reportH, statsH, healthH)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start the retry queue worker
	worker := service.NewProcessQueueWorker(docRepo, docSvc, service.ProcessQueueConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		MaxRetries:   cfg.Queue.MaxRetries,
		Concurrency:  cfg.Queue.Concurrency,
	})
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Start(ctx)
	}()

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		stop()
		<-workerDone
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}

	<-workerDone
	log.Println("shutdown complete")
	return nil
}
