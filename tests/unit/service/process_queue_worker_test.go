package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"clindex/internal/domain"
	"clindex/internal/service"
	"clindex/mocks"
)

func TestProcessQueueWorker_PollsAndDispatches(t *testing.T) {
	docRepo := new(mocks.MockDocumentRepo)
	docSvc := new(mocks.MockDocumentService)

	doc := &domain.Document{
		ID:               uuid.New(),
		FileID:           uuid.New(),
		ProcessAttempts:  2,
		ProcessingStatus: domain.ProcessingStatusProcessing,
	}

	// First poll returns one doc, subsequent polls return empty
	docRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]*domain.Document{doc}, nil).Once()
	docRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]*domain.Document{}, nil).Maybe()

	docSvc.On("ProcessDocument", mock.Anything, mock.AnythingOfType("*domain.Document"), 5).
		Return().Maybe()

	cfg := service.ProcessQueueConfig{
		PollInterval: 50 * time.Millisecond,
		MaxRetries:   5,
		Concurrency:  2,
	}
	worker := service.NewProcessQueueWorker(docRepo, docSvc, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	// Wait for at least one poll cycle
	time.Sleep(200 * time.Millisecond)
	cancel()
	<-done

	docRepo.AssertCalled(t, "ClaimQueued", mock.Anything, mock.AnythingOfType("int"))
	docSvc.AssertCalled(t, "ProcessDocument", mock.Anything, mock.AnythingOfType("*domain.Document"), 5)
}

func TestProcessQueueWorker_RespectsConcurrencyCap(t *testing.T) {
	docRepo := new(mocks.MockDocumentRepo)
	docSvc := new(mocks.MockDocumentService)

	cfg := service.ProcessQueueConfig{
		PollInterval: 50 * time.Millisecond,
		MaxRetries:   5,
		Concurrency:  2,
	}

	docRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]*domain.Document{}, nil).Maybe()

	worker := service.NewProcessQueueWorker(docRepo, docSvc, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	time.Sleep(150 * time.Millisecond)
	cancel()
	<-done

	// Every claim asks for at most the free concurrency slots
	for _, call := range docRepo.Calls {
		if call.Method == "ClaimQueued" {
			limit := call.Arguments.Get(1).(int)
			assert.LessOrEqual(t, limit, cfg.Concurrency)
		}
	}
}

func TestProcessQueueWorker_CleanShutdown(t *testing.T) {
	docRepo := new(mocks.MockDocumentRepo)
	docSvc := new(mocks.MockDocumentService)

	docRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]*domain.Document{}, nil).Maybe()

	cfg := service.ProcessQueueConfig{
		PollInterval: 50 * time.Millisecond,
		MaxRetries:   5,
		Concurrency:  5,
	}
	worker := service.NewProcessQueueWorker(docRepo, docSvc, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	// Cancel immediately
	cancel()

	select {
	case <-done:
		// Start returned promptly
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after context cancellation")
	}
}

func TestProcessQueueWorker_ClaimError(t *testing.T) {
	docRepo := new(mocks.MockDocumentRepo)
	docSvc := new(mocks.MockDocumentService)

	docRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return(nil, errors.New("db connection error")).Maybe()

	cfg := service.ProcessQueueConfig{
		PollInterval: 50 * time.Millisecond,
		MaxRetries:   5,
		Concurrency:  5,
	}
	worker := service.NewProcessQueueWorker(docRepo, docSvc, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	// Let a few poll cycles happen with errors
	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after context cancellation")
	}

	docSvc.AssertNotCalled(t, "ProcessDocument", mock.Anything, mock.Anything, mock.Anything)
}
