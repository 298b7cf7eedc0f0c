package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"checkout_backend/internal/adapters/storage"
	"checkout_backend/internal/catalog"
	"checkout_backend/internal/checkout"
	"checkout_backend/internal/email"
	"checkout_backend/internal/events"
	"checkout_backend/internal/feedback"
	apphttp "checkout_backend/internal/http"
	"checkout_backend/internal/http/router"
	"checkout_backend/internal/notification"
	"checkout_backend/internal/pdf"
	"checkout_backend/internal/stream"
	"checkout_backend/platform/config"
	"checkout_backend/platform/logger"
	"checkout_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	sender, err := email.NewSender(cfg)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// Gotenberg converts receipt documents to PDF attachments
	var converter notification.PDFConverter
	if cfg.IsGotenbergEnabled() {
		converter = pdf.NewGotenbergClient(cfg.GetGotenbergURL(), cfg.GetGotenbergUsername(), cfg.GetGotenbergPassword())
		log.Info("gotenberg PDF converter initialized", "url", cfg.GetGotenbergURL())
	}

	// MinIO archives issued receipt PDFs for bookkeeping
	var archiver notification.ReceiptArchiver
	if cfg.IsMinIOEnabled() {
		storageSvc, err := storage.NewMinIOService(cfg)
		if err != nil {
			log.Error("failed to initialize storage service", "error", err)
			panic("failed to initialize storage service: " + err.Error())
		}
		if err := withRetry(ctx, log, "ensure receipts bucket", 5, 2*time.Second, func() error {
			return storageSvc.EnsureBucketExists(ctx, cfg.GetMinioBucketReceipts())
		}); err != nil {
			log.Error("failed to ensure storage bucket exists", "error", err, "bucket", cfg.GetMinioBucketReceipts())
			panic("failed to ensure storage bucket exists: " + err.Error())
		}
		archiver = storageSvc
		log.Info("storage service initialized", "receiptsBucket", cfg.GetMinioBucketReceipts())
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events (not HTTP-facing)
	notificationModule := notification.New(sender, converter, archiver, cfg.GetMinioBucketReceipts(), cfg, log)
	notificationModule.RegisterHandlers(eventBus)

	// SSE stream service fans catalog updates out to checkout terminals
	streamSvc := stream.New(log)
	defer streamSvc.Close()

	catalogModule := catalog.NewModule(streamSvc, val, log)
	checkoutModule := checkout.NewModule(catalogModule.Service(), eventBus, val, log)
	feedbackModule, err := feedback.NewModule(cfg.GetFeedbackDBPath(), eventBus, val, log)
	if err != nil {
		log.Error("failed to initialize feedback module", "error", err)
		panic("failed to initialize feedback module: " + err.Error())
	}
	defer feedbackModule.Close()

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			catalogModule,
			checkoutModule,
			feedbackModule,
		},
	}

	engine := router.New(app)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		panic("server error: " + err.Error())
	}
	log.Info("server stopped")
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return fmt.Errorf("%s: %w", name, lastErr)
}
