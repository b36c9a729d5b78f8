package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"tradeflow/internal/auth"
	"tradeflow/internal/config"
	"tradeflow/internal/handler"
	"tradeflow/internal/inference"
	"tradeflow/internal/logger"
	"tradeflow/internal/repository/postgres"
	"tradeflow/internal/router"
	"tradeflow/internal/service"
	s3storage "tradeflow/internal/storage/s3"
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

	appLog, err := logger.New(cfg.Log.Format, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLog.Sync()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	fileRepo := postgres.NewFileMetaRepo(db)
	docRepo := postgres.NewDocumentRepo(db)
	itemRepo := postgres.NewDocumentItemRepo(db)
	ruleRepo := postgres.NewRuleRepo(db)

	// Initialize storage and inference
	storage, err := s3storage.New(ctx, &cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}
	inferencer := inference.NewClient(&cfg.Inference)

	// Initialize services
	ruleSvc := service.NewRuleService(ruleRepo, appLog)
	fileSvc := service.NewFileService(fileRepo, storage, &cfg.S3, appLog)
	docSvc := service.NewDocumentService(docRepo, itemRepo, fileRepo, storage, inferencer, ruleSvc, appLog, cfg.Inference.Concurrency)
	exportSvc := service.NewExportService(docRepo, itemRepo, ruleSvc, appLog, cfg.Export.MaxDocuments)

	// Setup router
	r := router.Setup(cfg, appLog, auth.NewVerifier(cfg.JWT), &router.Handlers{
		File:     handler.NewFileHandler(fileSvc),
		Document: handler.NewDocumentHandler(docSvc),
		Export:   handler.NewExportHandler(exportSvc),
		Rule:     handler.NewRuleHandler(ruleSvc),
		Health:   handler.NewHealthHandler(db),
	})

	srv := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           r,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("server starting", "addr", cfg.Server.Port, "environment", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	appLog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
