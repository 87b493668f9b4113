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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	complianceapp "github.com/faktulove/backend/internal/application/compliance"
	companyapp "github.com/faktulove/backend/internal/application/company"
	contractorapp "github.com/faktulove/backend/internal/application/contractor"
	exportapp "github.com/faktulove/backend/internal/application/export"
	identityapp "github.com/faktulove/backend/internal/application/identity"
	invoicingapp "github.com/faktulove/backend/internal/application/invoicing"
	ocrapp "github.com/faktulove/backend/internal/application/ocr"
	partnershipapp "github.com/faktulove/backend/internal/application/partnership"
	"github.com/faktulove/backend/internal/infrastructure/auth"
	"github.com/faktulove/backend/internal/infrastructure/cache"
	"github.com/faktulove/backend/internal/infrastructure/config"
	"github.com/faktulove/backend/internal/infrastructure/event"
	"github.com/faktulove/backend/internal/infrastructure/logger"
	"github.com/faktulove/backend/internal/infrastructure/ocrengine"
	"github.com/faktulove/backend/internal/infrastructure/persistence"
	"github.com/faktulove/backend/internal/infrastructure/scheduler"
	"github.com/faktulove/backend/internal/infrastructure/storage"
	"github.com/faktulove/backend/internal/interfaces/http/dto"
	"github.com/faktulove/backend/internal/interfaces/http/handler"
	"github.com/faktulove/backend/internal/interfaces/http/middleware"
	"github.com/faktulove/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLogger := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogger)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", zap.Error(err))
		}
	}()

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	contractorRepo := persistence.NewGormContractorRepository(db.DB)
	partnershipRepo := persistence.NewGormPartnershipRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	recurringRepo := persistence.NewGormRecurringInvoiceRepository(db.DB)
	documentRepo := persistence.NewGormDocumentRepository(db.DB)
	resultRepo := persistence.NewGormOCRResultRepository(db.DB)

	// Infrastructure adapters
	jwtService := auth.NewJWTService(cfg.JWT)
	idempotencyStore := cache.NewIdempotencyStore(cfg.Redis, log)
	fileStore, err := storage.NewFileStore(&cfg.Storage, log)
	if err != nil {
		log.Fatal("failed to initialize file storage", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	recognizer, err := ocrengine.NewRecognizer(ctx, &cfg.OCR, fileStore, log)
	if err != nil {
		log.Fatal("failed to initialize recognizer", zap.Error(err))
	}

	// Application services
	authService := identityapp.NewAuthService(userRepo, jwtService, cfg.Auth, log)
	companyService := companyapp.NewCompanyService(companyRepo)
	contractorService := contractorapp.NewContractorService(contractorRepo, companyRepo)
	partnershipService := partnershipapp.NewPartnershipService(partnershipRepo, companyRepo)
	invoiceService := invoicingapp.NewInvoiceService(invoiceRepo, companyRepo, contractorRepo)
	mirroringService := invoicingapp.NewMirroringService(
		invoiceRepo,
		companyRepo,
		contractorRepo,
		partnershipRepo,
		idempotencyStore,
		log,
	)
	recurringService := invoicingapp.NewRecurringService(recurringRepo, invoiceRepo, log)
	uploadService := ocrapp.NewUploadService(documentRepo, resultRepo, fileStore, log)
	processingService := ocrapp.NewProcessingService(
		documentRepo,
		resultRepo,
		invoiceRepo,
		contractorRepo,
		companyRepo,
		recognizer,
		log,
	)
	exportService := exportapp.NewExportService(invoiceRepo, contractorRepo)
	backupService := exportapp.NewBackupService(companyRepo, contractorRepo, partnershipRepo, invoiceRepo, log)
	gdprService := exportapp.NewGDPRService(contractorRepo, invoiceRepo, userRepo, log)
	complianceService := complianceapp.NewComplianceService(invoiceRepo, companyRepo, contractorRepo)

	// Event bus with domain event handlers
	eventBus := event.NewInMemoryEventBus(log)
	ocrPool := scheduler.NewOCRWorkerPool(processingService, cfg.Scheduler.OCRProcessingWorkers, log)
	eventBus.Subscribe(invoicingapp.NewInvoiceIssuedHandler(mirroringService, log))
	eventBus.Subscribe(ocrapp.NewInvoiceCreatedHandler(resultRepo, documentRepo, log))
	eventBus.Subscribe(ocrapp.NewInvoiceDeletedHandler(resultRepo, log))
	eventBus.Subscribe(ocrPool)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("failed to start event bus", zap.Error(err))
	}
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer stopCancel()
		if err := eventBus.Stop(stopCtx); err != nil {
			log.Error("failed to stop event bus", zap.Error(err))
		}
	}()

	companyService.SetEventPublisher(eventBus)
	contractorService.SetEventPublisher(eventBus)
	partnershipService.SetEventPublisher(eventBus)
	invoiceService.SetEventPublisher(eventBus)
	mirroringService.SetEventPublisher(eventBus)
	recurringService.SetEventPublisher(eventBus)
	uploadService.SetEventPublisher(eventBus)
	processingService.SetEventPublisher(eventBus)

	if err := ocrPool.Start(ctx); err != nil {
		log.Fatal("failed to start OCR worker pool", zap.Error(err))
	}
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer stopCancel()
		if err := ocrPool.Stop(stopCtx); err != nil {
			log.Error("failed to stop OCR worker pool", zap.Error(err))
		}
	}()

	if cfg.Scheduler.Enabled {
		sched := scheduler.NewScheduler(cfg.Scheduler, recurringService, mirroringService, log)
		if err := sched.Start(ctx); err != nil {
			log.Fatal("failed to start scheduler", zap.Error(err))
		}
		defer func() {
			stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer stopCancel()
			if err := sched.Stop(stopCtx); err != nil {
				log.Error("failed to stop scheduler", zap.Error(err))
			}
		}()
	} else {
		log.Info("scheduler disabled")
	}

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	companyHandler := handler.NewCompanyHandler(companyService)
	contractorHandler := handler.NewContractorHandler(contractorService)
	partnershipHandler := handler.NewPartnershipHandler(partnershipService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService, complianceService)
	recurringHandler := handler.NewRecurringHandler(recurringService)
	documentHandler := handler.NewDocumentHandler(uploadService, processingService)
	exportHandler := handler.NewExportHandler(exportService, backupService, gdprService)
	systemHandler := handler.NewSystemHandler(db)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := dto.RegisterCustomValidators(); err != nil {
		log.Fatal("failed to register validators", zap.Error(err))
	}
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("failed to set trusted proxies", zap.Error(err))
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.GET("/health", systemHandler.Health)

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.Logger = log

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))
	r.Register(authHandler)
	r.Register(companyHandler)
	r.Register(contractorHandler)
	r.Register(partnershipHandler)
	r.Register(invoiceHandler)
	r.Register(recurringHandler)
	r.Register(documentHandler)
	r.Register(exportHandler)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", zap.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}

	log.Info("server stopped")
}
