// @title           GST Billing API
// @version         1.0
// @description     Customers, HSN rates and GST invoices with automatic numbering.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gstbill/internal/config"
	"gstbill/internal/email/noop"
	"gstbill/internal/email/ses"
	"gstbill/internal/gst"
	"gstbill/internal/handler"
	"gstbill/internal/logger"
	"gstbill/internal/migration"
	"gstbill/internal/port"
	"gstbill/internal/render"
	"gstbill/internal/repository/postgres"
	"gstbill/internal/router"
	"gstbill/internal/service"
	s3storage "gstbill/internal/storage/s3"
)

const shutdownTimeout = 15 * time.Second

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

	zl, err := logger.New(cfg.Log, cfg.Server.Environment)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if cfg.DB.AutoMigrate {
		if err := migration.Up(db.DB); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		zl.Info("database migrations applied")
	}

	// Initialize repositories
	customerRepo := postgres.NewCustomerRepo(db)
	hsnRepo := postgres.NewHSNRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)

	// Initialize storage
	var storage port.ObjectStorage
	if cfg.S3.Enabled() {
		storage, err = s3storage.NewS3Client(ctx, &cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	} else {
		zl.Warn("S3 bucket not configured, invoice archive and email disabled")
	}

	var emailSender port.EmailSender
	if cfg.Email.Provider == "ses" {
		emailSender, err = ses.NewSESSender(ctx, cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Company.Name)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	} else {
		emailSender = noop.NewNoopSender(zl)
	}

	calc := gst.NewCalculator(gst.Config{
		HomeStateCode:     cfg.Company.StateCode,
		RatePolicy:        gst.RatePolicy(cfg.Billing.RatePolicy),
		MissingRatePolicy: gst.MissingRatePolicy(cfg.Billing.MissingRatePolicy),
	}, hsnRepo, zl.Named("gst"))

	// Initialize services
	var authSvc service.AuthService
	if cfg.Auth.Enabled() {
		authSvc = service.NewAuthService(cfg.Auth)
	} else {
		zl.Warn("auth secret not configured, API is unauthenticated")
	}
	customerSvc := service.NewCustomerService(customerRepo, cfg.Company)
	hsnSvc := service.NewHSNService(hsnRepo)
	invoiceSvc := service.NewInvoiceService(
		invoiceRepo,
		customerRepo,
		calc,
		render.New(cfg.Company),
		storage,
		emailSender,
		cfg,
	)

	// Initialize handlers
	customerH := handler.NewCustomerHandler(customerSvc)
	hsnH := handler.NewHSNHandler(hsnSvc)
	invoiceH := handler.NewInvoiceHandler(invoiceSvc)
	healthH := handler.NewHealthHandler(db)

	r := router.Setup(cfg, zl, authSvc, customerH, hsnH, invoiceH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server starting", zap.String("addr", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
