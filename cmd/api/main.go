package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"crmapi/internal/auth"
	"crmapi/internal/config"
	"crmapi/internal/database"
	"crmapi/internal/database/migration"
	handlers "crmapi/internal/http/handler"
	"crmapi/internal/http/middleware"
	"crmapi/internal/logger"
	"crmapi/internal/otel"
	"crmapi/internal/repository/postgres"
	"crmapi/internal/service"
	"crmapi/internal/storage"
	"crmapi/internal/tenancy"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "crmapi: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	objStore, err := storage.NewMinIO(ctx, cfg.MinIO, log)
	if err != nil {
		return fmt.Errorf("init object storage: %w", err)
	}

	reads := database.NewReadRetrier(cfg.Retry)
	tenantRepo := postgres.NewTenantPostgres(db, reads)
	clientRepo := postgres.NewClientPostgres(db, reads)
	leadRepo := postgres.NewOpportunityPostgres(db, reads)
	contractRepo := postgres.NewContractPostgres(db, reads)
	serviceRepo := postgres.NewServicePostgres(db, reads)
	stageRepo := postgres.NewStagePostgres(db, reads)
	projectRepo := postgres.NewProjectPostgres(db, reads)
	userRepo := postgres.NewUserPostgres(db, reads)
	interactionRepo := postgres.NewInteractionPostgres(db, reads)

	validator, err := tenancy.NewValidator(tenantRepo, prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("init tenant validator: %w", err)
	}
	verifier, err := auth.NewJWTVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTLeeway)
	if err != nil {
		return fmt.Errorf("init token verifier: %w", err)
	}

	sweeper := service.NewDocumentSweeper(objStore, log)

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("register http metrics: %w", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(log),
	})

	// Order matters: the logger renders chain errors, so metrics see the final status.
	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(promMiddleware.Handler())
	app.Use(middleware.Logger(log))

	handlers.RegisterRoutes(app, handlers.Deps{
		DB:           db,
		Store:        objStore,
		CRM:          tenancy.NewResolver(tenancy.NewHeaderExtractor(cfg.Auth.TenantHeader), validator),
		Portal:       tenancy.NewResolver(tenancy.NewClaimExtractor(verifier, cfg.Auth.TenantClaim), validator),
		Clients:      service.NewClientService(clientRepo, contractRepo, sweeper),
		Leads:        service.NewLeadService(leadRepo),
		Contracts:    service.NewContractService(contractRepo, sweeper),
		Documents:    service.NewContractDocumentService(objStore, contractRepo, log),
		Catalog:      service.NewCatalogService(serviceRepo, stageRepo),
		Dashboard:    service.NewDashboardService(clientRepo, leadRepo, contractRepo, projectRepo),
		Projects:     service.NewProjectService(projectRepo),
		Users:        service.NewUserService(userRepo),
		Interactions: service.NewInteractionService(interactionRepo, clientRepo, leadRepo),
		Gatherer:     prometheus.DefaultGatherer,
	})

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info("http server starting", zap.String("addr", addr))
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("start server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("http shutdown failed", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing shutdown failed", zap.Error(err))
	}
	return nil
}
