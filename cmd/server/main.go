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

	importapp "github.com/erp/docimport/internal/application/import"
	partnerapp "github.com/erp/docimport/internal/application/partner"
	"github.com/erp/docimport/internal/domain/shared"
	"github.com/erp/docimport/internal/infrastructure/cache"
	"github.com/erp/docimport/internal/infrastructure/config"
	"github.com/erp/docimport/internal/infrastructure/logger"
	"github.com/erp/docimport/internal/infrastructure/persistence"
	"github.com/erp/docimport/internal/infrastructure/storage"
	"github.com/erp/docimport/internal/infrastructure/telemetry"
	"github.com/erp/docimport/internal/infrastructure/ubl"
	"github.com/erp/docimport/internal/interfaces/http/handler"
	"github.com/erp/docimport/internal/interfaces/http/middleware"
	"github.com/erp/docimport/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/erp/docimport/docs"
)

//	@title			UBL Order Import API
//	@version		1.0
//	@description	Imports UBL 2.x Order and RequestForQuotation documents into canonical orders and matches their customer against the partner directory.

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize logger:", err)
		os.Exit(1)
	}

	if err := run(cfg, log); err != nil {
		log.Error("Server stopped with error", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.Setup(ctx, cfg.Telemetry, log)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		if err := tel.Shutdown(context.WithoutCancel(ctx)); err != nil {
			log.Warn("Telemetry shutdown failed", zap.Error(err))
		}
	}()
	log = tel.BridgeLogger(log)

	log.Info("Starting document import service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	db, err := openDirectory(cfg, log, tel.IsEnabled())
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	store, err := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log)).CreateStore()
	if err != nil {
		return fmt.Errorf("create idempotency store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("Error closing idempotency store", zap.Error(err))
		}
	}()

	tracer := tel.Tracer(telemetry.InstrumentationName)
	directory := persistence.NewGormPartnerDirectory(db.DB)
	matcher := partnerapp.NewDirectoryMatcher(directory, directory,
		partnerapp.WithLogger(log),
		partnerapp.WithTracer(tracer),
	)
	log.Info("Partner matcher ready", zap.Strings("strategies", matcher.Strategies()))

	parser := ubl.NewParser(ubl.Config{
		QuantityPrecision: cfg.Import.QuantityPrecision,
		SampleVATs:        cfg.Import.SampleVATs,
		DefaultVersion:    cfg.Import.DefaultUBLVersion,
	}, ubl.WithLogger(log), ubl.WithTracer(tracer))
	chain := importapp.NewChain(log, parser)

	importMetrics, err := telemetry.NewImportMetrics(tel.Meter(telemetry.InstrumentationName))
	if err != nil {
		return fmt.Errorf("create import metrics: %w", err)
	}

	opts := []importapp.ServiceOption{
		importapp.WithMatcher(matcher),
		importapp.WithIdempotencyStore(store),
		importapp.WithMetrics(importMetrics),
		importapp.WithLogger(log),
		importapp.WithTracer(tracer),
	}
	if cfg.Import.ArchiveEnabled {
		archive, err := storage.NewS3Archive(ctx, &cfg.Storage, storage.WithLogger(log))
		if err != nil {
			return fmt.Errorf("create document archive: %w", err)
		}
		if err := archive.EnsureBucket(ctx); err != nil {
			return fmt.Errorf("prepare archive bucket: %w", err)
		}
		opts = append(opts, importapp.WithArchive(archive))
		log.Info("Archiving imported documents", zap.String("bucket", archive.Bucket()))
	}

	service := importapp.NewImportService(chain, importapp.ServiceConfig{
		MaxDocumentSize: cfg.Import.MaxDocumentSize,
		Idempotency: shared.IdempotencyConfig{
			Enabled: cfg.Import.IdempotencyEnabled,
			TTL:     cfg.Import.IdempotencyTTL,
		},
	}, opts...)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine, err := router.NewEngine(router.EngineConfig{
		ServiceName:    cfg.Telemetry.ServiceName,
		TracingEnabled: tel.IsEnabled(),
		Meter:          tel.Meter(telemetry.InstrumentationName),
		RequestTimeout: cfg.HTTP.WriteTimeout,
		TrustedProxies: cfg.HTTP.TrustedProxies,
	}, log)
	if err != nil {
		return fmt.Errorf("create http engine: %w", err)
	}

	health := handler.NewHealthHandler(version, chain.Names()).
		AddCheck("database", func(ctx context.Context) error {
			sqlDB, err := db.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		})

	router.NewRouter(engine,
		router.WithAPIMiddleware(middleware.BodyLimit(cfg.HTTP.MaxBodySize)),
		router.WithSwagger(middleware.SwaggerConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
		}),
	).
		Register(handler.NewImportHandler(service)).
		RegisterRoot(health).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}
	log.Info("Shutting down server...")

	shutdownTimeout := cfg.HTTP.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server exited gracefully")
	return nil
}

// openDirectory connects the partner directory. sqlite directories are
// created from the models; postgres schemas come from cmd/migrate.
func openDirectory(cfg *config.Config, log *zap.Logger, tracing bool) (*persistence.Database, error) {
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))

	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithGormLogger(gormLog))
	if err != nil {
		return nil, err
	}
	log.Info("Database connected", zap.String("driver", db.Driver))

	if db.Driver == "sqlite" {
		if err := db.AutoMigrate(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate sqlite directory: %w", err)
		}
	}

	dbSystem := "postgresql"
	if db.Driver == "sqlite" {
		dbSystem = "sqlite"
	}
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:  tracing,
		DBSystem: dbSystem,
	}, log); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("register database tracing: %w", err)
	}
	return db, nil
}
