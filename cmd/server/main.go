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

	// Adapters
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/adapter/http/handler"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/adapter/http/router"
	natsAdapter "github.com/Abdurahmanit/GroupProject/marketplace-service/internal/adapter/messaging/nats"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/adapter/repository/cache"
	mongoRepo "github.com/Abdurahmanit/GroupProject/marketplace-service/internal/adapter/repository/mongodb"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/adapter/storage/local"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/adapter/storage/s3"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/mailer"

	// Config
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/config"
	// Domain & Usecase
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/marketplace/domain"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/marketplace/usecase"
	// Platform
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/token"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/tracer"

	"github.com/joho/godotenv"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("INFO: .env file not found or error loading: %v. Relying on OS environment variables.\n", err)
	}

	// 1. Logger
	appLogger := logger.NewLogger()
	defer func() { _ = appLogger.Sync() }()

	// 2. Configuration
	cfg, err := config.LoadConfig(appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load configuration", zap.Error(err))
	}
	appLogger.Info("Application starting...", zap.String("service_name", cfg.ServiceName), zap.String("http_port", cfg.HTTPPort))

	// 3. Tracer
	var tp *sdktrace.TracerProvider
	if cfg.OTExporterOTLPEndpoint != "" {
		tp = tracer.InitTracer(cfg.ServiceName, cfg.OTExporterOTLPEndpoint, appLogger)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(ctx); err != nil {
				appLogger.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	} else {
		appLogger.Info("OpenTelemetry Tracer not initialized (OTEL_EXPORTER_OTLP_ENDPOINT not set).")
	}

	// 4. MongoDB
	mongoClient, db, err := mongoRepo.NewMongoDBConnection(cfg.MongoURI, cfg.MongoDatabase, cfg.MongoConnectTimeout, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			appLogger.Error("Error disconnecting from MongoDB", zap.Error(err))
		}
	}()

	// 5. Repositories
	userRepo := mongoRepo.NewUserRepository(db, appLogger)
	productRepo := mongoRepo.NewProductRepository(db, appLogger)
	commentRepo := mongoRepo.NewCommentRepository(db, appLogger)

	// 6. Metrics
	metricsManager := metrics.NewMetricsManager("marketplace")
	if cfg.PrometheusMetricsPort != "" {
		go func() {
			if err := metrics.StartMetricsServer(cfg.PrometheusMetricsPort, appLogger, metricsManager.Registry); err != nil && !errors.Is(err, http.ErrServerClosed) {
				appLogger.Error("Prometheus metrics server failed", zap.Error(err))
			}
		}()
	}

	deps := usecase.ProductDeps{Metrics: metricsManager}

	// 7. Redis cache (optional)
	redisClient, err := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, appLogger)
	if err != nil {
		appLogger.Warn("Redis unavailable, product cache disabled", zap.Error(err))
	} else {
		defer redisClient.Close()
		deps.Cache = cache.NewRedisCacheRepository(redisClient, appLogger)
	}

	// 8. NATS publisher (optional)
	publisher, err := natsAdapter.NewPublisher(cfg.NATSURL, cfg.ServiceName, appLogger)
	if err != nil {
		appLogger.Warn("NATS unavailable, domain events disabled", zap.Error(err))
	} else {
		defer publisher.Close()
		deps.Publisher = publisher
	}

	// 9. Mailer (optional)
	if cfg.SMTPConfigured() {
		deps.Notifier = mailer.New(mailer.Config{
			Host: cfg.SMTPHost, Port: cfg.SMTPPort, From: cfg.SMTPEmail, Password: cfg.SMTPPassword,
		}, appLogger)
	} else {
		appLogger.Info("SMTP not configured, listing emails disabled")
	}

	// 10. Media storage: avatars on local disk, product images in MinIO.
	disk, err := local.NewDiskStorage(cfg.UploadsDir, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to prepare uploads directory", zap.String("dir", cfg.UploadsDir), zap.Error(err))
	}
	var imageStore domain.MediaStorage = disk
	objectStore, err := s3.NewS3Storage(s3.Options{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		Folder:    cfg.MediaFolder,
		UseSSL:    cfg.MinioUseSSL,
	}, appLogger)
	if err != nil {
		appLogger.Warn("Object storage unavailable, product images stored on local disk", zap.Error(err))
	} else {
		imageStore = objectStore
	}

	// 11. Usecases
	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTTTL)
	authUC := usecase.NewAuthUsecase(userRepo, tokens, metricsManager, appLogger)
	userUC := usecase.NewUserUsecase(userRepo, productRepo, usecase.NewMediaUsecase(disk, appLogger), appLogger)
	productUC := usecase.NewProductUsecase(productRepo, commentRepo, userRepo, usecase.NewMediaUsecase(imageStore, appLogger), deps, appLogger)
	engagementUC := usecase.NewEngagementUsecase(productRepo, commentRepo, userRepo, deps, appLogger)

	// 12. HTTP server
	httpHandler := router.New(router.Deps{
		Auth:       handler.NewAuthHandler(authUC, metricsManager, appLogger),
		Products:   handler.NewProductHandler(productUC, engagementUC, metricsManager, appLogger),
		Users:      handler.NewUserHandler(userUC, metricsManager, appLogger),
		Tokens:     tokens,
		Identity:   userUC,
		Metrics:    metricsManager,
		UploadsDir: disk.Dir(),
		RateLimit:  cfg.RateLimitPerMinute,
		TrustProxy: cfg.TrustProxy,
		Logger:     appLogger,
	})
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           httpHandler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 13. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	appLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("HTTP server shutdown error", zap.Error(err))
	}
	appLogger.Info("Application shutting down...")
}
