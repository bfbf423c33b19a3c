package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Sakhi-balti/Early-Intervention-System/internal/application/usecase"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/service"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/infrastructure/config"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/infrastructure/messaging"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/infrastructure/ml"
	pgrepo "github.com/Sakhi-balti/Early-Intervention-System/internal/infrastructure/postgres"
	grpcpresentation "github.com/Sakhi-balti/Early-Intervention-System/internal/presentation/grpc"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/presentation/rest"
	"github.com/Sakhi-balti/Early-Intervention-System/pkg/kafka"
	"github.com/Sakhi-balti/Early-Intervention-System/pkg/observability"
	"github.com/Sakhi-balti/Early-Intervention-System/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: "json",
	})
	slog.SetDefault(logger)

	logger.Info("starting risk-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Tracing.
	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: "risk-service",
		Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		Insecure:    true,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer shutdownTracer(ctx)
	}

	// Metrics.
	_, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: "risk-service"})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}

	// Database.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := postgres.NewPool(dbCtx, cfg.DatabaseURL, postgres.PoolOptions{})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if cfg.RunMigrations {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
			logger.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		logger.Info("migrations applied")
	}

	// Redis.
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Error("invalid redis URL", "error", err)
		os.Exit(1)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	// Kafka.
	kafkaCfg := kafka.Config{Brokers: cfg.KafkaBrokers, ConsumerGroup: cfg.ConsumerGroup}
	producer := kafka.NewProducer(kafkaCfg)
	defer producer.Close()

	// Infrastructure adapters.
	recordReader := pgrepo.NewRecordReader(pool)
	assessmentRepo := pgrepo.NewAssessmentRepository(pool)
	alertRepo := pgrepo.NewAlertRepository(pool)
	userRepo := pgrepo.NewUserRepository(pool)
	modelProvider := ml.NewModelProvider(cfg.ModelPath, logger)
	publisher := messaging.NewKafkaPublisher(producer, cfg.AttendanceTopic, cfg.RiskTopic, logger)
	notifier := messaging.NewRedisNotifier(redisClient)

	// Use cases.
	scoreStudentUC := usecase.NewScoreStudent(
		service.NewFeatureExtractor(recordReader),
		modelProvider,
		service.NewRuleScorer(),
		assessmentRepo,
		alertRepo,
		userRepo,
		publisher,
		notifier,
		logger,
	)
	recordAttendanceUC := usecase.NewRecordAttendance(recordReader, publisher, logger)
	getStudentRiskUC := usecase.NewGetStudentRisk(assessmentRepo)
	listHighRiskUC := usecase.NewListHighRisk(assessmentRepo)
	listUnreadUC := usecase.NewListUnreadAlerts(alertRepo)
	markReadUC := usecase.NewMarkAlertRead(alertRepo)

	// Attendance consumer: every recorded attendance triggers scoring.
	consumerHandler := messaging.NewAttendanceConsumer(scoreStudentUC, logger)
	consumer := kafka.NewConsumer(kafkaCfg, cfg.AttendanceTopic, consumerHandler.Handle, logger)
	defer consumer.Close()

	// gRPC server.
	grpcHandler := grpcpresentation.NewRiskServiceHandler(scoreStudentUC, getStudentRiskUC, listHighRiskUC, logger)
	grpcServer := grpcpresentation.NewServer(grpcHandler, cfg.GRPCAddress(), logger)

	// HTTP server.
	restHandler := rest.NewHandler(
		recordAttendanceUC,
		scoreStudentUC,
		getStudentRiskUC,
		listHighRiskUC,
		listUnreadUC,
		markReadUC,
		logger,
	)
	healthHandler := rest.NewHealthHandler(logger, map[string]rest.DependencyCheck{
		"database": func(ctx context.Context) error { return postgres.HealthCheck(ctx, pool) },
		"redis":    func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
	})

	httpMux := http.NewServeMux()
	restHandler.RegisterRoutes(httpMux)
	healthHandler.RegisterRoutes(httpMux)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      rest.LoggingMiddleware(logger)(httpMux),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("GET /metrics", metricsHandler)
	metricsServer := &http.Server{
		Addr:        cfg.MetricsAddress(),
		Handler:     metricsMux,
		ReadTimeout: 5 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	// Start everything.
	errCh := make(chan error, 4)

	go func() {
		if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
			errCh <- fmt.Errorf("attendance consumer error: %w", err)
		}
	}()

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "address", cfg.MetricsAddress())
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("metrics server error: %w", err)
		}
	}()

	logger.Info("risk-service started",
		"grpc_address", cfg.GRPCAddress(),
		"http_address", cfg.HTTPAddress(),
		"metrics_address", cfg.MetricsAddress(),
		"environment", cfg.Environment,
	)

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	logger.Info("shutting down risk-service")

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown error", "error", err)
	}

	logger.Info("risk-service stopped")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
