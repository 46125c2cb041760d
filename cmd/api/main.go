package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/commercekit/commerce-core/internal/audit"
	"github.com/commercekit/commerce-core/internal/cache"
	"github.com/commercekit/commerce-core/internal/config"
	"github.com/commercekit/commerce-core/internal/database"
	"github.com/commercekit/commerce-core/internal/httpx"
	idempostgres "github.com/commercekit/commerce-core/internal/idempotency/postgres"
	"github.com/commercekit/commerce-core/internal/kafka"
	ordersadapters "github.com/commercekit/commerce-core/internal/orders/adapters"
	ordershttp "github.com/commercekit/commerce-core/internal/orders/adapters/http"
	orderspostgres "github.com/commercekit/commerce-core/internal/orders/adapters/postgres"
	ordersapp "github.com/commercekit/commerce-core/internal/orders/app"
	ordersmetrics "github.com/commercekit/commerce-core/internal/orders/metrics"
	paymentsadapters "github.com/commercekit/commerce-core/internal/payments/adapters"
	paymentshttp "github.com/commercekit/commerce-core/internal/payments/adapters/http"
	paymentspostgres "github.com/commercekit/commerce-core/internal/payments/adapters/postgres"
	paymentsapp "github.com/commercekit/commerce-core/internal/payments/app"
	paymentsmetrics "github.com/commercekit/commerce-core/internal/payments/metrics"
	"github.com/commercekit/commerce-core/internal/telemetry"
	_ "github.com/joho/godotenv/autoload"
	"go.opentelemetry.io/otel"
)

func main() {
	if err := run(); err != nil {
		slog.Error("service exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := telemetry.NewLogger(parseLogLevel(cfg.Telemetry.LogLevel))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.Initialize(ctx, telemetry.Config{
		ServiceName:    cfg.Service.Name,
		ServiceVersion: cfg.Service.Version,
		Environment:    cfg.Service.Environment,
		OTLPEndpoint:   cfg.Telemetry.OTelEndpoint,
		EnableTracing:  cfg.Telemetry.EnableTracing && cfg.Telemetry.OTelEndpoint != "",
		EnableMetrics:  cfg.Telemetry.EnableMetrics && cfg.Telemetry.OTelEndpoint != "",
		SampleRate:     cfg.Telemetry.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			logger.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	pool, err := database.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("create database pool: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		logger.Info("running database migrations", "path", cfg.Database.MigrationsPath)
		if err := database.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsPath); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("migrations completed successfully")
	}

	meter := otel.Meter(cfg.Service.Name)

	httpMetrics, err := httpx.NewMetrics(meter)
	if err != nil {
		return fmt.Errorf("create http metrics: %w", err)
	}
	dbMetrics, err := database.NewMetrics(meter)
	if err != nil {
		return fmt.Errorf("create database metrics: %w", err)
	}
	busMetrics, err := kafka.NewMetrics(meter)
	if err != nil {
		return fmt.Errorf("create event bus metrics: %w", err)
	}
	orderMetrics, err := ordersmetrics.NewMetrics(meter)
	if err != nil {
		return fmt.Errorf("create order metrics: %w", err)
	}
	paymentMetrics, err := paymentsmetrics.NewMetrics(meter)
	if err != nil {
		return fmt.Errorf("create payment metrics: %w", err)
	}

	var readCache cache.Cache = cache.Noop{}
	if cfg.Redis.Addr != "" {
		readCache = cache.NewRedis(cfg.Redis.Addr, cfg.Service.Name)
		logger.Info("redis cache enabled", "addr", cfg.Redis.Addr)
	}

	auditSink := audit.NewLogSink(logger)

	orderRepo := ordersadapters.NewObservableRepository(
		ordersadapters.NewCachedRepository(orderspostgres.NewRepository(pool), readCache, logger),
		dbMetrics,
	)
	orderBus := ordersadapters.NewObservableEventBus(kafka.NewNoopEventBus(), busMetrics)
	orderService := ordersapp.NewService(orderRepo, orderBus, auditSink, logger, orderMetrics, ordersapp.Config{
		MaxItemQuantity: cfg.Orders.MaxItemQuantity,
	})

	paymentRepo := paymentsadapters.NewObservableRepository(
		paymentsadapters.NewCachedRepository(paymentspostgres.NewRepository(pool), readCache, logger),
		dbMetrics,
	)
	paymentBus := paymentsadapters.NewObservableEventBus(kafka.NewNoopEventBus(), busMetrics)
	referenceData := paymentspostgres.NewReferenceData(pool)
	paymentService := paymentsapp.NewService(paymentRepo, referenceData, paymentBus, auditSink, logger, paymentMetrics)

	idemStore := idempostgres.NewStore(pool)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := database.CheckHealth(r.Context(), pool); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready", "error": err.Error()})
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	ordershttp.NewHandler(orderService, idemStore).Register(mux)
	paymentshttp.NewHandler(paymentService, idemStore).Register(mux)

	handler := httpx.WithRecovery(httpx.WithLogging(httpx.WithMetrics(mux, httpMetrics), logger), logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "port", cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownGrace)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	logger.Info("http server stopped")
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
