package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/carecompass/platform/internal/analysis"
	"github.com/carecompass/platform/internal/api/router"
	"github.com/carecompass/platform/internal/assistant"
	appconfig "github.com/carecompass/platform/internal/config"
	"github.com/carecompass/platform/internal/genai"
	"github.com/carecompass/platform/internal/http/handlers"
	"github.com/carecompass/platform/internal/media"
	"github.com/carecompass/platform/internal/observability/metrics"
	"github.com/carecompass/platform/internal/session"
	"github.com/carecompass/platform/pkg/logging"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting carecompass API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	generator, err := genai.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
	if err != nil {
		logger.Error("failed to create inference client", "error", err)
		os.Exit(1)
	}
	defer generator.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error("failed to connect to redis", "addr", cfg.RedisAddr, "error", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	inferenceMetrics := metrics.NewInferenceMetrics(registry)

	pipeline := analysis.NewPipeline(generator, inferenceMetrics, logger, cfg.InferenceTimeout)
	sessions := session.NewStore(redisClient, cfg.SessionTTL)
	samples := media.NewSampleFetcher(cfg.SampleFetchTimeout, cfg.MaxAttachmentBytes)

	svc := assistant.NewService(assistant.Config{
		Pipeline:           pipeline,
		Sessions:           sessions,
		Samples:            samples,
		Logger:             logger,
		MaxAttachments:     cfg.MaxAttachments,
		MaxAttachmentBytes: cfg.MaxAttachmentBytes,
	})

	assistantHandler := handlers.NewAssistantHandler(svc, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		AssistantHandler:   assistantHandler,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.InferenceTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}
