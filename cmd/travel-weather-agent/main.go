package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/i474232898/travel-weather-agent/internal/agent"
	httpapi "github.com/i474232898/travel-weather-agent/internal/api/http"
	"github.com/i474232898/travel-weather-agent/internal/config"
	"github.com/i474232898/travel-weather-agent/internal/llm"
	"github.com/i474232898/travel-weather-agent/internal/logger"
	"github.com/i474232898/travel-weather-agent/internal/scheduler"
	"github.com/i474232898/travel-weather-agent/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	appLog := logger.NewZapAdapter(zl)

	// Shared HTTP client for outbound calls.
	httpClient := providers.NewHTTPClient(cfg.HTTPConnectTimeout, cfg.HTTPTimeout)

	geocoder := providers.NewOpenMeteoGeocoder(httpClient, cfg.GeocodingURL, cfg.GeocodingLanguage)
	forecaster := providers.NewOpenMeteoForecaster(httpClient, cfg.ForecastURL)

	var model llm.Model
	if cfg.ModelEnabled() {
		switch cfg.LLMProvider {
		case config.ProviderGemini:
			model = llm.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL, httpClient)
		default:
			model = llm.NewBedrockClient(cfg.BedrockModelID, cfg.AWSRegion)
		}
		zl.Info("language model enabled", zap.String("provider", cfg.LLMProvider))
	} else {
		zl.Info("no language model configured; using text heuristic only")
	}

	service := agent.NewService(
		agent.NewExtractor(model, cfg.ModelTimeout, appLog),
		geocoder,
		forecaster,
		appLog,
	)

	// Upstream probe; disabled unless PROBE_INTERVAL is set. It gets its own provider
	// instances so probe failures never trip the circuit breakers used by chat traffic.
	sched := scheduler.New(
		providers.NewOpenMeteoGeocoder(httpClient, cfg.GeocodingURL, cfg.GeocodingLanguage),
		providers.NewOpenMeteoForecaster(httpClient, cfg.ForecastURL),
		cfg.ProbeDestination,
		cfg.ProbeInterval,
		appLog,
	)
	if err := sched.Start(); err != nil {
		zl.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	app := httpapi.NewApp(true)
	httpapi.RegisterRoutes(app, service)

	go func() {
		zl.Info("listening", zap.String("port", cfg.Port))
		if err := app.Listen(":" + cfg.Port); err != nil {
			zl.Error("fiber server stopped", zap.Error(err))
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		zl.Error("error during shutdown", zap.Error(err))
	}
}
