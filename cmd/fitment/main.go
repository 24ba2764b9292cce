package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MikeSquared-Agency/Fitment/internal/api"
	"github.com/MikeSquared-Agency/Fitment/internal/config"
	"github.com/MikeSquared-Agency/Fitment/internal/hermes"
	"github.com/MikeSquared-Agency/Fitment/internal/insights"
	"github.com/MikeSquared-Agency/Fitment/internal/matching"
	"github.com/MikeSquared-Agency/Fitment/internal/personality"
	"github.com/MikeSquared-Agency/Fitment/internal/scoring"
	"github.com/MikeSquared-Agency/Fitment/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	db, err := store.NewPostgresStore(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to database")

	// Hermes (optional)
	var hermesClient hermes.Client
	if cfg.Hermes.URL != "" {
		hc, err := hermes.NewNATSClient(ctx, cfg.Hermes.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to hermes, running without events", "error", err)
		} else {
			hermesClient = hc
			defer hc.Close()
			logger.Info("connected to hermes")
		}
	}

	// Insights (optional; without a generator every run uses the fallback text)
	var annotator *insights.Annotator
	if cfg.Insights.Enabled {
		var gen insights.ContentGenerator
		g, err := insights.NewGeminiGenerator(ctx, cfg.Insights.APIKey, cfg.Insights.Model)
		if err != nil {
			logger.Warn("insight generator unavailable, using fallback insights", "error", err)
		} else {
			gen = g
			logger.Info("insight generator ready", "model", g.Model())
		}
		annotator = insights.NewAnnotator(gen, cfg.Insights.TopN, cfg.InsightTimeout(), logger)
	}

	catalogue := personality.Default()
	scorer := scoring.NewScorer(cfg.Matching.Weights, catalogue, logger)
	engine := scoring.NewEngine(scorer, cfg.Matching.Workers, logger)
	svc := matching.NewService(db, engine, annotator, hermesClient, matching.NewMetrics(prometheus.DefaultRegisterer), matching.Config{
		DefaultTopN:   cfg.Matching.DefaultTopN,
		MaxTopN:       cfg.Matching.MaxTopN,
		MaxCandidates: cfg.Matching.MaxCandidates,
	}, logger)
	logger.Info("matching service ready",
		"algorithm_version", matching.AlgorithmVersion,
		"catalogue_version", catalogue.Version(),
		"workers", cfg.Matching.Workers,
	)

	// API server
	router := api.NewRouter(svc, catalogue, cfg.Server.AdminToken, logger)
	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Metrics server
	metricsRouter := api.NewMetricsRouter()
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: metricsRouter,
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
