package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sony/gobreaker"

	"medvextract/internal/config"
	"medvextract/internal/domain/ports/adapter"
	aiAdapters "medvextract/internal/infra/adapters/ai"
	pg "medvextract/internal/infra/db/postgres"
	"medvextract/internal/infra/logging"
	"medvextract/internal/infra/metrics"
	red "medvextract/internal/infra/redis"
	"medvextract/internal/infra/web"
	"medvextract/internal/infra/worker"
	"medvextract/internal/resilience"
	"medvextract/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, noop provider allowed)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("dev mode enabled")
	}
	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, &cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()
	go func() {
		t := time.NewTicker(15 * time.Second)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				st := pool.Stat()
				metrics.SetDBPoolStats(st.TotalConns(), st.IdleConns(), st.AcquiredConns())
			}
		}
	}()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	defer redisClient.Close()
	resultCache := red.NewResultCache(redisClient)

	// ---- Repositories ----
	tm := pg.NewTxManager(pool)
	jobRepo := pg.NewTranscriptJobRepo(pool, tm)
	patientRepo := pg.NewPatientRepo(pool)
	vetRepo := pg.NewVeterinarianRepo(pool)
	clinicRepo := pg.NewClinicRepo(pool)

	// ---- Extraction provider (configured -> gemini -> openai -> noop in dev) ----
	var extractor adapter.ExtractionService
	switch {
	case cfg.AI.Provider == "gemini" || (cfg.AI.Provider == "" && cfg.AI.GeminiKey != ""):
		extractor, err = aiAdapters.NewGeminiExtractor(ctx, cfg.AI.GeminiKey, cfg.AI.GeminiURL, cfg.AI.Model, cfg.AI.MaxOutputTokens)
		if err != nil {
			logger.Fatal().Err(err).Msg("gemini extractor")
		}
	case cfg.AI.Provider == "openai" || (cfg.AI.Provider == "" && cfg.AI.OpenAIKey != ""):
		extractor, err = aiAdapters.NewOpenAIExtractor(cfg.AI.OpenAIKey, cfg.AI.Model, cfg.AI.MaxOutputTokens)
		if err != nil {
			logger.Fatal().Err(err).Msg("openai extractor")
		}
	case cfg.Runtime.Dev:
		extractor = aiAdapters.NewNoopExtractor()
	default:
		logger.Fatal().Msg("no extraction provider configured: set ai.provider with ai.gemini_key or ai.openai_key")
	}
	logger.Info().Str("provider", extractor.Provider()).Str("model", cfg.AI.Model).Msg("extraction provider ready")

	// ---- Resiliency pipeline ----
	retry := resilience.NewRetryPolicy[*adapter.ExtractionResult](resilience.RetryConfig{
		Attempts:       cfg.Resilience.RetryAttempts,
		MinBackoff:     cfg.Resilience.RetryMinBackoff,
		MaxBackoff:     cfg.Resilience.RetryMaxBackoff,
		AttemptTimeout: cfg.Resilience.AttemptTimeout,
	}, logger)
	cb := resilience.NewBreaker(resilience.BreakerConfig{
		Name:        "extraction",
		MaxFailures: cfg.Resilience.BreakerMaxFailures,
		Cooldown:    cfg.Resilience.BreakerCooldown,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("breaker state change")
			metrics.SetBreakerState(name, breakerStateValue(to))
		},
	})
	pipeline := resilience.NewFallbackPolicy[*adapter.ExtractionResult](
		resilience.NewBreakerPolicy[*adapter.ExtractionResult](cb, retry), logger)

	// ---- Workers ----
	wp := worker.NewPool(cfg.Worker.Workers, cfg.Worker.QueueSize, logger)
	wp.Start(ctx)
	defer wp.Stop()
	scheduler := worker.NewScheduler(wp, cfg.Worker.ResultExpiry, logger)
	scheduler.StartEvictor(ctx)
	processor := worker.NewTranscriptProcessor(jobRepo, resultCache, extractor, pipeline, cfg.Redis.ResultTTL, logger)

	// ---- Use cases ----
	transcriptUC := usecase.NewTranscriptUseCase(jobRepo, scheduler, processor, logger)
	patientUC := usecase.NewPatientUseCase(patientRepo)
	vetUC := usecase.NewVeterinarianUseCase(vetRepo)
	clinicUC := usecase.NewClinicUseCase(clinicRepo)

	// ---- HTTP server ----
	srv := web.NewServer(transcriptUC, patientUC, vetUC, clinicUC, logger)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Router(),
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	cancel()
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
