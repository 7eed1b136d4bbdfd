package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsp-trainer/backend/internal/api"
	practicesession "github.com/fsp-trainer/backend/internal/domain/practice_session"
	"github.com/fsp-trainer/backend/internal/grader"
	"github.com/fsp-trainer/backend/internal/infrastructure/config"
	"github.com/fsp-trainer/backend/internal/llm"
	"github.com/fsp-trainer/backend/internal/scheduler"
	"github.com/fsp-trainer/backend/internal/service"
	"github.com/fsp-trainer/backend/internal/store"
	"github.com/fsp-trainer/backend/internal/worker"

	_ "github.com/fsp-trainer/backend/docs" // generated swagger docs
)

// @title           FSP Trainer API
// @version         1.0
// @description     Practice medical German for the Fachsprachprüfung: spaced-repetition flashcards, simulated examiner conversations and AI-graded transcripts.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ── Dependencies ────────────────────────────────────────────────
	db, err := store.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logger.Error("failed to open database", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var remote store.KV
	if cfg.RedisURL != "" {
		client, err := store.NewRedisClient(cfg.RedisURL)
		if err != nil {
			logger.Error("failed to configure redis mirror", "error", err)
			os.Exit(1)
		}
		rkv := store.NewRedisKV(client)
		defer rkv.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rkv.Ping(ctx); err != nil {
			// The mirror tolerates an unreachable remote; writes retry on flush.
			logger.Warn("redis mirror unreachable at startup", "error", err)
		}
		cancel()
		remote = rkv
	}
	mirror := store.NewMirror(db, remote, cfg.MirrorDebounce, logger)

	provider := llm.New(llm.Options{
		URL:      cfg.LLMURL,
		APIKey:   cfg.LLMAPIKey,
		Model:    cfg.LLMModel,
		STTModel: cfg.STTModel,
		TTSModel: cfg.TTSModel,
		Voice:    cfg.TTSVoice,
	})
	if !provider.Configured() {
		logger.Warn("language model provider not configured; evaluation and speech endpoints will answer 503")
	}

	pool := worker.NewPool[any](cfg.LLMConcurrency, cfg.LLMConcurrency*4)
	defer pool.Close()

	practiceSvc := service.NewPracticeService(db, mirror, logger,
		practicesession.WithLocation(cfg.Location()),
	)
	evaluationSvc := service.NewEvaluationService(grader.NewExaminer(provider, logger), db, pool, logger)
	speechSvc := service.NewSpeechService(provider, pool, logger)

	if cfg.CardsFile != "" {
		importCardsFile(practiceSvc, cfg.CardsFile, logger)
	}

	// ── Background jobs ─────────────────────────────────────────────
	var flusher scheduler.Flusher
	if remote != nil {
		flusher = mirror
	}
	jobs := scheduler.New(cfg.Location(), flusher, evaluationSvc, cfg.EvaluationRetention, logger)
	if err := jobs.Start(); err != nil {
		logger.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer jobs.Stop()

	// ── Routes ──────────────────────────────────────────────────────
	handler := api.NewHandler(practiceSvc, evaluationSvc, speechSvc, logger)
	if cfg.AuthJWTSecret == "" {
		logger.Info("authentication disabled; all requests use the local learner")
	}

	// ── Middleware chain: Logging → CORS → mux ──────────────────────
	logged := api.Logging(logger)(api.NewRouter(handler, cfg.AuthJWTSecret))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      5 * time.Minute, // evaluations wait on the provider
		IdleTimeout:       60 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
		if err := mirror.Flush(ctx); err != nil {
			logger.Error("failed to flush mirror", "pending", mirror.Pending(), "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress, "db_driver", cfg.DBDriver)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
	<-done
}

func importCardsFile(svc *service.PracticeService, path string, logger *slog.Logger) {
	f, err := os.Open(path)
	if err != nil {
		logger.Error("failed to open cards file", "path", path, "error", err)
		return
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	res, err := svc.ImportCards(ctx, f, path)
	if err != nil {
		logger.Error("failed to import cards file", "path", path, "error", err)
		return
	}
	logger.Info("imported cards file", "path", path, "imported", res.Created, "skipped", res.Skipped)
}
