// Command httpd runs the grievance triage HTTP service.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dhruva-pgrs/triage/internal/api"
	"github.com/dhruva-pgrs/triage/internal/casestore"
	"github.com/dhruva-pgrs/triage/internal/config"
	"github.com/dhruva-pgrs/triage/internal/database"
	"github.com/dhruva-pgrs/triage/internal/knowledge"
	"github.com/dhruva-pgrs/triage/internal/logging"
	"github.com/dhruva-pgrs/triage/internal/mlclient"
	"github.com/dhruva-pgrs/triage/internal/pattern"
	"github.com/dhruva-pgrs/triage/internal/processor"
	"github.com/dhruva-pgrs/triage/internal/telemetry"
	"github.com/dhruva-pgrs/triage/internal/triage"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Local development convenience; missing .env is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("TRIAGE_CONFIG"))
	if err != nil {
		logFatal("failed to load configuration", err)
	}

	logger, err := logging.New(cfg.Logging.Level)
	if err != nil {
		logFatal("failed to initialize logger", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting triage service",
		logging.String("name", cfg.Service.Name),
		logging.String("version", cfg.Service.Version),
		logging.Int("port", cfg.Service.Port),
		logging.Bool("debug", cfg.Service.Debug),
	)

	kb, err := loadKnowledge(cfg, logger)
	if err != nil {
		logFatal("failed to load knowledge base", err)
	}

	db, err := database.Open(cfg.Store.Path)
	if err != nil {
		logFatal("failed to open case store database", err)
	}
	defer func() { _ = db.Close() }()

	repo := database.NewCaseRepository(db)
	store := casestore.New(casestore.NewMemoryIndex(), repo, logger)

	ctx := context.Background()
	if err := store.Load(ctx); err != nil {
		logFatal("failed to hydrate case store", err)
	}

	var ml triage.ModelClient
	if cfg.Models.Enabled {
		client := mlclient.NewClient(cfg.Models.URL)
		if err := client.Health(ctx); err != nil {
			logger.Warn("model sidecar unreachable at startup, keyword fallback active",
				logging.String("url", cfg.Models.URL), logging.Err(err))
		}
		ml = client
	} else {
		logger.Info("model sidecar disabled, keyword-only triage")
	}

	tp := telemetry.NewProvider()
	detector := pattern.NewDetector(logger)
	pipeline := triage.NewPipeline(kb, ml, store, detector, tp, logger)

	pool := processor.NewPool(pipeline, processor.Config{
		Workers:       cfg.Pool.Workers,
		MaxQueueDepth: cfg.Pool.MaxQueueDepth,
		SubmitTimeout: cfg.Pool.SubmitTimeout,
	}, nil, tp, logger)
	pool.Start(ctx)
	defer pool.Stop()

	handler := api.NewHandler(pipeline, pool, logger)
	server := api.NewServer(handler, api.ServerConfig{
		Port:           cfg.Service.Port,
		Debug:          cfg.Service.Debug,
		RateLimitRPS:   float64(cfg.RateLimit.RPS),
		RateLimitBurst: cfg.RateLimit.Burst,
	}, tp.Handler(), logger)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			logFatal("server error", err)
		}
	case sig := <-shutdown:
		logger.Info("shutdown signal received", logging.String("signal", sig.String()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", logging.Err(err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	}
}

func loadKnowledge(cfg *config.Config, logger logging.Logger) (*knowledge.Base, error) {
	if cfg.Knowledge.Path == "" {
		return knowledge.Default(), nil
	}
	kb, err := knowledge.Load(cfg.Knowledge.Path)
	if err != nil {
		return nil, err
	}
	logger.Info("knowledge overlay loaded", logging.String("path", cfg.Knowledge.Path))
	return kb, nil
}

func logFatal(msg string, err error) {
	// Logger may not exist yet; plain stderr is the floor.
	os.Stderr.WriteString(msg + ": " + err.Error() + "\n")
	os.Exit(1)
}
