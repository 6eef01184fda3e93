package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	openai "github.com/sashabaranov/go-openai"

	"github.com/harborview-health/scheduler-agent/internal/api/router"
	"github.com/harborview-health/scheduler-agent/internal/booking"
	appconfig "github.com/harborview-health/scheduler-agent/internal/config"
	"github.com/harborview-health/scheduler-agent/internal/engine"
	"github.com/harborview-health/scheduler-agent/internal/extract"
	"github.com/harborview-health/scheduler-agent/internal/notify"
	"github.com/harborview-health/scheduler-agent/internal/observability/metrics"
	"github.com/harborview-health/scheduler-agent/internal/patients"
	"github.com/harborview-health/scheduler-agent/internal/schedule"
	"github.com/harborview-health/scheduler-agent/internal/seed"
	"github.com/harborview-health/scheduler-agent/internal/webchat"
	"github.com/harborview-health/scheduler-agent/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting scheduler-agent API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Backing stores: Postgres when configured, otherwise in-memory demo data.
	var (
		patientStore patients.Store
		slotStore    schedule.Store
		sink         booking.Sink
	)
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer func() { _ = db.Close() }()

		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create pgx pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		patientStore = patients.NewPostgresStore(db)
		slotStore = schedule.NewPostgresStore(pool)
		sink = booking.NewPostgresSink(pool)
	} else {
		demo := seed.Generate(seed.Options{})
		patientStore = patients.NewMemoryStoreWith(demo.Patients)
		slotStore = schedule.NewMemoryStore(demo.Slots)
		sink = booking.NewMemorySink()
		logger.Info("no DATABASE_URL set, using in-memory stores with demo data",
			"patients", len(demo.Patients), "slots", len(demo.Slots))
	}

	// Session store: Redis when configured, otherwise in-memory.
	var sessions engine.SessionStore = engine.NewMemorySessionStore()
	if cfg.RedisAddr != "" {
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		sessions = engine.NewRedisSessionStore(redis.NewClient(opts))
	}

	// Entity extraction backend.
	var extractor extract.Extractor = extract.NewPatternExtractor()
	if cfg.Extractor == "model" {
		if cfg.OpenAIAPIKey == "" {
			logger.Warn("EXTRACTOR=model but no OPENAI_API_KEY, falling back to pattern extractor")
		} else {
			extractor = extract.NewModelExtractor(
				openai.NewClient(cfg.OpenAIAPIKey), cfg.OpenAIModel, logger)
		}
	}
	extractor = extract.WithTimeout(extractor, cfg.ExtractionTimeout)

	// Email notifications and reminders.
	var sender notify.EmailSender = notify.NewLogSender(logger)
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger); sg != nil {
		sender = sg
	}
	notifier := notify.NewService(sender, logger)
	go notifier.Run(ctx, cfg.ReminderInterval)

	engineMetrics := metrics.NewEngineMetrics(nil)
	eng := engine.New(
		extractor,
		patients.NewResolver(patientStore, logger),
		schedule.NewResolver(slotStore, logger),
		booking.NewManager(sink, notifier, logger),
		sessions,
		engineMetrics,
		logger,
	)

	r := router.New(&router.Config{
		Logger:             logger,
		ChatHandler:        engine.NewHandler(eng, logger),
		WebchatHandler:     webchat.NewHandler(eng, logger),
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		ChatRatePerSecond:  cfg.ChatRatePerSecond,
		ChatRateBurst:      cfg.ChatRateBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
