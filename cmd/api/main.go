// Timesheet, approval, and invoicing API.
//
// @title           TimesheetPro API
// @version         1.0
// @description     Biweekly timesheet logging, manager approval, and invoice tracking.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/cluedotech/timesheetpro/internal/api"
	"github.com/cluedotech/timesheetpro/internal/core/ports"
	"github.com/cluedotech/timesheetpro/internal/core/service"
	"github.com/cluedotech/timesheetpro/internal/core/store"
	"github.com/cluedotech/timesheetpro/internal/infrastructure/ai/gemini"
	"github.com/cluedotech/timesheetpro/internal/infrastructure/config"
	memorydb "github.com/cluedotech/timesheetpro/internal/infrastructure/db/memory"
	mongodb "github.com/cluedotech/timesheetpro/internal/infrastructure/db/mongo"
	redisdb "github.com/cluedotech/timesheetpro/internal/infrastructure/db/redis"
	"github.com/cluedotech/timesheetpro/internal/infrastructure/queue"
	"github.com/cluedotech/timesheetpro/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// MongoDB backs the collection snapshots. Without it the service runs
	// memory-only: every operation still works, nothing survives a restart.
	var snapshots ports.SnapshotStore
	mongoClient, mongoDatabase, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Warn().Err(err).Msg("mongodb unavailable, running memory-only")
		snapshots = memorydb.NewSnapshotStore()
	} else {
		snapshots = mongodb.NewSnapshotStore(mongoDatabase)
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = mongoClient.Disconnect(disconnectCtx)
		}()
	}

	// Redis backs the invoice number sequence. The in-process fallback keeps
	// numbers unique within a single run only.
	var sequence ports.InvoiceSequence
	redisClient, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, using in-process invoice sequence")
		redisClient = nil
		sequence = memorydb.NewInvoiceSequence(cfg.InvoiceSeed)
	} else {
		defer func() { _ = redisClient.Close() }()
		sequence, err = redisdb.NewInvoiceSequence(ctx, redisClient, cfg.InvoiceSeed)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to seed invoice sequence")
		}
	}

	st := store.Open(ctx, snapshots, log)

	// Summaries degrade to canned text when no Gemini key is configured.
	var textGen ports.TextGenerator
	if cfg.Gemini.APIKey != "" {
		client, err := gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.BaseURL)
		if err != nil {
			log.Warn().Err(err).Msg("gemini client unavailable, summaries will use placeholders")
		} else {
			textGen = client
		}
	}

	dispatcher := queue.NewDispatcher(0, log)
	dispatcher.Start(ctx)

	notifications := service.NewNotificationService(st, log)
	timesheets := service.NewTimesheetEngine(st, sequence, notifications, dispatcher, log)
	directory := service.NewDirectoryService(st, log)
	summaries := service.NewSummaryService(textGen, log)
	exporter := service.NewInvoiceExportService(st, log)
	auth := service.NewAuthService(st, cfg.JWTSecret, 24*time.Hour)

	e := api.NewRouter(api.Deps{
		JWTSecret:     cfg.JWTSecret,
		Log:           log,
		Auth:          auth,
		Timesheets:    timesheets,
		Directory:     directory,
		Notifications: notifications,
		Summaries:     summaries,
		Exporter:      exporter,
		Mongo:         mongoDatabase,
		Redis:         redisClient,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
