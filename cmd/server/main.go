package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/invest-planner/internal/clients/moex"
	"github.com/aristath/invest-planner/internal/config"
	"github.com/aristath/invest-planner/internal/database"
	"github.com/aristath/invest-planner/internal/modules/goals"
	"github.com/aristath/invest-planner/internal/modules/inflation"
	"github.com/aristath/invest-planner/internal/modules/marketdata"
	"github.com/aristath/invest-planner/internal/modules/marketdata/jobs"
	"github.com/aristath/invest-planner/internal/modules/portfolio"
	"github.com/aristath/invest-planner/internal/modules/riskprofile"
	"github.com/aristath/invest-planner/internal/scheduler"
	"github.com/aristath/invest-planner/internal/server"
	"github.com/aristath/invest-planner/internal/session"
	"github.com/aristath/invest-planner/pkg/logger"
)

func main() {
	// Initialize logger
	log := logger.New(logger.Config{
		Level:  "info",
		Pretty: true,
	})

	log.Info().Msg("Starting Invest Planner")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Re-initialize with the configured level and output
	log = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Policy tables (risk thresholds and allocation weights), with
	// optional TOML overrides from the same file
	riskPolicy, err := riskprofile.LoadPolicy(cfg.PolicyPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load risk policy")
	}
	allocPolicy, err := portfolio.LoadPolicy(cfg.PolicyPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load allocation policy")
	}

	// Session store for per-user conversational state
	store := session.New(time.Duration(cfg.SessionTTLMins) * time.Minute)

	// Market data layer
	moexClient := moex.NewClient(cfg.MoexBaseURL, log)
	instrumentRepo := marketdata.NewInstrumentRepository(db.Conn(), log)
	estimator := marketdata.NewEstimator(log)

	// Inflation layer
	inflationRepo := inflation.NewRepository(db.Conn(), log)
	inflationSvc := inflation.NewService(inflationRepo, log)

	// Core services
	riskSvc := riskprofile.NewService(store, riskPolicy, log)
	engine := portfolio.NewEngine(instrumentRepo, allocPolicy, log)
	portfolioSvc := portfolio.NewService(store, inflationSvc, engine, log)
	portfolioRepo := portfolio.NewRepository(db.Conn(), log)

	// Initialize scheduler and register the catalog sync
	sched := scheduler.New(log)
	syncJob := jobs.NewCatalogSync(moexClient, instrumentRepo, estimator, marketdata.DefaultUniverse(), log)
	if err := sched.AddJob("0 0 7 * * *", syncJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register catalog sync job")
	}
	sched.Start()
	defer sched.Stop()

	// Warm the catalog on startup so recommendations work immediately
	go func() {
		if err := sched.RunNow(syncJob); err != nil {
			log.Warn().Err(err).Msg("Initial catalog sync failed, will retry on schedule")
		}
	}()

	systemHandlers := server.NewSystemHandlers(log, instrumentRepo, sched)
	systemHandlers.SetSyncJob(syncJob)

	// Initialize HTTP server
	srv := server.New(server.Config{
		Port:        cfg.Port,
		Log:         log,
		DevMode:     cfg.DevMode,
		Goals:       goals.NewHandlers(store, log),
		RiskProfile: riskprofile.NewHandlers(riskSvc, log),
		Portfolio:   portfolio.NewHandlers(portfolioSvc, portfolioRepo, log),
		MarketData:  marketdata.NewHandlers(instrumentRepo, log),
		Inflation:   inflation.NewHandlers(inflationRepo, log),
		System:      systemHandlers,
	})

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
