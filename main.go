package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql (migrations)
	"go.uber.org/zap"

	"github.com/firmdash/firmdash-sync/pkg/config"
	"github.com/firmdash/firmdash-sync/pkg/database"
	"github.com/firmdash/firmdash-sync/pkg/logging"
	"github.com/firmdash/firmdash-sync/pkg/models"
	"github.com/firmdash/firmdash-sync/pkg/repositories"
	"github.com/firmdash/firmdash-sync/pkg/services"
	"github.com/firmdash/firmdash-sync/pkg/source"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting firmdash-sync",
		zap.String("version", cfg.Version),
		zap.String("env", cfg.Env),
		zap.String("source_base_url", cfg.Source.BaseURL),
		zap.String("database", cfg.Database.Database))

	// The run is cancellable: SIGINT/SIGTERM finalizes the current run
	// instead of killing it mid-entity.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Sync aborted", zap.Error(err))
		os.Exit(1)
	}
}

// run wires the pipeline and executes one sync run. It returns an error only
// for fatal pre-entity failures (config, connect, migrate, run record);
// per-entity failures are reported in the run status and exit zero.
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	connStr := cfg.Database.ConnectionString()

	// Migrations go through database/sql (required by golang-migrate).
	sqlDB, err := sql.Open("pgx", connStr)
	if err != nil {
		return err
	}
	if err := database.RunMigrations(sqlDB, cfg.Sync.MigrationsPath, logger); err != nil {
		sqlDB.Close()
		return err
	}
	sqlDB.Close()

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            connStr,
		MaxConnections: cfg.Database.MaxConnections,
	}, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	client := source.NewClient(source.Options{
		BaseURL:     cfg.Source.BaseURL,
		BearerToken: cfg.Source.BearerToken,
		AccessKey:   cfg.Source.AccessKey,
		MaxPages:    cfg.Sync.MaxPages,
		Timeout:     time.Duration(cfg.Source.TimeoutSeconds) * time.Second,
	}, logger)

	writer := repositories.NewBatchWriter(db, cfg.Sync.ChunkSize, logger)
	reporter := services.NewReporter(
		repositories.NewSyncRunRepository(db),
		repositories.NewSyncLogRepository(db),
		logger,
	)
	orchestrator := services.NewOrchestrator(client, writer, reporter, logger)

	syncRun, err := orchestrator.Run(ctx)
	if err != nil {
		return err
	}

	logger.Info("firmdash-sync done",
		zap.String("run_id", syncRun.ID.String()),
		zap.String("status", string(syncRun.Status)),
		zap.Int("total_fetched", syncRun.TotalFetched),
		zap.Int("total_synced", syncRun.TotalSynced),
		zap.Int("total_errors", syncRun.TotalErrors))

	if syncRun.Status == models.RunStatusCompletedWithErrors {
		logger.Warn("Run completed with errors; see sync_log for per-entity detail",
			zap.String("run_id", syncRun.ID.String()))
	}
	return nil
}
