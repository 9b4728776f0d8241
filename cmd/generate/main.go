// Command generate synthesizes a CRM opportunity dataset across the
// calibrated risk archetypes and writes it as CSV, optionally persisting a
// snapshot for the external scoring model.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/revenueops/pipeline-health/internal/config"
	"github.com/revenueops/pipeline-health/internal/database"
	"github.com/revenueops/pipeline-health/internal/dataset"
	"github.com/revenueops/pipeline-health/internal/generator"
	"github.com/revenueops/pipeline-health/internal/logger"
	"github.com/revenueops/pipeline-health/internal/repository"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	log = logger.WithComponent(log, "generate")

	now, err := cfg.Generator.ReferenceTime()
	if err != nil {
		return err
	}

	counts := generator.Counts{
		Healthy:    cfg.Generator.Healthy,
		MediumRisk: cfg.Generator.MediumRisk,
		HighRisk:   cfg.Generator.HighRisk,
		ClosedWon:  cfg.Generator.ClosedWon,
		ClosedLost: cfg.Generator.ClosedLost,
	}

	log.Info("generating dataset",
		zap.Int64("seed", cfg.Generator.Seed),
		zap.Time("reference_date", now),
		zap.Int("total", counts.Total()))

	gen := generator.New(cfg.Generator.Seed, log)
	opportunities, err := gen.GenerateDataset(counts, now)
	if err != nil {
		// Configuration error: fail before any output is produced
		return err
	}

	if err := dataset.WriteOpportunities(cfg.Generator.OutputPath, opportunities); err != nil {
		return err
	}
	log.Info("dataset written", zap.String("path", cfg.Generator.OutputPath))

	if cfg.Generator.SnapshotEnabled {
		db, err := database.NewDatabase(&cfg.Database)
		if err != nil {
			return err
		}
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate snapshot store: %w", err)
		}
		repo := repository.NewOpportunityRepository(db)
		if err := repo.ReplaceDataset(context.Background(), opportunities); err != nil {
			return fmt.Errorf("failed to persist snapshot: %w", err)
		}
		log.Info("snapshot persisted", zap.String("driver", cfg.Database.Driver))
	}

	return nil
}
