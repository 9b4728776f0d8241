// Command report joins the open-opportunity set with the scored alert feed
// and emits the ranked, explained, aggregated report consumed by the
// rendering layer.
package main

import (
	"fmt"
	"os"

	"github.com/revenueops/pipeline-health/internal/config"
	"github.com/revenueops/pipeline-health/internal/dataset"
	"github.com/revenueops/pipeline-health/internal/logger"
	"github.com/revenueops/pipeline-health/internal/report"
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
	log = logger.WithComponent(log, "report")

	opportunities, err := dataset.ReadOpportunities(cfg.Report.OpportunitiesPath)
	if err != nil {
		return err
	}
	alerts, err := dataset.ReadAlerts(cfg.Report.AlertsPath)
	if err != nil {
		return err
	}

	aggregator := report.NewAggregator(log).WithLimits(cfg.Report.TopAlerts, cfg.Report.TopReps)
	result := aggregator.BuildReport(opportunities, alerts)

	if err := dataset.WriteReport(cfg.Report.OutputPath, result); err != nil {
		return err
	}

	log.Info("report written",
		zap.String("path", cfg.Report.OutputPath),
		zap.Int("open_deals", result.Metrics.TotalOpenDeals),
		zap.Int("total_pipeline", result.Metrics.TotalPipelineAmount),
		zap.Float64("at_risk_percent", result.Metrics.AtRiskPercent),
		zap.Int("ranked_alerts", len(result.TopAlerts)),
		zap.Int("orphaned_alerts", result.OrphanedAlerts))

	return nil
}
