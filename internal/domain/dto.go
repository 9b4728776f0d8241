package domain

import (
	"time"

	"github.com/google/uuid"
)

// PipelineMetrics holds the headline numbers for the portfolio report
type PipelineMetrics struct {
	TotalOpenDeals      int     `json:"totalOpenDeals"`
	TotalPipelineAmount int     `json:"totalPipelineAmount"`
	AtRiskAmount        int     `json:"atRiskAmount"`
	AtRiskCount         int     `json:"atRiskCount"`
	AtRiskPercent       float64 `json:"atRiskPercent"`
	AvgRiskScoreAtRisk  float64 `json:"avgRiskScoreAtRisk"`
	AvgRiskScoreOverall float64 `json:"avgRiskScoreOverall"`
}

// Flat returns the metrics as a name-to-value mapping, the shape the
// rendering layer consumes
func (m *PipelineMetrics) Flat() map[string]float64 {
	return map[string]float64{
		"total_open_deals":       float64(m.TotalOpenDeals),
		"total_pipeline_amount":  float64(m.TotalPipelineAmount),
		"at_risk_amount":         float64(m.AtRiskAmount),
		"at_risk_count":          float64(m.AtRiskCount),
		"at_risk_percent":        m.AtRiskPercent,
		"avg_risk_score_at_risk": m.AvgRiskScoreAtRisk,
		"avg_risk_score_overall": m.AvgRiskScoreOverall,
	}
}

// RiskBreakdown holds pipeline amount and deal count grouped by risk tier.
// Not every tier is guaranteed to be present in a dataset, so consumers must
// read the buckets through the lookup-with-default accessors.
type RiskBreakdown struct {
	AmountByLevel map[RiskLevel]int `json:"amountByLevel"`
	CountByLevel  map[RiskLevel]int `json:"countByLevel"`
}

// Amount returns the pipeline amount for a tier, zero when the tier is absent
func (b *RiskBreakdown) Amount(level RiskLevel) int {
	return b.AmountByLevel[level]
}

// Count returns the deal count for a tier, zero when the tier is absent
func (b *RiskBreakdown) Count(level RiskLevel) int {
	return b.CountByLevel[level]
}

// RepRiskScore is the average risk score across one representative's open deals
type RepRiskScore struct {
	OwnerName    string  `json:"ownerName"`
	AvgRiskScore float64 `json:"avgRiskScore"`
	DealCount    int     `json:"dealCount"`
}

// PipelineReport is the full enriched and aggregated output handed to the
// rendering layer
type PipelineReport struct {
	RunID          uuid.UUID          `json:"runId"`
	GeneratedAt    time.Time          `json:"generatedAt"`
	Metrics        PipelineMetrics    `json:"metrics"`
	MetricsFlat    map[string]float64 `json:"metricsFlat"`
	Breakdown      RiskBreakdown      `json:"breakdown"`
	RepRisk        []RepRiskScore     `json:"repRisk"`
	TopAlerts      []EnrichedAlert    `json:"topAlerts"`
	TotalAlerts    int                `json:"totalAlerts"`
	OrphanedAlerts int                `json:"orphanedAlerts"`
}
