package report

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/revenueops/pipeline-health/internal/domain"
	"github.com/revenueops/pipeline-health/internal/enrich"
	"go.uber.org/zap"
)

// Default presentation limits
const (
	DefaultTopAlerts = 10
	DefaultTopReps   = 8
)

// Aggregator joins the open-opportunity set with the alert set and computes
// the report's headline metrics, groupings and rankings
type Aggregator struct {
	topAlerts int
	topReps   int
	logger    *zap.Logger
}

// NewAggregator creates an aggregator with the default presentation limits
func NewAggregator(logger *zap.Logger) *Aggregator {
	return &Aggregator{
		topAlerts: DefaultTopAlerts,
		topReps:   DefaultTopReps,
		logger:    logger,
	}
}

// WithLimits overrides the top-N presentation limits; non-positive values
// keep the defaults
func (a *Aggregator) WithLimits(topAlerts, topReps int) *Aggregator {
	if topAlerts > 0 {
		a.topAlerts = topAlerts
	}
	if topReps > 0 {
		a.topReps = topReps
	}
	return a
}

// openDeal is one open opportunity joined with its alert's risk data.
// Opportunities absent from the alert set are implicitly healthy with score 0.
type openDeal struct {
	opp       *domain.Opportunity
	riskLevel domain.RiskLevel
	riskScore float64
}

// BuildReport computes the full pipeline report. Alerts referencing an
// unknown opportunity are a data-integrity defect: they are counted, logged
// and excluded from ranking rather than producing a malformed row.
func (a *Aggregator) BuildReport(opportunities []domain.Opportunity, alerts []domain.Alert) *domain.PipelineReport {
	byID := make(map[string]*domain.Opportunity, len(opportunities))
	for i := range opportunities {
		byID[opportunities[i].ID] = &opportunities[i]
	}

	valid := make([]domain.Alert, 0, len(alerts))
	alertByID := make(map[string]*domain.Alert, len(alerts))
	orphaned := 0
	for i := range alerts {
		alert := alerts[i]
		if _, ok := byID[alert.OpportunityID]; !ok {
			orphaned++
			a.logger.Warn("orphaned alert excluded from report",
				zap.String("opportunity_id", alert.OpportunityID),
				zap.String("account", alert.AccountName))
			continue
		}
		valid = append(valid, alert)
		alertByID[alert.OpportunityID] = &valid[len(valid)-1]
	}

	deals := a.joinOpen(opportunities, alertByID)

	return &domain.PipelineReport{
		RunID:          uuid.New(),
		GeneratedAt:    time.Now().UTC(),
		Metrics:        a.metrics(deals),
		MetricsFlat:    a.metricsFlat(deals),
		Breakdown:      a.breakdown(deals),
		RepRisk:        a.repRisk(deals),
		TopAlerts:      a.rankAlerts(valid),
		TotalAlerts:    len(valid),
		OrphanedAlerts: orphaned,
	}
}

// joinOpen restricts to open stages and attaches risk data, defaulting to
// (healthy, 0) when no alert references the opportunity
func (a *Aggregator) joinOpen(opportunities []domain.Opportunity, alertByID map[string]*domain.Alert) []openDeal {
	deals := make([]openDeal, 0, len(opportunities))
	for i := range opportunities {
		opp := &opportunities[i]
		if !opp.IsOpen() {
			continue
		}
		deal := openDeal{opp: opp, riskLevel: domain.RiskLevelHealthy}
		if alert, ok := alertByID[opp.ID]; ok {
			deal.riskLevel = alert.RiskLevel
			deal.riskScore = alert.RiskScore
		}
		deals = append(deals, deal)
	}
	return deals
}

func (a *Aggregator) metrics(deals []openDeal) domain.PipelineMetrics {
	m := domain.PipelineMetrics{TotalOpenDeals: len(deals)}

	scoredSum, scoredCount, totalScore := 0.0, 0, 0.0
	for _, d := range deals {
		m.TotalPipelineAmount += d.opp.Amount
		if d.riskLevel == domain.RiskLevelAtRisk || d.riskLevel == domain.RiskLevelHighRisk {
			m.AtRiskAmount += d.opp.Amount
			m.AtRiskCount++
		}
		if d.riskScore > 0 {
			scoredSum += d.riskScore
			scoredCount++
		}
		totalScore += d.riskScore
	}

	// Degenerate inputs degrade to zero rather than dividing by zero
	if m.TotalPipelineAmount > 0 {
		m.AtRiskPercent = float64(m.AtRiskAmount) / float64(m.TotalPipelineAmount) * 100
	}
	if scoredCount > 0 {
		m.AvgRiskScoreAtRisk = scoredSum / float64(scoredCount)
	}
	if len(deals) > 0 {
		m.AvgRiskScoreOverall = totalScore / float64(len(deals))
	}
	return m
}

func (a *Aggregator) metricsFlat(deals []openDeal) map[string]float64 {
	m := a.metrics(deals)
	return m.Flat()
}

func (a *Aggregator) breakdown(deals []openDeal) domain.RiskBreakdown {
	b := domain.RiskBreakdown{
		AmountByLevel: make(map[domain.RiskLevel]int),
		CountByLevel:  make(map[domain.RiskLevel]int),
	}
	for _, d := range deals {
		b.AmountByLevel[d.riskLevel] += d.opp.Amount
		b.CountByLevel[d.riskLevel]++
	}
	return b
}

// repRisk averages risk scores per representative, sorted descending and
// limited to the top reps. Ties break on name for a stable order.
func (a *Aggregator) repRisk(deals []openDeal) []domain.RepRiskScore {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, d := range deals {
		sums[d.opp.OwnerName] += d.riskScore
		counts[d.opp.OwnerName]++
	}

	reps := make([]domain.RepRiskScore, 0, len(sums))
	for owner, sum := range sums {
		reps = append(reps, domain.RepRiskScore{
			OwnerName:    owner,
			AvgRiskScore: sum / float64(counts[owner]),
			DealCount:    counts[owner],
		})
	}
	sort.Slice(reps, func(i, j int) bool {
		if reps[i].AvgRiskScore != reps[j].AvgRiskScore {
			return reps[i].AvgRiskScore > reps[j].AvgRiskScore
		}
		return reps[i].OwnerName < reps[j].OwnerName
	})
	if len(reps) > a.topReps {
		reps = reps[:a.topReps]
	}
	return reps
}

// rankAlerts orders alerts by risk score descending with amount descending as
// the tie-break, keeps the top N and enriches each for presentation
func (a *Aggregator) rankAlerts(alerts []domain.Alert) []domain.EnrichedAlert {
	ranked := make([]domain.Alert, len(alerts))
	copy(ranked, alerts)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].RiskScore != ranked[j].RiskScore {
			return ranked[i].RiskScore > ranked[j].RiskScore
		}
		return ranked[i].Amount > ranked[j].Amount
	})
	if len(ranked) > a.topAlerts {
		ranked = ranked[:a.topAlerts]
	}

	enriched := make([]domain.EnrichedAlert, len(ranked))
	for i, alert := range ranked {
		enriched[i] = enrich.Enrich(alert)
	}
	return enriched
}
