package generator

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/revenueops/pipeline-health/internal/domain"
	"go.uber.org/zap"
)

// Archetype identifies one correlated-field profile a synthetic deal is built from
type Archetype string

const (
	ArchetypeHealthy    Archetype = "healthy"
	ArchetypeMediumRisk Archetype = "medium_risk"
	ArchetypeHighRisk   Archetype = "high_risk"
	ArchetypeClosedWon  Archetype = "closed_won"
	ArchetypeClosedLost Archetype = "closed_lost"
)

// Counts is the requested dataset mix, one count per archetype
type Counts struct {
	Healthy    int
	MediumRisk int
	HighRisk   int
	ClosedWon  int
	ClosedLost int
}

// Total returns the total number of records requested
func (c Counts) Total() int {
	return c.Healthy + c.MediumRisk + c.HighRisk + c.ClosedWon + c.ClosedLost
}

// Generator synthesizes opportunity records. All output is a pure function of
// the seed, the requested counts and the reference date; re-running with the
// same inputs produces the same dataset.
type Generator struct {
	rng    *rand.Rand
	logger *zap.Logger
}

// New creates a seeded generator
func New(seed int64, logger *zap.Logger) *Generator {
	return &Generator{
		rng:    rand.New(rand.NewSource(seed)),
		logger: logger,
	}
}

// GenerateDataset produces the requested mix of opportunities against a
// shuffled slice of the account-name pool. The healthy records come first,
// then medium-risk, high-risk, closed-won and closed-lost.
func (g *Generator) GenerateDataset(counts Counts, now time.Time) ([]domain.Opportunity, error) {
	total := counts.Total()
	if total > len(AccountNames) {
		return nil, fmt.Errorf("%w: requested %d, have %d", domain.ErrNotEnoughAccounts, total, len(AccountNames))
	}

	accounts := g.sampleStrings(AccountNames, len(AccountNames))

	opportunities := make([]domain.Opportunity, 0, total)
	idx := 0
	next := func() string {
		name := accounts[idx]
		idx++
		return name
	}

	for i := 0; i < counts.Healthy; i++ {
		opportunities = append(opportunities, g.Healthy(next(), now))
	}
	for i := 0; i < counts.MediumRisk; i++ {
		opportunities = append(opportunities, g.MediumRisk(next(), now))
	}
	for i := 0; i < counts.HighRisk; i++ {
		opportunities = append(opportunities, g.HighRisk(next(), now))
	}
	for i := 0; i < counts.ClosedWon; i++ {
		opportunities = append(opportunities, g.Closed(next(), now, true))
	}
	for i := 0; i < counts.ClosedLost; i++ {
		opportunities = append(opportunities, g.Closed(next(), now, false))
	}

	g.logger.Info("dataset generated",
		zap.Int("total", total),
		zap.Int("healthy", counts.Healthy),
		zap.Int("medium_risk", counts.MediumRisk),
		zap.Int("high_risk", counts.HighRisk),
		zap.Int("closed_won", counts.ClosedWon),
		zap.Int("closed_lost", counts.ClosedLost))

	return opportunities, nil
}

// Healthy produces one deal with good hygiene: within-benchmark velocity,
// recent activity and stakeholders appropriate to the stage.
func (g *Generator) Healthy(account string, now time.Time) domain.Opportunity {
	return g.synthesize(healthyProfile, account, now)
}

// MediumRisk produces one deal carrying 1-2 yellow flags
func (g *Generator) MediumRisk(account string, now time.Time) domain.Opportunity {
	return g.synthesize(mediumRiskProfile, account, now)
}

// HighRisk produces one deal carrying 3-4 red flags and stuck well past its
// stage benchmark
func (g *Generator) HighRisk(account string, now time.Time) domain.Opportunity {
	return g.synthesize(highRiskProfile, account, now)
}

// synthesize is the generic record builder. The profile supplies the ranges
// and rules; the build order is fixed so a seed always replays identically.
func (g *Generator) synthesize(p profile, account string, now time.Time) domain.Opportunity {
	stage := domain.OpenStages[g.between(p.stageRange[0], p.stageRange[1])]
	stageOrder := stage.Order()

	owner := g.pick(SalesReps)
	amount := g.between(p.amountK[0], p.amountK[1]) * 1000
	dealType := p.dealTypes[g.rng.Intn(len(p.dealTypes))]
	createdDate := daysAgo(now, g.between(p.createdAgo[0], p.createdAgo[1]))

	factors := g.sampleFactors(p)

	daysInStage := p.daysInStage(g, stage, factors)
	lastStageChange := daysAgo(now, daysInStage)
	lastActivity := daysAgo(now, p.activityGap(g, factors))
	closeDate := daysAgo(now, -p.closeOffset(g, factors))

	competitor := p.competitor(g, factors)
	economicBuyer, technicalChampion := p.stakeholders(stageOrder, factors)
	security := p.security(g, stageOrder, factors)
	nextStep := p.nextStep(g, factors)
	useCase := g.pick(UseCases)
	description := p.narrative(g, g.pick(UseCases), competitor, factors)

	return domain.Opportunity{
		ID:                   g.opportunityID(),
		Name:                 account + " - Enterprise AI",
		AccountName:          account,
		OwnerName:            owner,
		Amount:               amount,
		Type:                 dealType,
		Stage:                stage,
		Probability:          stage.Probability(),
		CloseDate:            closeDate,
		CreatedDate:          createdDate,
		LastActivityDate:     lastActivity,
		LastStageChangeDate:  lastStageChange,
		NextStep:             nextStep,
		EconomicBuyer:        economicBuyer,
		TechnicalChampion:    technicalChampion,
		SecurityReviewStatus: security,
		Competitor:           competitor,
		UseCase:              useCase,
		Description:          description,
	}
}

// Closed produces one terminal deal. All three trailing dates collapse to the
// closed date; won deals get a fully clean profile, lost deals carry a loss
// reason and a competitor consistent with it.
func (g *Generator) Closed(account string, now time.Time, won bool) domain.Opportunity {
	stage := domain.StageClosedLost
	if won {
		stage = domain.StageClosedWon
	}

	closedDate := daysAgo(now, g.between(10, 60))
	createdDate := daysAgo(closedDate, g.between(60, 120))
	amount := g.between(80, 450) * 1000
	owner := g.pick(SalesReps)
	useCase := g.pick(UseCases)

	opp := domain.Opportunity{
		ID:                  g.opportunityID(),
		Name:                account + " - Enterprise AI",
		AccountName:         account,
		OwnerName:           owner,
		Amount:              amount,
		Type:                domain.DealTypeNewBusiness,
		Stage:               stage,
		Probability:         stage.Probability(),
		CloseDate:           closedDate,
		CreatedDate:         createdDate,
		LastActivityDate:    closedDate,
		LastStageChangeDate: closedDate,
		UseCase:             useCase,
	}

	if won {
		opp.TechnicalChampion = technicalChampionName
		opp.EconomicBuyer = economicBuyerName
		opp.SecurityReviewStatus = domain.SecurityComplete
		opp.NextStep = "Onboarding scheduled"
		opp.Competitor = g.pick(closedWonCompetitors)
		opp.Description = "Successfully closed! Moving to implementation phase. Use case: " + lowerFirst(g.pick(UseCases))
		return opp
	}

	lossReason := g.pick(LossReasons)
	opp.TechnicalChampion = technicalChampionName
	if g.rng.Float64() > 0.3 {
		opp.EconomicBuyer = economicBuyerName
	}
	opp.SecurityReviewStatus = g.pickStatus(domain.SecurityInProgress, domain.SecurityComplete, domain.SecurityNotStarted)
	opp.LossReason = lossReason
	if strings.Contains(lossReason, "OpenAI") {
		opp.Competitor = "OpenAI"
	} else {
		opp.Competitor = g.pick(lostCompetitors)
	}
	opp.Description = "Lost to competitor. Reason: " + lossReason + ". They prioritized price/existing relationship."
	return opp
}

// sampleFactors draws the profile's factor count from its pool without replacement
func (g *Generator) sampleFactors(p profile) factorSet {
	set := make(factorSet)
	if len(p.factorPool) == 0 {
		return set
	}
	k := g.between(p.factorDraw[0], p.factorDraw[1])
	for _, i := range g.rng.Perm(len(p.factorPool))[:k] {
		set[p.factorPool[i]] = true
	}
	return set
}

// between returns a uniform int in [lo, hi]
func (g *Generator) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Intn(hi-lo+1)
}

// uniform returns a uniform float64 in [lo, hi)
func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

func (g *Generator) pick(pool []string) string {
	return pool[g.rng.Intn(len(pool))]
}

func (g *Generator) pickStatus(options ...domain.SecurityStatus) domain.SecurityStatus {
	return options[g.rng.Intn(len(options))]
}

// sampleStrings returns k elements of pool in shuffled order, without replacement
func (g *Generator) sampleStrings(pool []string, k int) []string {
	out := make([]string, 0, k)
	for _, i := range g.rng.Perm(len(pool))[:k] {
		out = append(out, pool[i])
	}
	return out
}

// opportunityID generates an 18-character CRM-style identifier
func (g *Generator) opportunityID() string {
	var b strings.Builder
	b.WriteString("006")
	for i := 0; i < 15; i++ {
		b.WriteByte(opportunityIDCharset[g.rng.Intn(len(opportunityIDCharset))])
	}
	return b.String()
}

// daysAgo returns the calendar date n days before t, truncated to midnight UTC
func daysAgo(t time.Time, n int) time.Time {
	d := t.AddDate(0, 0, -n)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
