package generator

import (
	"github.com/revenueops/pipeline-health/internal/domain"
)

// RiskFactor is a generator-side token naming one field perturbation an
// archetype may apply to a record
type RiskFactor string

const (
	// Medium-risk catalog
	FactorSlowVelocity       RiskFactor = "slow_velocity"
	FactorMissingStakeholder RiskFactor = "missing_stakeholder"
	FactorActivityGap        RiskFactor = "activity_gap"
	FactorVagueNextSteps     RiskFactor = "vague_next_steps"
	FactorCloseDatePush      RiskFactor = "close_date_push"

	// High-risk catalog
	FactorNoActivity         RiskFactor = "no_activity"
	FactorMissingEB          RiskFactor = "missing_eb"
	FactorStuckInStage       RiskFactor = "stuck_in_stage"
	FactorSecurityNotStarted RiskFactor = "security_not_started"
	FactorCompetitorThreat   RiskFactor = "competitor_threat"
	FactorMultiplePushes     RiskFactor = "multiple_pushes"
	FactorNoNextSteps        RiskFactor = "no_next_steps"
)

var mediumRiskFactors = []RiskFactor{
	FactorSlowVelocity,
	FactorMissingStakeholder,
	FactorActivityGap,
	FactorVagueNextSteps,
	FactorCloseDatePush,
}

var highRiskFactors = []RiskFactor{
	FactorNoActivity,
	FactorMissingEB,
	FactorStuckInStage,
	FactorSecurityNotStarted,
	FactorCompetitorThreat,
	FactorMultiplePushes,
	FactorNoNextSteps,
}

// factorSet is the sampled factor selection for one record
type factorSet map[RiskFactor]bool

func (f factorSet) has(factor RiskFactor) bool {
	return f[factor]
}

// profile configures the generic record builder for one open-deal archetype.
// Each rule receives the factor selection so that a sampled factor perturbs
// exactly the field it names and nothing else.
type profile struct {
	stageRange  [2]int // inclusive range over domain.OpenStages indices
	createdAgo  [2]int // days before the reference date
	amountK     [2]int // amount range in thousands
	dealTypes   []domain.DealType
	factorPool  []RiskFactor
	factorDraw  [2]int

	daysInStage  func(g *Generator, stage domain.Stage, f factorSet) int
	activityGap  func(g *Generator, f factorSet) int
	closeOffset  func(g *Generator, f factorSet) int
	competitor   func(g *Generator, f factorSet) string
	stakeholders func(stageOrder int, f factorSet) (economicBuyer, technicalChampion string)
	security     func(g *Generator, stageOrder int, f factorSet) domain.SecurityStatus
	nextStep     func(g *Generator, f factorSet) string
	narrative    func(g *Generator, useCase, competitor string, f factorSet) string
}

// healthyProfile: every field inside its benchmark, active, stakeholders
// present once the deal has progressed far enough.
var healthyProfile = profile{
	stageRange: [2]int{0, 4},
	createdAgo: [2]int{30, 120},
	amountK:    [2]int{50, 500},
	dealTypes:  []domain.DealType{domain.DealTypeNewBusiness},

	daysInStage: func(g *Generator, stage domain.Stage, _ factorSet) int {
		b, _ := stage.Benchmark()
		return g.between(b.MinDays, b.MaxDays)
	},
	activityGap: func(g *Generator, _ factorSet) int { return g.between(2, 5) },
	closeOffset: func(g *Generator, _ factorSet) int { return g.between(30, 90) },
	competitor: func(g *Generator, _ factorSet) string {
		return g.pick(healthyCompetitors)
	},
	stakeholders: func(stageOrder int, _ factorSet) (string, string) {
		eb, tc := "", ""
		if stageOrder >= domain.StageSolutionMapping.Order() {
			eb = economicBuyerName
		}
		if stageOrder >= domain.StageTechnicalEvaluation.Order() {
			tc = technicalChampionName
		}
		return eb, tc
	},
	security: func(g *Generator, stageOrder int, _ factorSet) domain.SecurityStatus {
		switch {
		case stageOrder < domain.StageTechnicalEvaluation.Order():
			return domain.SecurityNotStarted
		case stageOrder == domain.StageTechnicalEvaluation.Order():
			return g.pickStatus(domain.SecurityInProgress, domain.SecurityComplete)
		default:
			return domain.SecurityComplete
		}
	},
	nextStep: func(g *Generator, _ factorSet) string { return g.pick(concreteNextSteps) },
	narrative: func(g *Generator, useCase, _ string, _ factorSet) string {
		return "Evaluating for " + lowerFirst(useCase) + ". Strong engagement from technical team."
	},
}

// mediumRiskProfile: 1-2 yellow flags sampled from the medium catalog
var mediumRiskProfile = profile{
	stageRange: [2]int{1, 4},
	createdAgo: [2]int{40, 150},
	amountK:    [2]int{75, 400},
	dealTypes:  []domain.DealType{domain.DealTypeNewBusiness, domain.DealTypeUpsell},
	factorPool: mediumRiskFactors,
	factorDraw: [2]int{1, 2},

	daysInStage: func(g *Generator, stage domain.Stage, f factorSet) int {
		b, _ := stage.Benchmark()
		if f.has(FactorSlowVelocity) {
			return int(float64(b.MaxDays) * 1.5)
		}
		return g.between(b.MinDays, b.MaxDays)
	},
	activityGap: func(g *Generator, f factorSet) int {
		if f.has(FactorActivityGap) {
			return g.between(7, 10)
		}
		return g.between(3, 6)
	},
	closeOffset: func(g *Generator, f factorSet) int {
		if f.has(FactorCloseDatePush) {
			return g.between(15, 40)
		}
		return g.between(30, 75)
	},
	competitor: func(g *Generator, _ factorSet) string {
		return g.pick(mediumCompetitors)
	},
	stakeholders: func(stageOrder int, f factorSet) (string, string) {
		techEval := domain.StageTechnicalEvaluation.Order()
		// A missing stakeholder is only plausible before the deal has passed
		// technical evaluation; at later stages the factor is suppressed.
		if f.has(FactorMissingStakeholder) && stageOrder <= techEval {
			eb := ""
			if stageOrder >= domain.StageSolutionMapping.Order() {
				eb = economicBuyerName
			}
			return eb, ""
		}
		if stageOrder >= techEval {
			eb := ""
			if stageOrder >= domain.StageSolutionMapping.Order() {
				eb = economicBuyerName
			}
			return eb, technicalChampionName
		}
		return "", ""
	},
	security: func(g *Generator, stageOrder int, _ factorSet) domain.SecurityStatus {
		switch {
		case stageOrder < domain.StageTechnicalEvaluation.Order():
			return domain.SecurityNotStarted
		case stageOrder == domain.StageTechnicalEvaluation.Order():
			return domain.SecurityInProgress
		default:
			return g.pickStatus(domain.SecurityInProgress, domain.SecurityComplete)
		}
	},
	nextStep: func(g *Generator, f factorSet) string {
		if f.has(FactorVagueNextSteps) {
			return g.pick(vagueNextSteps)
		}
		return "Schedule follow-up call to discuss technical requirements"
	},
	narrative: func(g *Generator, useCase, _ string, _ factorSet) string {
		return "Evaluating for " + lowerFirst(useCase) + ". Some delays in getting stakeholder alignment."
	},
}

// highRiskProfile: 3-4 red flags; being stuck in stage is structural to the
// archetype and applies regardless of the factor draw.
var highRiskProfile = profile{
	stageRange: [2]int{2, 4},
	createdAgo: [2]int{60, 180},
	amountK:    [2]int{100, 600},
	dealTypes:  []domain.DealType{domain.DealTypeNewBusiness},
	factorPool: highRiskFactors,
	factorDraw: [2]int{3, 4},

	daysInStage: func(g *Generator, stage domain.Stage, _ factorSet) int {
		b, _ := stage.Benchmark()
		return int(float64(b.MaxDays) * g.uniform(2.0, 3.0))
	},
	activityGap: func(g *Generator, f factorSet) int {
		if f.has(FactorNoActivity) {
			return g.between(15, 30)
		}
		return g.between(11, 14)
	},
	closeOffset: func(g *Generator, f factorSet) int {
		if f.has(FactorMultiplePushes) {
			return g.between(-10, 10)
		}
		return g.between(10, 30)
	},
	competitor: func(g *Generator, f factorSet) string {
		if f.has(FactorCompetitorThreat) {
			return g.pick(threatCompetitors)
		}
		return domain.CompetitorNone
	},
	stakeholders: func(stageOrder int, f factorSet) (string, string) {
		eb := economicBuyerName
		if f.has(FactorMissingEB) {
			eb = ""
		}
		tc := ""
		if stageOrder >= domain.StageTechnicalEvaluation.Order() {
			tc = technicalChampionName
		}
		return eb, tc
	},
	security: func(g *Generator, _ int, f factorSet) domain.SecurityStatus {
		if f.has(FactorSecurityNotStarted) {
			return domain.SecurityNotStarted
		}
		return domain.SecurityInProgress
	},
	nextStep: func(g *Generator, f factorSet) string {
		if f.has(FactorNoNextSteps) {
			return ""
		}
		return "Follow up - no response to last 2 emails"
	},
	narrative: func(g *Generator, useCase, competitor string, f factorSet) string {
		if f.has(FactorCompetitorThreat) {
			return "Evaluating for " + lowerFirst(useCase) + ". Customer mentioned they're also looking at " +
				competitor + ". Champion has gone quiet."
		}
		return "Evaluating for " + lowerFirst(useCase) + ". Deal has stalled - multiple attempts to re-engage."
	},
}
