// Package enrich derives the human-readable explanation of a risk alert:
// an ordered list of risk factors and a capped list of recommended actions.
// Everything here is a pure function of the alert; enriching the same alert
// twice yields identical output.
package enrich

import (
	"fmt"
	"strings"

	"github.com/revenueops/pipeline-health/internal/domain"
)

// Rule thresholds, in days
const (
	stuckInStageDays    = 35
	staleActivityDays   = 10
	urgentActivityDays  = 15
	closingSoonDays     = 14
	stageEscalationDays = 50
)

// MaxActions caps the recommended-action list; earlier rules take priority
const MaxActions = 3

// DefaultRiskFactor is substituted when no factor rule fires, so consumers
// never see an empty explanation
const DefaultRiskFactor = "Standard risk monitoring"

// fallbackAction is appended when no action rule fires
const fallbackAction = "Review deal status with account executive"

// Targeted actions for the known missing-field tokens. Unrecognized tokens
// contribute no action.
var missingFieldActions = map[string]string{
	"economic_buyer":     "Identify and engage economic buyer",
	"technical_champion": "Secure technical champion sponsor",
	"security_review":    "Initiate security review process",
}

// factorRule is one (predicate, effect) pair of the risk-factor chain
type factorRule struct {
	applies func(a *domain.Alert) bool
	render  func(a *domain.Alert) string
}

// The factor rules are evaluated in order and every matching rule appends,
// except the close-date pair which is mutually exclusive.
var factorRules = []factorRule{
	{
		applies: func(a *domain.Alert) bool { return a.DaysInStage > stuckInStageDays },
		render: func(a *domain.Alert) string {
			return fmt.Sprintf("Stuck in stage for %d days", a.DaysInStage)
		},
	},
	{
		applies: func(a *domain.Alert) bool { return a.DaysSinceActivity > staleActivityDays },
		render: func(a *domain.Alert) string {
			return fmt.Sprintf("No activity in %d days", a.DaysSinceActivity)
		},
	},
	{
		applies: func(a *domain.Alert) bool { return a.DaysToClose < 0 },
		render: func(a *domain.Alert) string {
			return fmt.Sprintf("Close date passed %d days ago", -a.DaysToClose)
		},
	},
	{
		applies: func(a *domain.Alert) bool { return a.DaysToClose >= 0 && a.DaysToClose <= closingSoonDays },
		render: func(a *domain.Alert) string {
			return fmt.Sprintf("Closing in %d days", a.DaysToClose)
		},
	},
	{
		applies: func(a *domain.Alert) bool { return len(a.MissingFields) > 0 },
		render: func(a *domain.Alert) string {
			return "Missing: " + strings.Join(a.MissingFields, ", ")
		},
	},
	{
		applies: func(a *domain.Alert) bool { return a.HasCompetitor() },
		render: func(a *domain.Alert) string {
			return "Competing with " + a.Competitor
		},
	},
}

// actionRule is one (predicate, effect) pair of the action chain; a rule may
// contribute zero or more actions
type actionRule func(a *domain.Alert) []string

var actionRules = []actionRule{
	func(a *domain.Alert) []string {
		if a.DaysSinceActivity > urgentActivityDays {
			return []string{"Re-engage immediately - deal may be stalled"}
		}
		if a.DaysSinceActivity > staleActivityDays {
			return []string{"Schedule follow-up call this week"}
		}
		return nil
	},
	func(a *domain.Alert) []string {
		if a.DaysInStage > stageEscalationDays {
			return []string{"Review deal progression with manager"}
		}
		return nil
	},
	func(a *domain.Alert) []string {
		var actions []string
		for _, field := range a.MissingFields {
			if action, ok := missingFieldActions[field]; ok {
				actions = append(actions, action)
			}
		}
		return actions
	},
	func(a *domain.Alert) []string {
		if a.DaysToClose < 0 {
			return []string{"Update close date and verify deal status"}
		}
		if a.DaysToClose <= closingSoonDays {
			return []string{"Verify all requirements met for close"}
		}
		return nil
	},
	func(a *domain.Alert) []string {
		if a.HasCompetitor() {
			return []string{"Develop competitive strategy vs " + a.Competitor}
		}
		return nil
	},
}

// RiskFactors derives the ordered plain-language risk factors for an alert.
// When no rule fires it returns the single default factor.
func RiskFactors(a *domain.Alert) []string {
	var factors []string
	for _, rule := range factorRules {
		if rule.applies(a) {
			factors = append(factors, rule.render(a))
		}
	}
	if len(factors) == 0 {
		return []string{DefaultRiskFactor}
	}
	return factors
}

// RecommendedActions derives the prioritized action list for an alert,
// truncated to MaxActions after all rules have run
func RecommendedActions(a *domain.Alert) []string {
	var actions []string
	for _, rule := range actionRules {
		actions = append(actions, rule(a)...)
	}
	if len(actions) == 0 {
		actions = append(actions, fallbackAction)
	}
	if len(actions) > MaxActions {
		actions = actions[:MaxActions]
	}
	return actions
}

// Enrich attaches the derived presentation fields to an alert. The canonical
// alert is copied, never mutated.
func Enrich(a domain.Alert) domain.EnrichedAlert {
	return domain.EnrichedAlert{
		Alert:              a,
		RiskFactors:        RiskFactors(&a),
		RecommendedActions: RecommendedActions(&a),
	}
}
