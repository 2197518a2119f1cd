package conditions

import (
	"github.com/ca-engine/go-core/pkg/types"
)

// RiskMatcher evaluates the combined sign-in and user risk condition.
// Risk matching is direct list membership: targeting ["medium"] does
// not target "high" sign-ins. Both configured lists must match.
type RiskMatcher struct{}

// Dimension implements Matcher
func (m *RiskMatcher) Dimension() string { return types.DimensionRisk }

// Evaluate implements Matcher
func (m *RiskMatcher) Evaluate(ctx *types.SimulationContext, policy *types.Policy) types.ConditionMatchResult {
	signIn := policy.Conditions.SignInRiskLevels
	user := policy.Conditions.UserRiskLevels

	if len(signIn) == 0 && len(user) == 0 {
		return notConfigured(m.Dimension(), "no risk targeting configured")
	}

	if len(signIn) > 0 && !contains(signIn, riskOrNone(ctx.SignInRiskLevel)) {
		return notIncluded(m.Dimension(), "sign-in risk level is not targeted", map[string]interface{}{
			"signInRisk": riskOrNone(ctx.SignInRiskLevel),
		})
	}
	if len(user) > 0 && !contains(user, riskOrNone(ctx.UserRiskLevel)) {
		return notIncluded(m.Dimension(), "user risk level is not targeted", map[string]interface{}{
			"userRisk": riskOrNone(ctx.UserRiskLevel),
		})
	}

	return included(m.Dimension(), "risk levels are targeted", map[string]interface{}{
		"signInRisk": riskOrNone(ctx.SignInRiskLevel),
		"userRisk":   riskOrNone(ctx.UserRiskLevel),
	})
}

func riskOrNone(level string) string {
	if level == "" {
		return types.RiskNone
	}
	return level
}
