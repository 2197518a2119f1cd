package conditions

import (
	"github.com/ca-engine/go-core/pkg/types"
)

// InsiderRiskMatcher evaluates the insider risk condition by direct
// level membership
type InsiderRiskMatcher struct{}

// Dimension implements Matcher
func (m *InsiderRiskMatcher) Dimension() string { return types.DimensionInsiderRisk }

// Evaluate implements Matcher
func (m *InsiderRiskMatcher) Evaluate(ctx *types.SimulationContext, policy *types.Policy) types.ConditionMatchResult {
	cond := policy.Conditions.InsiderRiskLevels
	if len(cond) == 0 {
		return notConfigured(m.Dimension(), "no insider risk targeting configured")
	}

	if ctx.InsiderRiskLevel != "" && contains(cond, ctx.InsiderRiskLevel) {
		return included(m.Dimension(), "insider risk level is targeted", map[string]interface{}{
			"insiderRisk": ctx.InsiderRiskLevel,
		})
	}

	return notIncluded(m.Dimension(), "insider risk level is not targeted", map[string]interface{}{
		"insiderRisk": ctx.InsiderRiskLevel,
	})
}
