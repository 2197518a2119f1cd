package conditions

import (
	"github.com/ca-engine/go-core/pkg/types"
)

// AuthFlowMatcher evaluates the authentication flows condition, which
// targets transfer methods such as device code flow
type AuthFlowMatcher struct{}

// Dimension implements Matcher
func (m *AuthFlowMatcher) Dimension() string { return types.DimensionAuthFlow }

// Evaluate implements Matcher
func (m *AuthFlowMatcher) Evaluate(ctx *types.SimulationContext, policy *types.Policy) types.ConditionMatchResult {
	cond := policy.Conditions.AuthenticationFlows
	if cond == nil || len(cond.TransferMethods) == 0 {
		return notConfigured(m.Dimension(), "no authentication flow targeting configured")
	}

	if ctx.AuthenticationFlow != "" && contains(cond.TransferMethods, ctx.AuthenticationFlow) {
		return included(m.Dimension(), "authentication flow is targeted", map[string]interface{}{
			"transferMethod": ctx.AuthenticationFlow,
		})
	}

	return notIncluded(m.Dimension(), "authentication flow is not targeted", map[string]interface{}{
		"transferMethod": ctx.AuthenticationFlow,
	})
}
