package conditions

import (
	"github.com/ca-engine/go-core/pkg/types"
)

// ClientAppMatcher evaluates the client app types condition. Matching
// is case-insensitive; "all" matches any client app type.
type ClientAppMatcher struct{}

// Dimension implements Matcher
func (m *ClientAppMatcher) Dimension() string { return types.DimensionClientApp }

// Evaluate implements Matcher
func (m *ClientAppMatcher) Evaluate(ctx *types.SimulationContext, policy *types.Policy) types.ConditionMatchResult {
	cond := policy.Conditions.ClientAppTypes
	if len(cond) == 0 {
		return notConfigured(m.Dimension(), "no client app targeting configured")
	}

	if containsFold(cond, types.ClientAppAll) {
		return included(m.Dimension(), "policy targets all client app types", nil)
	}
	if ctx.ClientAppType != "" && containsFold(cond, ctx.ClientAppType) {
		return included(m.Dimension(), "client app type is included", map[string]interface{}{
			"clientAppType": ctx.ClientAppType,
		})
	}

	return notIncluded(m.Dimension(), "client app type does not match any inclusion", map[string]interface{}{
		"clientAppType": ctx.ClientAppType,
	})
}
