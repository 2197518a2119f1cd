package conditions

import (
	"github.com/ca-engine/go-core/pkg/types"
)

// LocationMatcher evaluates the locations condition. Location lists
// hold named location IDs plus the special tokens All (any location)
// and AllTrusted (any trusted location).
type LocationMatcher struct{}

// Dimension implements Matcher
func (m *LocationMatcher) Dimension() string { return types.DimensionLocation }

// Evaluate implements Matcher
func (m *LocationMatcher) Evaluate(ctx *types.SimulationContext, policy *types.Policy) types.ConditionMatchResult {
	cond := policy.Conditions.Locations
	if cond == nil || (len(cond.IncludeLocations) == 0 && len(cond.ExcludeLocations) == 0) {
		return notConfigured(m.Dimension(), "no location targeting configured")
	}

	if locationInList(cond.ExcludeLocations, ctx) {
		return excluded(m.Dimension(), "location is excluded", map[string]interface{}{
			"locationId": ctx.LocationID,
			"trusted":    ctx.LocationTrusted,
		})
	}

	if len(cond.IncludeLocations) == 0 {
		return notConfigured(m.Dimension(), "exclude-only location targeting")
	}
	if locationInList(cond.IncludeLocations, ctx) {
		return included(m.Dimension(), "location is included", map[string]interface{}{
			"locationId": ctx.LocationID,
			"trusted":    ctx.LocationTrusted,
		})
	}

	return notIncluded(m.Dimension(), "location does not match any inclusion", nil)
}

func locationInList(list []string, ctx *types.SimulationContext) bool {
	if contains(list, types.TargetAll) {
		return true
	}
	if contains(list, types.TargetAllTrusted) && ctx.LocationTrusted {
		return true
	}
	return ctx.LocationID != "" && contains(list, ctx.LocationID)
}
