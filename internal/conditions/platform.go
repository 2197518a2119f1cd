package conditions

import (
	"strings"

	"github.com/ca-engine/go-core/pkg/types"
)

// PlatformMatcher evaluates the device platforms condition. Platform
// names compare case-insensitively; "all" in the include list matches
// any platform.
type PlatformMatcher struct{}

// Dimension implements Matcher
func (m *PlatformMatcher) Dimension() string { return types.DimensionPlatform }

// Evaluate implements Matcher
func (m *PlatformMatcher) Evaluate(ctx *types.SimulationContext, policy *types.Policy) types.ConditionMatchResult {
	cond := policy.Conditions.Platforms
	if cond == nil || len(cond.IncludePlatforms) == 0 {
		// An exclude-only platform condition still excludes
		if cond != nil && containsFold(cond.ExcludePlatforms, ctx.Device.Platform) {
			return excluded(m.Dimension(), "platform is excluded", map[string]interface{}{
				"platform": ctx.Device.Platform,
			})
		}
		return notConfigured(m.Dimension(), "no platform targeting configured")
	}

	if containsFold(cond.ExcludePlatforms, ctx.Device.Platform) {
		return excluded(m.Dimension(), "platform is excluded", map[string]interface{}{
			"platform": ctx.Device.Platform,
		})
	}

	if containsFold(cond.IncludePlatforms, "all") {
		return included(m.Dimension(), "policy targets all platforms", nil)
	}
	if containsFold(cond.IncludePlatforms, ctx.Device.Platform) {
		return included(m.Dimension(), "platform is included", map[string]interface{}{
			"platform": ctx.Device.Platform,
		})
	}

	// An unknown platform is not targeted by an explicit platform list
	if strings.TrimSpace(ctx.Device.Platform) == "" {
		return notIncluded(m.Dimension(), "sign-in has no platform signal", nil)
	}
	return notIncluded(m.Dimension(), "platform does not match any inclusion", nil)
}
