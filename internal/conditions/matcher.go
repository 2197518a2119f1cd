// Package conditions provides the per-dimension condition matchers for
// conditional access policy evaluation.
//
// Every matcher is pure and stateless and follows the same rules: an
// exclusion always overrides an inclusion, an absent or empty inclusion
// means the dimension is not configured and matches everything, and an
// empty exclusion excludes nothing.
package conditions

import (
	"strings"

	"github.com/ca-engine/go-core/pkg/types"
)

// Matcher evaluates one targeting dimension of a policy against a
// simulation context
type Matcher interface {
	// Dimension returns the dimension name this matcher covers
	Dimension() string

	// Evaluate returns the match verdict for the policy's condition on
	// this dimension. Matchers never panic past this boundary; the
	// evaluator traps faults and treats the dimension as not configured.
	Evaluate(ctx *types.SimulationContext, policy *types.Policy) types.ConditionMatchResult
}

// All returns the matchers in fixed evaluation order: users,
// applications, platform, location, client app type, combined risk,
// device filter, authentication flow, insider risk.
func All() []Matcher {
	return []Matcher{
		&UsersMatcher{},
		&ApplicationsMatcher{},
		&PlatformMatcher{},
		&LocationMatcher{},
		&ClientAppMatcher{},
		&RiskMatcher{},
		&DeviceFilterMatcher{},
		&AuthFlowMatcher{},
		&InsiderRiskMatcher{},
	}
}

func notConfigured(dimension, reason string) types.ConditionMatchResult {
	return types.ConditionMatchResult{
		Dimension: dimension,
		Matched:   true,
		Phase:     types.PhaseNotConfigured,
		Reason:    reason,
	}
}

func included(dimension, reason string, details map[string]interface{}) types.ConditionMatchResult {
	return types.ConditionMatchResult{
		Dimension: dimension,
		Matched:   true,
		Phase:     types.PhaseInclusion,
		Reason:    reason,
		Details:   details,
	}
}

func notIncluded(dimension, reason string, details map[string]interface{}) types.ConditionMatchResult {
	return types.ConditionMatchResult{
		Dimension: dimension,
		Matched:   false,
		Phase:     types.PhaseInclusion,
		Reason:    reason,
		Details:   details,
	}
}

func excluded(dimension, reason string, details map[string]interface{}) types.ConditionMatchResult {
	return types.ConditionMatchResult{
		Dimension: dimension,
		Matched:   false,
		Phase:     types.PhaseExclusion,
		Reason:    reason,
		Details:   details,
	}
}

// contains reports exact membership of value in list
func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

// containsFold reports case-insensitive membership of value in list
func containsFold(list []string, value string) bool {
	for _, v := range list {
		if strings.EqualFold(v, value) {
			return true
		}
	}
	return false
}
