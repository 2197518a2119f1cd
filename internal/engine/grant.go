package engine

import (
	"sort"

	"github.com/ca-engine/go-core/pkg/types"
)

// evaluatePolicyGrant computes one policy's own grant control
// satisfaction against the controls the user has already presented.
// Block is not a satisfiable control and is handled by the resolver.
func evaluatePolicyGrant(policy *types.Policy, ctx *types.SimulationContext) types.PolicyGrantStatus {
	status := types.PolicyGrantStatus{
		PolicyID: policy.ID,
	}

	if policy.Grant == nil {
		// Session-only policy: nothing to satisfy
		status.Satisfied = true
		return status
	}

	status.Operator = policy.Grant.Operator
	if policy.Grant.AuthStrength != nil {
		status.AuthStrengthID = policy.Grant.AuthStrength.ID
		status.AuthStrengthMet = StrengthSatisfied(ctx.AuthStrengthLevel, policy.Grant.AuthStrength)
	}

	for _, control := range policy.Grant.BuiltInControls {
		if control == types.ControlBlock {
			continue
		}
		status.RequiredControls = append(status.RequiredControls, control)
		if ctx.HasControl(control) {
			status.SatisfiedControls = append(status.SatisfiedControls, control)
		} else {
			status.UnsatisfiedControls = append(status.UnsatisfiedControls, control)
		}
	}

	hasStrength := policy.Grant.AuthStrength != nil

	if policy.Grant.Operator == types.OperatorOR {
		switch {
		case len(status.RequiredControls) == 0 && !hasStrength:
			// OR with nothing listed is trivially satisfied
			status.Satisfied = true
		case len(status.RequiredControls) == 0:
			status.Satisfied = status.AuthStrengthMet
		default:
			status.Satisfied = len(status.SatisfiedControls) > 0 || (hasStrength && status.AuthStrengthMet)
		}
		return status
	}

	// AND (and the default when the operator is unset): every listed
	// control and any strength requirement must hold
	status.Satisfied = len(status.UnsatisfiedControls) == 0 && (!hasStrength || status.AuthStrengthMet)
	return status
}

// ResolveGrants performs the cross-policy grant control resolution over
// the applicable enforced policies. Block on any policy wins outright;
// otherwise every policy must be independently satisfied for an allow.
// Control sets are never merged across policies before per-policy
// satisfaction is settled.
func ResolveGrants(policies []*types.Policy, ctx *types.SimulationContext) types.GrantResolutionResult {
	if len(policies) == 0 {
		return types.GrantResolutionResult{Decision: types.DecisionAllow}
	}

	for _, p := range policies {
		if p.RequiresBlock() {
			return types.GrantResolutionResult{
				Decision:         types.DecisionBlock,
				BlockingPolicyID: p.ID,
			}
		}
	}

	result := types.GrantResolutionResult{Decision: types.DecisionAllow}
	required := map[string]bool{}
	satisfied := map[string]bool{}
	unsatisfied := map[string]bool{}

	for _, p := range policies {
		status := evaluatePolicyGrant(p, ctx)
		result.PolicyBreakdown = append(result.PolicyBreakdown, status)

		for _, c := range status.RequiredControls {
			required[c] = true
		}
		for _, c := range status.SatisfiedControls {
			satisfied[c] = true
		}

		if !status.Satisfied {
			result.Decision = types.DecisionControlsRequired
			for _, c := range status.UnsatisfiedControls {
				unsatisfied[c] = true
			}
			if status.AuthStrengthID != "" && !status.AuthStrengthMet {
				unsatisfied["authenticationStrength"] = true
			}
		}
	}

	result.RequiredControls = sortedKeys(required)
	result.SatisfiedControls = sortedKeys(satisfied)
	result.UnsatisfiedControls = sortedKeys(unsatisfied)
	return result
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
