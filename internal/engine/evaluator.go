package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ca-engine/go-core/internal/conditions"
	"github.com/ca-engine/go-core/pkg/types"
)

// PolicyEvaluator evaluates one policy at a time against a simulation
// context, running the condition matchers in fixed order with
// short-circuit AND semantics.
type PolicyEvaluator struct {
	matchers []conditions.Matcher
	logger   *zap.Logger
}

// NewPolicyEvaluator creates a policy evaluator
func NewPolicyEvaluator(logger *zap.Logger) *PolicyEvaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PolicyEvaluator{
		matchers: conditions.All(),
		logger:   logger,
	}
}

// Evaluate runs the matchers for one policy. Disabled policies
// short-circuit immediately with no condition results. Evaluation stops
// at the first non-matching dimension; later dimensions are never
// evaluated and never appear in the result. On a full match, the
// policy's grant satisfaction and session controls are attached.
func (e *PolicyEvaluator) Evaluate(policy *types.Policy, ctx *types.SimulationContext) types.PolicyEvaluationResult {
	result := types.PolicyEvaluationResult{
		PolicyID:    policy.ID,
		DisplayName: policy.DisplayName,
		State:       policy.State,
	}

	if policy.State == types.StateDisabled {
		return result
	}

	for _, matcher := range e.matchers {
		verdict := e.safeEvaluate(matcher, ctx, policy)
		result.Conditions = append(result.Conditions, verdict)
		if !verdict.Matched {
			return result
		}
	}

	result.Applies = true
	grant := evaluatePolicyGrant(policy, ctx)
	result.Grant = &grant
	result.Session = policy.Session
	return result
}

// safeEvaluate traps a faulting matcher and treats its dimension as not
// configured. One broken dimension never halts evaluation.
func (e *PolicyEvaluator) safeEvaluate(matcher conditions.Matcher, ctx *types.SimulationContext, policy *types.Policy) (result types.ConditionMatchResult) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("condition matcher fault",
				zap.String("dimension", matcher.Dimension()),
				zap.String("policy_id", policy.ID),
				zap.Any("panic", r),
			)
			result = types.ConditionMatchResult{
				Dimension: matcher.Dimension(),
				Matched:   true,
				Phase:     types.PhaseNotConfigured,
				Reason:    "matcher fault; dimension treated as not configured",
				Details: map[string]interface{}{
					"error": fmt.Sprintf("%v", r),
				},
			}
		}
	}()
	return matcher.Evaluate(ctx, policy)
}
