package engine

import (
	"testing"

	"github.com/ca-engine/go-core/pkg/types"
)

func TestPolicyEvaluator_DisabledShortCircuits(t *testing.T) {
	e := NewPolicyEvaluator(nil)
	pol := allUsersPolicy("p-disabled", types.StateDisabled, nil)

	result := e.Evaluate(pol, memberContext())
	if result.Applies {
		t.Errorf("Expected disabled policy to not apply")
	}
	if len(result.Conditions) != 0 {
		t.Errorf("Expected no condition results for a disabled policy, got %d", len(result.Conditions))
	}
}

func TestPolicyEvaluator_StopsAtFirstNonMatch(t *testing.T) {
	e := NewPolicyEvaluator(nil)
	pol := &types.Policy{
		ID:    "p1",
		State: types.StateEnabled,
		Conditions: types.PolicyConditions{
			Users: types.UsersCondition{
				IncludeUsers: []string{"someone-else"},
			},
			Applications: types.ApplicationsCondition{
				IncludeApplications: []string{types.TargetAll},
			},
		},
	}

	result := e.Evaluate(pol, memberContext())
	if result.Applies {
		t.Errorf("Expected policy targeting another user to not apply")
	}
	if len(result.Conditions) != 1 {
		t.Fatalf("Expected evaluation to stop after the first non-match, got %d condition results", len(result.Conditions))
	}
	if result.Conditions[0].Dimension != types.DimensionUsers {
		t.Errorf("Expected the users dimension to be the non-match, got %s", result.Conditions[0].Dimension)
	}
}

func TestPolicyEvaluator_FullMatchRecordsAllDimensions(t *testing.T) {
	e := NewPolicyEvaluator(nil)
	pol := allUsersPolicy("p1", types.StateEnabled, &types.GrantControls{
		Operator:        types.OperatorOR,
		BuiltInControls: []string{types.ControlMFA},
	})

	result := e.Evaluate(pol, memberContext())
	if !result.Applies {
		t.Fatalf("Expected policy to apply")
	}
	if len(result.Conditions) != 9 {
		t.Errorf("Expected 9 condition results on a full match, got %d", len(result.Conditions))
	}
	if result.Grant == nil {
		t.Fatalf("Expected grant status attached on a full match")
	}
	if result.Grant.Satisfied {
		t.Errorf("Expected MFA requirement unsatisfied for a bare context")
	}
}

func TestPolicyEvaluator_SessionAttachedOnMatch(t *testing.T) {
	e := NewPolicyEvaluator(nil)
	pol := allUsersPolicy("p1", types.StateEnabled, nil)
	pol.Session = &types.SessionControls{
		PersistentBrowser: &types.PersistentBrowser{IsEnabled: true, Mode: "never"},
	}

	result := e.Evaluate(pol, memberContext())
	if result.Session == nil || result.Session.PersistentBrowser == nil {
		t.Errorf("Expected session controls attached on a full match")
	}
}

type panickingMatcher struct{}

func (m *panickingMatcher) Dimension() string { return "panicking" }
func (m *panickingMatcher) Evaluate(ctx *types.SimulationContext, policy *types.Policy) types.ConditionMatchResult {
	panic("matcher fault")
}

func TestPolicyEvaluator_MatcherFaultFailsOpen(t *testing.T) {
	e := NewPolicyEvaluator(nil)
	e.matchers = append(e.matchers, &panickingMatcher{})

	pol := allUsersPolicy("p1", types.StateEnabled, nil)
	result := e.Evaluate(pol, memberContext())
	if !result.Applies {
		t.Fatalf("Expected a faulting matcher to be treated as not configured")
	}

	last := result.Conditions[len(result.Conditions)-1]
	if last.Dimension != "panicking" || !last.Matched || last.Phase != types.PhaseNotConfigured {
		t.Errorf("Expected faulting dimension recorded as not configured, got %+v", last)
	}
}
