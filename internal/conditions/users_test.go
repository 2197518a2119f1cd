package conditions

import (
	"testing"

	"github.com/ca-engine/go-core/pkg/types"
)

func userPolicy(users types.UsersCondition) *types.Policy {
	return &types.Policy{
		ID:    "policy-1",
		State: types.StateEnabled,
		Conditions: types.PolicyConditions{
			Users: users,
			Applications: types.ApplicationsCondition{
				IncludeApplications: []string{types.TargetAll},
			},
		},
	}
}

func TestUsersMatcher_NotConfigured(t *testing.T) {
	m := &UsersMatcher{}
	ctx := &types.SimulationContext{UserID: "user-1", UserType: types.UserTypeMember}

	result := m.Evaluate(ctx, userPolicy(types.UsersCondition{}))
	if !result.Matched {
		t.Errorf("Expected match for unconfigured users condition")
	}
	if result.Phase != types.PhaseNotConfigured {
		t.Errorf("Expected notConfigured phase, got %v", result.Phase)
	}
}

func TestUsersMatcher_AllUsers(t *testing.T) {
	m := &UsersMatcher{}
	ctx := &types.SimulationContext{UserID: "user-1", UserType: types.UserTypeMember}

	result := m.Evaluate(ctx, userPolicy(types.UsersCondition{
		IncludeUsers: []string{types.TargetAll},
	}))
	if !result.Matched || result.Phase != types.PhaseInclusion {
		t.Errorf("Expected inclusion match for All, got %+v", result)
	}
}

func TestUsersMatcher_ExclusionOverridesInclusion(t *testing.T) {
	m := &UsersMatcher{}
	ctx := &types.SimulationContext{UserID: "user-1", UserType: types.UserTypeMember}

	result := m.Evaluate(ctx, userPolicy(types.UsersCondition{
		IncludeUsers: []string{"user-1"},
		ExcludeUsers: []string{"user-1"},
	}))
	if result.Matched {
		t.Errorf("Expected exclusion to override inclusion")
	}
	if result.Phase != types.PhaseExclusion {
		t.Errorf("Expected exclusion phase, got %v", result.Phase)
	}
}

func TestUsersMatcher_ExcludedGroupOverridesAll(t *testing.T) {
	m := &UsersMatcher{}
	ctx := &types.SimulationContext{
		UserID:   "user-1",
		UserType: types.UserTypeMember,
		GroupIDs: []string{"breakglass"},
	}

	result := m.Evaluate(ctx, userPolicy(types.UsersCondition{
		IncludeUsers:  []string{types.TargetAll},
		ExcludeGroups: []string{"breakglass"},
	}))
	if result.Matched {
		t.Errorf("Expected excluded group member to not match")
	}
}

func TestUsersMatcher_GroupInclusion(t *testing.T) {
	m := &UsersMatcher{}
	ctx := &types.SimulationContext{
		UserID:   "user-1",
		UserType: types.UserTypeMember,
		GroupIDs: []string{"finance"},
	}

	result := m.Evaluate(ctx, userPolicy(types.UsersCondition{
		IncludeGroups: []string{"finance"},
	}))
	if !result.Matched {
		t.Errorf("Expected group member to match")
	}

	outsider := &types.SimulationContext{UserID: "user-2", UserType: types.UserTypeMember}
	result = m.Evaluate(outsider, userPolicy(types.UsersCondition{
		IncludeGroups: []string{"finance"},
	}))
	if result.Matched {
		t.Errorf("Expected non-member to not match")
	}
}

func TestUsersMatcher_RoleInclusion(t *testing.T) {
	m := &UsersMatcher{}
	ctx := &types.SimulationContext{
		UserID:  "admin-1",
		RoleIDs: []string{"62e90394-69f5-4237-9190-012177145e10"},
	}

	result := m.Evaluate(ctx, userPolicy(types.UsersCondition{
		IncludeRoles: []string{"62e90394-69f5-4237-9190-012177145e10"},
	}))
	if !result.Matched {
		t.Errorf("Expected role holder to match")
	}
}

func TestUsersMatcher_Guests(t *testing.T) {
	m := &UsersMatcher{}
	guest := &types.SimulationContext{UserID: "guest-1", UserType: types.UserTypeGuest}
	member := &types.SimulationContext{UserID: "user-1", UserType: types.UserTypeMember}

	pol := userPolicy(types.UsersCondition{
		IncludeUsers: []string{types.TargetGuestsOrExternalUsers},
	})
	if !m.Evaluate(guest, pol).Matched {
		t.Errorf("Expected guest to match guest targeting")
	}
	if m.Evaluate(member, pol).Matched {
		t.Errorf("Expected member to not match guest targeting")
	}

	excludeGuests := userPolicy(types.UsersCondition{
		IncludeUsers: []string{types.TargetAll},
		ExcludeUsers: []string{types.TargetGuestsOrExternalUsers},
	})
	if m.Evaluate(guest, excludeGuests).Matched {
		t.Errorf("Expected guest to be excluded")
	}
	if !m.Evaluate(member, excludeGuests).Matched {
		t.Errorf("Expected member to still match")
	}
}

func TestUsersMatcher_NoneTargetsNobody(t *testing.T) {
	m := &UsersMatcher{}
	ctx := &types.SimulationContext{UserID: "user-1"}

	result := m.Evaluate(ctx, userPolicy(types.UsersCondition{
		IncludeUsers: []string{types.TargetNone},
	}))
	if result.Matched {
		t.Errorf("Expected None to match nobody")
	}
}
