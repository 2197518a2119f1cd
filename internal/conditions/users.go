package conditions

import (
	"github.com/ca-engine/go-core/pkg/types"
)

// UsersMatcher evaluates the users condition: identity targeting by
// user ID, group membership, directory role, and guest classification.
type UsersMatcher struct{}

// Dimension implements Matcher
func (m *UsersMatcher) Dimension() string { return types.DimensionUsers }

// Evaluate implements Matcher. Exclusion is checked first across every
// exclusion list; any hit excludes regardless of inclusions.
func (m *UsersMatcher) Evaluate(ctx *types.SimulationContext, policy *types.Policy) types.ConditionMatchResult {
	cond := policy.Conditions.Users

	// Exclusions first: user ID, group, role, guest classification
	if contains(cond.ExcludeUsers, ctx.UserID) {
		return excluded(m.Dimension(), "user is explicitly excluded", map[string]interface{}{
			"userId": ctx.UserID,
		})
	}
	if contains(cond.ExcludeUsers, types.TargetGuestsOrExternalUsers) && ctx.IsGuest() {
		return excluded(m.Dimension(), "guests and external users are excluded", nil)
	}
	for _, g := range ctx.GroupIDs {
		if contains(cond.ExcludeGroups, g) {
			return excluded(m.Dimension(), "user is a member of an excluded group", map[string]interface{}{
				"groupId": g,
			})
		}
	}
	for _, r := range ctx.RoleIDs {
		if contains(cond.ExcludeRoles, r) {
			return excluded(m.Dimension(), "user holds an excluded directory role", map[string]interface{}{
				"roleId": r,
			})
		}
	}

	// No inclusion configured at all: matches everyone
	if len(cond.IncludeUsers) == 0 && len(cond.IncludeGroups) == 0 && len(cond.IncludeRoles) == 0 {
		return notConfigured(m.Dimension(), "no user targeting configured")
	}

	if contains(cond.IncludeUsers, types.TargetNone) {
		return notIncluded(m.Dimension(), "policy targets no users", nil)
	}
	if contains(cond.IncludeUsers, types.TargetAll) {
		return included(m.Dimension(), "policy targets all users", nil)
	}
	if contains(cond.IncludeUsers, types.TargetGuestsOrExternalUsers) && ctx.IsGuest() {
		return included(m.Dimension(), "user is a guest or external user", nil)
	}
	if contains(cond.IncludeUsers, ctx.UserID) {
		return included(m.Dimension(), "user is explicitly included", map[string]interface{}{
			"userId": ctx.UserID,
		})
	}
	for _, g := range ctx.GroupIDs {
		if contains(cond.IncludeGroups, g) {
			return included(m.Dimension(), "user is a member of an included group", map[string]interface{}{
				"groupId": g,
			})
		}
	}
	for _, r := range ctx.RoleIDs {
		if contains(cond.IncludeRoles, r) {
			return included(m.Dimension(), "user holds an included directory role", map[string]interface{}{
				"roleId": r,
			})
		}
	}

	return notIncluded(m.Dimension(), "user does not match any inclusion", nil)
}
