package conditions

import (
	"github.com/ca-engine/go-core/pkg/types"
)

// office365AppIDs is the fixed membership of the Office365 application
// bundle. Targeting Office365 targets every member app.
var office365AppIDs = []string{
	"00000002-0000-0ff1-ce00-000000000000", // Exchange Online
	"00000003-0000-0ff1-ce00-000000000000", // SharePoint Online
	"00000004-0000-0ff1-ce00-000000000000", // Skype for Business Online
	"00000006-0000-0ff1-ce00-000000000000", // Office 365 Portal
	"cc15fd57-2c6c-4117-a88c-83b1d56b4bbe", // Teams Services
	"1fec8e78-bce4-4aaf-ab1b-5451cc387264", // Microsoft Teams
	"ea890292-c8c8-4433-b5ea-b09d0668e1a6", // OneDrive
}

// ApplicationsMatcher evaluates the applications condition. The three
// targeting modes (application IDs, user actions, authentication
// context references) are mutually exclusive and checked in that
// priority order.
type ApplicationsMatcher struct{}

// Dimension implements Matcher
func (m *ApplicationsMatcher) Dimension() string { return types.DimensionApplications }

// Evaluate implements Matcher
func (m *ApplicationsMatcher) Evaluate(ctx *types.SimulationContext, policy *types.Policy) types.ConditionMatchResult {
	cond := policy.Conditions.Applications

	// Mode 1: application targeting
	if len(cond.IncludeApplications) > 0 {
		return m.evaluateApplications(ctx, cond)
	}

	// Mode 2: user action targeting
	if len(cond.IncludeUserActions) > 0 {
		if ctx.UserAction != "" && contains(cond.IncludeUserActions, ctx.UserAction) {
			return included(m.Dimension(), "user action is targeted", map[string]interface{}{
				"userAction": ctx.UserAction,
			})
		}
		return notIncluded(m.Dimension(), "user action is not targeted", nil)
	}

	// Mode 3: authentication context targeting
	if len(cond.IncludeAuthenticationContextClassReferences) > 0 {
		if ctx.AuthContext != "" && contains(cond.IncludeAuthenticationContextClassReferences, ctx.AuthContext) {
			return included(m.Dimension(), "authentication context is targeted", map[string]interface{}{
				"authContext": ctx.AuthContext,
			})
		}
		return notIncluded(m.Dimension(), "authentication context is not targeted", nil)
	}

	return notConfigured(m.Dimension(), "no application targeting configured")
}

func (m *ApplicationsMatcher) evaluateApplications(ctx *types.SimulationContext, cond types.ApplicationsCondition) types.ConditionMatchResult {
	if appInList(cond.ExcludeApplications, ctx.AppID) {
		return excluded(m.Dimension(), "application is excluded", map[string]interface{}{
			"appId": ctx.AppID,
		})
	}

	if contains(cond.IncludeApplications, types.TargetNone) {
		return notIncluded(m.Dimension(), "policy targets no applications", nil)
	}
	if contains(cond.IncludeApplications, types.TargetAll) {
		return included(m.Dimension(), "policy targets all applications", nil)
	}
	if appInList(cond.IncludeApplications, ctx.AppID) {
		return included(m.Dimension(), "application is included", map[string]interface{}{
			"appId": ctx.AppID,
		})
	}

	return notIncluded(m.Dimension(), "application does not match any inclusion", nil)
}

// appInList reports whether the app ID appears in the list directly or
// through the Office365 bundle token
func appInList(list []string, appID string) bool {
	if appID == "" {
		return false
	}
	if contains(list, appID) {
		return true
	}
	if contains(list, types.TargetOffice365) && contains(office365AppIDs, appID) {
		return true
	}
	// A context targeting the bundle itself matches a list naming it
	if appID == types.TargetOffice365 && contains(list, types.TargetOffice365) {
		return true
	}
	return false
}
