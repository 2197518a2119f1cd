package conditions

import (
	"testing"

	"github.com/ca-engine/go-core/pkg/types"
)

func basePolicy() *types.Policy {
	return &types.Policy{
		ID:    "policy-1",
		State: types.StateEnabled,
		Conditions: types.PolicyConditions{
			Users: types.UsersCondition{
				IncludeUsers: []string{types.TargetAll},
			},
			Applications: types.ApplicationsCondition{
				IncludeApplications: []string{types.TargetAll},
			},
		},
	}
}

func TestAll_FixedOrder(t *testing.T) {
	matchers := All()
	want := []string{
		types.DimensionUsers,
		types.DimensionApplications,
		types.DimensionPlatform,
		types.DimensionLocation,
		types.DimensionClientApp,
		types.DimensionRisk,
		types.DimensionDeviceFilter,
		types.DimensionAuthFlow,
		types.DimensionInsiderRisk,
	}
	if len(matchers) != len(want) {
		t.Fatalf("Expected %d matchers, got %d", len(want), len(matchers))
	}
	for i, m := range matchers {
		if m.Dimension() != want[i] {
			t.Errorf("Matcher %d: expected dimension %s, got %s", i, want[i], m.Dimension())
		}
	}
}

func TestPlatformMatcher(t *testing.T) {
	m := &PlatformMatcher{}

	pol := basePolicy()
	pol.Conditions.Platforms = &types.PlatformsCondition{
		IncludePlatforms: []string{"Windows", "macOS"},
	}

	windows := &types.SimulationContext{UserID: "u", Device: types.DeviceSignals{Platform: "windows"}}
	if !m.Evaluate(windows, pol).Matched {
		t.Errorf("Expected case-insensitive platform match")
	}

	linux := &types.SimulationContext{UserID: "u", Device: types.DeviceSignals{Platform: "linux"}}
	if m.Evaluate(linux, pol).Matched {
		t.Errorf("Expected untargeted platform to not match")
	}

	pol.Conditions.Platforms.IncludePlatforms = []string{"all"}
	pol.Conditions.Platforms.ExcludePlatforms = []string{"linux"}
	if m.Evaluate(linux, pol).Matched {
		t.Errorf("Expected excluded platform to not match even under all")
	}
}

func TestPlatformMatcher_ExcludeOnlyStillExcludes(t *testing.T) {
	m := &PlatformMatcher{}
	pol := basePolicy()
	pol.Conditions.Platforms = &types.PlatformsCondition{
		ExcludePlatforms: []string{"android"},
	}

	android := &types.SimulationContext{UserID: "u", Device: types.DeviceSignals{Platform: "android"}}
	result := m.Evaluate(android, pol)
	if result.Matched {
		t.Errorf("Expected exclude-only condition to still exclude")
	}

	ios := &types.SimulationContext{UserID: "u", Device: types.DeviceSignals{Platform: "iOS"}}
	if !m.Evaluate(ios, pol).Matched {
		t.Errorf("Expected non-excluded platform to match")
	}
}

func TestLocationMatcher_Tokens(t *testing.T) {
	m := &LocationMatcher{}

	pol := basePolicy()
	pol.Conditions.Locations = &types.LocationsCondition{
		IncludeLocations: []string{types.TargetAll},
		ExcludeLocations: []string{types.TargetAllTrusted},
	}

	trusted := &types.SimulationContext{UserID: "u", LocationTrusted: true}
	if m.Evaluate(trusted, pol).Matched {
		t.Errorf("Expected trusted location to be excluded")
	}

	untrusted := &types.SimulationContext{UserID: "u"}
	if !m.Evaluate(untrusted, pol).Matched {
		t.Errorf("Expected untrusted location to match")
	}
}

func TestLocationMatcher_NamedLocation(t *testing.T) {
	m := &LocationMatcher{}
	pol := basePolicy()
	pol.Conditions.Locations = &types.LocationsCondition{
		IncludeLocations: []string{"loc-hq"},
	}

	atHQ := &types.SimulationContext{UserID: "u", LocationID: "loc-hq"}
	if !m.Evaluate(atHQ, pol).Matched {
		t.Errorf("Expected named location to match")
	}

	elsewhere := &types.SimulationContext{UserID: "u", LocationID: "loc-branch"}
	if m.Evaluate(elsewhere, pol).Matched {
		t.Errorf("Expected other location to not match")
	}
}

func TestClientAppMatcher(t *testing.T) {
	m := &ClientAppMatcher{}
	pol := basePolicy()
	pol.Conditions.ClientAppTypes = []string{types.ClientAppExchangeActiveSync, types.ClientAppOther}

	legacy := &types.SimulationContext{UserID: "u", ClientAppType: types.ClientAppOther}
	if !m.Evaluate(legacy, pol).Matched {
		t.Errorf("Expected legacy client to match legacy targeting")
	}

	browser := &types.SimulationContext{UserID: "u", ClientAppType: types.ClientAppBrowser}
	if m.Evaluate(browser, pol).Matched {
		t.Errorf("Expected browser to not match legacy targeting")
	}

	pol.Conditions.ClientAppTypes = []string{types.ClientAppAll}
	if !m.Evaluate(browser, pol).Matched {
		t.Errorf("Expected all to match any client app type")
	}
}

func TestRiskMatcher_DirectMembership(t *testing.T) {
	m := &RiskMatcher{}
	pol := basePolicy()
	pol.Conditions.SignInRiskLevels = []string{types.RiskMedium}

	medium := &types.SimulationContext{UserID: "u", SignInRiskLevel: types.RiskMedium}
	if !m.Evaluate(medium, pol).Matched {
		t.Errorf("Expected medium sign-in risk to match medium targeting")
	}

	// Membership is direct: high does not escalate into medium targeting
	high := &types.SimulationContext{UserID: "u", SignInRiskLevel: types.RiskHigh}
	if m.Evaluate(high, pol).Matched {
		t.Errorf("Expected high sign-in risk to not match medium targeting")
	}
}

func TestRiskMatcher_EmptyLevelIsNone(t *testing.T) {
	m := &RiskMatcher{}
	pol := basePolicy()
	pol.Conditions.UserRiskLevels = []string{types.RiskNone}

	ctx := &types.SimulationContext{UserID: "u"}
	if !m.Evaluate(ctx, pol).Matched {
		t.Errorf("Expected absent risk signal to normalize to none")
	}
}

func TestRiskMatcher_BothListsMustMatch(t *testing.T) {
	m := &RiskMatcher{}
	pol := basePolicy()
	pol.Conditions.SignInRiskLevels = []string{types.RiskHigh}
	pol.Conditions.UserRiskLevels = []string{types.RiskHigh}

	partial := &types.SimulationContext{UserID: "u", SignInRiskLevel: types.RiskHigh}
	if m.Evaluate(partial, pol).Matched {
		t.Errorf("Expected sign-in match alone to be insufficient when both lists are configured")
	}

	both := &types.SimulationContext{UserID: "u", SignInRiskLevel: types.RiskHigh, UserRiskLevel: types.RiskHigh}
	if !m.Evaluate(both, pol).Matched {
		t.Errorf("Expected both configured lists matching to match")
	}
}

func TestInsiderRiskMatcher(t *testing.T) {
	m := &InsiderRiskMatcher{}
	pol := basePolicy()
	pol.Conditions.InsiderRiskLevels = []string{types.InsiderRiskElevated}

	elevated := &types.SimulationContext{UserID: "u", InsiderRiskLevel: types.InsiderRiskElevated}
	if !m.Evaluate(elevated, pol).Matched {
		t.Errorf("Expected elevated insider risk to match")
	}

	clean := &types.SimulationContext{UserID: "u"}
	if m.Evaluate(clean, pol).Matched {
		t.Errorf("Expected absent insider risk to not match")
	}
}

func TestAuthFlowMatcher(t *testing.T) {
	m := &AuthFlowMatcher{}
	pol := basePolicy()
	pol.Conditions.AuthenticationFlows = &types.AuthenticationFlowsCondition{
		TransferMethods: []string{types.FlowDeviceCode},
	}

	deviceCode := &types.SimulationContext{UserID: "u", AuthenticationFlow: types.FlowDeviceCode}
	if !m.Evaluate(deviceCode, pol).Matched {
		t.Errorf("Expected device code flow to match")
	}

	interactive := &types.SimulationContext{UserID: "u"}
	if m.Evaluate(interactive, pol).Matched {
		t.Errorf("Expected sign-in without a transfer method to not match")
	}
}

func TestMatchers_UnconfiguredDimensionsMatch(t *testing.T) {
	ctx := &types.SimulationContext{UserID: "u", AppID: "some-app"}
	pol := basePolicy()

	for _, m := range All() {
		result := m.Evaluate(ctx, pol)
		if !result.Matched {
			t.Errorf("Dimension %s: expected unconfigured or broad condition to match", m.Dimension())
		}
	}
}
