package gaps

import (
	"strings"
	"testing"

	"github.com/ca-engine/go-core/pkg/types"
)

func gap(severity types.GapSeverity, gapType types.GapType, persona, app, platform string) types.GapResult {
	return types.GapResult{
		Persona:     persona,
		Application: app,
		Severity:    severity,
		GapType:     gapType,
		Reason:      "test reason",
		Scenario: types.Scenario{
			Platform:      platform,
			ClientAppType: types.ClientAppBrowser,
			SignInRisk:    types.RiskNone,
			UserRisk:      types.RiskNone,
		},
	}
}

func TestGroupGaps_CollapsesScenarios(t *testing.T) {
	results := []types.GapResult{
		gap(types.SeverityCritical, types.GapNoPolicy, "generic-member", "app-1", "windows"),
		gap(types.SeverityCritical, types.GapNoPolicy, "generic-member", "app-1", "macOS"),
		gap(types.SeverityCritical, types.GapNoPolicy, "generic-member", "app-1", "windows"),
	}

	groups := GroupGaps(results)
	if len(groups) != 1 {
		t.Fatalf("Expected 1 group, got %d", len(groups))
	}
	g := groups[0]
	if g.Count != 3 {
		t.Errorf("Expected scenario count 3, got %d", g.Count)
	}
	if len(g.Platforms) != 2 {
		t.Errorf("Expected 2 distinct platforms, got %v", g.Platforms)
	}
}

func TestGroupGaps_SeveritySortsFirst(t *testing.T) {
	results := []types.GapResult{
		gap(types.SeverityInfo, types.GapReportOnly, "generic-member", "app-1", "windows"),
		gap(types.SeverityWarning, types.GapNoMFA, "generic-member", "app-1", "windows"),
		gap(types.SeverityCritical, types.GapNoPolicy, "generic-guest", "app-2", "windows"),
		gap(types.SeverityCaution, types.GapNoMFAOrDevice, "generic-member", "app-1", "windows"),
	}

	groups := GroupGaps(results)
	want := []types.GapSeverity{
		types.SeverityCritical,
		types.SeverityWarning,
		types.SeverityCaution,
		types.SeverityInfo,
	}
	if len(groups) != len(want) {
		t.Fatalf("Expected %d groups, got %d", len(want), len(groups))
	}
	for i, g := range groups {
		if g.Severity != want[i] {
			t.Errorf("Group %d: expected severity %s, got %s", i, want[i], g.Severity)
		}
	}
}

func TestGroupGaps_TieBreaksByPersonaThenApplication(t *testing.T) {
	results := []types.GapResult{
		gap(types.SeverityCritical, types.GapNoPolicy, "generic-member", "app-2", "windows"),
		gap(types.SeverityCritical, types.GapNoPolicy, "generic-member", "app-1", "windows"),
		gap(types.SeverityCritical, types.GapNoPolicy, "generic-admin", "app-1", "windows"),
	}

	groups := GroupGaps(results)
	if len(groups) != 3 {
		t.Fatalf("Expected 3 groups, got %d", len(groups))
	}
	if groups[0].Persona != "generic-admin" {
		t.Errorf("Expected generic-admin first, got %s", groups[0].Persona)
	}
	if groups[1].Application != "app-1" || groups[2].Application != "app-2" {
		t.Errorf("Expected application tie-break, got %s then %s", groups[1].Application, groups[2].Application)
	}
}

func TestGroupGaps_DifferentReasonsStaySeparate(t *testing.T) {
	a := gap(types.SeverityWarning, types.GapNoMFA, "generic-member", "app-1", "windows")
	b := a
	b.Reason = "another reason"

	groups := GroupGaps([]types.GapResult{a, b})
	if len(groups) != 2 {
		t.Errorf("Expected distinct reasons to form distinct groups, got %d", len(groups))
	}
}

func TestSummary(t *testing.T) {
	g := types.GapGroup{
		Severity:    types.SeverityCritical,
		GapType:     types.GapNoPolicy,
		Persona:     "generic-member",
		Application: "app-1",
		Count:       1920,
	}
	s := Summary(g)
	for _, part := range []string{"critical", "no-policy", "generic-member", "app-1", "1920"} {
		if !strings.Contains(s, part) {
			t.Errorf("Expected summary to contain %q, got %q", part, s)
		}
	}
}
