package gaps

import (
	"fmt"
	"sort"

	"github.com/ca-engine/go-core/pkg/types"
)

// groupKey identifies findings that collapse into one group
type groupKey struct {
	severity    types.GapSeverity
	gapType     types.GapType
	persona     string
	application string
	reason      string
}

// GroupGaps collapses findings sharing (severity, gapType, persona,
// application, reason) into groups carrying the observed dimension
// values and a scenario count. Groups sort severity first, then
// persona, then application.
func GroupGaps(results []types.GapResult) []types.GapGroup {
	grouped := map[groupKey]*types.GapGroup{}
	order := []groupKey{}

	for _, r := range results {
		key := groupKey{
			severity:    r.Severity,
			gapType:     r.GapType,
			persona:     r.Persona,
			application: r.Application,
			reason:      r.Reason,
		}
		g, ok := grouped[key]
		if !ok {
			g = &types.GapGroup{
				Severity:    r.Severity,
				GapType:     r.GapType,
				Persona:     r.Persona,
				Application: r.Application,
				Reason:      r.Reason,
			}
			grouped[key] = g
			order = append(order, key)
		}
		g.Count++
		g.Platforms = appendUnique(g.Platforms, r.Scenario.Platform)
		g.ClientAppTypes = appendUnique(g.ClientAppTypes, r.Scenario.ClientAppType)
		g.LocationTrusts = appendUniqueBool(g.LocationTrusts, r.Scenario.LocationTrusted)
		g.SignInRisks = appendUnique(g.SignInRisks, r.Scenario.SignInRisk)
		g.UserRisks = appendUnique(g.UserRisks, r.Scenario.UserRisk)
	}

	groups := make([]types.GapGroup, 0, len(order))
	for _, key := range order {
		groups = append(groups, *grouped[key])
	}

	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		if ra, rb := types.SeverityRank(a.Severity), types.SeverityRank(b.Severity); ra != rb {
			return ra < rb
		}
		if a.Persona != b.Persona {
			return a.Persona < b.Persona
		}
		if a.Application != b.Application {
			return a.Application < b.Application
		}
		return a.GapType < b.GapType
	})

	return groups
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}

func appendUniqueBool(list []bool, value bool) []bool {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}

// Summary formats a one-line description of a group for logs and CLI
// output
func Summary(g types.GapGroup) string {
	return fmt.Sprintf("[%s] %s persona=%s app=%s scenarios=%d",
		g.Severity, g.GapType, g.Persona, g.Application, g.Count)
}
