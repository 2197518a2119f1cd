package engine

import (
	"github.com/ca-engine/go-core/pkg/types"
)

// caeRank orders continuous access evaluation modes by strictness
func caeRank(mode string) int {
	switch mode {
	case types.CAEModeStrictEnforcement:
		return 2
	case types.CAEModeStrictLocation:
		return 1
	default:
		return 0
	}
}

// AggregateSessionControls merges the session controls of the
// applicable enforced policies, most restrictive value winning per
// control. Report-only and skipped policies never contribute.
func AggregateSessionControls(policies []*types.Policy) types.AggregatedSessionControls {
	var agg types.AggregatedSessionControls

	for _, p := range policies {
		s := p.Session
		if s == nil {
			continue
		}

		// Shortest reauthentication interval wins
		if s.SignInFrequency != nil && s.SignInFrequency.IsEnabled {
			hours := s.SignInFrequency.Hours()
			if hours > 0 && (agg.SignInFrequencyHours == 0 || hours < agg.SignInFrequencyHours) {
				agg.SignInFrequencyHours = hours
				agg.SignInFrequencySource = p.ID
			}
		}

		// "never" wins over "always"
		if s.PersistentBrowser != nil && s.PersistentBrowser.IsEnabled {
			mode := s.PersistentBrowser.Mode
			if agg.PersistentBrowserMode == "" || mode == "never" {
				if agg.PersistentBrowserMode != "never" {
					agg.PersistentBrowserMode = mode
					agg.PersistentBrowserSource = p.ID
				}
			}
		}

		// Any enabling policy enables these
		if s.CloudAppSecurity != nil && s.CloudAppSecurity.IsEnabled && !agg.CloudAppSecurity {
			agg.CloudAppSecurity = true
			agg.CloudAppSecuritySource = p.ID
		}
		if s.AppEnforcedRestrictions != nil && s.AppEnforcedRestrictions.IsEnabled && !agg.AppEnforcedRestrictions {
			agg.AppEnforcedRestrictions = true
			agg.AppEnforcedRestrictionsSource = p.ID
		}
		if s.DisableResilienceDefaults && !agg.DisableResilienceDefaults {
			agg.DisableResilienceDefaults = true
			agg.DisableResilienceDefaultsSource = p.ID
		}
		if s.SecureSignInSession != nil && s.SecureSignInSession.IsEnabled && !agg.SecureSignInSession {
			agg.SecureSignInSession = true
			agg.SecureSignInSessionSource = p.ID
		}

		// Strictest continuous access evaluation mode wins
		if s.ContinuousAccessEvaluation != nil {
			if caeRank(s.ContinuousAccessEvaluation.Mode) > caeRank(agg.ContinuousAccessEvaluationMode) {
				agg.ContinuousAccessEvaluationMode = s.ContinuousAccessEvaluation.Mode
				agg.ContinuousAccessEvaluationSource = p.ID
			}
		}
	}

	return agg
}
