package engine

import (
	"strings"

	"github.com/ca-engine/go-core/pkg/types"
)

// Authentication strength tiers are ordinal: a user authenticated at
// level L satisfies any requirement at level <= L.
const (
	TierNone              = 0
	TierMFA               = 1
	TierPasswordless      = 2
	TierPhishingResistant = 3
)

// builtInStrengthTiers maps the built-in authentication strength policy
// IDs to their tier
var builtInStrengthTiers = map[string]int{
	"00000000-0000-0000-0000-000000000002": TierMFA,
	"00000000-0000-0000-0000-000000000003": TierPasswordless,
	"00000000-0000-0000-0000-000000000004": TierPhishingResistant,
}

// phishingResistantMethods are the combinations that make a custom
// strength phishing-resistant when they are the only ones allowed
var phishingResistantMethods = map[string]bool{
	"windowshelloforbusiness":     true,
	"fido2":                       true,
	"x509certificatemultifactor":  true,
	"x509certificatesinglefactor": true,
}

// passwordlessMethods extends the phishing-resistant set with methods
// that are passwordless but phishable
var passwordlessMethods = map[string]bool{
	"devicebasedpush": true,
}

// ResolveStrengthTier resolves an authentication strength requirement
// to its ordinal tier. The second return is false when the requirement
// is unknown: not a built-in ID and carrying no method combinations to
// classify. Unknown requirements are never satisfied.
func ResolveStrengthTier(strength *types.AuthenticationStrength) (int, bool) {
	if strength == nil {
		return TierNone, true
	}
	if tier, ok := builtInStrengthTiers[strength.ID]; ok {
		return tier, true
	}
	if len(strength.AllowedCombinations) > 0 {
		return classifyCombinations(strength.AllowedCombinations), true
	}
	return TierNone, false
}

// classifyCombinations derives a tier from a custom strength's allowed
// method combinations. Every combination must hold the classification:
// one phishable combination downgrades the whole strength. Unknown
// methods classify conservatively as tier 1.
func classifyCombinations(combinations []string) int {
	allPhishingResistant := true
	allPasswordless := true
	sawMethod := false

	for _, combo := range combinations {
		for _, method := range strings.Split(combo, ",") {
			m := strings.ToLower(strings.TrimSpace(method))
			if m == "" {
				continue
			}
			sawMethod = true
			if !phishingResistantMethods[m] {
				allPhishingResistant = false
			}
			if !phishingResistantMethods[m] && !passwordlessMethods[m] {
				allPasswordless = false
			}
		}
	}

	if !sawMethod {
		return TierMFA
	}

	switch {
	case allPhishingResistant:
		return TierPhishingResistant
	case allPasswordless:
		return TierPasswordless
	default:
		return TierMFA
	}
}

// StrengthSatisfied reports whether a user authenticated at authLevel
// satisfies the strength requirement. Unknown requirements fail closed.
func StrengthSatisfied(authLevel int, strength *types.AuthenticationStrength) bool {
	if strength == nil {
		return true
	}
	tier, known := ResolveStrengthTier(strength)
	if !known {
		return false
	}
	return authLevel >= tier
}
