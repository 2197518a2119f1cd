package policy

import (
	"fmt"
	"regexp"

	"github.com/ca-engine/go-core/pkg/types"
)

var validStates = map[types.PolicyState]bool{
	types.StateEnabled:    true,
	types.StateDisabled:   true,
	types.StateReportOnly: true,
}

var validGrantControls = map[string]bool{
	types.ControlBlock:                true,
	types.ControlMFA:                  true,
	types.ControlCompliantDevice:      true,
	types.ControlDomainJoinedDevice:   true,
	types.ControlApprovedApplication:  true,
	types.ControlCompliantApplication: true,
	types.ControlPasswordChange:       true,
}

var validClientAppTypes = map[string]bool{
	types.ClientAppAll:                         true,
	types.ClientAppBrowser:                     true,
	types.ClientAppMobileAppsAndDesktopClients: true,
	types.ClientAppExchangeActiveSync:          true,
	types.ClientAppOther:                       true,
}

var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]*$`)

// Validator checks policy structure before policies reach the store.
// The engine itself never validates; invalid policies are rejected at
// the loading and API boundaries.
type Validator struct{}

// NewValidator creates a new policy validator
func NewValidator() *Validator {
	return &Validator{}
}

// Validate returns the list of structural issues with a policy. An
// empty list means the policy is acceptable.
func (v *Validator) Validate(policy *types.Policy) []string {
	if policy == nil {
		return []string{"policy is required"}
	}

	var issues []string

	if policy.ID == "" {
		issues = append(issues, "policy id is required")
	} else if !identifierPattern.MatchString(policy.ID) {
		issues = append(issues, fmt.Sprintf("invalid policy id format: %s", policy.ID))
	}
	if policy.DisplayName == "" {
		issues = append(issues, "policy displayName is required")
	}
	if !validStates[policy.State] {
		issues = append(issues, fmt.Sprintf("unknown policy state: %s", policy.State))
	}

	if policy.Grant != nil {
		if policy.Grant.Operator != types.OperatorAND && policy.Grant.Operator != types.OperatorOR {
			issues = append(issues, fmt.Sprintf("unknown grant operator: %s", policy.Grant.Operator))
		}
		for _, c := range policy.Grant.BuiltInControls {
			if !validGrantControls[c] {
				issues = append(issues, fmt.Sprintf("unknown grant control: %s", c))
			}
		}
	}

	for _, c := range policy.Conditions.ClientAppTypes {
		if !validClientAppTypes[c] {
			issues = append(issues, fmt.Sprintf("unknown client app type: %s", c))
		}
	}

	if policy.Conditions.DeviceFilter != nil {
		mode := policy.Conditions.DeviceFilter.Mode
		if mode != types.DeviceFilterModeInclude && mode != types.DeviceFilterModeExclude {
			issues = append(issues, fmt.Sprintf("unknown device filter mode: %s", mode))
		}
	}

	if policy.Session != nil && policy.Session.SignInFrequency != nil {
		f := policy.Session.SignInFrequency
		if f.IsEnabled {
			if f.Value <= 0 {
				issues = append(issues, "sign-in frequency value must be positive")
			}
			if f.Type != "days" && f.Type != "hours" {
				issues = append(issues, fmt.Sprintf("unknown sign-in frequency type: %s", f.Type))
			}
		}
	}

	return issues
}
