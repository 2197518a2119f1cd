// Package types provides shared types for the conditional access
// simulation engine.
package types

// PolicyState represents the lifecycle state of a policy
type PolicyState string

const (
	StateEnabled    PolicyState = "enabled"
	StateDisabled   PolicyState = "disabled"
	StateReportOnly PolicyState = "reportOnly"
)

// Grant control operators
const (
	OperatorAND = "AND"
	OperatorOR  = "OR"
)

// Built-in grant control names
const (
	ControlBlock                = "block"
	ControlMFA                  = "mfa"
	ControlCompliantDevice      = "compliantDevice"
	ControlDomainJoinedDevice   = "domainJoinedDevice"
	ControlApprovedApplication  = "approvedApplication"
	ControlCompliantApplication = "compliantApplication"
	ControlPasswordChange       = "passwordChange"
)

// Targeting tokens understood by the users and applications conditions
const (
	TargetAll                   = "All"
	TargetNone                  = "None"
	TargetAllTrusted            = "AllTrusted"
	TargetGuestsOrExternalUsers = "GuestsOrExternalUsers"
	TargetOffice365             = "Office365"
)

// Policy represents a conditional access policy. Policies are immutable
// inputs to the engine; evaluation never mutates them.
type Policy struct {
	ID          string           `json:"id" yaml:"id"`
	DisplayName string           `json:"displayName" yaml:"displayName"`
	State       PolicyState      `json:"state" yaml:"state"`
	Conditions  PolicyConditions `json:"conditions" yaml:"conditions"`
	Grant       *GrantControls   `json:"grantControls,omitempty" yaml:"grantControls,omitempty"`
	Session     *SessionControls `json:"sessionControls,omitempty" yaml:"sessionControls,omitempty"`
}

// IsEnforced reports whether the policy enforces its controls when it applies
func (p *Policy) IsEnforced() bool {
	return p.State == StateEnabled
}

// RequiresBlock reports whether the policy's grant controls include block
func (p *Policy) RequiresBlock() bool {
	if p.Grant == nil {
		return false
	}
	for _, c := range p.Grant.BuiltInControls {
		if c == ControlBlock {
			return true
		}
	}
	return false
}

// GrantControls describes the proof-of-trust requirements of one policy
type GrantControls struct {
	Operator        string                  `json:"operator" yaml:"operator"`
	BuiltInControls []string                `json:"builtInControls" yaml:"builtInControls"`
	AuthStrength    *AuthenticationStrength `json:"authenticationStrength,omitempty" yaml:"authenticationStrength,omitempty"`
}

// AuthenticationStrength references a built-in or custom authentication
// strength policy. Custom strengths are classified from their allowed
// method combinations.
type AuthenticationStrength struct {
	ID                  string   `json:"id" yaml:"id"`
	DisplayName         string   `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	AllowedCombinations []string `json:"allowedCombinations,omitempty" yaml:"allowedCombinations,omitempty"`
}

// SessionControls describes the post-allow restrictions of one policy
type SessionControls struct {
	SignInFrequency            *SignInFrequency            `json:"signInFrequency,omitempty" yaml:"signInFrequency,omitempty"`
	PersistentBrowser          *PersistentBrowser          `json:"persistentBrowser,omitempty" yaml:"persistentBrowser,omitempty"`
	CloudAppSecurity           *CloudAppSecurity           `json:"cloudAppSecurity,omitempty" yaml:"cloudAppSecurity,omitempty"`
	AppEnforcedRestrictions    *AppEnforcedRestrictions    `json:"applicationEnforcedRestrictions,omitempty" yaml:"applicationEnforcedRestrictions,omitempty"`
	DisableResilienceDefaults  bool                        `json:"disableResilienceDefaults,omitempty" yaml:"disableResilienceDefaults,omitempty"`
	SecureSignInSession        *SecureSignInSession        `json:"secureSignInSession,omitempty" yaml:"secureSignInSession,omitempty"`
	ContinuousAccessEvaluation *ContinuousAccessEvaluation `json:"continuousAccessEvaluation,omitempty" yaml:"continuousAccessEvaluation,omitempty"`
}

// SignInFrequency forces reauthentication after an interval
type SignInFrequency struct {
	IsEnabled bool   `json:"isEnabled" yaml:"isEnabled"`
	Value     int    `json:"value" yaml:"value"`
	Type      string `json:"type" yaml:"type"` // "days" or "hours"
}

// Hours normalizes the frequency interval to hours
func (f *SignInFrequency) Hours() int {
	if f.Type == "days" {
		return f.Value * 24
	}
	return f.Value
}

// PersistentBrowser controls browser session persistence
type PersistentBrowser struct {
	IsEnabled bool   `json:"isEnabled" yaml:"isEnabled"`
	Mode      string `json:"mode" yaml:"mode"` // "always" or "never"
}

// CloudAppSecurity routes sessions through app security proxying
type CloudAppSecurity struct {
	IsEnabled            bool   `json:"isEnabled" yaml:"isEnabled"`
	CloudAppSecurityType string `json:"cloudAppSecurityType,omitempty" yaml:"cloudAppSecurityType,omitempty"`
}

// AppEnforcedRestrictions delegates session restrictions to the application
type AppEnforcedRestrictions struct {
	IsEnabled bool `json:"isEnabled" yaml:"isEnabled"`
}

// SecureSignInSession requires token protection for the session
type SecureSignInSession struct {
	IsEnabled bool `json:"isEnabled" yaml:"isEnabled"`
}

// Continuous access evaluation modes, orderable by strictness
const (
	CAEModeDisabled          = "disabled"
	CAEModeStrictLocation    = "strictLocation"
	CAEModeStrictEnforcement = "strictEnforcement"
)

// ContinuousAccessEvaluation configures token revocation strictness
type ContinuousAccessEvaluation struct {
	Mode string `json:"mode" yaml:"mode"`
}
