package types

// PolicyConditions holds the per-dimension targeting conditions of a
// policy. Users and Applications are always present. The remaining
// dimensions are optional: a nil pointer (or empty list for the
// list-valued dimensions) means the dimension is not configured and
// matches every sign-in.
type PolicyConditions struct {
	Users               UsersCondition                `json:"users" yaml:"users"`
	Applications        ApplicationsCondition         `json:"applications" yaml:"applications"`
	Platforms           *PlatformsCondition           `json:"platforms,omitempty" yaml:"platforms,omitempty"`
	Locations           *LocationsCondition           `json:"locations,omitempty" yaml:"locations,omitempty"`
	ClientAppTypes      []string                      `json:"clientAppTypes,omitempty" yaml:"clientAppTypes,omitempty"`
	SignInRiskLevels    []string                      `json:"signInRiskLevels,omitempty" yaml:"signInRiskLevels,omitempty"`
	UserRiskLevels      []string                      `json:"userRiskLevels,omitempty" yaml:"userRiskLevels,omitempty"`
	InsiderRiskLevels   []string                      `json:"insiderRiskLevels,omitempty" yaml:"insiderRiskLevels,omitempty"`
	DeviceFilter        *DeviceFilterCondition        `json:"deviceFilter,omitempty" yaml:"deviceFilter,omitempty"`
	AuthenticationFlows *AuthenticationFlowsCondition `json:"authenticationFlows,omitempty" yaml:"authenticationFlows,omitempty"`
}

// UsersCondition targets identities by ID, group, role, and guest
// classification. Include lists understand the All, None, and
// GuestsOrExternalUsers tokens.
type UsersCondition struct {
	IncludeUsers  []string `json:"includeUsers,omitempty" yaml:"includeUsers,omitempty"`
	ExcludeUsers  []string `json:"excludeUsers,omitempty" yaml:"excludeUsers,omitempty"`
	IncludeGroups []string `json:"includeGroups,omitempty" yaml:"includeGroups,omitempty"`
	ExcludeGroups []string `json:"excludeGroups,omitempty" yaml:"excludeGroups,omitempty"`
	IncludeRoles  []string `json:"includeRoles,omitempty" yaml:"includeRoles,omitempty"`
	ExcludeRoles  []string `json:"excludeRoles,omitempty" yaml:"excludeRoles,omitempty"`
}

// ApplicationsCondition targets applications, user actions, or
// authentication context references. The three targeting modes are
// mutually exclusive and checked in that priority order.
type ApplicationsCondition struct {
	IncludeApplications                         []string `json:"includeApplications,omitempty" yaml:"includeApplications,omitempty"`
	ExcludeApplications                         []string `json:"excludeApplications,omitempty" yaml:"excludeApplications,omitempty"`
	IncludeUserActions                          []string `json:"includeUserActions,omitempty" yaml:"includeUserActions,omitempty"`
	IncludeAuthenticationContextClassReferences []string `json:"includeAuthenticationContextClassReferences,omitempty" yaml:"includeAuthenticationContextClassReferences,omitempty"`
}

// PlatformsCondition targets device platforms, case-insensitively
type PlatformsCondition struct {
	IncludePlatforms []string `json:"includePlatforms,omitempty" yaml:"includePlatforms,omitempty"`
	ExcludePlatforms []string `json:"excludePlatforms,omitempty" yaml:"excludePlatforms,omitempty"`
}

// LocationsCondition targets named locations by ID plus the All and
// AllTrusted tokens
type LocationsCondition struct {
	IncludeLocations []string `json:"includeLocations,omitempty" yaml:"includeLocations,omitempty"`
	ExcludeLocations []string `json:"excludeLocations,omitempty" yaml:"excludeLocations,omitempty"`
}

// Device filter modes
const (
	DeviceFilterModeInclude = "include"
	DeviceFilterModeExclude = "exclude"
)

// DeviceFilterCondition targets devices with a rule expression over
// device attributes. Mode include means a matching device is targeted;
// mode exclude means a matching device is exempt.
type DeviceFilterCondition struct {
	Mode string `json:"mode" yaml:"mode"`
	Rule string `json:"rule" yaml:"rule"`
}

// AuthenticationFlowsCondition targets authentication flow transfer
// methods such as deviceCodeFlow
type AuthenticationFlowsCondition struct {
	TransferMethods []string `json:"transferMethods,omitempty" yaml:"transferMethods,omitempty"`
}

// Client app types
const (
	ClientAppAll                         = "all"
	ClientAppBrowser                     = "browser"
	ClientAppMobileAppsAndDesktopClients = "mobileAppsAndDesktopClients"
	ClientAppExchangeActiveSync          = "exchangeActiveSync"
	ClientAppOther                       = "other"
)

// IsLegacyClientApp reports whether the client app type is a legacy
// protocol that cannot perform interactive controls such as MFA
func IsLegacyClientApp(clientAppType string) bool {
	return clientAppType == ClientAppExchangeActiveSync || clientAppType == ClientAppOther
}

// Risk levels for sign-in and user risk. Matching is direct list
// membership, never ordinal escalation.
const (
	RiskNone   = "none"
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Insider risk levels
const (
	InsiderRiskMinor    = "minor"
	InsiderRiskModerate = "moderate"
	InsiderRiskElevated = "elevated"
)

// Authentication flow transfer methods
const (
	FlowDeviceCode             = "deviceCodeFlow"
	FlowAuthenticationTransfer = "authenticationTransfer"
)
