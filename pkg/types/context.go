package types

// UserType classifies the identity in a simulation context
type UserType string

const (
	UserTypeMember UserType = "member"
	UserTypeGuest  UserType = "guest"
)

// SimulationContext describes one hypothetical sign-in. Group and role
// memberships arrive already resolved; the engine never performs
// directory lookups. Contexts are immutable per evaluation.
type SimulationContext struct {
	// Identity
	UserID     string   `json:"userId"`
	UserType   UserType `json:"userType"`
	GroupIDs   []string `json:"groupIds,omitempty"`
	RoleIDs    []string `json:"roleIds,omitempty"`
	IsExternal bool     `json:"isExternal,omitempty"`

	// Target: exactly one of application, user action, or
	// authentication context reference
	AppID       string `json:"appId,omitempty"`
	UserAction  string `json:"userAction,omitempty"`
	AuthContext string `json:"authContext,omitempty"`

	// Device signals
	Device DeviceSignals `json:"device"`

	// Location signals
	LocationID      string `json:"locationId,omitempty"`
	LocationTrusted bool   `json:"locationTrusted,omitempty"`

	// Risk signals
	SignInRiskLevel  string `json:"signInRiskLevel,omitempty"`
	UserRiskLevel    string `json:"userRiskLevel,omitempty"`
	InsiderRiskLevel string `json:"insiderRiskLevel,omitempty"`

	// Client
	ClientAppType      string `json:"clientAppType,omitempty"`
	AuthenticationFlow string `json:"authenticationFlow,omitempty"`

	// Proof already presented
	SatisfiedControls []string `json:"satisfiedControls,omitempty"`
	AuthStrengthLevel int      `json:"authStrengthLevel,omitempty"` // 0=none, 1=MFA, 2=passwordless, 3=phishing-resistant
}

// HasControl reports whether the context already satisfies a control
func (c *SimulationContext) HasControl(control string) bool {
	for _, s := range c.SatisfiedControls {
		if s == control {
			return true
		}
	}
	return false
}

// HasGroup reports whether the identity is a member of a group
func (c *SimulationContext) HasGroup(groupID string) bool {
	for _, g := range c.GroupIDs {
		if g == groupID {
			return true
		}
	}
	return false
}

// HasRole reports whether the identity holds a directory role
func (c *SimulationContext) HasRole(roleID string) bool {
	for _, r := range c.RoleIDs {
		if r == roleID {
			return true
		}
	}
	return false
}

// IsGuest reports whether the identity is a guest or external user
func (c *SimulationContext) IsGuest() bool {
	return c.UserType == UserTypeGuest || c.IsExternal
}

// DeviceSignals carries the device state of a simulated sign-in.
// Attributes feed the device filter grammar; well-known properties
// (isCompliant, trustType, operatingSystem) are derived from the typed
// fields when absent from the map.
type DeviceSignals struct {
	Platform     string            `json:"platform,omitempty"`
	IsCompliant  bool              `json:"isCompliant,omitempty"`
	HybridJoined bool              `json:"hybridJoined,omitempty"`
	Attributes   map[string]string `json:"attributes,omitempty"`
}
