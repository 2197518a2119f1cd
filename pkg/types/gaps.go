package types

// Gap severities, ordered for display
type GapSeverity string

const (
	SeverityCritical GapSeverity = "critical"
	SeverityWarning  GapSeverity = "warning"
	SeverityCaution  GapSeverity = "caution"
	SeverityInfo     GapSeverity = "info"
)

// SeverityRank returns the sort rank of a severity; lower sorts first
func SeverityRank(s GapSeverity) int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	case SeverityCaution:
		return 2
	case SeverityInfo:
		return 3
	default:
		return 4
	}
}

// Gap types emitted by the coverage sweep
type GapType string

const (
	GapNoPolicy             GapType = "no-policy"
	GapReportOnly           GapType = "report-only"
	GapNoMFA                GapType = "no-mfa"
	GapNoDeviceCompliance   GapType = "no-device-compliance"
	GapNoMFAOrDevice        GapType = "no-mfa-or-device"
	GapLegacyAuthNotBlocked GapType = "legacy-auth-not-blocked"
)

// Scenario names the swept dimension values of one finding
type Scenario struct {
	Platform        string `json:"platform"`
	ClientAppType   string `json:"clientAppType"`
	LocationTrusted bool   `json:"locationTrusted"`
	SignInRisk      string `json:"signInRisk"`
	UserRisk        string `json:"userRisk"`
}

// GapResult is one coverage finding for one persona and scenario
type GapResult struct {
	Persona     string      `json:"persona"`
	PersonaType UserType    `json:"personaType"`
	Application string      `json:"application"`
	Severity    GapSeverity `json:"severity"`
	GapType     GapType     `json:"gapType"`
	Reason      string      `json:"reason"`
	Scenario    Scenario    `json:"scenario"`

	Decision         Decision `json:"decision"`
	RequiredControls []string `json:"requiredControls,omitempty"`
}

// GapGroup collapses findings sharing (severity, gapType, persona,
// application, reason) into one record with the observed dimension
// values and a scenario count.
type GapGroup struct {
	Severity    GapSeverity `json:"severity"`
	GapType     GapType     `json:"gapType"`
	Persona     string      `json:"persona"`
	Application string      `json:"application"`
	Reason      string      `json:"reason"`
	Count       int         `json:"count"`

	Platforms      []string `json:"platforms,omitempty"`
	ClientAppTypes []string `json:"clientAppTypes,omitempty"`
	LocationTrusts []bool   `json:"locationTrusts,omitempty"`
	SignInRisks    []string `json:"signInRisks,omitempty"`
	UserRisks      []string `json:"userRisks,omitempty"`
}

// DisagreementSummary reports a baseline sweep that found no gaps while
// a real-persona sweep did, surfacing membership-driven blind spots.
type DisagreementSummary struct {
	Disagreement  bool      `json:"disagreement"`
	BaselineGaps  int       `json:"baselineGaps"`
	RealGaps      int       `json:"realGaps"`
	RealPersonas  []string  `json:"realPersonas,omitempty"`
	AffectedTypes []GapType `json:"affectedTypes,omitempty"`
}
