package types

import "time"

// Decision is the final outcome of an evaluation
type Decision string

const (
	DecisionAllow            Decision = "allow"
	DecisionBlock            Decision = "block"
	DecisionControlsRequired Decision = "controlsRequired"
)

// MatchPhase records which rule produced a condition verdict
type MatchPhase string

const (
	PhaseInclusion     MatchPhase = "inclusion"
	PhaseExclusion     MatchPhase = "exclusion"
	PhaseNotConfigured MatchPhase = "notConfigured"
)

// Condition dimension names, in fixed evaluation order
const (
	DimensionUsers        = "users"
	DimensionApplications = "applications"
	DimensionPlatform     = "platform"
	DimensionLocation     = "location"
	DimensionClientApp    = "clientAppTypes"
	DimensionRisk         = "riskLevels"
	DimensionDeviceFilter = "deviceFilter"
	DimensionAuthFlow     = "authenticationFlows"
	DimensionInsiderRisk  = "insiderRisk"
)

// ConditionMatchResult is the verdict of one matcher for one dimension
type ConditionMatchResult struct {
	Dimension string                 `json:"dimension"`
	Matched   bool                   `json:"matched"`
	Phase     MatchPhase             `json:"phase"`
	Reason    string                 `json:"reason"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// PolicyEvaluationResult is the outcome of evaluating one policy
// against one context. Conditions holds results in evaluation order,
// short-circuited at the first non-match.
type PolicyEvaluationResult struct {
	PolicyID    string                 `json:"policyId"`
	DisplayName string                 `json:"displayName"`
	State       PolicyState            `json:"state"`
	Applies     bool                   `json:"applies"`
	Conditions  []ConditionMatchResult `json:"conditions,omitempty"`
	Grant       *PolicyGrantStatus     `json:"grant,omitempty"`
	Session     *SessionControls       `json:"session,omitempty"`
}

// PolicyGrantStatus is the per-policy grant control satisfaction
type PolicyGrantStatus struct {
	PolicyID            string   `json:"policyId"`
	Operator            string   `json:"operator,omitempty"`
	RequiredControls    []string `json:"requiredControls,omitempty"`
	SatisfiedControls   []string `json:"satisfiedControls,omitempty"`
	UnsatisfiedControls []string `json:"unsatisfiedControls,omitempty"`
	AuthStrengthID      string   `json:"authStrengthId,omitempty"`
	AuthStrengthMet     bool     `json:"authStrengthMet,omitempty"`
	Satisfied           bool     `json:"satisfied"`
}

// GrantResolutionResult is the cross-policy grant control outcome
type GrantResolutionResult struct {
	Decision            Decision            `json:"decision"`
	RequiredControls    []string            `json:"requiredControls,omitempty"`
	SatisfiedControls   []string            `json:"satisfiedControls,omitempty"`
	UnsatisfiedControls []string            `json:"unsatisfiedControls,omitempty"`
	BlockingPolicyID    string              `json:"blockingPolicyId,omitempty"`
	PolicyBreakdown     []PolicyGrantStatus `json:"policyBreakdown,omitempty"`
}

// AggregatedSessionControls holds the most-restrictive merged session
// controls across applicable enforced policies. Each winning value
// records the policy it came from.
type AggregatedSessionControls struct {
	SignInFrequencyHours  int    `json:"signInFrequencyHours,omitempty"`
	SignInFrequencySource string `json:"signInFrequencySource,omitempty"`

	PersistentBrowserMode   string `json:"persistentBrowserMode,omitempty"`
	PersistentBrowserSource string `json:"persistentBrowserSource,omitempty"`

	CloudAppSecurity       bool   `json:"cloudAppSecurity,omitempty"`
	CloudAppSecuritySource string `json:"cloudAppSecuritySource,omitempty"`

	AppEnforcedRestrictions       bool   `json:"applicationEnforcedRestrictions,omitempty"`
	AppEnforcedRestrictionsSource string `json:"applicationEnforcedRestrictionsSource,omitempty"`

	DisableResilienceDefaults       bool   `json:"disableResilienceDefaults,omitempty"`
	DisableResilienceDefaultsSource string `json:"disableResilienceDefaultsSource,omitempty"`

	SecureSignInSession       bool   `json:"secureSignInSession,omitempty"`
	SecureSignInSessionSource string `json:"secureSignInSessionSource,omitempty"`

	ContinuousAccessEvaluationMode   string `json:"continuousAccessEvaluationMode,omitempty"`
	ContinuousAccessEvaluationSource string `json:"continuousAccessEvaluationSource,omitempty"`
}

// TraceEntry is one append-only record of a pipeline phase decision
type TraceEntry struct {
	Seq       int                    `json:"seq"`
	Phase     string                 `json:"phase"`
	Timestamp time.Time              `json:"timestamp"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// CAEngineResult is the complete outcome of one engine evaluation
type CAEngineResult struct {
	RequestID string   `json:"requestId,omitempty"`
	Decision  Decision `json:"decision"`

	RequiredControls    []string `json:"requiredControls,omitempty"`
	SatisfiedControls   []string `json:"satisfiedControls,omitempty"`
	UnsatisfiedControls []string `json:"unsatisfiedControls,omitempty"`

	AppliedPolicies    []PolicyEvaluationResult `json:"appliedPolicies"`
	ReportOnlyPolicies []PolicyEvaluationResult `json:"reportOnlyPolicies"`
	SkippedPolicies    []PolicyEvaluationResult `json:"skippedPolicies"`

	Grant           GrantResolutionResult     `json:"grant"`
	SessionControls AggregatedSessionControls `json:"sessionControls"`

	Trace []TraceEntry `json:"trace,omitempty"`
}
