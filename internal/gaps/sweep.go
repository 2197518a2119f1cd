package gaps

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ca-engine/go-core/internal/engine"
	"github.com/ca-engine/go-core/internal/metrics"
	"github.com/ca-engine/go-core/pkg/types"
)

// Analyzer drives the decision engine across the scenario cross
// product and classifies each outcome into coverage findings
type Analyzer struct {
	engine  *engine.Engine
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewAnalyzer creates a gap analyzer around a decision engine
func NewAnalyzer(eng *engine.Engine, logger *zap.Logger, m *metrics.Metrics) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		engine:  eng,
		logger:  logger,
		metrics: m,
	}
}

// AnalyzeGaps sweeps the full cross product of persona and scenario
// dimensions, invoking the engine once per combination. The persona
// loop may run on a worker pool; per-persona results are re-assembled
// in persona order so output is deterministic regardless of worker
// count.
func (a *Analyzer) AnalyzeGaps(policies []*types.Policy, opts Options) []types.GapResult {
	start := time.Now()
	opts = opts.normalized()
	personas := opts.resolvePersonas()
	if len(personas) == 0 {
		return nil
	}

	perPersona := make([][]types.GapResult, len(personas))

	if opts.Workers > 1 {
		pool := engine.NewWorkerPool(opts.Workers)
		defer pool.Stop()

		done := make(chan int, len(personas))
		for i, persona := range personas {
			i, persona := i, persona
			pool.Submit(func() {
				perPersona[i] = a.sweepPersona(policies, persona, opts)
				done <- i
			})
		}
		for range personas {
			<-done
		}
	} else {
		for i, persona := range personas {
			perPersona[i] = a.sweepPersona(policies, persona, opts)
		}
	}

	var results []types.GapResult
	for _, r := range perPersona {
		results = append(results, r...)
	}

	scenarios := len(personas) * opts.ScenariosPerPersona()
	a.logger.Info("gap sweep complete",
		zap.Int("personas", len(personas)),
		zap.Int("scenarios", scenarios),
		zap.Int("findings", len(results)),
		zap.Duration("duration", time.Since(start)),
	)
	if a.metrics != nil {
		a.metrics.RecordSweep(scenarios, time.Since(start))
		for _, r := range results {
			a.metrics.RecordFinding(string(r.Severity))
		}
	}

	return results
}

// sweepPersona enumerates every scenario combination for one persona,
// in fixed dimension order
func (a *Analyzer) sweepPersona(policies []*types.Policy, persona Persona, opts Options) []types.GapResult {
	var results []types.GapResult

	for _, app := range opts.Applications {
		for _, platform := range opts.Platforms {
			for _, clientApp := range opts.ClientAppTypes {
				for _, trusted := range opts.LocationTrusts {
					for _, signInRisk := range opts.SignInRisks {
						for _, userRisk := range opts.UserRisks {
							scenario := types.Scenario{
								Platform:        platform,
								ClientAppType:   clientApp,
								LocationTrusted: trusted,
								SignInRisk:      signInRisk,
								UserRisk:        userRisk,
							}
							ctx := scenarioContext(persona, app, scenario)
							outcome := a.engine.Evaluate(policies, ctx)
							results = append(results, classify(outcome, persona, app, scenario)...)
						}
					}
				}
			}
		}
	}

	return results
}

// scenarioContext builds the simulation context for one combination
func scenarioContext(persona Persona, app string, scenario types.Scenario) *types.SimulationContext {
	return &types.SimulationContext{
		UserID:     persona.UserID,
		UserType:   persona.UserType,
		GroupIDs:   persona.GroupIDs,
		RoleIDs:    persona.RoleIDs,
		IsExternal: persona.IsExternal,
		AppID:      app,
		Device: types.DeviceSignals{
			Platform: scenario.Platform,
		},
		LocationTrusted: scenario.LocationTrusted,
		SignInRiskLevel: scenario.SignInRisk,
		UserRiskLevel:   scenario.UserRisk,
		ClientAppType:   scenario.ClientAppType,
	}
}

// classify turns one engine outcome into zero or more findings. The
// checks are independent, not mutually exclusive: a scenario can carry
// both control warnings and a legacy-auth finding.
func classify(outcome *types.CAEngineResult, persona Persona, app string, scenario types.Scenario) []types.GapResult {
	if outcome.Decision == types.DecisionBlock {
		return nil
	}

	base := types.GapResult{
		Persona:          persona.Name,
		PersonaType:      persona.UserType,
		Application:      app,
		Scenario:         scenario,
		Decision:         outcome.Decision,
		RequiredControls: outcome.RequiredControls,
	}

	finding := func(severity types.GapSeverity, gapType types.GapType, reason string) types.GapResult {
		f := base
		f.Severity = severity
		f.GapType = gapType
		f.Reason = reason
		return f
	}

	enforced := len(outcome.AppliedPolicies)
	reportOnly := len(outcome.ReportOnlyPolicies)

	if enforced == 0 && reportOnly == 0 {
		return []types.GapResult{finding(types.SeverityCritical, types.GapNoPolicy,
			"no conditional access policy applies to this sign-in")}
	}
	if enforced == 0 {
		return []types.GapResult{finding(types.SeverityInfo, types.GapReportOnly,
			fmt.Sprintf("only report-only policies apply (%d); nothing is enforced", reportOnly))}
	}

	var results []types.GapResult

	mfaCovered := requiresMFA(outcome)
	deviceCovered := contains(outcome.RequiredControls, types.ControlCompliantDevice)

	if !mfaCovered {
		results = append(results, finding(types.SeverityWarning, types.GapNoMFA,
			"applicable policies do not require multifactor authentication"))
	}
	if !deviceCovered {
		results = append(results, finding(types.SeverityWarning, types.GapNoDeviceCompliance,
			"applicable policies do not require a compliant device"))
	}
	if !mfaCovered && !deviceCovered {
		results = append(results, finding(types.SeverityCaution, types.GapNoMFAOrDevice,
			"neither multifactor authentication nor device compliance is required"))
	}
	if types.IsLegacyClientApp(scenario.ClientAppType) {
		results = append(results, finding(types.SeverityWarning, types.GapLegacyAuthNotBlocked,
			"legacy authentication protocol is not blocked for this sign-in"))
	}

	return results
}

// requiresMFA reports whether any applicable policy demands MFA either
// directly or through an authentication strength requirement
func requiresMFA(outcome *types.CAEngineResult) bool {
	if contains(outcome.RequiredControls, types.ControlMFA) {
		return true
	}
	for _, status := range outcome.Grant.PolicyBreakdown {
		if status.AuthStrengthID != "" {
			return true
		}
	}
	return false
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

// CompareBaseline runs a generic-persona baseline sweep and a
// real-persona sweep over the same scenario dimensions. A clean
// baseline with real findings signals membership-driven blind spots
// that synthetic personas cannot see.
func (a *Analyzer) CompareBaseline(policies []*types.Policy, realPersonas []Persona, opts Options) types.DisagreementSummary {
	baselineOpts := opts
	baselineOpts.PersonaSource = SourceGeneric
	baselineOpts.Personas = nil
	baseline := a.AnalyzeGaps(policies, baselineOpts)

	realOpts := opts
	realOpts.PersonaSource = SourceMappedUsers
	realOpts.Personas = realPersonas
	real := a.AnalyzeGaps(policies, realOpts)

	summary := types.DisagreementSummary{
		BaselineGaps: len(baseline),
		RealGaps:     len(real),
		Disagreement: len(baseline) == 0 && len(real) > 0,
	}
	for _, p := range realPersonas {
		summary.RealPersonas = append(summary.RealPersonas, p.Name)
	}

	seen := map[types.GapType]bool{}
	for _, r := range real {
		if !seen[r.GapType] {
			seen[r.GapType] = true
			summary.AffectedTypes = append(summary.AffectedTypes, r.GapType)
		}
	}

	return summary
}
