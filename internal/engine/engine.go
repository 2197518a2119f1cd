// Package engine provides the core decision engine for conditional
// access simulation.
package engine

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ca-engine/go-core/internal/metrics"
	"github.com/ca-engine/go-core/pkg/types"
)

// Engine is the conditional access decision engine. Evaluation is a
// pure function of (policies, context): identical inputs always yield
// the identical decision, control sets, and policy buckets. Only trace
// timestamps vary between runs.
type Engine struct {
	evaluator *PolicyEvaluator
	logger    *zap.Logger
	metrics   *metrics.Metrics
	config    Config
}

// Config configures the decision engine
type Config struct {
	// TraceEnabled controls whether evaluations carry a full trace
	TraceEnabled bool
	// Metrics receives evaluation counters; nil disables recording
	Metrics *metrics.Metrics
}

// DefaultConfig returns a default engine configuration
func DefaultConfig() Config {
	return Config{
		TraceEnabled: true,
	}
}

// New creates a new decision engine
func New(cfg Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		evaluator: NewPolicyEvaluator(logger),
		logger:    logger,
		metrics:   cfg.Metrics,
		config:    cfg,
	}
}

// trace accumulates the append-only evaluation record
type trace struct {
	enabled bool
	entries []types.TraceEntry
}

func (t *trace) add(phase, message string, details map[string]interface{}) {
	if !t.enabled {
		return
	}
	t.entries = append(t.entries, types.TraceEntry{
		Seq:       len(t.entries),
		Phase:     phase,
		Timestamp: time.Now().UTC(),
		Message:   message,
		Details:   details,
	})
}

// Evaluate runs the four-phase pipeline for one hypothetical sign-in:
// signal collection, policy matching, grant resolution over the
// enforced applicable policies, and session control aggregation over
// the same set. It never returns an error; matcher faults are trapped
// and recorded in the trace.
func (e *Engine) Evaluate(policies []*types.Policy, ctx *types.SimulationContext) *types.CAEngineResult {
	start := time.Now()
	tr := &trace{enabled: e.config.TraceEnabled}

	// Phase 1: signal collection
	tr.add("signals", "collected sign-in signals", map[string]interface{}{
		"userId":        ctx.UserID,
		"userType":      string(ctx.UserType),
		"appId":         ctx.AppID,
		"platform":      ctx.Device.Platform,
		"clientAppType": ctx.ClientAppType,
		"signInRisk":    ctx.SignInRiskLevel,
		"userRisk":      ctx.UserRiskLevel,
	})

	// Phase 2: policy matching
	result := &types.CAEngineResult{
		RequestID:          uuid.New().String(),
		AppliedPolicies:    []types.PolicyEvaluationResult{},
		ReportOnlyPolicies: []types.PolicyEvaluationResult{},
		SkippedPolicies:    []types.PolicyEvaluationResult{},
	}

	var enforced []*types.Policy
	for _, p := range policies {
		evaluation := e.evaluator.Evaluate(p, ctx)
		switch {
		case evaluation.Applies && p.IsEnforced():
			result.AppliedPolicies = append(result.AppliedPolicies, evaluation)
			enforced = append(enforced, p)
		case evaluation.Applies && p.State == types.StateReportOnly:
			result.ReportOnlyPolicies = append(result.ReportOnlyPolicies, evaluation)
		default:
			result.SkippedPolicies = append(result.SkippedPolicies, evaluation)
		}
	}
	tr.add("matching", "matched policies against context", map[string]interface{}{
		"applied":    len(result.AppliedPolicies),
		"reportOnly": len(result.ReportOnlyPolicies),
		"skipped":    len(result.SkippedPolicies),
	})

	// Phase 3: grant resolution over enforced applicable policies only
	result.Grant = ResolveGrants(enforced, ctx)
	result.Decision = result.Grant.Decision
	result.RequiredControls = result.Grant.RequiredControls
	result.SatisfiedControls = result.Grant.SatisfiedControls
	result.UnsatisfiedControls = result.Grant.UnsatisfiedControls
	tr.add("grant", "resolved grant controls", map[string]interface{}{
		"decision":    string(result.Decision),
		"required":    result.RequiredControls,
		"unsatisfied": result.UnsatisfiedControls,
	})

	// Phase 4: session aggregation over the same set
	result.SessionControls = AggregateSessionControls(enforced)
	tr.add("session", "aggregated session controls", map[string]interface{}{
		"signInFrequencyHours": result.SessionControls.SignInFrequencyHours,
		"persistentBrowser":    result.SessionControls.PersistentBrowserMode,
	})

	result.Trace = tr.entries

	if e.metrics != nil {
		e.metrics.RecordEvaluation(string(result.Decision), time.Since(start))
	}

	return result
}
