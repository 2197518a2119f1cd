package rest

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ca-engine/go-core/internal/gaps"
	"github.com/ca-engine/go-core/pkg/types"
)

// EvaluateRequest is the body of POST /v1/simulation/evaluate. When
// Policies is empty the stored active policies are evaluated.
type EvaluateRequest struct {
	Context  *types.SimulationContext `json:"context"`
	Policies []*types.Policy          `json:"policies,omitempty"`
}

// AnalyzeGapsRequest is the body of POST /v1/analysis/gaps
type AnalyzeGapsRequest struct {
	Options  gaps.Options    `json:"options"`
	Policies []*types.Policy `json:"policies,omitempty"`
}

// AnalyzeGapsResponse carries raw findings and their grouped form
type AnalyzeGapsResponse struct {
	RunID     string            `json:"runId"`
	Scenarios int               `json:"scenarios"`
	Results   []types.GapResult `json:"results"`
	Groups    []types.GapGroup  `json:"groups"`
}

// DisagreementRequest is the body of POST /v1/analysis/disagreement
type DisagreementRequest struct {
	Options      gaps.Options    `json:"options"`
	RealPersonas []gaps.Persona  `json:"realPersonas"`
	Policies     []*types.Policy `json:"policies,omitempty"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]interface{} `json:"checks"`
}

// StatusResponse is the body of GET /v1/status
type StatusResponse struct {
	Version     string `json:"version"`
	UptimeSecs  int64  `json:"uptimeSecs"`
	PolicyCount int    `json:"policyCount"`
}

// ErrorResponse is the uniform error body
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes a JSON error response
func WriteError(w http.ResponseWriter, statusCode int, message string, details map[string]interface{}) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message, Details: details})
}
