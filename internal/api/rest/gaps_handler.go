package rest

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ca-engine/go-core/internal/audit"
	"github.com/ca-engine/go-core/internal/gaps"
)

// analyzeGapsHandler handles POST /v1/analysis/gaps
func (s *Server) analyzeGapsHandler(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeGapsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Error("Failed to decode gap analysis request", zap.Error(err))
		WriteError(w, http.StatusBadRequest, "Invalid request body", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	switch req.Options.PersonaSource {
	case gaps.SourceSelectedUser, gaps.SourceMappedUsers:
		if len(req.Options.Personas) == 0 {
			WriteError(w, http.StatusBadRequest, "options.personas is required for the selected persona source", nil)
			return
		}
	}

	policies := req.Policies
	if len(policies) == 0 {
		policies = s.policyStore.GetActive()
	}
	if req.Options.Workers == 0 {
		req.Options.Workers = s.config.SweepWorkers
	}

	results := s.analyzer.AnalyzeGaps(policies, req.Options)
	groups := gaps.GroupGaps(results)

	personas := len(req.Options.Personas)
	if personas == 0 {
		personas = len(gaps.GenericPersonas())
	}

	runID := uuid.New().String()
	if err := s.auditLog.Write(audit.Event{
		ID:        runID,
		Timestamp: time.Now(),
		EventType: audit.EventSweep,
		Data: map[string]interface{}{
			"personaSource": string(req.Options.PersonaSource),
			"findings":      len(results),
			"groups":        len(groups),
		},
	}); err != nil {
		s.logger.Warn("Failed to write audit event", zap.Error(err))
	}

	WriteJSON(w, http.StatusOK, AnalyzeGapsResponse{
		RunID:     runID,
		Scenarios: personas * req.Options.ScenariosPerPersona(),
		Results:   results,
		Groups:    groups,
	})
}

// disagreementHandler handles POST /v1/analysis/disagreement
func (s *Server) disagreementHandler(w http.ResponseWriter, r *http.Request) {
	var req DisagreementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Error("Failed to decode disagreement request", zap.Error(err))
		WriteError(w, http.StatusBadRequest, "Invalid request body", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	if len(req.RealPersonas) == 0 {
		WriteError(w, http.StatusBadRequest, "realPersonas is required", nil)
		return
	}

	policies := req.Policies
	if len(policies) == 0 {
		policies = s.policyStore.GetActive()
	}

	summary := s.analyzer.CompareBaseline(policies, req.RealPersonas, req.Options)
	WriteJSON(w, http.StatusOK, summary)
}
