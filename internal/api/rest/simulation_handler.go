package rest

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ca-engine/go-core/internal/audit"
)

// evaluateHandler handles POST /v1/simulation/evaluate
func (s *Server) evaluateHandler(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Error("Failed to decode evaluate request", zap.Error(err))
		WriteError(w, http.StatusBadRequest, "Invalid request body", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	if req.Context == nil {
		WriteError(w, http.StatusBadRequest, "context is required", nil)
		return
	}
	if req.Context.UserID == "" {
		WriteError(w, http.StatusBadRequest, "context.userId is required", nil)
		return
	}

	policies := req.Policies
	if len(policies) == 0 {
		policies = s.policyStore.GetActive()
	}

	result := s.engine.Evaluate(policies, req.Context)
	if result.RequestID == "" {
		result.RequestID = uuid.New().String()
	}

	if err := s.auditLog.Write(audit.Event{
		ID:        result.RequestID,
		Timestamp: time.Now(),
		EventType: audit.EventEvaluation,
		UserID:    req.Context.UserID,
		Decision:  string(result.Decision),
		Data: map[string]interface{}{
			"appId":           req.Context.AppID,
			"appliedPolicies": len(result.AppliedPolicies),
		},
	}); err != nil {
		s.logger.Warn("Failed to write audit event", zap.Error(err))
	}

	WriteJSON(w, http.StatusOK, result)
}
