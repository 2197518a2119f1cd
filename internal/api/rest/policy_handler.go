package rest

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/ca-engine/go-core/pkg/types"
)

// listPoliciesHandler handles GET /v1/policies
func (s *Server) listPoliciesHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"policies": s.policyStore.GetAll(),
		"count":    s.policyStore.Count(),
	})
}

// getPolicyHandler handles GET /v1/policies/{id}
func (s *Server) getPolicyHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	policy, err := s.policyStore.Get(id)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Policy not found", map[string]interface{}{
			"id": id,
		})
		return
	}

	WriteJSON(w, http.StatusOK, policy)
}

// createPolicyHandler handles POST /v1/policies
func (s *Server) createPolicyHandler(w http.ResponseWriter, r *http.Request) {
	var policy types.Policy
	if err := json.NewDecoder(r.Body).Decode(&policy); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	if issues := s.validator.Validate(&policy); len(issues) > 0 {
		WriteError(w, http.StatusBadRequest, "Policy validation failed", map[string]interface{}{
			"issues": issues,
		})
		return
	}

	if _, err := s.policyStore.Get(policy.ID); err == nil {
		WriteError(w, http.StatusConflict, "Policy already exists", map[string]interface{}{
			"id": policy.ID,
		})
		return
	}

	if err := s.policyStore.Add(&policy); err != nil {
		s.logger.Error("Failed to add policy", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "Failed to add policy", nil)
		return
	}

	WriteJSON(w, http.StatusCreated, policy)
}

// updatePolicyHandler handles PUT /v1/policies/{id}
func (s *Server) updatePolicyHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var policy types.Policy
	if err := json.NewDecoder(r.Body).Decode(&policy); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	if policy.ID == "" {
		policy.ID = id
	}
	if policy.ID != id {
		WriteError(w, http.StatusBadRequest, "Policy id does not match URL", nil)
		return
	}

	if issues := s.validator.Validate(&policy); len(issues) > 0 {
		WriteError(w, http.StatusBadRequest, "Policy validation failed", map[string]interface{}{
			"issues": issues,
		})
		return
	}

	if _, err := s.policyStore.Get(id); err != nil {
		WriteError(w, http.StatusNotFound, "Policy not found", map[string]interface{}{
			"id": id,
		})
		return
	}

	if err := s.policyStore.Add(&policy); err != nil {
		s.logger.Error("Failed to update policy", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "Failed to update policy", nil)
		return
	}

	WriteJSON(w, http.StatusOK, policy)
}

// deletePolicyHandler handles DELETE /v1/policies/{id}
func (s *Server) deletePolicyHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := s.policyStore.Remove(id); err != nil {
		WriteError(w, http.StatusNotFound, "Policy not found", map[string]interface{}{
			"id": id,
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
