package policy

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ca-engine/go-core/pkg/types"
)

// MemoryStore implements an in-memory policy store
type MemoryStore struct {
	policies map[string]*types.Policy
	mu       sync.RWMutex
}

// NewMemoryStore creates a new in-memory policy store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		policies: make(map[string]*types.Policy),
	}
}

// Get retrieves a policy by ID
func (s *MemoryStore) Get(id string) (*types.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	policy, ok := s.policies[id]
	if !ok {
		return nil, fmt.Errorf("policy not found: %s", id)
	}
	return policy, nil
}

// GetAll retrieves all policies, ordered by ID for stable output
func (s *MemoryStore) GetAll() []*types.Policy {
	s.mu.RLock()
	defer s.mu.RUnlock()

	policies := make([]*types.Policy, 0, len(s.policies))
	for _, p := range s.policies {
		policies = append(policies, p)
	}
	sort.Slice(policies, func(i, j int) bool { return policies[i].ID < policies[j].ID })
	return policies
}

// GetActive retrieves enabled and report-only policies, ordered by ID
func (s *MemoryStore) GetActive() []*types.Policy {
	s.mu.RLock()
	defer s.mu.RUnlock()

	policies := make([]*types.Policy, 0, len(s.policies))
	for _, p := range s.policies {
		if p.State != types.StateDisabled {
			policies = append(policies, p)
		}
	}
	sort.Slice(policies, func(i, j int) bool { return policies[i].ID < policies[j].ID })
	return policies
}

// Add adds a policy to the store
func (s *MemoryStore) Add(policy *types.Policy) error {
	if policy == nil {
		return fmt.Errorf("policy is required")
	}
	if policy.ID == "" {
		return fmt.Errorf("policy id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.policies[policy.ID] = policy
	return nil
}

// Remove removes a policy from the store
func (s *MemoryStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.policies[id]; !ok {
		return fmt.Errorf("policy not found: %s", id)
	}
	delete(s.policies, id)
	return nil
}

// Replace atomically swaps the full policy set
func (s *MemoryStore) Replace(policies []*types.Policy) {
	next := make(map[string]*types.Policy, len(policies))
	for _, p := range policies {
		if p != nil && p.ID != "" {
			next[p.ID] = p
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.policies = next
}

// Clear removes all policies
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.policies = make(map[string]*types.Policy)
}

// Count returns the number of policies
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.policies)
}
