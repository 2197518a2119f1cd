// Package policy provides policy storage, loading, validation, and
// hot-reload for the simulation engine's serving surface. The engine
// itself takes policies as plain slices and never touches the store.
package policy

import (
	"github.com/ca-engine/go-core/pkg/types"
)

// Store defines the policy storage interface
type Store interface {
	// Get retrieves a policy by ID
	Get(id string) (*types.Policy, error)

	// GetAll retrieves all policies
	GetAll() []*types.Policy

	// GetActive retrieves policies that take part in evaluation:
	// enabled and report-only, excluding disabled
	GetActive() []*types.Policy

	// Add adds a policy to the store
	Add(policy *types.Policy) error

	// Remove removes a policy from the store
	Remove(id string) error

	// Replace atomically swaps the full policy set
	Replace(policies []*types.Policy)

	// Clear removes all policies
	Clear()

	// Count returns the number of policies
	Count() int
}

// EventType represents the type of policy change event
type EventType int

const (
	EventAdded EventType = iota
	EventModified
	EventDeleted
	EventReloaded
)

// Event represents a policy change event
type Event struct {
	Type   EventType
	Policy *types.Policy
}
