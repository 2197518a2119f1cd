// Package audit records simulation activity as JSON lines for later
// review. Evaluations and sweeps are appended with their outcome so an
// administrator can reconstruct what was simulated and when.
package audit

import (
	"time"
)

// EventType classifies an audit record
type EventType string

const (
	EventEvaluation    EventType = "simulation.evaluate"
	EventSweep         EventType = "analysis.sweep"
	EventPolicyChange  EventType = "policy.change"
	EventSystemStartup EventType = "system.startup"
	EventSystemStop    EventType = "system.shutdown"
)

// Event is a single audit record
type Event struct {
	ID        string                 `json:"id"`
	Timestamp time.Time              `json:"timestamp"`
	EventType EventType              `json:"eventType"`
	UserID    string                 `json:"userId,omitempty"`
	Decision  string                 `json:"decision,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// Writer persists audit events
type Writer interface {
	Write(event Event) error
	Close() error
}
