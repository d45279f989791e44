// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into an audit trail.
package queue

// FacilityUpdatedEvent is published after a facility patch has been applied
// to both the backing table and the in-memory mirror. It carries the names
// of the columns that changed but not their values: several columns hold
// Aadhaar numbers and the broker is not a place for PII.
type FacilityUpdatedEvent struct {
	Code      string   `json:"code"`
	Columns   []string `json:"columns"`
	UpdatedBy string   `json:"updated_by"`
	UpdatedAt string   `json:"updated_at"`
}
