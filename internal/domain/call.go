package domain

import (
	"fmt"
	"strings"
	"time"
)

// Call statuses owned by the gateway. Provider-side statuses (queued,
// ringing, in-progress, ended, ...) pass through untouched.
const (
	StatusCreated = "created"
	StatusUnknown = "unknown"
)

// CallRequest is a single inbound request to place an outbound call.
// It lives for exactly one request/response cycle and is never persisted.
type CallRequest struct {
	Number string
}

// Normalize trims surrounding whitespace from the destination number.
func (r *CallRequest) Normalize() {
	r.Number = strings.TrimSpace(r.Number)
}

// Validate checks the destination number. The number must be non-empty and
// carry an E.164-style country-code prefix; anything else is rejected before
// the provider is contacted.
func (r *CallRequest) Validate() error {
	if r.Number == "" {
		return fmt.Errorf("%w: missing 'number' in request", ErrValidation)
	}
	if !strings.HasPrefix(r.Number, "+") {
		return fmt.Errorf("%w: number must include a country code prefix (e.g. +1)", ErrValidation)
	}
	return nil
}

// Call is the normalized result of a successful call creation.
type Call struct {
	ID        string
	ListenURL string
	Status    string
	CreatedAt time.Time
}

// CallStatus is a read-only projection of a provider-side call state.
type CallStatus struct {
	CallID string
	Status string
}
