package provider

import "context"

// Provider is the outbound telephony port. Implementations place and look up
// calls on the external voice-AI service.
type Provider interface {
	CreateCall(ctx context.Context, number string) (*CallResult, error)
	GetCall(ctx context.Context, callID string) (*CallResult, error)
}

// CallResult is the provider-side view of a call. Monitor is nil when the
// provider did not return monitoring data; callers must check presence
// explicitly instead of trusting the payload.
type CallResult struct {
	ID      string
	Status  string
	Monitor *Monitor
}

// Monitor carries the real-time monitoring endpoints issued by the provider.
type Monitor struct {
	ListenURL  string
	ControlURL string
}
