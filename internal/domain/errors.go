package domain

import "errors"

// Sentinel errors classifying gateway failures. Handlers map these to HTTP
// status codes; everything provider-originated stays wrapped underneath so
// the original error text survives for the response details.
var (
	ErrValidation       = errors.New("validation error")
	ErrRateLimited      = errors.New("rate limited")
	ErrProviderCall     = errors.New("provider call failed")
	ErrProviderResponse = errors.New("provider returned unusable response")
	ErrProviderLookup   = errors.New("provider lookup failed")
)
