package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kursadbilgin/call-gateway/internal/domain"
	"github.com/kursadbilgin/call-gateway/internal/observability"
	"github.com/kursadbilgin/call-gateway/internal/provider"
	"github.com/kursadbilgin/call-gateway/internal/ratelimit"
	"go.uber.org/zap"
)

const (
	failureReasonInvalidRequest  = "invalid_request"
	failureReasonRateLimited     = "rate_limited"
	failureReasonProviderError   = "provider_error"
	failureReasonInvalidResponse = "provider_response_invalid"
	failureReasonLookupError     = "lookup_error"
)

// CallService is the request gateway: it validates destination numbers,
// delegates call creation and lookup to the telephony provider, and maps
// provider results into normalized domain values.
type CallService struct {
	provider provider.Provider
	limiter  ratelimit.RateLimiter
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewCallService builds the gateway. limiter and metrics may be nil; the
// provider is required.
func NewCallService(
	p provider.Provider,
	limiter ratelimit.RateLimiter,
	metrics *observability.Metrics,
	logger *zap.Logger,
) (*CallService, error) {
	if p == nil {
		return nil, fmt.Errorf("telephony provider is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CallService{
		provider: p,
		limiter:  limiter,
		metrics:  metrics,
		logger:   logger,
	}, nil
}

// CreateCall places an outbound call to the given destination number with
// monitoring enabled. A success always carries a non-empty call id and listen
// URL; a provider result missing either is a failure, never forwarded as-is.
func (s *CallService) CreateCall(ctx context.Context, number string) (*domain.Call, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	log := observability.WithContextLogger(s.logger, ctx)

	req := domain.CallRequest{Number: number}
	req.Normalize()
	if err := req.Validate(); err != nil {
		log.Error("call request rejected", zap.Error(err))
		s.metrics.IncCallFailed(failureReasonInvalidRequest)
		return nil, err
	}

	if err := s.checkRateLimit(ctx, log, req.Number); err != nil {
		return nil, err
	}

	log.Info("placing outbound call", zap.String("number", req.Number))

	start := time.Now()
	result, err := s.provider.CreateCall(ctx, req.Number)
	s.metrics.ObserveProviderRequestDuration("create", time.Since(start))
	if err != nil {
		log.Error("call creation failed",
			zap.String("number", req.Number),
			zap.Bool("transient", provider.IsTransient(err)),
			zap.Error(err),
		)
		s.metrics.IncCallFailed(failureReasonProviderError)
		return nil, fmt.Errorf("%w: %w", domain.ErrProviderCall, err)
	}

	if result == nil || result.ID == "" || result.Monitor == nil || result.Monitor.ListenURL == "" {
		log.Error("provider returned incomplete call result",
			zap.String("number", req.Number),
			zap.Bool("hasMonitor", result != nil && result.Monitor != nil),
		)
		s.metrics.IncCallFailed(failureReasonInvalidResponse)
		return nil, fmt.Errorf("%w: missing call id or listen url", domain.ErrProviderResponse)
	}

	call := &domain.Call{
		ID:        result.ID,
		ListenURL: result.Monitor.ListenURL,
		Status:    domain.StatusCreated,
		CreatedAt: time.Now().UTC(),
	}

	log.Info("outbound call created",
		zap.String("callId", call.ID),
		zap.String("providerStatus", result.Status),
	)
	s.metrics.IncCallCreated()

	return call, nil
}

// GetCallStatus looks up the provider-side state of a call. A lookup that
// returns nothing is reported as status "unknown", not an error.
func (s *CallService) GetCallStatus(ctx context.Context, callID string) (*domain.CallStatus, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	log := observability.WithContextLogger(s.logger, ctx)

	id := strings.TrimSpace(callID)
	if id == "" {
		return nil, fmt.Errorf("%w: call id is required", domain.ErrValidation)
	}

	start := time.Now()
	result, err := s.provider.GetCall(ctx, id)
	s.metrics.ObserveProviderRequestDuration("get", time.Since(start))
	if err != nil {
		log.Error("call status lookup failed", zap.String("callId", id), zap.Error(err))
		s.metrics.IncCallFailed(failureReasonLookupError)
		return nil, fmt.Errorf("%w: %w", domain.ErrProviderLookup, err)
	}

	status := domain.StatusUnknown
	if result != nil && strings.TrimSpace(result.Status) != "" {
		status = result.Status
	}

	return &domain.CallStatus{CallID: id, Status: status}, nil
}

// checkRateLimit fails open: a broken limiter must not block call traffic.
func (s *CallService) checkRateLimit(ctx context.Context, log *zap.Logger, number string) error {
	if s.limiter == nil {
		return nil
	}

	allowed, err := s.limiter.Allow(ctx, number)
	if err != nil {
		log.Warn("rate limiter unavailable, allowing call",
			zap.String("number", number),
			zap.Error(err),
		)
		return nil
	}
	if !allowed {
		log.Error("call rejected by rate limit", zap.String("number", number))
		s.metrics.IncCallFailed(failureReasonRateLimited)
		return fmt.Errorf("%w: too many call attempts for this destination", domain.ErrRateLimited)
	}

	return nil
}
