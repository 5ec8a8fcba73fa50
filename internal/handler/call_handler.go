package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/kursadbilgin/call-gateway/internal/domain"
	"github.com/kursadbilgin/call-gateway/internal/observability"
	"github.com/kursadbilgin/call-gateway/internal/provider"
)

type CallService interface {
	CreateCall(ctx context.Context, number string) (*domain.Call, error)
	GetCallStatus(ctx context.Context, callID string) (*domain.CallStatus, error)
}

type CallHandler struct {
	service CallService
}

func NewCallHandler(service CallService) (*CallHandler, error) {
	if service == nil {
		return nil, fmt.Errorf("call service is required")
	}
	return &CallHandler{service: service}, nil
}

func RegisterCallRoutes(router fiber.Router, service CallService) error {
	h, err := NewCallHandler(service)
	if err != nil {
		return err
	}

	api := router.Group("/api")
	api.Post("/vapi_call", h.CreateCall)
	api.Get("/call_status/:callId", h.GetCallStatus)

	return nil
}

type createCallRequest struct {
	Number string `json:"number"`
}

type createCallResponse struct {
	CallID    string `json:"callId"`
	ListenURL string `json:"listenUrl"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type callStatusResponse struct {
	CallID string `json:"callId"`
	Status string `json:"status"`
}

type errorResponse struct {
	Error     string `json:"error"`
	Details   string `json:"details,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

func (h *CallHandler) CreateCall(c *fiber.Ctx) error {
	var req createCallRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{
			Error:     "invalid request body",
			Timestamp: utcTimestamp(),
		})
	}

	ctx := observability.WithRequestID(c.Context(), requestID(c))
	call, err := h.service.CreateCall(ctx, req.Number)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(createCallResponse{
		CallID:    call.ID,
		ListenURL: call.ListenURL,
		Status:    call.Status,
		Timestamp: call.CreatedAt.Format(time.RFC3339),
	})
}

func (h *CallHandler) GetCallStatus(c *fiber.Ctx) error {
	callID := strings.TrimSpace(c.Params("callId"))

	ctx := observability.WithRequestID(c.Context(), requestID(c))
	status, err := h.service.GetCallStatus(ctx, callID)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(callStatusResponse{
		CallID: status.CallID,
		Status: status.Status,
	})
}

// writeError maps gateway failures to the normalized JSON error envelope.
// Provider-originated failures keep the provider's error text in details.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{
			Error:     messageWithoutSentinel(err, domain.ErrValidation),
			Timestamp: utcTimestamp(),
		})
	case errors.Is(err, domain.ErrRateLimited):
		return c.Status(fiber.StatusTooManyRequests).JSON(errorResponse{
			Error:     messageWithoutSentinel(err, domain.ErrRateLimited),
			Timestamp: utcTimestamp(),
		})
	case errors.Is(err, domain.ErrProviderResponse):
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{
			Error:     "provider returned incomplete call data",
			Details:   messageWithoutSentinel(err, domain.ErrProviderResponse),
			Timestamp: utcTimestamp(),
		})
	case errors.Is(err, domain.ErrProviderCall):
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{
			Error:     "call creation failed",
			Details:   providerDetails(err, domain.ErrProviderCall),
			Timestamp: utcTimestamp(),
		})
	case errors.Is(err, domain.ErrProviderLookup):
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{
			Error: fmt.Sprintf("call status lookup failed: %s", providerDetails(err, domain.ErrProviderLookup)),
		})
	default:
		return err
	}
}

func providerDetails(err error, sentinel error) string {
	var providerErr *provider.ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Error()
	}
	return messageWithoutSentinel(err, sentinel)
}

func messageWithoutSentinel(err error, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if strings.HasPrefix(msg, prefix) {
		return strings.TrimPrefix(msg, prefix)
	}
	return msg
}

func requestID(c *fiber.Ctx) string {
	if value := strings.TrimSpace(c.Get(fiber.HeaderXRequestID)); value != "" {
		return value
	}
	if value, ok := c.Locals("requestid").(string); ok {
		return strings.TrimSpace(value)
	}
	return ""
}

func utcTimestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
