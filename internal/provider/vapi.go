package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultVapiBaseURL = "https://api.vapi.ai"
	defaultVapiTimeout = 10 * time.Second

	opCreateCall = "create_call"
	opGetCall    = "get_call"
)

// VapiConfig carries the provider-side identifiers selecting which assistant
// and originating number Vapi uses for outbound calls.
type VapiConfig struct {
	APIKey        string
	AssistantID   string
	PhoneNumberID string
	BaseURL       string
	Timeout       time.Duration
}

type createCallRequest struct {
	AssistantID   string          `json:"assistantId"`
	PhoneNumberID string          `json:"phoneNumberId"`
	Customer      customerPayload `json:"customer"`
	Monitor       monitorPlan     `json:"monitor"`
}

type customerPayload struct {
	Number string `json:"number"`
}

type monitorPlan struct {
	Listen bool `json:"listen"`
}

type callPayload struct {
	ID      string          `json:"id"`
	Status  string          `json:"status"`
	Monitor *monitorPayload `json:"monitor"`
}

type monitorPayload struct {
	ListenURL  string `json:"listenUrl"`
	ControlURL string `json:"controlUrl"`
}

// VapiProvider talks to the Vapi telephony API over its REST surface.
type VapiProvider struct {
	client        *resty.Client
	assistantID   string
	phoneNumberID string
}

func NewVapiProvider(cfg VapiConfig) (*VapiProvider, error) {
	client := resty.New()
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	} else {
		client.SetTimeout(defaultVapiTimeout)
	}
	client.SetRetryCount(0)

	return NewVapiProviderWithClient(cfg, client)
}

func NewVapiProviderWithClient(cfg VapiConfig, client *resty.Client) (*VapiProvider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("vapi api key is required")
	}
	if strings.TrimSpace(cfg.AssistantID) == "" {
		return nil, fmt.Errorf("vapi assistant id is required")
	}
	if strings.TrimSpace(cfg.PhoneNumberID) == "" {
		return nil, fmt.Errorf("vapi phone number id is required")
	}
	if client == nil {
		return nil, fmt.Errorf("resty client is required")
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultVapiBaseURL
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid vapi base url: %w", err)
	}

	if client.GetClient().Timeout == 0 {
		client.SetTimeout(defaultVapiTimeout)
	}
	client.SetRetryCount(0)
	client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	client.SetAuthToken(cfg.APIKey)

	return &VapiProvider{
		client:        client,
		assistantID:   cfg.AssistantID,
		phoneNumberID: cfg.PhoneNumberID,
	}, nil
}

func (p *VapiProvider) CreateCall(ctx context.Context, number string) (*CallResult, error) {
	if p == nil || p.client == nil {
		return nil, fmt.Errorf("vapi provider is not initialized")
	}
	if strings.TrimSpace(number) == "" {
		return nil, fmt.Errorf("destination number is required")
	}

	reqBody := createCallRequest{
		AssistantID:   p.assistantID,
		PhoneNumberID: p.phoneNumberID,
		Customer:      customerPayload{Number: number},
		Monitor:       monitorPlan{Listen: true},
	}

	response, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		Post("/call")
	if err != nil {
		return nil, &ProviderError{
			Operation: opCreateCall,
			Message:   "request failed",
			Transient: !errors.Is(err, context.Canceled),
			Cause:     err,
		}
	}

	return parseCallResponse(opCreateCall, response)
}

func (p *VapiProvider) GetCall(ctx context.Context, callID string) (*CallResult, error) {
	if p == nil || p.client == nil {
		return nil, fmt.Errorf("vapi provider is not initialized")
	}
	if strings.TrimSpace(callID) == "" {
		return nil, fmt.Errorf("call id is required")
	}

	response, err := p.client.R().
		SetContext(ctx).
		SetPathParam("callId", callID).
		Get("/call/{callId}")
	if err != nil {
		return nil, &ProviderError{
			Operation: opGetCall,
			Message:   "request failed",
			Transient: !errors.Is(err, context.Canceled),
			Cause:     err,
		}
	}

	return parseCallResponse(opGetCall, response)
}

func parseCallResponse(operation string, response *resty.Response) (*CallResult, error) {
	if response == nil {
		return nil, &ProviderError{
			Operation: operation,
			Message:   "empty response",
			Transient: true,
		}
	}

	statusCode := response.StatusCode()
	responseBody := strings.TrimSpace(response.String())

	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		return nil, &ProviderError{
			Operation:  operation,
			StatusCode: statusCode,
			Message:    vapiErrorMessage(statusCode, responseBody),
			Transient:  isTransientHTTPStatus(statusCode),
		}
	}

	var payload callPayload
	if err := json.Unmarshal(response.Body(), &payload); err != nil {
		return nil, &ProviderError{
			Operation:  operation,
			StatusCode: statusCode,
			Message:    "malformed response body",
			Cause:      err,
		}
	}

	result := &CallResult{
		ID:     payload.ID,
		Status: payload.Status,
	}
	if payload.Monitor != nil {
		result.Monitor = &Monitor{
			ListenURL:  payload.Monitor.ListenURL,
			ControlURL: payload.Monitor.ControlURL,
		}
	}

	return result, nil
}

func isTransientHTTPStatus(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || (statusCode >= http.StatusInternalServerError && statusCode <= 599)
}

func vapiErrorMessage(statusCode int, body string) string {
	base := fmt.Sprintf("vapi returned status %d", statusCode)
	if body == "" {
		return base
	}

	// Vapi wraps failures in {"message": "..."}; surface just the message
	// when the body parses, the raw body otherwise.
	var parsed struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal([]byte(body), &parsed); err == nil && len(parsed.Message) > 0 {
		var msg string
		if err := json.Unmarshal(parsed.Message, &msg); err == nil && msg != "" {
			return fmt.Sprintf("%s: %s", base, msg)
		}
		return fmt.Sprintf("%s: %s", base, string(parsed.Message))
	}

	return fmt.Sprintf("%s: %s", base, body)
}
