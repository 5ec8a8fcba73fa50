package config

import (
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("VAPI_API_KEY", "test-api-key")
	t.Setenv("VAPI_ASSISTANT_ID", "assistant-123")
	t.Setenv("VAPI_PHONE_NUMBER_ID", "phone-456")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIPort != 8080 {
		t.Errorf("APIPort = %d, want 8080", cfg.APIPort)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %s, want info", cfg.LogLevel)
	}
	if cfg.VapiBaseURL != "https://api.vapi.ai" {
		t.Errorf("VapiBaseURL = %s, want https://api.vapi.ai", cfg.VapiBaseURL)
	}
	if cfg.VapiTimeoutSec != 10 {
		t.Errorf("VapiTimeoutSec = %d, want 10", cfg.VapiTimeoutSec)
	}
	if cfg.RateLimitPerSec != 5 {
		t.Errorf("RateLimitPerSec = %d, want 5", cfg.RateLimitPerSec)
	}
	if cfg.RedisURL != "" {
		t.Errorf("RedisURL = %s, want empty", cfg.RedisURL)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("API_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("VAPI_BASE_URL", "https://vapi.staging.example.com")
	t.Setenv("VAPI_TIMEOUT_SECONDS", "30")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("RATE_LIMIT_PER_SEC", "50")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIPort != 9090 {
		t.Errorf("APIPort = %d, want 9090", cfg.APIPort)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", cfg.LogLevel)
	}
	if cfg.VapiBaseURL != "https://vapi.staging.example.com" {
		t.Errorf("VapiBaseURL = %s, want staging url", cfg.VapiBaseURL)
	}
	if cfg.VapiTimeoutSec != 30 {
		t.Errorf("VapiTimeoutSec = %d, want 30", cfg.VapiTimeoutSec)
	}
	if cfg.RedisURL != "redis://localhost:6379/0" {
		t.Errorf("RedisURL = %s, want redis://localhost:6379/0", cfg.RedisURL)
	}
	if cfg.RateLimitPerSec != 50 {
		t.Errorf("RateLimitPerSec = %d, want 50", cfg.RateLimitPerSec)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("VAPI_API_KEY", "test-api-key")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing required env vars, got nil")
	}
}

func TestLoad_RequiredFields(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.VapiAPIKey == "" {
		t.Error("VapiAPIKey should not be empty")
	}
	if cfg.VapiAssistantID == "" {
		t.Error("VapiAssistantID should not be empty")
	}
	if cfg.VapiPhoneNumberID == "" {
		t.Error("VapiPhoneNumberID should not be empty")
	}
}
