package config

import (
	"fmt"

	"github.com/Netflix/go-env"
)

type Config struct {
	VapiAPIKey        string `env:"VAPI_API_KEY,required=true"`
	VapiAssistantID   string `env:"VAPI_ASSISTANT_ID,required=true"`
	VapiPhoneNumberID string `env:"VAPI_PHONE_NUMBER_ID,required=true"`
	VapiBaseURL       string `env:"VAPI_BASE_URL,default=https://api.vapi.ai"`
	VapiTimeoutSec    int    `env:"VAPI_TIMEOUT_SECONDS,default=10"`
	RedisURL          string `env:"REDIS_URL"`
	RateLimitPerSec   int    `env:"RATE_LIMIT_PER_SEC,default=5"`
	APIPort           int    `env:"API_PORT,default=8080"`
	LogLevel          string `env:"LOG_LEVEL,default=info"`
}

func Load() (*Config, error) {
	var cfg Config
	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
