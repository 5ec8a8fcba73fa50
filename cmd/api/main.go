package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/kursadbilgin/call-gateway/internal/config"
	"github.com/kursadbilgin/call-gateway/internal/handler"
	infraredis "github.com/kursadbilgin/call-gateway/internal/infra/redis"
	"github.com/kursadbilgin/call-gateway/internal/observability"
	"github.com/kursadbilgin/call-gateway/internal/provider"
	"github.com/kursadbilgin/call-gateway/internal/ratelimit"
	"github.com/kursadbilgin/call-gateway/internal/service"
	"github.com/kursadbilgin/call-gateway/internal/transport"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal("failed to initialize logger: ", err)
	}
	defer logger.Sync() //nolint:errcheck

	vapiProvider, err := provider.NewVapiProvider(provider.VapiConfig{
		APIKey:        cfg.VapiAPIKey,
		AssistantID:   cfg.VapiAssistantID,
		PhoneNumberID: cfg.VapiPhoneNumberID,
		BaseURL:       cfg.VapiBaseURL,
		Timeout:       time.Duration(cfg.VapiTimeoutSec) * time.Second,
	})
	if err != nil {
		logger.Fatal("vapi provider initialization failed", zap.Error(err))
	}

	var limiter ratelimit.RateLimiter
	if cfg.RedisURL != "" {
		rdb, err := infraredis.NewRedis(cfg.RedisURL)
		if err != nil {
			logger.Fatal("redis initialization failed", zap.Error(err))
		}
		defer rdb.Close()

		redisLimiter, err := infraredis.NewRedisRateLimiter(rdb, cfg.RateLimitPerSec)
		if err != nil {
			logger.Fatal("rate limiter initialization failed", zap.Error(err))
		}
		limiter = redisLimiter
	} else {
		logger.Warn("REDIS_URL not set, call rate limiting disabled")
	}

	metrics := observability.NewMetrics()

	callService, err := service.NewCallService(vapiProvider, limiter, metrics, logger)
	if err != nil {
		logger.Fatal("call service initialization failed", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: transport.ErrorHandler(logger),
	})
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(cors.New())
	app.Use(metrics.HTTPMiddleware())

	handler.RegisterHealthRoutes(app)
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	if err := handler.RegisterCallRoutes(app, callService); err != nil {
		logger.Fatal("route registration failed", zap.Error(err))
	}

	logger.Info("call-gateway api started", zap.Int("port", cfg.APIPort))
	if err := app.Listen(fmt.Sprintf(":%d", cfg.APIPort)); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
