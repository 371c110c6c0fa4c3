package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort           = "8080"
	defaultJWTTTL         = "24h"
	defaultCommissionRate = "0.12"
	defaultReferralReward = "100"
	defaultRateLimit      = "120"
	defaultRateWindow     = "1m"
	defaultMPBaseURL      = "https://api.mercadopago.com"
)

type Config struct {
	Port        string
	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	MPAccessToken string
	MPBaseURL     string
	MPSuccessURL  string
	MPFailureURL  string
	MPPendingURL  string
	MPWebhookURL  string

	CommissionRate float64
	ReferralReward float64

	// optional; the limiter and chat presence fall back to memory when
	// empty
	RedisAddr     string
	RedisPassword string

	RateLimit  int64
	RateWindow time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:          getenv("PORT", defaultPort),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:     strings.TrimSpace(os.Getenv("JWT_SECRET")),
		MPAccessToken: strings.TrimSpace(os.Getenv("MP_ACCESS_TOKEN")),
		MPBaseURL:     getenv("MP_BASE_URL", defaultMPBaseURL),
		MPSuccessURL:  strings.TrimSpace(os.Getenv("MP_SUCCESS_URL")),
		MPFailureURL:  strings.TrimSpace(os.Getenv("MP_FAILURE_URL")),
		MPPendingURL:  strings.TrimSpace(os.Getenv("MP_PENDING_URL")),
		MPWebhookURL:  strings.TrimSpace(os.Getenv("MP_WEBHOOK_URL")),
		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}

	var err error
	if cfg.JWTTTL, err = time.ParseDuration(getenv("JWT_TTL", defaultJWTTTL)); err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	if cfg.CommissionRate, err = strconv.ParseFloat(getenv("COMMISSION_RATE", defaultCommissionRate), 64); err != nil {
		return nil, fmt.Errorf("invalid COMMISSION_RATE: %w", err)
	}
	if cfg.CommissionRate < 0 || cfg.CommissionRate >= 1 {
		return nil, fmt.Errorf("COMMISSION_RATE must be in [0, 1)")
	}
	if cfg.ReferralReward, err = strconv.ParseFloat(getenv("REFERRAL_REWARD", defaultReferralReward), 64); err != nil {
		return nil, fmt.Errorf("invalid REFERRAL_REWARD: %w", err)
	}
	if cfg.RateLimit, err = strconv.ParseInt(getenv("RATE_LIMIT", defaultRateLimit), 10, 64); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT: %w", err)
	}
	if cfg.RateWindow, err = time.ParseDuration(getenv("RATE_WINDOW", defaultRateWindow)); err != nil {
		return nil, fmt.Errorf("invalid RATE_WINDOW: %w", err)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
