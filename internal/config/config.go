package config

import (
	"crypto/rsa"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Config struct {
	Port           string
	OrganizationID string

	ProviderAPIURL       string
	ProviderAPIKey       string
	ProviderTokenURL     string
	ProviderClientID     string
	ProviderClientSecret string
	ProviderTimeout      time.Duration

	JWTPublicKey *rsa.PublicKey

	RedisAddr      string
	RedisPassword  string
	IdempotencyTTL time.Duration

	RateLimitPerSecond int
	RateLimitBurst     int
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8004"),
		OrganizationID: os.Getenv("ORGANIZATION_ID"),

		ProviderAPIURL:       getEnv("PROVIDER_API_URL", "https://api.identity.example.com/v1"),
		ProviderAPIKey:       os.Getenv("PROVIDER_API_KEY"),
		ProviderTokenURL:     os.Getenv("PROVIDER_TOKEN_URL"),
		ProviderClientID:     os.Getenv("PROVIDER_CLIENT_ID"),
		ProviderClientSecret: os.Getenv("PROVIDER_CLIENT_SECRET"),
		ProviderTimeout:      10 * time.Second,

		RedisAddr:      getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		IdempotencyTTL: 24 * time.Hour,

		RateLimitPerSecond: getEnvInt("RATE_LIMIT_PER_SECOND", 20),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 40),
	}

	// Load JWT public key (verification only; the session issuer signs)
	publicKeyPath := getEnv("JWT_PUBLIC_KEY_PATH", "./keys/jwt_public.pem")

	publicKeyData, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, err
	}

	cfg.JWTPublicKey, err = jwt.ParseRSAPublicKeyFromPEM(publicKeyData)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
