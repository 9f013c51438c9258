package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	platformstrings "gateway/pkg/platform/strings"
)

// Config captures the full gateway configuration from the environment so
// main stays lean. Secrets are read once at startup and treated as immutable
// afterwards.
type Config struct {
	Addr        string
	Environment string

	// GatewayJWTSecret signs the per-call service-identity tokens attached
	// to every downstream request.
	GatewayJWTSecret string

	// CookieSecret signs the client-side session cookie.
	CookieSecret string
	CookieMaxAge time.Duration

	AllowedOrigins []string
	MaxBodyBytes   int64

	RedisURL         string
	ElasticsearchURL string

	AuthBaseURL    string
	UsersBaseURL   string
	GigBaseURL     string
	MessageBaseURL string
	OrderBaseURL   string

	DownstreamTimeout time.Duration
}

// Development reports whether the process runs with development defaults.
func (c Config) Development() bool {
	return c.Environment == "development"
}

// FromEnv builds the gateway config from environment variables. Missing
// signing secrets are fatal outside development: a gateway that cannot sign
// service tokens must not start.
func FromEnv() (Config, error) {
	cfg := Config{
		Addr:              envOr("GATEWAY_ADDR", ":4000"),
		Environment:       envOr("GATEWAY_ENV", "development"),
		GatewayJWTSecret:  os.Getenv("GATEWAY_JWT_SECRET"),
		CookieSecret:      os.Getenv("GATEWAY_COOKIE_SECRET"),
		CookieMaxAge:      envDuration("GATEWAY_COOKIE_MAX_AGE", 7*24*time.Hour),
		MaxBodyBytes:      envInt64("GATEWAY_MAX_BODY_BYTES", 2<<20),
		RedisURL:          os.Getenv("GATEWAY_REDIS_URL"),
		ElasticsearchURL:  os.Getenv("ELASTIC_SEARCH_URL"),
		AuthBaseURL:       envOr("AUTH_BASE_URL", "http://localhost:4002"),
		UsersBaseURL:      envOr("USERS_BASE_URL", "http://localhost:4003"),
		GigBaseURL:        envOr("GIG_BASE_URL", "http://localhost:4004"),
		MessageBaseURL:    envOr("MESSAGE_BASE_URL", "http://localhost:4005"),
		OrderBaseURL:      envOr("ORDER_BASE_URL", "http://localhost:4006"),
		DownstreamTimeout: envDuration("GATEWAY_DOWNSTREAM_TIMEOUT", 10*time.Second),
	}

	if origins := os.Getenv("GATEWAY_ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = platformstrings.DedupeAndTrim(strings.Split(origins, ","))
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"http://localhost:3000"}
	}

	if cfg.Development() {
		if cfg.GatewayJWTSecret == "" {
			cfg.GatewayJWTSecret = "dev-gateway-secret"
		}
		if cfg.CookieSecret == "" {
			cfg.CookieSecret = "dev-cookie-secret"
		}
		return cfg, nil
	}

	if cfg.GatewayJWTSecret == "" {
		return Config{}, fmt.Errorf("GATEWAY_JWT_SECRET is required outside development")
	}
	if cfg.CookieSecret == "" {
		return Config{}, fmt.Errorf("GATEWAY_COOKIE_SECRET is required outside development")
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
