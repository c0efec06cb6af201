// Package config centralizes environment configuration so main stays lean.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the full process configuration.
type Config struct {
	Server  Server
	Ledger  Ledger
	Auth    Auth
	Redis   Redis
	Issuers Issuers
	Audit   Audit
	Limits  Limits

	// TracingEndpoint is an OTLP gRPC collector address; empty disables
	// tracing.
	TracingEndpoint string
	TracingInsecure bool
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr string
}

// Ledger locates the external ledger gateway. An empty Endpoint means no
// ledger is configured and the registry serves from the snapshot.
type Ledger struct {
	Endpoint       string
	Contract       string
	ConfirmTimeout time.Duration
}

// Auth configures the owner-gated admin surface.
type Auth struct {
	// OwnerRef is the registry owner identity stamped into owner tokens.
	OwnerRef      string
	JWTSigningKey string
	// AdminKeyHash is the bcrypt hash of the key accepted at /admin/login.
	AdminKeyHash string
	// RequireIssuerAuth turns on the per-issuer policy check on the mint
	// path, on top of the owner gate.
	RequireIssuerAuth bool
}

// Redis configures the shared cache. Empty URL means not configured; issuer
// authorization and rate limiting fall back to in-memory stores.
type Redis struct {
	URL string
}

// Issuers configures the issuer authorization table backing store. When
// neither Redis nor Postgres is configured the table lives in memory.
type Issuers struct {
	PostgresDSN string
}

// Audit configures the durable audit sinks. Both are optional.
type Audit struct {
	PostgresDSN  string
	KafkaBrokers []string
	KafkaTopic   string
}

// Limits configures the public endpoint rate limiter.
type Limits struct {
	VerifyPerMinute int
	Disabled        bool
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr: envOr("ATTEST_ADDR", ":8080"),
		},
		Ledger: Ledger{
			Endpoint:       os.Getenv("LEDGER_ENDPOINT"),
			Contract:       os.Getenv("LEDGER_CONTRACT"),
			ConfirmTimeout: envDuration("LEDGER_CONFIRM_TIMEOUT", 30*time.Second),
		},
		Auth: Auth{
			OwnerRef:          envOr("REGISTRY_OWNER", "did:attest:owner"),
			JWTSigningKey:     envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			AdminKeyHash:      os.Getenv("ADMIN_KEY_HASH"),
			RequireIssuerAuth: os.Getenv("REQUIRE_ISSUER_AUTH") == "true",
		},
		Redis: Redis{
			URL: os.Getenv("REDIS_URL"),
		},
		Issuers: Issuers{
			PostgresDSN: os.Getenv("ISSUER_POSTGRES_DSN"),
		},
		Audit: Audit{
			PostgresDSN:  os.Getenv("AUDIT_POSTGRES_DSN"),
			KafkaBrokers: envList("AUDIT_KAFKA_BROKERS"),
			KafkaTopic:   envOr("AUDIT_KAFKA_TOPIC", "attest.audit"),
		},
		Limits: Limits{
			VerifyPerMinute: envInt("VERIFY_RATE_LIMIT", 120),
			Disabled:        os.Getenv("RATE_LIMIT_DISABLED") == "true",
		},
		TracingEndpoint: os.Getenv("OTLP_ENDPOINT"),
		TracingInsecure: os.Getenv("OTLP_INSECURE") == "true",
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
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

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
