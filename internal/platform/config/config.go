package config

import (
	"os"
	"strconv"
	"time"
)

// Config is the process configuration, read once at startup so main stays
// lean.
type Config struct {
	Addr     string
	LogLevel string

	Redis    RedisConfig
	Postgres PostgresConfig
	Upstream UpstreamConfig

	// AdminToken guards the /admin routes. Empty disables them.
	AdminToken string

	// JWTSigningKey signs dashboard session tokens issued on Authorized.
	JWTSigningKey string
	JWTIssuer     string

	// PartnerBankID identifies this installation to the registration service.
	PartnerBankID string
	// CredentialDomain scopes the hashed password suffix submitted to the
	// credential-compromise check.
	CredentialDomain string

	// DefaultHighRiskThreshold seeds the posture threshold when the store
	// holds none.
	DefaultHighRiskThreshold int

	// DeviceFingerprints toggles fingerprint computation from user agents.
	DeviceFingerprints bool

	// TreatUnknownCredentialAsCompromised escalates an indeterminate
	// credential-check result to a persisted compromise flag. Off by
	// default: no signal is not a signal.
	TreatUnknownCredentialAsCompromised bool
}

// RedisConfig mirrors the go-redis options this service overrides.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig is the optional audit database. Empty DSN keeps the
// in-memory audit store.
type PostgresConfig struct {
	DSN string
}

// UpstreamConfig names the collaborator services. An empty ScanURL disables
// the prelaunch scan and leaves the transaction register empty.
type UpstreamConfig struct {
	BankURL       string
	ProtectionURL string
	ScanURL       string
	Timeout       time.Duration
}

// FromEnv builds the configuration from environment variables with
// development defaults.
func FromEnv() Config {
	return Config{
		Addr:     envOr("MONEYGUARD_ADDR", ":8080"),
		LogLevel: envOr("MONEYGUARD_LOG_LEVEL", "info"),
		Redis: RedisConfig{
			URL:          os.Getenv("MONEYGUARD_REDIS_URL"),
			PoolSize:     envIntOr("MONEYGUARD_REDIS_POOL_SIZE", 10),
			MinIdleConns: envIntOr("MONEYGUARD_REDIS_MIN_IDLE", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Postgres: PostgresConfig{
			DSN: os.Getenv("MONEYGUARD_POSTGRES_DSN"),
		},
		Upstream: UpstreamConfig{
			BankURL:       envOr("MONEYGUARD_BANK_URL", "http://localhost:9001"),
			ProtectionURL: envOr("MONEYGUARD_PROTECTION_URL", "http://localhost:9002"),
			ScanURL:       os.Getenv("MONEYGUARD_SCAN_URL"),
			Timeout:       10 * time.Second,
		},
		AdminToken: os.Getenv("MONEYGUARD_ADMIN_TOKEN"),
		// Development default, overridden in production deployments.
		JWTSigningKey:                       envOr("MONEYGUARD_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTIssuer:                           envOr("MONEYGUARD_JWT_ISSUER", "moneyguard"),
		PartnerBankID:                       envOr("MONEYGUARD_PARTNER_BANK_ID", "demo-bank"),
		CredentialDomain:                    envOr("MONEYGUARD_CREDENTIAL_DOMAIN", "moneyguard.example"),
		DefaultHighRiskThreshold:            envIntOr("MONEYGUARD_HIGH_RISK_THRESHOLD", 50),
		DeviceFingerprints:                  envOr("MONEYGUARD_DEVICE_FINGERPRINTS", "true") == "true",
		TreatUnknownCredentialAsCompromised: os.Getenv("MONEYGUARD_STRICT_CREDENTIAL_CHECK") == "true",
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
