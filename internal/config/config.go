package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Environment string

	DatabaseURL string

	RedisURL string
	DraftTTL time.Duration

	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool

	CORSOrigins string

	ResendAPIKey string
	FromEmail    string
	Domain       string

	// Payment path selection. Only methods listed here are offered;
	// the latest product revision ships with bank transfer alone.
	EnabledPaymentMethods []string
	GatewayTimeout        time.Duration
	FlutterwaveSecretKey  string

	BankName          string
	BankAccountName   string
	BankAccountNumber string
	BankSortCode      string

	// Seed admin account, bcrypt-hashed at startup. Replaces the
	// hardcoded credential comparison of earlier revisions.
	AdminEmail    string
	AdminPassword string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),
		DraftTTL: getDurationEnv("DRAFT_TTL", 24*time.Hour),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:  getDurationEnv("JWT_ACCESS_EXPIRY", 15*time.Minute),
		JWTRefreshExpiry: getDurationEnv("JWT_REFRESH_EXPIRY", 7*24*time.Hour),

		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:    getEnv("MINIO_BUCKET", "nysc-documents"),
		MinIOUseSSL:    getBoolEnv("MINIO_USE_SSL", false),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@example.com"),
		Domain:       getEnv("DOMAIN", "localhost:3000"),

		EnabledPaymentMethods: getListEnv("ENABLED_PAYMENT_METHODS", []string{"bank_transfer"}),
		GatewayTimeout:        getDurationEnv("GATEWAY_TIMEOUT", 30*time.Second),
		FlutterwaveSecretKey:  getEnv("FLUTTERWAVE_SECRET_KEY", ""),

		BankName:          getEnv("BANK_NAME", "First Bank of Nigeria"),
		BankAccountName:   getEnv("BANK_ACCOUNT_NAME", "NYSC Platform Services"),
		BankAccountNumber: getEnv("BANK_ACCOUNT_NUMBER", "2034567890"),
		BankSortCode:      getEnv("BANK_SORT_CODE", "011151003"),

		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@nyscplatform.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}
}

func (c *Config) PaymentMethodEnabled(method string) bool {
	for _, m := range c.EnabledPaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
