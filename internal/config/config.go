package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
	StatementTimeoutMs int
}

// MinIOConfig holds object storage settings for contract documents.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// AuthConfig holds the settings used to resolve the tenant of a request.
type AuthConfig struct {
	// TenantHeader is read by routes using the header policy.
	TenantHeader string
	// JWTSecret verifies bearer tokens on routes using the token-claim policy.
	JWTSecret string
	// TenantClaim is the claim carrying the numeric tenant identifier.
	TenantClaim string
	// JWTLeeway tolerates clock skew on exp/nbf/iat.
	JWTLeeway time.Duration
}

// RetryConfig bounds the retry applied to read queries on transient connection errors.
type RetryConfig struct {
	Attempts uint
	Delay    time.Duration
	MaxDelay time.Duration
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level       string
	Environment string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	Database DatabaseConfig
	MinIO    MinIOConfig
	Auth     AuthConfig
	Retry    RetryConfig
	Log      LogConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
			StatementTimeoutMs: getEnvInt("DB_STATEMENT_TIMEOUT_MS", 10000),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Auth: AuthConfig{
			TenantHeader: getEnv("TENANT_HEADER", "X-Tenant-ID"),
			JWTSecret:    getEnv("JWT_SECRET", ""),
			TenantClaim:  getEnv("JWT_TENANT_CLAIM", "tenant_id"),
			JWTLeeway:    time.Duration(getEnvInt("JWT_LEEWAY_SEC", 30)) * time.Second,
		},
		Retry: RetryConfig{
			Attempts: uint(getEnvInt("DB_READ_RETRY_ATTEMPTS", 3)),
			Delay:    time.Duration(getEnvInt("DB_READ_RETRY_DELAY_MS", 50)) * time.Millisecond,
			MaxDelay: time.Duration(getEnvInt("DB_READ_RETRY_MAX_DELAY_MS", 500)) * time.Millisecond,
		},
		Log: LogConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Environment: getEnv("APP_ENV", "production"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil && i >= 0 {
			return i
		}
	}
	return def
}
