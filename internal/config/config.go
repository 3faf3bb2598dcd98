package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Plans    PlanConfig
	AI       AIConfig
	Storage  StorageConfig
	Logging  LoggingConfig
	Worker   WorkerConfig
}

// WorkerConfig contains background worker configuration
type WorkerConfig struct {
	StatsSchedule string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	FrontendURL     string
	Environment     string
}

// DatabaseConfig contains database configuration
type DatabaseConfig struct {
	Driver          string // sqlite or postgres
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// For SQLite
	Path string
}

// AuthConfig contains authentication configuration
type AuthConfig struct {
	JWTSecret   string
	TokenExpiry time.Duration
	BCryptCost  int
}

// PlanConfig fixes the free-tier generation quota. Paid plans use
// the unbounded sentinel and are not configurable.
type PlanConfig struct {
	FreeGenerations int
}

// AIConfig contains AI provider configuration
type AIConfig struct {
	APIKey          string
	Model           string
	RequestTimeout  time.Duration
	CreateMaxTokens int
	EditMaxTokens   int
}

// StorageConfig contains media storage configuration
type StorageConfig struct {
	Backend   string // local or s3
	LocalDir  string
	PublicURL string
	S3Bucket  string
	S3Region  string
	S3Prefix  string

	// Static credentials. When empty the default AWS credential
	// chain is used instead.
	S3AccessKey string
	S3SecretKey string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or console
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors as it's optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:5173"),
			Environment:     getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "sqlite"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			Name:            getEnv("DB_NAME", "pagecraft"),
			User:            getEnv("DB_USER", ""),
			Password:        getEnv("DB_PASSWORD", ""),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			Path:            getEnv("DB_PATH", "./pagecraft.db"),
		},
		Auth: AuthConfig{
			JWTSecret:   getEnv("JWT_SECRET", "supersecretkey"),
			TokenExpiry: getEnvAsDuration("JWT_EXPIRY", 7*24*time.Hour),
			BCryptCost:  getEnvAsInt("BCRYPT_COST", 12),
		},
		Plans: PlanConfig{
			FreeGenerations: getEnvAsInt("FREE_PLAN_GENERATIONS", 3),
		},
		AI: AIConfig{
			APIKey:          getEnv("OPENAI_API_KEY", ""),
			Model:           getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			RequestTimeout:  getEnvAsDuration("OPENAI_TIMEOUT", 60*time.Second),
			CreateMaxTokens: getEnvAsInt("OPENAI_CREATE_MAX_TOKENS", 4000),
			EditMaxTokens:   getEnvAsInt("OPENAI_EDIT_MAX_TOKENS", 2000),
		},
		Storage: StorageConfig{
			Backend:   getEnv("STORAGE_BACKEND", "local"),
			LocalDir:  getEnv("STORAGE_LOCAL_DIR", "./uploads"),
			PublicURL: getEnv("STORAGE_PUBLIC_URL", "http://localhost:8080/uploads"),
			S3Bucket:  getEnv("STORAGE_S3_BUCKET", ""),
			S3Region:  getEnv("STORAGE_S3_REGION", "us-east-1"),
			S3Prefix:  getEnv("STORAGE_S3_PREFIX", "media"),

			S3AccessKey: getEnv("STORAGE_S3_ACCESS_KEY", ""),
			S3SecretKey: getEnv("STORAGE_S3_SECRET_KEY", ""),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Worker: WorkerConfig{
			StatsSchedule: getEnv("STATS_SCHEDULE", "* * * * *"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Environment == "production" && c.Auth.JWTSecret == "supersecretkey" {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.Storage.Backend != "local" && c.Storage.Backend != "s3" {
		return fmt.Errorf("unsupported storage backend: %s", c.Storage.Backend)
	}

	if c.Storage.Backend == "s3" && c.Storage.S3Bucket == "" {
		return fmt.Errorf("STORAGE_S3_BUCKET must be set when using the s3 backend")
	}

	if c.Plans.FreeGenerations < 0 {
		return fmt.Errorf("FREE_PLAN_GENERATIONS must be non-negative")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
