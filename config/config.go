package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultGenerationLimit is the number of recipe generations a user gets per
// trailing 24-hour window unless overridden by GENERATION_DAILY_LIMIT.
const DefaultGenerationLimit = 3

// OpenRouterConfig holds everything the gateway client needs. It is resolved
// once at startup and passed to the client constructor, which validates it
// before any request is made.
type OpenRouterConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	AppURL  string
	AppName string
}

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// OpenRouter gateway configuration
	OpenRouter OpenRouterConfig

	// Recipe generation quota
	GenerationDailyLimit int
	// UnlimitedQuota disables quota enforcement for local development. It is
	// a configuration switch only; the counting code path is unchanged.
	UnlimitedQuota bool
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	switch env {
	case CI:
		loadEnvConfig(cfg)
	case Development, Test:
		loadEnvConfig(cfg)
		applyDevDefaults(cfg)
	case Production:
		loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	loadOpenRouterConfig(cfg)
	loadGenerationConfig(cfg, env)

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadEnvConfig loads configuration from plain environment variables
func loadEnvConfig(cfg *Config) {
	cfg.ServerPort = os.Getenv("SERVER_PORT")
	cfg.ServerHost = os.Getenv("SERVER_HOST")
	cfg.DBHost = os.Getenv("DB_HOST")
	cfg.DBPort = os.Getenv("DB_PORT")
	cfg.DBUser = os.Getenv("DB_USER")
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.DBName = os.Getenv("DB_NAME")
	cfg.DBSSLMode = os.Getenv("DB_SSL_MODE")
	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = os.Getenv("REDIS_PORT")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.JWTSecret = os.Getenv("JWT_SECRET")

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			cfg.RedisDB = db
		}
	}
}

// applyDevDefaults fills in sensible local defaults so a bare `ENV=development`
// run works against docker-compose services.
func applyDevDefaults(cfg *Config) {
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.ServerHost == "" {
		cfg.ServerHost = "0.0.0.0"
	}
	if cfg.DBHost == "" {
		cfg.DBHost = "localhost"
	}
	if cfg.DBPort == "" {
		cfg.DBPort = "5432"
	}
	if cfg.DBUser == "" {
		cfg.DBUser = "plateful"
	}
	if cfg.DBName == "" {
		cfg.DBName = "plateful"
	}
	if cfg.DBSSLMode == "" {
		cfg.DBSSLMode = "disable"
	}
	if cfg.RedisHost == "" {
		cfg.RedisHost = "localhost"
	}
	if cfg.RedisPort == "" {
		cfg.RedisPort = "6379"
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-change-me"
	}
}

// loadProdConfig loads configuration for production using Docker secrets
func loadProdConfig(cfg *Config) {
	cfg.ServerPort = readSecret("server_port")
	cfg.ServerHost = readSecret("server_host")
	cfg.DBHost = readSecret("db_host")
	cfg.DBPort = readSecret("db_port")
	cfg.DBUser = readSecret("db_user")
	cfg.DBPassword = readSecret("db_password")
	cfg.DBName = readSecret("db_name")
	cfg.DBSSLMode = readSecret("db_ssl_mode")
	cfg.RedisHost = readSecret("redis_host")
	cfg.RedisPort = readSecret("redis_port")
	cfg.RedisPassword = readSecret("redis_password")
	cfg.RedisURL = readSecret("redis_url")
	cfg.RedisDB = 0
	cfg.JWTSecret = readSecret("jwt_secret")
}

// loadOpenRouterConfig resolves the gateway settings. The API key may come
// from OPENROUTER_API_KEY directly or from a file referenced by
// OPENROUTER_API_KEY_FILE (Docker secret mounts).
func loadOpenRouterConfig(cfg *Config) {
	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if apiKey == "" {
		if keyFile := os.Getenv("OPENROUTER_API_KEY_FILE"); keyFile != "" {
			if data, err := os.ReadFile(keyFile); err == nil {
				apiKey = strings.TrimSpace(string(data))
			}
		}
	}
	if apiKey == "" {
		apiKey = readSecret("openrouter_api_key")
	}

	baseURL := os.Getenv("OPENROUTER_BASE_URL")
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}

	model := os.Getenv("OPENROUTER_MODEL")
	if model == "" {
		model = "openai/gpt-4o-mini"
	}

	timeout := 30 * time.Second
	if t := os.Getenv("OPENROUTER_TIMEOUT_SECONDS"); t != "" {
		if secs, err := strconv.Atoi(t); err == nil && secs > 0 {
			timeout = time.Duration(secs) * time.Second
		}
	}

	cfg.OpenRouter = OpenRouterConfig{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Model:   model,
		Timeout: timeout,
		AppURL:  os.Getenv("APP_URL"),
		AppName: os.Getenv("APP_NAME"),
	}
}

// loadGenerationConfig resolves the daily quota. Development runs are
// unlimited unless a limit is set explicitly.
func loadGenerationConfig(cfg *Config, env Environment) {
	cfg.GenerationDailyLimit = DefaultGenerationLimit
	explicit := false
	if l := os.Getenv("GENERATION_DAILY_LIMIT"); l != "" {
		if limit, err := strconv.Atoi(l); err == nil && limit > 0 {
			cfg.GenerationDailyLimit = limit
			explicit = true
		}
	}
	cfg.UnlimitedQuota = env == Development && !explicit
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
