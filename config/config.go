package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Generator GeneratorConfig
	Session   SessionConfig
	App       AppConfig
}

type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

// DatabaseConfig describes how the store is reached. URL may be empty: the
// connection provider reports that at first use, not at startup.
type DatabaseConfig struct {
	URL          string
	Driver       string
	ConnMode     string
	MaxOpenConns int

	// Discrete settings, used to build URL when DATABASE_URL is not set.
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

// Connection lifetimes.
const (
	ConnModePerCall = "per_call"
	ConnModePooled  = "pooled"
)

// Generator providers.
const (
	ProviderGemini = "gemini"
	ProviderHTTP   = "http"
)

type GeneratorConfig struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	// RequestsPerSecond paces outbound calls; 0 disables pacing.
	RequestsPerSecond float64
}

// Session stores.
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type SessionConfig struct {
	Store         string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	provider := getEnv("GENERATOR_PROVIDER", ProviderGemini)
	apiKey := os.Getenv("GOOGLE_API_KEY")
	if provider == ProviderHTTP {
		apiKey = os.Getenv("COMPLETION_API_KEY")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			CORSOrigins: getEnvAsList("CORS_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			Driver:       getEnv("DB_DRIVER", "postgres"),
			ConnMode:     getEnv("DB_CONN_MODE", ConnModePerCall),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			Host:         os.Getenv("DB_HOST"),
			Port:         getEnvAsInt("DB_PORT", 5432),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Name:         getEnv("DB_NAME", "travel_planner"),
		},
		Generator: GeneratorConfig{
			Provider:          provider,
			APIKey:            apiKey,
			Model:             getEnv("GEMINI_MODEL", "gemini-pro"),
			BaseURL:           getEnv("COMPLETION_BASE_URL", "http://localhost:8088"),
			RequestsPerSecond: getEnvAsFloat("GENERATOR_RPS", 0),
		},
		Session: SessionConfig{
			Store:         getEnv("SESSION_STORE", SessionStoreMemory),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvAsInt("REDIS_DB", 0),
			TTL:           getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if cfg.Database.URL == "" && cfg.Database.Host != "" {
		cfg.Database.URL = DSN(&cfg.Database)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the shape of the configuration. Credentials and the
// connection string are deliberately not required here.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Database.Driver {
	case "postgres", "pgx", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER must be one of postgres, pgx, sqlite (got %q)", c.Database.Driver)
	}

	switch c.Database.ConnMode {
	case ConnModePerCall, ConnModePooled:
	default:
		return fmt.Errorf("DB_CONN_MODE must be %s or %s (got %q)", ConnModePerCall, ConnModePooled, c.Database.ConnMode)
	}

	switch c.Generator.Provider {
	case ProviderGemini, ProviderHTTP:
	default:
		return fmt.Errorf("GENERATOR_PROVIDER must be %s or %s (got %q)", ProviderGemini, ProviderHTTP, c.Generator.Provider)
	}

	if c.Generator.RequestsPerSecond < 0 {
		return fmt.Errorf("GENERATOR_RPS must not be negative")
	}

	switch c.Session.Store {
	case SessionStoreMemory, SessionStoreRedis:
	default:
		return fmt.Errorf("SESSION_STORE must be %s or %s (got %q)", SessionStoreMemory, SessionStoreRedis, c.Session.Store)
	}

	return nil
}

// DSN builds a libpq keyword/value connection string from discrete settings.
func DSN(cfg *DatabaseConfig) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name,
	)
}

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
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
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
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
