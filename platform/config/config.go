// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"leasing_crm_backend/platform/phone"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
	GetMigrationsDir() string
}

// JWTConfig provides JWT validation settings for middleware.
// An empty secret disables authentication.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// RateLimitConfig provides settings for the per-IP rate limiter.
type RateLimitConfig interface {
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
}

// SchedulerConfig provides settings for background jobs.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueue() string
	GetAsynqConcurrency() int
	GetRescoreCron() string
	IsSchedulerEnabled() bool
}

// CacheConfig provides settings for the lead score cache.
type CacheConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetScoreCacheTTL() time.Duration
}

// ChatConfig provides settings for the chat assistant.
type ChatConfig interface {
	GetChatEndpointURL() string
	GetGeminiAPIKey() string
	GetGeminiModel() string
}

// PhoneConfig provides phone normalization defaults.
type PhoneConfig interface {
	GetPhoneDefaultRegion() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                string
	HTTPAddr           string
	DatabaseURL        string
	MigrationsDir      string
	JWTAccessSecret    string
	CORSAllowAll       bool
	CORSOrigins        []string
	CORSAllowCreds     bool
	RedisURL           string
	RedisTLSInsecure   bool
	AsynqQueue         string
	AsynqConcurrency   int
	ScoreCacheTTL      time.Duration
	RescoreCron        string
	ChatEndpointURL    string
	GeminiAPIKey       string
	GeminiModel        string
	PhoneDefaultRegion string
	RateLimitRPS       float64
	RateLimitBurst     int
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string   { return c.DatabaseURL }
func (c *Config) GetMigrationsDir() string { return c.MigrationsDir }

// JWTConfig implementation
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// RateLimitConfig implementation
func (c *Config) GetRateLimitRPS() float64 { return c.RateLimitRPS }
func (c *Config) GetRateLimitBurst() int   { return c.RateLimitBurst }

// SchedulerConfig / CacheConfig implementation
func (c *Config) GetRedisURL() string             { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool       { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueue() string           { return c.AsynqQueue }
func (c *Config) GetAsynqConcurrency() int        { return c.AsynqConcurrency }
func (c *Config) GetRescoreCron() string          { return c.RescoreCron }
func (c *Config) GetScoreCacheTTL() time.Duration { return c.ScoreCacheTTL }
func (c *Config) IsSchedulerEnabled() bool        { return c.RedisURL != "" }

// ChatConfig implementation
func (c *Config) GetChatEndpointURL() string { return c.ChatEndpointURL }
func (c *Config) GetGeminiAPIKey() string    { return c.GeminiAPIKey }
func (c *Config) GetGeminiModel() string     { return c.GeminiModel }

// PhoneConfig implementation
func (c *Config) GetPhoneDefaultRegion() string { return c.PhoneDefaultRegion }

// IsDevelopment reports whether the app runs in development mode.
func (c *Config) IsDevelopment() bool { return c.Env == "development" }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173"))
	corsAllowAll := parseBool(getEnv("CORS_ALLOW_ALL", "false"))
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                getEnv("APP_ENV", "development"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		MigrationsDir:      getEnv("MIGRATIONS_DIR", ""),
		JWTAccessSecret:    getEnv("JWT_ACCESS_SECRET", ""),
		CORSAllowAll:       corsAllowAll,
		CORSOrigins:        corsOrigins,
		CORSAllowCreds:     parseBool(getEnv("CORS_ALLOW_CREDENTIALS", "false")),
		RedisURL:           getEnv("REDIS_URL", ""),
		RedisTLSInsecure:   parseBool(getEnv("REDIS_TLS_INSECURE", "false")),
		AsynqQueue:         getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:   mustInt(getEnv("ASYNQ_CONCURRENCY", "5"), 5),
		ScoreCacheTTL:      mustDuration(getEnv("SCORE_CACHE_TTL", "1h"), time.Hour),
		RescoreCron:        getEnv("RESCORE_CRON", "@daily"),
		ChatEndpointURL:    getEnv("CHAT_ENDPOINT_URL", ""),
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
		GeminiModel:        getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		PhoneDefaultRegion: phone.NormalizeRegion(getEnv("PHONE_DEFAULT_REGION", phone.DefaultRegion)),
		RateLimitRPS:       mustFloat(getEnv("RATE_LIMIT_RPS", "10"), 10),
		RateLimitBurst:     mustInt(getEnv("RATE_LIMIT_BURST", "20"), 20),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.CORSAllowAll && c.CORSAllowCreds {
		return fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	if !phone.IsSupportedRegion(c.PhoneDefaultRegion) {
		return fmt.Errorf("PHONE_DEFAULT_REGION %q is not a supported region", c.PhoneDefaultRegion)
	}
	if c.AsynqConcurrency < 1 {
		return fmt.Errorf("ASYNQ_CONCURRENCY must be at least 1")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func parseBool(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), "true")
}

func mustDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

func mustInt(value string, fallback int) int {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return result
}

func mustFloat(value string, fallback float64) float64 {
	result, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fallback
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
