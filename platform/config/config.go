// Package config loads runtime configuration from the environment.
// Consumers depend on the narrow interfaces below rather than on *Config.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type DatabaseConfig interface {
	GetDatabaseURL() string
	GetMigrationsDir() string
}

type JWTConfig interface {
	GetJWTAccessSecret() string
}

type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
	GetLeadIntakeRatePerMinute() int
}

type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// TelegramConfig configures group broadcasts for new leads.
type TelegramConfig interface {
	GetTelegramBotToken() string
	GetTelegramGroupIDs() []string
	GetTelegramAPIBaseURL() string
	IsTelegramEnabled() bool
}

// BoardConfig configures the status board and lead intake.
type BoardConfig interface {
	GetDefaultStatusName() string
	GetStatusSeedFile() string
	GetBoardMaxColumnLimit() int
	GetPhoneDefaultRegion() string
}

type Config struct {
	Env      string
	HTTPAddr string

	DatabaseURL   string
	MigrationsDir string

	JWTAccessSecret string

	CORSAllowAll   bool
	CORSOrigins    []string
	CORSAllowCreds bool

	LeadIntakeRatePerMinute int

	RedisURL         string
	RedisTLSInsecure bool
	AsynqQueueName   string
	AsynqConcurrency int

	TelegramBotToken   string
	TelegramGroupIDs   []string
	TelegramAPIBaseURL string

	DefaultStatusName   string
	StatusSeedFile      string
	BoardMaxColumnLimit int
	PhoneDefaultRegion  string
}

// DatabaseConfig
func (c *Config) GetDatabaseURL() string   { return c.DatabaseURL }
func (c *Config) GetMigrationsDir() string { return c.MigrationsDir }

// JWTConfig
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// HTTPConfig
func (c *Config) GetHTTPAddr() string             { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool           { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string        { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool         { return c.CORSAllowCreds }
func (c *Config) GetLeadIntakeRatePerMinute() int { return c.LeadIntakeRatePerMinute }

// SchedulerConfig
func (c *Config) GetRedisURL() string        { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool  { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string  { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int   { return c.AsynqConcurrency }

// TelegramConfig
func (c *Config) GetTelegramBotToken() string   { return c.TelegramBotToken }
func (c *Config) GetTelegramGroupIDs() []string { return c.TelegramGroupIDs }
func (c *Config) GetTelegramAPIBaseURL() string { return c.TelegramAPIBaseURL }
func (c *Config) IsTelegramEnabled() bool {
	return c.TelegramBotToken != "" && len(c.TelegramGroupIDs) > 0
}

// BoardConfig
func (c *Config) GetDefaultStatusName() string  { return c.DefaultStatusName }
func (c *Config) GetStatusSeedFile() string     { return c.StatusSeedFile }
func (c *Config) GetBoardMaxColumnLimit() int   { return c.BoardMaxColumnLimit }
func (c *Config) GetPhoneDefaultRegion() string { return c.PhoneDefaultRegion }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                     getEnv("APP_ENV", "development"),
		HTTPAddr:                getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:             getEnv("DATABASE_URL", ""),
		MigrationsDir:           getEnv("MIGRATIONS_DIR", "migrations"),
		JWTAccessSecret:         getEnv("JWT_ACCESS_SECRET", ""),
		CORSAllowAll:            corsAllowAll,
		CORSOrigins:             corsOrigins,
		CORSAllowCreds:          strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		LeadIntakeRatePerMinute: mustInt(getEnv("LEAD_INTAKE_RATE_PER_MINUTE", "20"), 20),
		RedisURL:                getEnv("REDIS_URL", ""),
		RedisTLSInsecure:        strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:          getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:        mustInt(getEnv("ASYNQ_CONCURRENCY", "10"), 10),
		TelegramBotToken:        getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramGroupIDs:        splitCSV(getEnv("TELEGRAM_GROUP_IDS", "")),
		TelegramAPIBaseURL:      getEnv("TELEGRAM_API_BASE_URL", "https://api.telegram.org"),
		DefaultStatusName:       getEnv("DEFAULT_STATUS_NAME", "NewLead"),
		StatusSeedFile:          getEnv("STATUS_SEED_FILE", ""),
		BoardMaxColumnLimit:     mustInt(getEnv("BOARD_MAX_COLUMN_LIMIT", "100"), 100),
		PhoneDefaultRegion:      strings.ToUpper(getEnv("PHONE_DEFAULT_REGION", "UZ")),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	if strings.TrimSpace(cfg.DefaultStatusName) == "" {
		return nil, fmt.Errorf("DEFAULT_STATUS_NAME cannot be empty")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustInt(value string, fallback int) int {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || result <= 0 {
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
