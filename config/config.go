// Package config loads process configuration from the environment,
// following the teacher's own Load/Validate shape: a .env file via
// godotenv layered with environment variables and sane defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/dgrantpete/scoreboard-sim/logging"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `json:"server"`
	Auth       AuthConfig       `json:"auth"`
	RateLimit  RateLimitConfig  `json:"rate_limit"`
	Redis      RedisConfig      `json:"redis"`
	Audit      AuditConfig      `json:"audit"`
	Simulation SimulationConfig `json:"simulation"`
	Logging    LoggingConfig    `json:"logging"`
}

// ServerConfig holds the HTTP bind address.
type ServerConfig struct {
	Host string `json:"host"`
	Port string `json:"port"`
}

// AuthConfig holds the shared secret backing the auth middleware's
// HMAC-signed bearer tokens and bare-secret fallback (spec_full.md A3).
type AuthConfig struct {
	SharedSecret string        `json:"-"`
	TokenTTL     time.Duration `json:"token_ttl"`
}

// RateLimitConfig holds the per-IP and per-create-call throttle settings
// (spec_full.md A5).
type RateLimitConfig struct {
	RequestsPerMinute    int `json:"requests_per_minute"`
	CreateGamesPerMinute int `json:"create_games_per_minute"`
}

// RedisConfig holds the Redis settings for the team-logo cache
// (spec_full.md A7). It is loaded and logged with the rest of the config;
// no code builds an imaging cache from it, so Enabled does not choose
// between RedisCache and MemoryCache.
type RedisConfig struct {
	Addr    string `json:"addr"`
	Enabled bool   `json:"enabled"`
}

// AuditConfig backs the SQLite lifecycle audit trail (spec_full.md A10).
type AuditConfig struct {
	SQLitePath string `json:"sqlite_path"`
	Enabled    bool   `json:"enabled"`
}

// SimulationConfig holds the time-scale default and the in-memory history
// retention cap (spec §4.8, §5), validated and logged at startup. The
// simulation package does not read them: it uses its own DefaultTimeScale
// and maxHistoryPlays constants, fixed at 60 and 2048.
type SimulationConfig struct {
	DefaultTimeScale float64 `json:"default_time_scale"`
	MaxHistoryPlays  int     `json:"max_history_plays"`
}

// LoggingConfig holds the global logger's configuration.
type LoggingConfig struct {
	Level       string `json:"level"`
	EnableColor bool   `json:"enable_color"`
}

// Load reads configuration from a .env file (if present) layered with
// environment variables, and validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logging.Warnf("could not load .env file: %v", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Auth: AuthConfig{
			SharedSecret: getEnv("SHARED_SECRET", "dev-shared-secret-change-in-production"),
			TokenTTL:     getDurationEnv("AUTH_TOKEN_TTL", 15*time.Minute),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute:    getIntEnv("RATE_LIMIT_RPM", 600),
			CreateGamesPerMinute: getIntEnv("RATE_LIMIT_CREATE_RPM", 30),
		},
		Redis: RedisConfig{
			Addr:    getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Enabled: getBoolEnv("REDIS_ENABLED", false),
		},
		Audit: AuditConfig{
			SQLitePath: getEnv("AUDIT_SQLITE_PATH", "./data/audit.db"),
			Enabled:    getBoolEnv("AUDIT_ENABLED", true),
		},
		Simulation: SimulationConfig{
			DefaultTimeScale: getFloatEnv("SIMULATION_DEFAULT_TIME_SCALE", 60.0),
			MaxHistoryPlays:  getIntEnv("SIMULATION_MAX_HISTORY_PLAYS", 2048),
		},
		Logging: LoggingConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			EnableColor: getBoolEnv("LOG_COLOR", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks required fields and sensible value ranges.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Auth.SharedSecret == "" {
		return fmt.Errorf("shared secret is required")
	}
	if c.Simulation.DefaultTimeScale <= 0 {
		return fmt.Errorf("simulation default time scale must be positive, got: %f", c.Simulation.DefaultTimeScale)
	}
	if c.Simulation.MaxHistoryPlays < 1 {
		return fmt.Errorf("simulation max history plays must be at least 1, got: %d", c.Simulation.MaxHistoryPlays)
	}
	return nil
}

// Address returns the full HTTP bind address.
func (c *Config) Address() string {
	return c.Server.Host + ":" + c.Server.Port
}

// LogConfiguration logs the resolved configuration, omitting the shared
// secret.
func (c *Config) LogConfiguration() {
	logging.Info("=== Configuration ===")
	logging.Infof("Server: %s", c.Address())
	logging.Infof("Auth: TokenTTL=%s, SecretSet=%t", c.Auth.TokenTTL, c.Auth.SharedSecret != "")
	logging.Infof("RateLimit: RPM=%d, CreateRPM=%d", c.RateLimit.RequestsPerMinute, c.RateLimit.CreateGamesPerMinute)
	logging.Infof("Redis: Enabled=%t, Addr=%s", c.Redis.Enabled, c.Redis.Addr)
	logging.Infof("Audit: Enabled=%t, Path=%s", c.Audit.Enabled, c.Audit.SQLitePath)
	logging.Infof("Simulation: DefaultTimeScale=%.1f, MaxHistoryPlays=%d", c.Simulation.DefaultTimeScale, c.Simulation.MaxHistoryPlays)
	logging.Infof("Logging: Level=%s, Color=%t", c.Logging.Level, c.Logging.EnableColor)
	logging.Info("======================")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
