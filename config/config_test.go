package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		// getEnv treats an empty value the same as unset, so this is
		// sufficient to force every default through without touching
		// the real process environment beyond the test's scope.
		t.Setenv(k, "")
	}
}

func TestLoadAppliesDefaultsWhenUnset(t *testing.T) {
	clearEnv(t, "SERVER_PORT", "SHARED_SECRET", "SIMULATION_DEFAULT_TIME_SCALE", "SIMULATION_MAX_HISTORY_PLAYS", "REDIS_ENABLED")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("Server.Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Simulation.DefaultTimeScale != 60.0 {
		t.Fatalf("DefaultTimeScale = %f, want 60.0", cfg.Simulation.DefaultTimeScale)
	}
	if cfg.Redis.Enabled {
		t.Fatal("Redis.Enabled should default to false")
	}
}

func TestLoadHonorsEnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9001")
	t.Setenv("RATE_LIMIT_RPM", "120")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("AUTH_TOKEN_TTL", "5m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "9001" {
		t.Fatalf("Server.Port = %q, want 9001", cfg.Server.Port)
	}
	if cfg.RateLimit.RequestsPerMinute != 120 {
		t.Fatalf("RequestsPerMinute = %d, want 120", cfg.RateLimit.RequestsPerMinute)
	}
	if !cfg.Redis.Enabled {
		t.Fatal("Redis.Enabled should be true when REDIS_ENABLED=true")
	}
	if cfg.Auth.TokenTTL != 5*time.Minute {
		t.Fatalf("TokenTTL = %s, want 5m", cfg.Auth.TokenTTL)
	}
}

func TestValidateRejectsEmptySharedSecret(t *testing.T) {
	cfg := &Config{
		Server:     ServerConfig{Port: "8080"},
		Auth:       AuthConfig{SharedSecret: ""},
		Simulation: SimulationConfig{DefaultTimeScale: 60, MaxHistoryPlays: 10},
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for an empty shared secret")
	}
}

func TestValidateRejectsNonPositiveTimeScale(t *testing.T) {
	cfg := &Config{
		Server:     ServerConfig{Port: "8080"},
		Auth:       AuthConfig{SharedSecret: "x"},
		Simulation: SimulationConfig{DefaultTimeScale: 0, MaxHistoryPlays: 10},
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for a non-positive time scale")
	}
}

func TestAddressCombinesHostAndPort(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Host: "0.0.0.0", Port: "8080"}}
	if got := cfg.Address(); got != "0.0.0.0:8080" {
		t.Fatalf("Address() = %q, want 0.0.0.0:8080", got)
	}
}
