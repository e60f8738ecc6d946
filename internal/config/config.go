package config

import (
	"errors"
	"fmt"
	"os"
)

const (
	BackendSupabase = "supabase"
	BackendPostgres = "postgres"
)

type Config struct {
	Port        string
	RequireAuth bool
	LogLevel    string
	LogFormat   string

	// DataBackend selects the gateway implementation.
	DataBackend string

	// Hosted backend (default).
	SupabaseURL string
	SupabaseKey string

	// Self-hosted backend.
	DatabaseURL string
	JWTSecret   string
}

// Load reads configuration from the environment and refuses to start without
// the connection parameters of the selected backend.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8000"),
		RequireAuth: getEnv("REQUIRE_AUTH", "false") == "true",
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "console"),
		DataBackend: getEnv("DATA_BACKEND", BackendSupabase),
		SupabaseURL: os.Getenv("SUPABASE_URL"),
		SupabaseKey: os.Getenv("SUPABASE_KEY"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
	}

	switch cfg.DataBackend {
	case BackendSupabase:
		if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
			return nil, errors.New("SUPABASE_URL and SUPABASE_KEY must be set in environment variables")
		}
	case BackendPostgres:
		if cfg.DatabaseURL == "" || cfg.JWTSecret == "" {
			return nil, errors.New("DATABASE_URL and JWT_SECRET must be set in environment variables")
		}
	default:
		return nil, fmt.Errorf("unknown DATA_BACKEND %q", cfg.DataBackend)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
