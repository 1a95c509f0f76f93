package config

import (
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	RunMigrations bool
	DBMaxConns    int32

	JWTSecret string
	JWTIssuer string

	LogLevel slog.Level

	// RedisURL enables distributed entry locks when set.
	RedisURL     string
	EntryLockTTL time.Duration

	// RateLimit is a ulule/limiter formatted rate, e.g. "300-M".
	RateLimit          string
	CORSAllowedOrigins []string
	MetricsEnabled     bool

	// AllowSignedAmounts accepts legacy signed-amount lines on interactive create/update.
	AllowSignedAmounts bool
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("RUN_MIGRATIONS", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_ISSUER", "acctflow")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("ENTRY_LOCK_TTL", "10s")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("METRICS_ENABLED", true)
	viper.SetDefault("ALLOW_SIGNED_AMOUNTS", false)

	// Environment variables override .env values and defaults.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.RunMigrations = viper.GetBool("RUN_MIGRATIONS")

	maxConns := viper.GetInt("DB_MAX_CONNS")
	if maxConns <= 0 {
		maxConns = 10
		log.Printf("Warning: Invalid DB_MAX_CONNS. Defaulting to %d.\n", maxConns)
	}
	cfg.DBMaxConns = int32(maxConns)

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	level, err := parseLogLevel(viper.GetString("LOG_LEVEL"))
	if err != nil {
		log.Printf("Warning: %v. Defaulting to info.\n", err)
	}
	cfg.LogLevel = level

	cfg.RedisURL = viper.GetString("REDIS_URL")
	lockTTLStr := viper.GetString("ENTRY_LOCK_TTL")
	cfg.EntryLockTTL, err = time.ParseDuration(lockTTLStr)
	if err != nil || cfg.EntryLockTTL <= 0 {
		cfg.EntryLockTTL = 10 * time.Second
		log.Printf("Warning: Invalid value for ENTRY_LOCK_TTL ('%s'). Defaulting to %s.\n", lockTTLStr, cfg.EntryLockTTL)
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.MetricsEnabled = viper.GetBool("METRICS_ENABLED")
	cfg.AllowSignedAmounts = viper.GetBool("ALLOW_SIGNED_AMOUNTS")

	return cfg, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
	return level, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
