package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "CLUB"

// Session store backends
const (
	SessionStoreDB    = "db"
	SessionStoreRedis = "redis"
)

// Config holds the application configuration
type Config struct {
	// Database connection string (DSN)
	DatabaseURL string

	// Server bind address (host:port)
	ServerAddr string

	// Public base URL of the API
	ServerURL string

	// Maximum database connection pool size
	MaxDBConnections int

	// Enable debug logging
	Debug bool

	// Origins allowed by CORS
	CORSOrigins []string

	// Run pending migrations when the server starts
	AutoMigrate bool

	// Create the demo accounts when the server starts
	SeedDevUsers bool

	Session SessionConfig
}

// SessionConfig controls login sessions.
type SessionConfig struct {
	// Absolute lifetime of a session from login
	TTL time.Duration

	// Interval of the expired-session sweep
	PruneInterval time.Duration

	// Backend: "db" (default) or "redis"
	Store string

	// Redis URL, required when Store is "redis"
	RedisURL string

	// Mark the session cookie Secure (HTTPS only)
	CookieSecure bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database_url", "file:clubapi.db?cache=shared")
	v.SetDefault("server_addr", "localhost:8080")
	v.SetDefault("server_url", "http://localhost:8080")
	v.SetDefault("max_db_connections", 25)
	v.SetDefault("debug", false)
	v.SetDefault("cors_origins", "http://localhost:5173")
	v.SetDefault("auto_migrate", false)
	v.SetDefault("seed_dev_users", false)
	v.SetDefault("session.ttl", "12h")
	v.SetDefault("session.prune_interval", "1h")
	v.SetDefault("session.store", SessionStoreDB)
	v.SetDefault("session.redis_url", "")
	v.SetDefault("session.cookie_secure", false)
}

// LoadDotEnv loads variables from a .env file in the working directory, if
// one exists. Variables already set in the environment win.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from the global viper instance: config file (if
// one was read), CLUB_ prefixed environment variables and bound flags, with
// fallback defaults.
func Load() (*Config, error) {
	v := viper.GetViper()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:      v.GetString("database_url"),
		ServerAddr:       v.GetString("server_addr"),
		ServerURL:        v.GetString("server_url"),
		MaxDBConnections: v.GetInt("max_db_connections"),
		Debug:            v.GetBool("debug"),
		CORSOrigins:      splitList(v.GetStringSlice("cors_origins")),
		AutoMigrate:      v.GetBool("auto_migrate"),
		SeedDevUsers:     v.GetBool("seed_dev_users"),
		Session: SessionConfig{
			TTL:           v.GetDuration("session.ttl"),
			PruneInterval: v.GetDuration("session.prune_interval"),
			Store:         strings.ToLower(v.GetString("session.store")),
			RedisURL:      v.GetString("session.redis_url"),
			CookieSecure:  v.GetBool("session.cookie_secure"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and cross-field constraints.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("%s_DATABASE_URL is required", EnvPrefix)
	}

	if c.ServerURL == "" {
		return fmt.Errorf("%s_SERVER_URL is required", EnvPrefix)
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("%s_SESSION_TTL must be positive", EnvPrefix)
	}

	if c.Session.PruneInterval <= 0 {
		return fmt.Errorf("%s_SESSION_PRUNE_INTERVAL must be positive", EnvPrefix)
	}

	switch c.Session.Store {
	case SessionStoreDB:
	case SessionStoreRedis:
		if c.Session.RedisURL == "" {
			return fmt.Errorf("%s_SESSION_REDIS_URL is required for the redis session store", EnvPrefix)
		}
	default:
		return fmt.Errorf("unknown session store %q (want %q or %q)", c.Session.Store, SessionStoreDB, SessionStoreRedis)
	}

	return nil
}

// splitList flattens comma separated entries, as environment variables
// carry lists as a single string.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
