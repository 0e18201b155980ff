// Package config provides configuration management for the flock service.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Config holds the complete application configuration.
type Config struct {
	Log       LogConfig
	Server    ServerConfig
	Auth      AuthConfig
	Database  DatabaseConfig
	Optimizer OptimizerConfig
	Scheduler SchedulerConfig

	malformed []error
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string
	Pretty bool
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string
	RateLimit       int
	RateWindow      time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	SwaggerUser     string
	SwaggerPass     string
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	Enabled          bool
	APIKeys          map[string]bool
	JWTSecretKey     string
	JWTRefreshSecret string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration
}

// DatabaseConfig holds MongoDB configuration.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	LogsTTL      time.Duration
	Enabled      bool

	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// OptimizerConfig holds the feed optimizer client and its response cache.
type OptimizerConfig struct {
	BaseURL   string
	Timeout   time.Duration
	Retries   int
	CacheSize int
	CacheTTL  time.Duration
}

// SchedulerConfig holds background job schedules in standard 5-field cron syntax.
type SchedulerConfig struct {
	Enabled      bool
	BatchAgeCron string
	LowStockCron string
}

// Load reads the configuration from the environment. A .env file named by
// ENV_FILE, or ./.env by default, is read first; variables already set in
// the environment win. Malformed values fall back to their defaults and are
// reported by Validate.
func Load() Config {
	if err := loadEnvFile(os.Getenv("ENV_FILE")); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
	}
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) Config {
	e := &env{lookup: lookup}

	cfg := Config{
		Log: LogConfig{
			Level:  e.str("LOG_LEVEL", "info"),
			Pretty: e.boolean("LOG_PRETTY", false),
		},
		Server: ServerConfig{
			Port:            e.str("PORT", "8080"),
			RateLimit:       e.integer("RATE_LIMIT", 100),
			RateWindow:      e.duration("RATE_WINDOW", time.Minute),
			RequestTimeout:  e.duration("REQUEST_TIMEOUT", 10*time.Second),
			ShutdownTimeout: e.duration("SHUTDOWN_TIMEOUT", 10*time.Second),
			CORSOrigins:     append(defaultCORSOrigins(), e.list("CORS_ORIGINS")...),
			SwaggerUser:     e.str("SWAGGER_USER", ""),
			SwaggerPass:     e.str("SWAGGER_PASS", ""),
		},
		Auth: AuthConfig{
			Enabled:          e.boolean("AUTH_ENABLED", true),
			APIKeys:          keySet(e.list("API_KEYS")),
			JWTSecretKey:     e.str("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			JWTRefreshSecret: e.str("JWT_REFRESH_SECRET_KEY", "your-refresh-secret-key-change-in-production"),
			AccessTokenTTL:   e.duration("JWT_ACCESS_TOKEN_TTL", 15*time.Minute),
			RefreshTokenTTL:  e.duration("JWT_REFRESH_TOKEN_TTL", 7*24*time.Hour),
		},
		Database: DatabaseConfig{
			URI:                            e.str("MONGODB_URI", "mongodb://localhost:27017/?replicaSet=rs0"),
			DatabaseName:                   e.str("MONGODB_DATABASE", "flock_service"),
			LogsTTL:                        e.duration("MONGODB_LOGS_TTL", 30*24*time.Hour),
			Enabled:                        e.boolean("MONGODB_ENABLED", true),
			CircuitBreakerFailureThreshold: e.integer("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: e.integer("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          e.duration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
		Optimizer: OptimizerConfig{
			BaseURL:   e.str("FEED_OPTIMIZER_URL", "http://feed-optimizer:8000"),
			Timeout:   e.duration("FEED_OPTIMIZER_TIMEOUT", 15*time.Second),
			Retries:   e.integer("FEED_OPTIMIZER_RETRIES", 1),
			CacheSize: e.integer("OPTIMIZER_CACHE_SIZE", 256),
			CacheTTL:  e.duration("OPTIMIZER_CACHE_TTL", 10*time.Minute),
		},
		Scheduler: SchedulerConfig{
			Enabled:      e.boolean("SCHEDULER_ENABLED", true),
			BatchAgeCron: e.str("BATCH_AGE_CRON", "5 0 * * *"),
			LowStockCron: e.str("LOW_STOCK_CRON", "*/15 * * * *"),
		},
	}
	cfg.malformed = e.errs
	return cfg
}

// Validate reports every configuration problem that would prevent startup.
func (c Config) Validate() error {
	errs := append([]error(nil), c.malformed...)

	if c.Server.Port == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	if c.Auth.Enabled && c.Database.Enabled {
		if len(c.Auth.JWTSecretKey) < 16 {
			errs = append(errs, errors.New("JWT_SECRET_KEY must be at least 16 characters"))
		}
		if len(c.Auth.JWTRefreshSecret) < 16 {
			errs = append(errs, errors.New("JWT_REFRESH_SECRET_KEY must be at least 16 characters"))
		}
	}
	if c.Database.Enabled && c.Database.URI == "" {
		errs = append(errs, errors.New("MONGODB_URI must be set when MONGODB_ENABLED is true"))
	}
	if c.Scheduler.Enabled {
		for name, spec := range map[string]string{"BATCH_AGE_CRON": c.Scheduler.BatchAgeCron, "LOW_STOCK_CRON": c.Scheduler.LowStockCron} {
			if _, err := cron.ParseStandard(spec); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
			}
		}
	}

	return errors.Join(errs...)
}

func loadEnvFile(path string) error {
	if path == "" {
		// A missing ./.env is normal when configuration comes from the environment.
		_ = godotenv.Load()
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed loading env file %s: %w", path, err)
	}
	return nil
}

// env reads typed variables, treating empty as unset and remembering values
// that do not parse.
type env struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (e *env) str(key, def string) string {
	if v, ok := e.lookup(key); ok && v != "" {
		return v
	}
	return def
}

func parsed[T any](e *env, key string, def T, parse func(string) (T, error)) T {
	raw := e.str(key, "")
	if raw == "" {
		return def
	}
	v, err := parse(strings.TrimSpace(raw))
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: invalid value %q", key, raw))
		return def
	}
	return v
}

func (e *env) integer(key string, def int) int { return parsed(e, key, def, strconv.Atoi) }

func (e *env) boolean(key string, def bool) bool { return parsed(e, key, def, strconv.ParseBool) }

func (e *env) duration(key string, def time.Duration) time.Duration {
	return parsed(e, key, def, time.ParseDuration)
}

// list splits a comma-separated variable, dropping blank items.
func (e *env) list(key string) []string {
	var items []string
	for _, item := range strings.Split(e.str(key, ""), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func keySet(keys []string) map[string]bool {
	if len(keys) == 0 {
		return nil
	}
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}

// defaultCORSOrigins are always allowed so a local frontend works out of the box.
func defaultCORSOrigins() []string {
	return []string{"http://localhost:3000", "http://127.0.0.1:3000"}
}
