package app

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	StoreBackend  string // Record store backend (sqlite, redis) (default: sqlite)
	DatabaseFile  string // SQLite file for records (default: ./interclasse.db)
	RedisAddr     string // Redis address (default: localhost:6379)
	RedisPassword string // Optional: Redis password
	RedisDB       int    // Redis database number (default: 0)

	SessionBackend      string        // Session store backend (memory, redis, sqlite) (default: memory)
	SessionDatabaseFile string        // SQLite file for sessions when SessionBackend=sqlite (default: ./interclasse-sessions.db)
	SessionTTL          time.Duration // Idle lifetime of tab sessions and drafts (default: 12h)
	SessionSecretFile   string        // Path to the cookie signing key, created if missing (default: ./session.key)
	CookieSecure        bool          // Set the Secure flag on scope cookies (default: true outside dev)

	PepperFile string        // Path to the password pepper, created if missing (default: ./pepper)
	LoginDelay time.Duration // Pause before every credential check (default: 1s)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired-entry sweep interval (default: 10m)
}

// LoadConfig reads the environment, after loading a .env file when present.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	env := getEnvOrDefault("ENV", "dev")

	return Config{
		StoreBackend:  getEnvOrDefault("STORE_BACKEND", "sqlite"),
		DatabaseFile:  getEnvOrDefault("DATABASE_FILE", "interclasse.db"),
		RedisAddr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvIntOrDefault("REDIS_DB", 0),

		SessionBackend:      getEnvOrDefault("SESSION_BACKEND", "memory"),
		SessionDatabaseFile: getEnvOrDefault("SESSION_DATABASE_FILE", "interclasse-sessions.db"),
		SessionTTL:          getEnvDurationOrDefault("SESSION_TTL", 12*time.Hour),
		SessionSecretFile:   getEnvOrDefault("SESSION_SECRET_FILE", "session.key"),
		CookieSecure:        getEnvBoolOrDefault("COOKIE_SECURE", env != "dev"),

		PepperFile: getEnvOrDefault("PEPPER_FILE", "pepper"),
		LoginDelay: getEnvDurationOrDefault("LOGIN_DELAY", time.Second),

		Env:                  env,
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 10*time.Minute),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
