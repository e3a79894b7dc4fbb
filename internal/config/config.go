package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr               string
	DBPath             string
	LogLevel           string
	SessionWorkerCount int
	SessionQueueSize   int
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:               envOr("ADDR", ":8080"),
		DBPath:             envOr("DB_PATH", "file:recallgraph.db"),
		LogLevel:           envOr("LOG_LEVEL", "INFO"),
		SessionWorkerCount: envIntOr("SESSION_WORKER_COUNT", 1),
		SessionQueueSize:   envIntOr("SESSION_QUEUE_SIZE", 64),
	}
}

// Validate checks the configuration and collects every problem into one
// error so operators see the full list at once.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}
	if c.SessionWorkerCount <= 0 {
		problems = append(problems, "SESSION_WORKER_COUNT must be positive")
	}
	if c.SessionQueueSize <= 0 {
		problems = append(problems, "SESSION_QUEUE_SIZE must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
