package config

import (
	"errors"
	"os"
	"strconv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort   int
	DatabasePath string
	RedisURL     string
	JWTSecret    string // HMAC key for signing tokens, no default
	AvatarDir    string // Base path for uploaded avatar images
	DigestCron   string // Cron expression for the daily event digest
}

// Load loads configuration from environment variables or sets
// defaults. JWT_SECRET has no default: an unset secret would sign
// every token with an empty key, so startup fails instead.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	return &Config{
		ServerPort:   port,
		DatabasePath: getEnv("DATABASE_PATH", "./campline.db"),
		RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379"),
		JWTSecret:    secret,
		AvatarDir:    getEnv("AVATAR_DIR", "./avatar-data"),
		DigestCron:   getEnv("DIGEST_CRON", "0 8 * * *"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
