package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port        string
	DatabaseDSN string
	Env         string
	// Admin login secret. Exactly one of the two is normally set; when the
	// hash form is present it wins. If neither is set, login fails closed.
	AdminPassword     string
	AdminPasswordHash string
	SessionSecret     string
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by caller) > default.
func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "8080")
	cfg.DatabaseDSN = getEnv("DATABASE_DSN", "file:archive.db")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	cfg.AdminPasswordHash = os.Getenv("ADMIN_PASSWORD_HASH")
	cfg.SessionSecret = getEnv("SESSION_SECRET", "devsessionsecret")
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ParseBool reads an env var as bool with default. Accepts the strconv
// forms plus yes/no, which ops scripts tend to use for toggles like
// DB_SEED and MIGRATIONS.
func ParseBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "yes":
		return true
	case "no":
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("invalid boolean for %s: %s", key, v)
		return def
	}
	return b
}
