package config

import (
	"fmt"
	"log"
	"os"
	"time"
)

// App holds the runtime configuration loaded from environment variables.
type App struct {
	Env               string
	HTTPPort          string
	DatabaseDriver    string
	DatabaseURL       string
	RedisAddr         string
	CacheTTL          time.Duration
	StaticDir         string
	RateLimitPerMin   int
	DBConnectAttempts int
	DBConnectDelay    time.Duration
	ServerURL         string
}

// Load returns application config populated from environment variables with sensible defaults.
// DATABASE_DRIVER selects the backend ("sqlite" or "postgres"); DATABASE_URL is a file
// path for sqlite and a connection string for postgres. REDIS_ADDR left empty disables
// the records read-cache.
func Load() App {
	return App{
		Env:               getEnv("APP_ENV", "dev"),
		HTTPPort:          getEnv("PORT", "8080"),
		DatabaseDriver:    getEnv("DATABASE_DRIVER", "sqlite"),
		DatabaseURL:       getEnv("DATABASE_URL", "data/attendance.db"),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		CacheTTL:          durationEnv("CACHE_TTL", 30*time.Second),
		StaticDir:         getEnv("STATIC_DIR", "dist"),
		RateLimitPerMin:   intEnv("RATE_LIMIT_PER_MIN", 120),
		DBConnectAttempts: intEnv("DB_CONNECT_ATTEMPTS", 5),
		DBConnectDelay:    durationEnv("DB_CONNECT_DELAY", 2*time.Second),
		ServerURL:         getEnv("ATTENDSHEET_SERVER", "http://localhost:8080"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using fallback %s", key, err, fallback)
			return fallback
		}
		return d
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var parsed int
		if _, err := fmt.Sscanf(val, "%d", &parsed); err == nil {
			return parsed
		}
		log.Printf("invalid int for %s, using fallback %d", key, fallback)
	}
	return fallback
}
