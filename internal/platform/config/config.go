package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures everything the server needs from the environment.
// FromEnv applies development defaults so a bare `go run` works; production
// deployments override via environment.
type Config struct {
	Addr string

	PostgresURL  string
	MigrationURL string

	Redis RedisConfig

	KafkaBrokers       []string
	NotificationsTopic string

	JWTSigningKey string
	SessionTTL    time.Duration

	// WhatsAppNumber is the marketplace contact number used when composing
	// prefilled outbound messages.
	WhatsAppNumber string
}

// RedisConfig holds connection settings for the session cache.
// An empty URL disables Redis; the session store then runs uncached.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	return Config{
		Addr:         envOr("LICIBIT_ADDR", ":8080"),
		PostgresURL:  os.Getenv("POSTGRES_URL"),
		MigrationURL: envOr("MIGRATION_URL", "file://migrations"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		KafkaBrokers:       splitNonEmpty(os.Getenv("KAFKA_BROKERS")),
		NotificationsTopic: envOr("NOTIFICATIONS_TOPIC", "licibit.notifications"),
		// Default for development only - must be overridden in production.
		JWTSigningKey:  envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		SessionTTL:     envDuration("SESSION_TTL", 24*time.Hour),
		WhatsAppNumber: envOr("WHATSAPP_NUMBER", "573001112233"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitNonEmpty(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
