package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv string

	HTTPAddr    string
	DatabaseURL string

	JWTSecret string
	JWTIssuer string

	// Kafka
	KafkaBrokers           []string
	BookingEventsTopic     string
	TenantEventsTopic      string
	ServiceCatalogTopic    string
	ConsumerGroupID        string
	ConsumerConnectBackoff time.Duration
	ConsumerHandlerTimeout time.Duration

	// Availability oracle
	AvailabilityURL     string
	AvailabilityTimeout time.Duration

	// Redis & Caching
	RedisURL        string
	CacheTTLService time.Duration

	// Rate Limiting
	RLEnabled bool
	RLLimit   int
	RLWindow  time.Duration

	LogLevel  string
	LogFormat string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.AppEnv = getEnv("APP_ENV", "dev")
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8084")
	cfg.DatabaseURL = getEnv("DATABASE_URL", "")

	cfg.JWTSecret = getEnv("JWT_SECRET", "")
	cfg.JWTIssuer = getEnv("JWT_ISSUER", "")

	cfg.KafkaBrokers = splitList(getEnv("KAFKA_BROKERS", ""))
	cfg.BookingEventsTopic = getEnv("KAFKA_BOOKING_EVENTS_TOPIC", "booking-events")
	cfg.TenantEventsTopic = getEnv("KAFKA_TENANT_EVENTS_TOPIC", "tenant-events")
	cfg.ServiceCatalogTopic = getEnv("KAFKA_SERVICE_CATALOG_TOPIC", "service-catalog-events")
	cfg.ConsumerGroupID = getEnv("KAFKA_CONSUMER_GROUP", "booking-service")
	cfg.ConsumerConnectBackoff = getDuration("KAFKA_CONNECT_BACKOFF", 2*time.Second)
	cfg.ConsumerHandlerTimeout = getDuration("KAFKA_HANDLER_TIMEOUT", 10*time.Second)

	cfg.AvailabilityURL = getEnv("AVAILABILITY_URL", "")
	cfg.AvailabilityTimeout = getDuration("AVAILABILITY_TIMEOUT", 5*time.Second)

	cfg.RedisURL = getEnv("REDIS_URL", "")
	cfg.CacheTTLService = getDuration("CACHE_TTL_SERVICE", 5*time.Minute)

	// Rate Limiting Defaults: 100 reqs / 1 min
	cfg.RLEnabled = getEnv("RL_ENABLED", "true") == "true"
	cfg.RLLimit = getIntEnv("RL_IP_LIMIT", 100)
	cfg.RLWindow = getDuration("RL_IP_WINDOW", 1*time.Minute)

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "console")

	cfg.HTTPReadTimeout = getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	cfg.HTTPWriteTimeout = getDuration("HTTP_WRITE_TIMEOUT", 20*time.Second)
	cfg.HTTPIdleTimeout = getDuration("HTTP_IDLE_TIMEOUT", 60*time.Second)

	// validation
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("missing DATABASE_URL")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("missing JWT_SECRET")
	}
	if cfg.AvailabilityURL == "" {
		return nil, fmt.Errorf("missing AVAILABILITY_URL")
	}

	// Kafka optional in dev, mandatory everywhere else
	if cfg.AppEnv != "dev" && len(cfg.KafkaBrokers) == 0 {
		return nil, fmt.Errorf("missing KAFKA_BROKERS (required when APP_ENV != dev)")
	}

	return cfg, nil
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getIntEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
