package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string

	// Event publishing: "gochannel" keeps events in-process, "kafka" ships
	// them to the configured brokers.
	EventBackend string
	KafkaBrokers []string
	EventTopic   string

	// Question-set cache. Disabled unless a redis URL is configured.
	RedisURL string
	CacheTTL time.Duration
}

func LoadConfig() (*Config, error) {
	// A missing .env file is fine; env vars may come from the environment.
	_ = godotenv.Load()

	return &Config{
		Port:         getEnv("PORT", "8080"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		EventBackend: getEnv("EVENT_BACKEND", "gochannel"),
		KafkaBrokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		EventTopic:   getEnv("EVENT_TOPIC", "assessment-session-events"),
		RedisURL:     getEnv("REDIS_URL", ""),
		CacheTTL:     getDurationEnv("CACHE_TTL_SECONDS", 15*time.Minute),
	}, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds <= 0 {
		return defaultValue
	}
	return time.Duration(seconds) * time.Second
}
