package config

import (
	"os"
	"strings"
	"time"
)

// Config captures runtime configuration values for the reference-data service.
type Config struct {
	HTTPAddress     string
	RedisAddress    string
	RedisKeyPrefix  string
	JWTSecret       string
	JWTIssuer       string
	HTTPTimeout     time.Duration
	DefaultLanguage string
	KafkaBrokers    []string
	ConsumerGroup   string
	ConsumerTopics  []string
	ProducerTopic   string
	MetricsAddress  string
}

// Load reads environment variables and applies defaults.
func Load() Config {
	return Config{
		HTTPAddress:     getEnv("HTTP_ADDRESS", ":8092"),
		RedisAddress:    getEnv("REDIS_ADDRESS", ""),
		RedisKeyPrefix:  getEnv("REDIS_KEY_PREFIX", "referencedata:"),
		JWTSecret:       getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTIssuer:       getEnv("JWT_ISSUER", "i5e.identity"),
		HTTPTimeout:     getDurationEnv("HTTP_TIMEOUT", 5*time.Second),
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "en"),
		KafkaBrokers:    splitAndTrim(getEnv("KAFKA_BROKERS", "kafka:9092")),
		ConsumerGroup:   getEnv("CONSUMER_GROUP_ID", "reference-data-consumer"),
		ConsumerTopics:  splitAndTrim(getEnv("CONSUMER_TOPICS", "settings_events,backup_events")),
		ProducerTopic:   getEnv("PRODUCER_TOPIC", ""),
		MetricsAddress:  getEnv("METRICS_ADDRESS", ":9196"),
	}
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
