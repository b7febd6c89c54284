package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	JWTSecret    string

	DatabaseURL string
	RedisURL    string

	KafkaBrokers []string
	KafkaTopic   string

	PosthogAPIKey string

	PrimaryRateAPIURL   string
	SecondaryRateAPIURL string
	RateStaleness       time.Duration
	RateRetention       time.Duration
	RateFetchRetries    int

	// RateLimit uses the ulule/limiter format, e.g. "60-M" for 60 per minute.
	// Empty disables rate limiting.
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_TOPIC", "fx.rates")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("PRIMARY_RATE_API_URL", "https://api.exchangerate.host")
	viper.SetDefault("SECONDARY_RATE_API_URL", "https://api.frankfurter.app")
	viper.SetDefault("RATE_STALENESS", "1h")
	viper.SetDefault("RATE_RETENTION", "24h")
	viper.SetDefault("RATE_FETCH_RETRIES", 2)
	viper.SetDefault("RATE_LIMIT", "60-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL not set. Rate history persistence is disabled.")
	}

	cfg.RedisURL = viper.GetString("REDIS_URL")
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set. Falling back to the in-memory cache.")
	}

	cfg.KafkaBrokers = splitList(viper.GetString("KAFKA_BROKERS"))
	cfg.KafkaTopic = viper.GetString("KAFKA_TOPIC")
	if len(cfg.KafkaBrokers) == 0 {
		log.Println("Warning: KAFKA_BROKERS not set. Rate update events will not be published.")
	}

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	cfg.PrimaryRateAPIURL = viper.GetString("PRIMARY_RATE_API_URL")
	cfg.SecondaryRateAPIURL = viper.GetString("SECONDARY_RATE_API_URL")

	cfg.RateStaleness = parseDurationOr("RATE_STALENESS", time.Hour)
	cfg.RateRetention = parseDurationOr("RATE_RETENTION", 24*time.Hour)

	cfg.RateFetchRetries = viper.GetInt("RATE_FETCH_RETRIES")
	if cfg.RateFetchRetries < 0 {
		cfg.RateFetchRetries = 0
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}

// splitList parses a comma-separated env value into its non-empty entries.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseDurationOr(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}
