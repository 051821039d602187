package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                    string
	Environment             string
	LogLevel                string
	ScheduleURL             string
	ScheduleFormat          string
	ScheduleRefreshInterval time.Duration
	ScheduleTimeout         time.Duration
	RosterFile              string
	DefaultLang             string
	StoreDriver             string
	StorePath               string
	DatabaseURL             string
	RedisAddr               string
	DataEncryptionKey       string
	DeliveryDriver          string
	DeliveryURL             string
	DeliveryChatID          string
	DeliveryTimeout         time.Duration
	EmailFrom               string
	EmailTo                 string
	SMTPHost                string
	SMTPPort                int
	SMTPUser                string
	SMTPPassword            string
	SMTPUseTLS              bool
	MaxBodyBytes            int64
	RateLimitPerMinute      int
	MetricsEnabled          bool
}

// Load reads a .env file when present, then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("dotenv load failed", "err", err)
	}
	return FromEnv()
}

func FromEnv() Config {
	return Config{
		Addr:                    getEnv("APP_ADDR", ":8080"),
		Environment:             getEnv("APP_ENV", "development"),
		LogLevel:                getEnv("LOG_LEVEL", "INFO"),
		ScheduleURL:             getEnv("SCHEDULE_URL", ""),
		ScheduleFormat:          getEnv("SCHEDULE_FORMAT", "auto"),
		ScheduleRefreshInterval: getEnvDuration("SCHEDULE_REFRESH_INTERVAL", 15*time.Minute),
		ScheduleTimeout:         getEnvDuration("SCHEDULE_TIMEOUT", 30*time.Second),
		RosterFile:              getEnv("ROSTER_FILE", "roster.yaml"),
		DefaultLang:             getEnv("DEFAULT_LANG", "ru"),
		StoreDriver:             getEnv("STORE_DRIVER", "file"),
		StorePath:               getEnv("STORE_PATH", "storage/adjustments.json"),
		DatabaseURL:             getEnv("DATABASE_URL", ""),
		RedisAddr:               getEnv("REDIS_ADDR", "localhost:6379"),
		DataEncryptionKey:       getEnv("DATA_ENCRYPTION_KEY", ""),
		DeliveryDriver:          getEnv("DELIVERY_DRIVER", "none"),
		DeliveryURL:             getEnv("DELIVERY_URL", ""),
		DeliveryChatID:          getEnv("DELIVERY_CHAT_ID", ""),
		DeliveryTimeout:         getEnvDuration("DELIVERY_TIMEOUT", 30*time.Second),
		EmailFrom:               getEnv("EMAIL_FROM", "no-reply@example.com"),
		EmailTo:                 getEnv("EMAIL_TO", ""),
		SMTPHost:                getEnv("SMTP_HOST", ""),
		SMTPPort:                getEnvInt("SMTP_PORT", 587),
		SMTPUser:                getEnv("SMTP_USER", ""),
		SMTPPassword:            getEnv("SMTP_PASSWORD", ""),
		SMTPUseTLS:              getEnvBool("SMTP_USE_TLS", true),
		MaxBodyBytes:            int64(getEnvInt("MAX_BODY_BYTES", 65536)),
		RateLimitPerMinute:      getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		MetricsEnabled:          getEnvBool("METRICS_ENABLED", true),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case "memory", "file", "sqlite", "postgres", "redis":
	default:
		return fmt.Errorf("STORE_DRIVER must be one of memory, file, sqlite, postgres, redis")
	}
	if (c.StoreDriver == "file" || c.StoreDriver == "sqlite") && strings.TrimSpace(c.StorePath) == "" {
		return fmt.Errorf("STORE_PATH is required for the %s store", c.StoreDriver)
	}
	if c.StoreDriver == "postgres" && strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required for the postgres store")
	}
	switch c.ScheduleFormat {
	case "auto", "csv", "xlsx", "xls", "html":
	default:
		return fmt.Errorf("SCHEDULE_FORMAT must be one of auto, csv, xlsx, xls, html")
	}
	switch c.DeliveryDriver {
	case "none":
	case "relay":
		if strings.TrimSpace(c.DeliveryURL) == "" || strings.TrimSpace(c.DeliveryChatID) == "" {
			return fmt.Errorf("DELIVERY_URL and DELIVERY_CHAT_ID must be set for the relay delivery")
		}
	case "smtp":
		if c.SMTPHost == "" || c.EmailTo == "" {
			return fmt.Errorf("SMTP_HOST and EMAIL_TO must be set for smtp delivery")
		}
	default:
		return fmt.Errorf("DELIVERY_DRIVER must be one of none, relay, smtp")
	}
	if c.Environment == "production" && strings.TrimSpace(c.DataEncryptionKey) == "" {
		return fmt.Errorf("DATA_ENCRYPTION_KEY must be set in production for encryption at rest")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	return nil
}
