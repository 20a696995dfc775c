package config

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env          string
	Port         int
	UsersFile    string
	MessagesFile string
	UploadsDir   string
	WebRoot      string
	MaxBodyBytes int64
	OTelEnabled  bool
	OTLPEndpoint string
}

func Load() Config {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	return Config{
		Env:          getEnv("APP_ENV", "dev"),
		Port:         getEnvInt("PORT", 8080),
		UsersFile:    getEnv("USERS_FILE", "users.txt"),
		MessagesFile: getEnv("MESSAGES_FILE", "messages.txt"),
		UploadsDir:   getEnv("UPLOADS_DIR", "uploads"),
		WebRoot:      getEnv("WEB_ROOT", "."),
		MaxBodyBytes: getEnvInt64("MAX_BODY_BYTES", 50_000_000),
		OTelEnabled:  getEnvBool("OTEL_ENABLED", false),
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)
		if err == nil {
			return num
		}
	}

	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			return num
		}
	}

	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}

	return fallback
}
