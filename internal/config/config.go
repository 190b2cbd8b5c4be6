package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	MySQLDSN   string
	RedisAddr  string
	RedisDB    int
	RedisPass  string

	JWTSecret string
	TokenTTL  time.Duration

	// FoundingCutoff is the registration deadline for the founding-member
	// pricing tier.
	FoundingCutoff time.Time

	// AppBaseURL is used when building password-reset links in outgoing mail.
	AppBaseURL string

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	SwaggerHost string
}

const defaultFoundingCutoff = "2025-12-31"

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "5000"),
		MySQLDSN:       getEnv("MYSQL_DSN", "root:@tcp(localhost:3306)/ajurnie_fitness?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		RedisPass:      os.Getenv("REDIS_PASSWORD"),
		JWTSecret:      getEnv("JWT_SECRET", "change-me"),
		TokenTTL:       getEnvDuration("TOKEN_TTL", 7*24*time.Hour),
		FoundingCutoff: getEnvDate("FOUNDING_CUTOFF", defaultFoundingCutoff),
		AppBaseURL:     getEnv("APP_BASE_URL", "http://localhost:5000"),
		SMTPHost:       os.Getenv("SMTP_HOST"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUser:       os.Getenv("SMTP_USER"),
		SMTPPass:       os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:       getEnv("SMTP_FROM", "no-reply@ajurnie.local"),
		SwaggerHost:    os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDate(key, def string) time.Time {
	raw := getEnv(key, def)
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		parsed, _ = time.Parse("2006-01-02", def)
	}
	return parsed
}
