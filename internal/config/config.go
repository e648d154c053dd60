package config

import (
	"errors"
	"os"
	"strconv"
)

// ErrMissingJWTSecret is returned when JWT_SECRET is not set. The server
// refuses to start rather than fall back to a guessable signing key.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	JWTSecret   string
	SwaggerHost string

	// Password reset delivery. When SMTP is not configured the reset link is
	// written to the server log instead.
	ResetLinkBase string
	SMTPHost      string
	SMTPPort      string
	SMTPUser      string
	SMTPPass      string
}

// Load builds Config from environment. JWT_SECRET is mandatory; everything
// else has a development default.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, ErrMissingJWTSecret
	}

	return &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		MySQLDSN:      getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/siteworks?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisPass:     os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     secret,
		SwaggerHost:   os.Getenv("SWAGGER_HOST"),
		ResetLinkBase: getEnv("RESET_LINK_BASE", "http://localhost:3000/reset-password"),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      os.Getenv("SMTP_PORT"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPass:      os.Getenv("SMTP_PASS"),
	}, nil
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
