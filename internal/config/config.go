package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort          = "8080"
	defaultDSN           = "canbrs.db"
	defaultJWTTTL        = "24h"
	defaultResetTokenTTL = "1h"
)

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	DSN string
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type SemaphoreConfig struct {
	APIKey     string
	SenderName string
}

type MailtrapConfig struct {
	APIToken  string
	FromEmail string
	FromName  string
}

type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	JWT           JWTConfig
	Semaphore     SemaphoreConfig
	Mailtrap      MailtrapConfig
	ResetTokenTTL time.Duration

	// FrontendURL is the base for password-reset links sent to users.
	FrontendURL string
}

// Load reads .env (when present) and assembles the config from the
// environment with development defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	jwtTTL, err := parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}
	resetTTL, err := parseDurationEnv("RESET_TOKEN_TTL", defaultResetTokenTTL)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", defaultPort),
		},
		Database: DatabaseConfig{
			DSN: getEnv("DATABASE_URL", defaultDSN),
		},
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
			TTL:    jwtTTL,
		},
		Semaphore: SemaphoreConfig{
			APIKey:     os.Getenv("SEMAPHORE_API_KEY"),
			SenderName: getEnv("SEMAPHORE_SENDER_NAME", "CanBRS"),
		},
		Mailtrap: MailtrapConfig{
			APIToken:  os.Getenv("MAILTRAP_API_TOKEN"),
			FromEmail: getEnv("MAILTRAP_FROM_EMAIL", "noreply@canbrs.local"),
			FromName:  getEnv("MAILTRAP_FROM_NAME", "CanBRS"),
		},
		ResetTokenTTL: resetTTL,
		FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:5173"),
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid duration in %s: %w", key, err)
	}
	return d, nil
}
