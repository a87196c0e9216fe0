package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port              string
	PrimaryDBPath     string
	BroadcastDBPath   string
	TelegramBotToken  string
	TelegramAPIURL    string
	AdminPasswordHash string
	AllowedOrigins    []string
	Environment       string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8000"),
		PrimaryDBPath:     getEnv("PRIMARY_DB_PATH", "miniapp.db"),
		BroadcastDBPath:   getEnv("BROADCAST_DB_PATH", "broadcast.db"),
		TelegramBotToken:  getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramAPIURL:    getEnv("TELEGRAM_API_URL", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		AllowedOrigins:    []string{getEnv("FRONTEND_URL", "http://localhost:8081")},
		Environment:       getEnv("ENVIRONMENT", "development"),
	}

	if cfg.Environment == "production" && cfg.TelegramBotToken == "" {
		log.Printf("Warning: TELEGRAM_BOT_TOKEN not set, outgoing messages will only be simulated")
	}

	return cfg
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
