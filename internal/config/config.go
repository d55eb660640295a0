// Package config loads application configuration from the environment,
// with a .env file as the development-time source.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreBackendFile     = "file"
	StoreBackendPostgres = "postgres"
)

// Config holds the application configuration.
type Config struct {
	Port        int
	APIKey      string
	LogLevel    string
	LogFormat   string
	LogDir      string
	ServiceName string
	Version     string
	Environment string

	ContentPath      string
	StoreBackend     string
	SavePath         string
	SaveSlot         string
	AutosaveInterval time.Duration

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	DiscordToken  string
	DiscordAppID  string
	DiscordGuild  string
	EngineBaseURL string
}

// Load reads configuration from environment variables. A .env file is
// loaded first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:      getEnv("API_KEY", ""),
		LogLevel:    getEnv("LOG_LEVEL", "INFO"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		LogDir:      getEnv("LOG_DIR", "logs"),
		ServiceName: getEnv("SERVICE_NAME", "loot-ledger"),
		Version:     getEnv("SERVICE_VERSION", "dev"),
		Environment: getEnv("ENVIRONMENT", "dev"),

		ContentPath:  getEnv("CONTENT_PATH", "configs/content.json"),
		StoreBackend: getEnv("STORE_BACKEND", StoreBackendFile),
		SavePath:     getEnv("SAVE_PATH", "save/ledger.json"),
		SaveSlot:     getEnv("SAVE_SLOT", "default"),

		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "lootledger"),

		DiscordToken:  getEnv("DISCORD_TOKEN", ""),
		DiscordAppID:  getEnv("DISCORD_APP_ID", ""),
		DiscordGuild:  getEnv("DISCORD_GUILD_ID", ""),
		EngineBaseURL: getEnv("ENGINE_BASE_URL", "http://localhost:8080"),
	}

	portStr := getEnv("HTTP_PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_PORT value: %w", err)
	}
	cfg.Port = port

	intervalStr := getEnv("AUTOSAVE_INTERVAL", "60s")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid AUTOSAVE_INTERVAL value: %w", err)
	}
	cfg.AutosaveInterval = interval

	if cfg.StoreBackend != StoreBackendFile && cfg.StoreBackend != StoreBackendPostgres {
		return nil, fmt.Errorf("invalid STORE_BACKEND value %q (want %q or %q)",
			cfg.StoreBackend, StoreBackendFile, StoreBackendPostgres)
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// DBConnString returns the PostgreSQL connection string for the
// save-slot store.
func (c *Config) DBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
