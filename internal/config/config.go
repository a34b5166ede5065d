package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port       int
	LogLevel   string
	LogDir     string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	MigrationsDir string
	RecipePath    string

	PriceAPIURL   string
	PriceCacheTTL time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:      getEnv("LOG_LEVEL", "INFO"),
		LogDir:        getEnv("LOG_DIR", "logs"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBName:        getEnv("DB_NAME", "forgeledger"),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),
		RecipePath:    getEnv("RECIPE_CONFIG_PATH", ConfigPathEquipmentRecipes),
		PriceAPIURL:   getEnv("PRICE_API_URL", ""),
		PriceCacheTTL: getEnvAsDuration("PRICE_CACHE_TTL", 5*time.Minute),

		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", 20),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an integer environment variable or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvAsDuration retrieves a duration environment variable or returns a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
