package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string `json:"port" validate:"required"`
	Host string `json:"host"`

	// Storage configuration
	DataDir  string `json:"data_dir" validate:"required"`
	CacheDir string `json:"cache_dir"`

	// AniList configuration
	AniListURL     string `json:"anilist_url"`
	RequestTimeout int    `json:"request_timeout"`

	// Entity linker configuration
	CacheTTLHours int     `json:"cache_ttl_hours"`
	MinConfidence float64 `json:"min_confidence" validate:"min=0,max=1"`
	LinkEntities  bool    `json:"link_entities"`

	// Ingestion settings
	SyncInterval string `json:"sync_interval"`
	FetchDays    int    `json:"fetch_days"`
	FetchLimit   int    `json:"fetch_limit"`

	// Logging
	LogLevel string `json:"log_level"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		Port:           getEnvOrDefault("PORT", "3000"),
		Host:           getEnvOrDefault("HOST", "0.0.0.0"),
		AniListURL:     getEnvOrDefault("ANILIST_URL", "https://graphql.anilist.co"),
		RequestTimeout: getEnvIntOrDefault("REQUEST_TIMEOUT", 30),
		CacheTTLHours:  getEnvIntOrDefault("CACHE_TTL_HOURS", 24),
		MinConfidence:  getEnvFloatOrDefault("MIN_CONFIDENCE", 0.6),
		LinkEntities:   getEnvBoolOrDefault("LINK_ENTITIES", true),
		SyncInterval:   getEnvOrDefault("SYNC_INTERVAL", "6h"),
		FetchDays:      getEnvIntOrDefault("FETCH_DAYS", 7),
		FetchLimit:     getEnvIntOrDefault("FETCH_LIMIT", 50),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
	}

	// Required environment variables
	var err error
	if config.DataDir, err = getRequiredEnv("DATA_DIR"); err != nil {
		return nil, err
	}
	config.CacheDir = getEnvOrDefault("CACHE_DIR", filepath.Join(config.DataDir, "entity_cache"))

	return config, nil
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return c.Host + ":" + c.Port
}

// GetSyncInterval parses the configured sync interval
func (c *Config) GetSyncInterval() (time.Duration, error) {
	interval, err := time.ParseDuration(c.SyncInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid sync interval %q: %w", c.SyncInterval, err)
	}
	return interval, nil
}

// GetCacheTTL returns the entity cache time-to-live
func (c *Config) GetCacheTTL() time.Duration {
	return time.Duration(c.CacheTTLHours) * time.Hour
}

// GetRequestTimeout returns the outbound HTTP timeout
func (c *Config) GetRequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory is required")
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("min confidence must be between 0 and 1")
	}
	if c.CacheTTLHours <= 0 {
		return fmt.Errorf("cache TTL must be positive")
	}
	if c.FetchDays <= 0 || c.FetchLimit <= 0 {
		return fmt.Errorf("fetch window and limit must be positive")
	}
	if _, err := c.GetSyncInterval(); err != nil {
		return err
	}
	return nil
}

// Helper functions
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getRequiredEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("required environment variable %s is not set", key)
	}
	return value, nil
}
