package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/gearcheck/backend/internal/logger"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Log        logger.Config
	Store      StoreConfig
	RateLimit  RateLimitConfig
	Containers map[string]string `mapstructure:"containers"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StoreConfig holds checklist state persistence configuration
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/gearcheck/")

	// Environment variable settings
	v.SetEnvPrefix("GEARCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8050")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Logging defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// State store defaults
	v.SetDefault("store.path", "gearcheck.db")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 120)

	// Equippable containers: the eight wardrobes. Main inventory is excluded
	// because it mixes in consumables.
	v.SetDefault("containers", map[string]string{
		"8":  "wardrobe",
		"10": "wardrobe2",
		"11": "wardrobe3",
		"12": "wardrobe4",
		"13": "wardrobe5",
		"14": "wardrobe6",
		"15": "wardrobe7",
		"16": "wardrobe8",
	})
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if len(config.Containers) == 0 {
		return fmt.Errorf("at least one equippable container must be configured")
	}
	if _, err := config.EquippableContainers(); err != nil {
		return err
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("ratelimit.per_ip must be positive, got: %d", config.RateLimit.PerIP)
	}

	return nil
}

// EquippableContainers returns the configured container map keyed by numeric
// container id.
func (c *Config) EquippableContainers() (map[int]string, error) {
	containers := make(map[int]string, len(c.Containers))
	for key, label := range c.Containers {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("container id %q is not numeric", key)
		}
		containers[id] = label
	}
	return containers, nil
}
