package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Vision  VisionConfig
	Catalog CatalogConfig
	Search  SearchConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	APIToken       string   `mapstructure:"api_token"`
}

// VisionConfig holds configuration for the external image-analysis service.
// APIKey is optional: search works without it, falling back to the
// catalog-derived vocabulary.
type VisionConfig struct {
	APIKey        string        `mapstructure:"api_key"`
	BaseURL       string        `mapstructure:"base_url"`
	Model         string        `mapstructure:"model"`
	Temperature   float64       `mapstructure:"temperature"`
	MaxTokens     int           `mapstructure:"max_tokens"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RatePerMinute int           `mapstructure:"rate_per_minute"`
}

// CatalogConfig holds catalog database configuration
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// SearchConfig holds the page sizes and caps of the search pipeline
type SearchConfig struct {
	VocabScanLimit int `mapstructure:"vocab_scan_limit"`
	VocabSize      int `mapstructure:"vocab_size"`
	ScanLimit      int `mapstructure:"scan_limit"`
	FallbackLimit  int `mapstructure:"fallback_limit"`
	MaxResults     int `mapstructure:"max_results"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/lenscart/")

	// Environment variable settings
	v.SetEnvPrefix("LENSCART")
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
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// Vision defaults (api_key intentionally has no default - it is optional)
	v.SetDefault("vision.base_url", "https://api.openai.com/v1")
	v.SetDefault("vision.model", "gpt-4.1-mini")
	v.SetDefault("vision.temperature", 0.1)
	v.SetDefault("vision.max_tokens", 120)
	v.SetDefault("vision.timeout", "20s")
	v.SetDefault("vision.rate_per_minute", 30)

	// Catalog defaults
	v.SetDefault("catalog.path", "catalog.db")

	// Search defaults
	v.SetDefault("search.vocab_scan_limit", 100)
	v.SetDefault("search.vocab_size", 20)
	v.SetDefault("search.scan_limit", 120)
	v.SetDefault("search.fallback_limit", 6)
	v.SetDefault("search.max_results", 6)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.Path == "" {
		return fmt.Errorf("catalog path is required (set LENSCART_CATALOG_PATH)")
	}

	if config.Search.MaxResults <= 0 {
		return fmt.Errorf("search max_results must be positive, got: %d", config.Search.MaxResults)
	}

	if config.Search.ScanLimit <= 0 || config.Search.VocabScanLimit <= 0 || config.Search.FallbackLimit <= 0 {
		return fmt.Errorf("search scan limits must be positive")
	}

	if config.Vision.Timeout <= 0 {
		return fmt.Errorf("vision timeout must be positive, got: %s", config.Vision.Timeout)
	}

	return nil
}
