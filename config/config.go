package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/CrowderSoup/monday-dashboard/monday"
)

// DefaultEnvFile is read at startup when present, the way the server always has.
const DefaultEnvFile = ".env"

// Config represents the complete server configuration. Keys double as
// environment variable names (upper-cased), so MONDAY_API_TOKEN and PORT work
// unchanged.
type Config struct {
	// Port is the HTTP listen port
	Port string `mapstructure:"port"`
	// MondayAPIToken is the personal API token sent as the Authorization header
	MondayAPIToken string `mapstructure:"monday_api_token"`
	// MondayAPIURL is the GraphQL endpoint
	MondayAPIURL string `mapstructure:"monday_api_url"`
	// MondayAPIVersion is sent as the API-Version header
	MondayAPIVersion string `mapstructure:"monday_api_version"`
	// HTTPTimeoutSeconds bounds each outbound call to Monday.com
	HTTPTimeoutSeconds int `mapstructure:"http_timeout_seconds"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// DatabasePath is the sqlite file holding the upload journal
	DatabasePath string `mapstructure:"database_path"`
	// UploadDelayMs is the pause between mutations of a bulk timeline upload
	UploadDelayMs int `mapstructure:"upload_delay_ms"`

	// AllowedOrigins for CORS; "*" allows any
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Port:               "3000",
		MondayAPIURL:       monday.DefaultEndpoint,
		MondayAPIVersion:   monday.DefaultAPIVersion,
		HTTPTimeoutSeconds: 30,
		LogLevel:           "info",
		LogFormat:          "text",
		DatabasePath:       "monday-dashboard.db",
		UploadDelayMs:      100,
		AllowedOrigins:     []string{"*"},
	}
}

// SetDefaults registers every default on v so env vars and files layer over them.
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("port", defaults.Port)
	v.SetDefault("monday_api_token", defaults.MondayAPIToken)
	v.SetDefault("monday_api_url", defaults.MondayAPIURL)
	v.SetDefault("monday_api_version", defaults.MondayAPIVersion)
	v.SetDefault("http_timeout_seconds", defaults.HTTPTimeoutSeconds)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_format", defaults.LogFormat)
	v.SetDefault("database_path", defaults.DatabasePath)
	v.SetDefault("upload_delay_ms", defaults.UploadDelayMs)
	v.SetDefault("allowed_origins", defaults.AllowedOrigins)
}

// NewViper builds a viper instance with defaults, environment binding and an
// optional config file. An explicit configFile must exist; otherwise a .env
// file in the working directory is read if there is one.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		return v, nil
	}

	if _, err := os.Stat(DefaultEnvFile); err == nil {
		v.SetConfigFile(DefaultEnvFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", DefaultEnvFile, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat %s: %w", DefaultEnvFile, err)
	}
	return v, nil
}

// Load reads the configuration from v into a Config struct and validates it
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// UploadDelay is the pause between bulk upload mutations.
func (c *Config) UploadDelay() time.Duration {
	return time.Duration(c.UploadDelayMs) * time.Millisecond
}

// HTTPTimeout bounds each request to Monday.com.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// TokenConfigured reports whether MONDAY_API_TOKEN is set.
func (c *Config) TokenConfigured() bool {
	return c.MondayAPIToken != ""
}
