package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"github.com/tes4tools/sdpack/internal/sdp"
)

type Config struct {
	Database   string   `mapstructure:"database"`
	Charset    string   `mapstructure:"charset"`
	Extensions []string `mapstructure:"extensions"`
	LogLevel   string   `mapstructure:"log_level"`
	LogFormat  string   `mapstructure:"log_format"`
}

// Load initializes and loads configuration from file
func Load(cfgFile string) (*Config, error) {
	// Set defaults
	viper.SetDefault("database", "sdpack.db")
	viper.SetDefault("charset", sdp.DefaultCharset)
	viper.SetDefault("extensions", []string{".vso", ".pso"})
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_format", "text")

	// Config file handling
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName("sdpack")
		viper.SetConfigType("yaml")
	}

	// Read config file (optional)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate charset if provided
	if err := validateCharset(cfg.Charset); err != nil {
		return nil, fmt.Errorf("invalid charset configuration: %w", err)
	}

	// Validate and normalize the extension allow-list
	exts, err := normalizeExtensions(cfg.Extensions)
	if err != nil {
		return nil, fmt.Errorf("invalid extension configuration: %w", err)
	}
	cfg.Extensions = exts

	return &cfg, nil
}
