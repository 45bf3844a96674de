// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	AI struct {
		Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
		Model          string `mapstructure:"model" yaml:"model"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		APIKey         string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`

	Report struct {
		Format    string `mapstructure:"format" yaml:"format"`
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"report" yaml:"report"`

	Batch struct {
		Workers int `mapstructure:"workers" yaml:"workers"`
	} `mapstructure:"batch" yaml:"batch"`

	Data struct {
		RecordsFile string `mapstructure:"records_file" yaml:"records_file"`
		SplitsFile  string `mapstructure:"splits_file" yaml:"splits_file"`
		RulesFile   string `mapstructure:"rules_file" yaml:"rules_file"`
	} `mapstructure:"data" yaml:"data"`

	PDF struct {
		OCREnabled bool `mapstructure:"ocr_enabled" yaml:"ocr_enabled"`
	} `mapstructure:"pdf" yaml:"pdf"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.expense-report")
	v.AddConfigPath(".expense-report")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("EXPENSE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// 5. The API key always comes from the environment, not prefixed
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("ai.enabled", true)
	v.SetDefault("ai.model", "gemini-1.5-flash")
	v.SetDefault("ai.timeout_seconds", 30)

	v.SetDefault("report.format", "csv")
	v.SetDefault("report.delimiter", ",")

	v.SetDefault("batch.workers", 5)

	v.SetDefault("data.records_file", "records.csv")
	v.SetDefault("data.splits_file", "splits.csv")
	v.SetDefault("data.rules_file", "")

	v.SetDefault("pdf.ocr_enabled", false)
}

// validateConfig checks configuration values that have a closed domain
func validateConfig(config *Config) error {
	switch config.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	switch config.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format: %s", config.Log.Format)
	}

	switch config.Report.Format {
	case "csv", "json", "xml":
	default:
		return fmt.Errorf("invalid report format: %s", config.Report.Format)
	}

	if config.Batch.Workers < 1 || config.Batch.Workers > 64 {
		return fmt.Errorf("batch workers must be between 1 and 64, got %d", config.Batch.Workers)
	}

	if len(config.Report.Delimiter) != 1 {
		return fmt.Errorf("report delimiter must be a single character, got %q", config.Report.Delimiter)
	}

	return nil
}
