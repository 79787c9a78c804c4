// Package config provides Viper-based hierarchical configuration management
// for the invoice engine.
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Store struct {
		Path string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"store" yaml:"store"`

	Dedup struct {
		// TolerancePercent is the allowed relative deviation between two
		// totals before they stop counting as the same invoice.
		TolerancePercent float64 `mapstructure:"tolerance_percent" yaml:"tolerance_percent"`
		// RecurringWindowMonths is the trailing window inspected for
		// monthly recurring vendors.
		RecurringWindowMonths int `mapstructure:"recurring_window_months" yaml:"recurring_window_months"`
	} `mapstructure:"dedup" yaml:"dedup"`

	Dictionaries struct {
		VendorsFile    string `mapstructure:"vendors_file" yaml:"vendors_file"`
		CategoriesFile string `mapstructure:"categories_file" yaml:"categories_file"`
		PaymentsFile   string `mapstructure:"payments_file" yaml:"payments_file"`
		QRKeysFile     string `mapstructure:"qr_keys_file" yaml:"qr_keys_file"`
	} `mapstructure:"dictionaries" yaml:"dictionaries"`

	Batch struct {
		Workers int `mapstructure:"workers" yaml:"workers"`
	} `mapstructure:"batch" yaml:"batch"`
}

// InitializeConfig loads configuration with hierarchical precedence:
// defaults, then an optional YAML config file, then INVOICE_* environment
// variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.invoice-engine")
	v.AddConfigPath(".invoice-engine")
	v.AddConfigPath(".")

	v.SetEnvPrefix("INVOICE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// A broken config file is worth a warning, but defaults and
			// env vars still let the tool run.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
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

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("store.path", "invoices.db")

	v.SetDefault("dedup.tolerance_percent", 2.0)
	v.SetDefault("dedup.recurring_window_months", 3)

	v.SetDefault("dictionaries.vendors_file", "")
	v.SetDefault("dictionaries.categories_file", "")
	v.SetDefault("dictionaries.payments_file", "")
	v.SetDefault("dictionaries.qr_keys_file", "")

	v.SetDefault("batch.workers", 4)
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Dedup.TolerancePercent < 0 || config.Dedup.TolerancePercent > 100 {
		return fmt.Errorf("dedup.tolerance_percent must be between 0 and 100, got: %f", config.Dedup.TolerancePercent)
	}

	if config.Dedup.RecurringWindowMonths < 1 || config.Dedup.RecurringWindowMonths > 24 {
		return fmt.Errorf("dedup.recurring_window_months must be between 1 and 24, got: %d", config.Dedup.RecurringWindowMonths)
	}

	if config.Batch.Workers < 1 || config.Batch.Workers > 64 {
		return fmt.Errorf("batch.workers must be between 1 and 64, got: %d", config.Batch.Workers)
	}

	return nil
}
