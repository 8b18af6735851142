package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix prefixes every environment variable, e.g. HEADCOUNT_ENGINE_STRICT_MARKETPLACE.
const EnvPrefix = "HEADCOUNT"

// Config represents the complete engine configuration
type Config struct {
	Engine  EngineConfig  `yaml:"engine" envconfig:"ENGINE"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// EngineConfig tunes pipeline behavior
type EngineConfig struct {
	StrictMarketplace bool `yaml:"strict_marketplace" envconfig:"STRICT_MARKETPLACE" default:"false"`
	HeaderScanRows    int  `yaml:"header_scan_rows" envconfig:"HEADER_SCAN_ROWS" default:"30"`
	DiagnosticColumns int  `yaml:"diagnostic_columns" envconfig:"DIAGNOSTIC_COLUMNS" default:"25"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format      string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT" default:"false"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Engine: EngineConfig{
			HeaderScanRows:    30,
			DiagnosticColumns: 25,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load loads configuration from environment variables and, when path is
// non-empty, a YAML file. Values set in the environment take precedence.
func Load(path string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if path != "" {
		fileConfig, err := loadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg, os.LookupEnv)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs overlays file values onto env config for every variable the
// environment does not set explicitly.
func mergeConfigs(fileConfig, envConfig Config, lookup func(string) (string, bool)) Config {
	isSet := func(name string) bool {
		_, ok := lookup(EnvPrefix + "_" + name)
		return ok
	}

	if !isSet("ENGINE_STRICT_MARKETPLACE") {
		envConfig.Engine.StrictMarketplace = fileConfig.Engine.StrictMarketplace
	}
	if !isSet("ENGINE_HEADER_SCAN_ROWS") {
		envConfig.Engine.HeaderScanRows = fileConfig.Engine.HeaderScanRows
	}
	if !isSet("ENGINE_DIAGNOSTIC_COLUMNS") {
		envConfig.Engine.DiagnosticColumns = fileConfig.Engine.DiagnosticColumns
	}
	if !isSet("LOGGING_LEVEL") {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if !isSet("LOGGING_FORMAT") {
		envConfig.Logging.Format = fileConfig.Logging.Format
	}
	if !isSet("LOGGING_DEVELOPMENT") {
		envConfig.Logging.Development = fileConfig.Logging.Development
	}

	return envConfig
}

func (c *Config) validate() error {
	if c.Engine.HeaderScanRows <= 0 {
		return errors.New("engine.header_scan_rows must be positive")
	}
	if c.Engine.DiagnosticColumns <= 0 {
		return errors.New("engine.diagnostic_columns must be positive")
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format %q must be json or text", c.Logging.Format)
	}
	return nil
}
