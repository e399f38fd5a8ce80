package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents nbspam configuration
type Config struct {
	// Training corpora
	Training TrainingConfig `yaml:"training"`

	// Test corpora and evaluation tuning
	Evaluation EvaluationConfig `yaml:"evaluation"`

	// Where per-document results go
	Report ReportConfig `yaml:"report"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging"`

	// Milter server settings
	Milter MilterConfig `yaml:"milter"`
}

// TrainingConfig names the tagged corpus files used for training
type TrainingConfig struct {
	SpamFile string `yaml:"spam_file"`
	HamFile  string `yaml:"ham_file"`
}

// EvaluationConfig names the test corpora and controls batch evaluation
type EvaluationConfig struct {
	SpamTestFile string `yaml:"spam_test_file"`
	HamTestFile  string `yaml:"ham_test_file"`

	// Documents classified concurrently (1 = sequential)
	Workers int `yaml:"workers"`

	// Number of top words listed by the stats command
	TopWords int `yaml:"top_words"`
}

// ReportConfig selects the result reporters
type ReportConfig struct {
	Console bool              `yaml:"console"`
	Redis   RedisReportConfig `yaml:"redis"`
}

// RedisReportConfig contains Redis result publishing settings
type RedisReportConfig struct {
	Enabled     bool   `yaml:"enabled"`
	RedisURL    string `yaml:"redis_url"`
	KeyPrefix   string `yaml:"key_prefix"`
	DatabaseNum int    `yaml:"database_num"`
	TTL         string `yaml:"ttl"` // Duration string like "24h"
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	File   string `yaml:"file"`   // log file path, empty = stderr
	Format string `yaml:"format"` // json, text
}

// MilterConfig contains milter server settings
type MilterConfig struct {
	// Network and address for milter socket
	Network string `yaml:"network"` // "tcp" or "unix"
	Address string `yaml:"address"` // "127.0.0.1:7358" or "/tmp/nbspam.sock"

	// Connection settings
	ReadTimeoutMs           int `yaml:"read_timeout_ms"`
	WriteTimeoutMs          int `yaml:"write_timeout_ms"`
	GracefulShutdownTimeout int `yaml:"graceful_shutdown_timeout_ms"`

	// Verdict headers
	HeaderPrefix string `yaml:"header_prefix"`

	// Reject spam instead of only tagging it
	RejectSpam    bool   `yaml:"reject_spam"`
	RejectMessage string `yaml:"reject_message"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Evaluation: EvaluationConfig{
			Workers:  1,
			TopWords: 10,
		},
		Report: ReportConfig{
			Console: true,
			Redis: RedisReportConfig{
				Enabled:     false,
				RedisURL:    "redis://localhost:6379",
				KeyPrefix:   "nbspam:eval",
				DatabaseNum: 0,
				TTL:         "24h",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			File:   "",
			Format: "text",
		},
		Milter: MilterConfig{
			Network:                 "tcp",
			Address:                 "127.0.0.1:7358",
			ReadTimeoutMs:           10000,
			WriteTimeoutMs:          10000,
			GracefulShutdownTimeout: 10000,
			HeaderPrefix:            "X-NBSpam-",
			RejectSpam:              false,
			RejectMessage:           "",
		},
	}
}

// LoadConfig loads configuration from file
func LoadConfig(configPath string) (*Config, error) {
	// Start with defaults
	config := DefaultConfig()

	// If no config file specified, return defaults
	if configPath == "" {
		return config, nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// SaveConfig saves configuration to file
func (c *Config) SaveConfig(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Evaluation.Workers < 1 {
		return fmt.Errorf("evaluation workers must be >= 1")
	}

	if c.Evaluation.TopWords < 0 {
		return fmt.Errorf("evaluation top_words must be >= 0")
	}

	validLevel := false
	for _, level := range []string{"debug", "info", "warn", "error"} {
		if c.Logging.Level == level {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("logging format must be 'text' or 'json'")
	}

	if c.Report.Redis.Enabled {
		if c.Report.Redis.RedisURL == "" {
			return fmt.Errorf("report redis_url cannot be empty when enabled")
		}
		if _, err := c.Report.Redis.ParseTTL(); err != nil {
			return err
		}
	}

	if c.Milter.Network != "tcp" && c.Milter.Network != "unix" {
		return fmt.Errorf("milter network must be 'tcp' or 'unix'")
	}

	if c.Milter.Address == "" {
		return fmt.Errorf("milter address cannot be empty")
	}

	if c.Milter.ReadTimeoutMs < 1000 {
		return fmt.Errorf("milter read_timeout_ms must be >= 1000")
	}

	if c.Milter.WriteTimeoutMs < 1000 {
		return fmt.Errorf("milter write_timeout_ms must be >= 1000")
	}

	return nil
}

// ParseTTL parses the report TTL. An empty value means no expiry.
func (r RedisReportConfig) ParseTTL() (time.Duration, error) {
	if r.TTL == "" {
		return 0, nil
	}
	ttl, err := time.ParseDuration(r.TTL)
	if err != nil {
		return 0, fmt.Errorf("invalid report ttl %q: %w", r.TTL, err)
	}
	if ttl < 0 {
		return 0, fmt.Errorf("report ttl must not be negative")
	}
	return ttl, nil
}
