package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if !cfg.Report.Console {
		t.Error("console reporting should be on by default")
	}
	if cfg.Evaluation.Workers != 1 {
		t.Errorf("default workers = %d, expected 1", cfg.Evaluation.Workers)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\") failed: %v", err)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected defaults, got level %s", cfg.Logging.Level)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
training:
  spam_file: spam_train.txt
  ham_file: ham_train.txt
evaluation:
  workers: 4
report:
  redis:
    enabled: true
    ttl: 1h
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Training.SpamFile != "spam_train.txt" || cfg.Training.HamFile != "ham_train.txt" {
		t.Errorf("training files = %+v", cfg.Training)
	}
	if cfg.Evaluation.Workers != 4 {
		t.Errorf("workers = %d, expected 4", cfg.Evaluation.Workers)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %s, expected debug", cfg.Logging.Level)
	}
	// Unset keys keep their defaults.
	if cfg.Report.Redis.KeyPrefix != "nbspam:eval" {
		t.Errorf("key prefix = %s, expected default", cfg.Report.Redis.KeyPrefix)
	}
	ttl, err := cfg.Report.Redis.ParseTTL()
	if err != nil || ttl != time.Hour {
		t.Errorf("ParseTTL = %v, %v; expected 1h", ttl, err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero workers", func(c *Config) { c.Evaluation.Workers = 0 }},
		{"negative top words", func(c *Config) { c.Evaluation.TopWords = -1 }},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }},
		{"bad ttl", func(c *Config) { c.Report.Redis.Enabled = true; c.Report.Redis.TTL = "soon" }},
		{"empty redis url", func(c *Config) { c.Report.Redis.Enabled = true; c.Report.Redis.RedisURL = "" }},
		{"bad network", func(c *Config) { c.Milter.Network = "udp" }},
		{"empty address", func(c *Config) { c.Milter.Address = "" }},
		{"short read timeout", func(c *Config) { c.Milter.ReadTimeoutMs = 10 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Evaluation.SpamTestFile = "spam_test.txt"
	if err := cfg.SaveConfig(path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Evaluation.SpamTestFile != "spam_test.txt" {
		t.Errorf("spam test file = %q after round trip", loaded.Evaluation.SpamTestFile)
	}
}
