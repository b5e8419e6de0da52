package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultCSVPath      = "vpn_performance.csv"
	DefaultIPEchoURL    = "https://api.ipify.org"
	DefaultIPTimeoutSec = 3
	DefaultProfile      = "Unknown"
)

// DefaultCommand runs macOS networkQuality in verbose mode so the
// per-metric lines are present in the output.
func DefaultCommand() []string {
	return []string{"networkQuality", "-v"}
}

func DefaultSTUNServers() []string {
	return []string{"stun.l.google.com:19302"}
}

// Config holds tool settings. Every field has a default so the tool
// runs without a config file at all.
type Config struct {
	Command        []string `yaml:"command,omitempty"`
	CSVPath        string   `yaml:"csv_path,omitempty"`
	IPEchoURL      string   `yaml:"ip_echo_url,omitempty"`
	IPTimeoutSec   int      `yaml:"ip_timeout_sec,omitempty"`
	STUNServers    []string `yaml:"stun_servers,omitempty"`
	DefaultProfile string   `yaml:"default_profile,omitempty"`
}

// IPTimeout returns the IP lookup timeout as a duration.
func (c Config) IPTimeout() time.Duration {
	return time.Duration(c.IPTimeoutSec) * time.Second
}

// Load reads and parses a YAML config file. An empty path yields the
// defaults.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		ApplyDefaults(&cfg)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}

	ApplyDefaults(&cfg)
	return cfg, nil
}

// Save writes a YAML config file to disk.
func Save(path string, cfg Config) error {
	ApplyDefaults(&cfg)
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// Validate performs minimal validation for required fields.
func Validate(cfg Config) error {
	if len(cfg.Command) == 0 {
		return fmt.Errorf("command is required")
	}
	if cfg.CSVPath == "" {
		return fmt.Errorf("csv_path is required")
	}
	if cfg.IPTimeoutSec < 0 {
		return fmt.Errorf("ip_timeout_sec must not be negative")
	}
	return nil
}

// ApplyDefaults fills in default values when empty.
func ApplyDefaults(cfg *Config) {
	if len(cfg.Command) == 0 {
		cfg.Command = DefaultCommand()
	}
	if cfg.CSVPath == "" {
		cfg.CSVPath = DefaultCSVPath
	}
	if cfg.IPEchoURL == "" {
		cfg.IPEchoURL = DefaultIPEchoURL
	}
	if cfg.IPTimeoutSec == 0 {
		cfg.IPTimeoutSec = DefaultIPTimeoutSec
	}
	if len(cfg.STUNServers) == 0 {
		cfg.STUNServers = DefaultSTUNServers()
	}
	if cfg.DefaultProfile == "" {
		cfg.DefaultProfile = DefaultProfile
	}
}
