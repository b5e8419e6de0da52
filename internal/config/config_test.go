package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestApplyDefaults(t *testing.T) {
	t.Parallel()

	var cfg Config
	ApplyDefaults(&cfg)

	if len(cfg.Command) == 0 || cfg.Command[0] != "networkQuality" {
		t.Fatalf("command=%v", cfg.Command)
	}
	if cfg.CSVPath != DefaultCSVPath {
		t.Fatalf("csv_path=%q", cfg.CSVPath)
	}
	if cfg.IPEchoURL != DefaultIPEchoURL {
		t.Fatalf("ip_echo_url=%q", cfg.IPEchoURL)
	}
	if cfg.IPTimeout() != 3*time.Second {
		t.Fatalf("ip_timeout=%s", cfg.IPTimeout())
	}
	if len(cfg.STUNServers) == 0 {
		t.Fatal("stun_servers empty")
	}
	if cfg.DefaultProfile != "Unknown" {
		t.Fatalf("default_profile=%q", cfg.DefaultProfile)
	}
}

func TestLoad_EmptyPathYieldsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := Config{CSVPath: "x.csv", Command: []string{"networkQuality"}}
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected: %v", err)
	}

	if err := Validate(Config{CSVPath: "x.csv"}); err == nil {
		t.Fatal("expected error for missing command")
	}
	if err := Validate(Config{Command: []string{"networkQuality"}}); err == nil {
		t.Fatal("expected error for missing csv_path")
	}
	cfg.IPTimeoutSec = -1
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for negative timeout")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	path := filepath.Join(tmp, "vpnbench.yaml")
	cfg := Config{
		Command:        []string{"networkQuality", "-v", "-s"},
		CSVPath:        "logs/perf.csv",
		DefaultProfile: "office",
	}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode=%o", info.Mode().Perm())
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Command) != 3 || got.Command[2] != "-s" {
		t.Fatalf("command=%v", got.Command)
	}
	if got.CSVPath != "logs/perf.csv" {
		t.Fatalf("csv_path=%q", got.CSVPath)
	}
	if got.DefaultProfile != "office" {
		t.Fatalf("default_profile=%q", got.DefaultProfile)
	}
	if got.IPEchoURL != DefaultIPEchoURL {
		t.Fatalf("ip_echo_url=%q", got.IPEchoURL)
	}
}
